package application

import "log/slog"

// ResolveLogger returns the given logger or the process default, so use
// cases never nil-check before logging.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
