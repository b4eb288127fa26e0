package config

import (
	"os"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	EnableOverdueSweep         bool
	EnableDueSoonReminders     bool
	EnableScheduleMaterializer bool
	EnableMeetingReminders     bool
	EnablePollAutoClose        bool

	OverdueSweepBatchSize int
	DueSoonWindowDays     int
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "comunidad"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		EnableOverdueSweep:         envBool("ENABLE_OVERDUE_SWEEP", true),
		EnableDueSoonReminders:     envBool("ENABLE_DUE_SOON_REMINDERS", true),
		EnableScheduleMaterializer: envBool("ENABLE_SCHEDULE_MATERIALIZER", true),
		EnableMeetingReminders:     envBool("ENABLE_MEETING_REMINDERS", true),
		EnablePollAutoClose:        envBool("ENABLE_POLL_AUTOCLOSE", true),

		OverdueSweepBatchSize: envInt("OVERDUE_SWEEP_BATCH_SIZE", 10),
		DueSoonWindowDays:     envInt("DUE_SOON_WINDOW_DAYS", 7),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value := 0
	for _, ch := range raw {
		if ch < '0' || ch > '9' {
			return fallback
		}
		value = value*10 + int(ch-'0')
	}
	if value <= 0 {
		return fallback
	}
	return value
}
