package workers

import (
	"context"
	"log/slog"
	"time"

	"comunidad/contexts/governance/poll-engine/application"
	"comunidad/contexts/governance/poll-engine/domain/entities"
	"comunidad/contexts/governance/poll-engine/ports"
)

const defaultBatchSize = 100

// PollCloser finalizes one poll. Satisfied by application.Service.
type PollCloser interface {
	Close(ctx context.Context, pollID string) (entities.Poll, entities.Results, error)
}

// AutoClose sweeps open polls whose end date has passed and closes them.
// Closing is terminal, so repeat runs find nothing left to do.
type AutoClose struct {
	Polls     ports.PollRepository
	Closer    PollCloser
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce executes a single sweep cycle and returns how many polls closed.
// Per-poll failures are logged and skipped so one bad record never stalls
// the sweep.
func (w AutoClose) RunOnce(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(w.Logger)
	batch := w.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	now := time.Now().UTC()
	if w.Clock != nil {
		now = w.Clock.Now().UTC()
	}

	polls, err := w.Polls.ListOpenEndedBefore(ctx, now, batch)
	if err != nil {
		return 0, err
	}
	closed := 0
	for _, poll := range polls {
		if _, _, err := w.Closer.Close(ctx, poll.PollID); err != nil {
			logger.Error("poll auto-close failed",
				"event", "poll_autoclose_failed",
				"module", "governance/poll-engine",
				"layer", "worker",
				"poll_id", poll.PollID,
				"error", err.Error(),
			)
			continue
		}
		closed++
	}
	if closed > 0 {
		logger.Info("poll auto-close cycle finished",
			"event", "poll_autoclose_cycle",
			"module", "governance/poll-engine",
			"layer", "worker",
			"closed", closed,
		)
	}
	return closed, nil
}
