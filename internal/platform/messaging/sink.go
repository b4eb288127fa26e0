package messaging

import (
	"context"
	"log/slog"
	"sync"

	"comunidad/internal/shared/events"
)

// Bus is the in-process notification sink used by worker and API processes.
// Subscribers receive fire-and-forget governance notifications; a slow
// subscriber drops rather than blocking the emitting transaction.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[events.NotificationKind][]chan events.Notification
	logger      *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[events.NotificationKind][]chan events.Notification),
		logger:      logger,
	}
}

func (b *Bus) Emit(ctx context.Context, notification events.Notification) error {
	b.mu.RLock()
	subs := append([]chan events.Notification(nil), b.subscribers[notification.Kind]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- notification:
		default:
			if b.logger != nil {
				b.logger.Warn("dropping notification for slow subscriber",
					"event", "sink_emit_drop",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"kind", string(notification.Kind),
					"subject_id", notification.SubjectID,
				)
			}
		}
	}

	if b.logger != nil {
		b.logger.Info("notification emitted",
			"event", "sink_emit",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"kind", string(notification.Kind),
			"subject_id", notification.SubjectID,
			"recipients", len(notification.Recipients),
		)
	}
	return nil
}

func (b *Bus) Subscribe(kind events.NotificationKind, buffer int) <-chan events.Notification {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan events.Notification, buffer)
	b.mu.Lock()
	b.subscribers[kind] = append(b.subscribers[kind], ch)
	b.mu.Unlock()
	return ch
}
