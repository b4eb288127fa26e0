package unit

import (
	"context"
	"sync"

	"comunidad/internal/shared/events"
)

// captureSink records emitted notifications for assertions.
type captureSink struct {
	mu    sync.Mutex
	items []events.Notification
}

func (s *captureSink) Emit(_ context.Context, notification events.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, notification)
	return nil
}

func (s *captureSink) Emitted() []events.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]events.Notification(nil), s.items...)
}
