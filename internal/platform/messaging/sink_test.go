package messaging

import (
	"context"
	"testing"
	"time"

	"comunidad/internal/shared/events"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(nil)
	ch := bus.Subscribe(events.KindOverdue, 4)

	err := bus.Emit(context.Background(), events.Notification{
		EventID:       "evt-1",
		Kind:          events.KindOverdue,
		SubjectID:     "agr-1",
		Recipients:    []string{"member-1"},
		OccurredAtUTC: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}

	select {
	case got := <-ch:
		if got.SubjectID != "agr-1" {
			t.Fatalf("unexpected subject %s", got.SubjectID)
		}
	default:
		t.Fatalf("expected a delivered notification")
	}
}

func TestBusDropsForSlowSubscriber(t *testing.T) {
	bus := NewBus(nil)
	ch := bus.Subscribe(events.KindPollResult, 1)

	for i := 0; i < 3; i++ {
		if err := bus.Emit(context.Background(), events.Notification{
			Kind:      events.KindPollResult,
			SubjectID: "poll-1",
		}); err != nil {
			t.Fatalf("emit %d failed: %v", i, err)
		}
	}
	if len(ch) != 1 {
		t.Fatalf("expected overflow to drop, buffered %d", len(ch))
	}
}

func TestBusIgnoresOtherKinds(t *testing.T) {
	bus := NewBus(nil)
	ch := bus.Subscribe(events.KindVoteResult, 1)

	if err := bus.Emit(context.Background(), events.Notification{
		Kind:      events.KindDueSoon,
		SubjectID: "agr-2",
	}); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if len(ch) != 0 {
		t.Fatalf("expected no delivery for unrelated kind, got %d", len(ch))
	}
}
