package workers

import (
	"context"
	"testing"
	"time"

	"comunidad/contexts/governance/poll-engine/adapters/memory"
	"comunidad/contexts/governance/poll-engine/application"
	"comunidad/contexts/governance/poll-engine/domain/entities"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func TestAutoCloseSweepsExpiredPolls(t *testing.T) {
	store := memory.NewStore()
	store.SetOwners("member-1", "member-2")
	start := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)
	service := application.Service{
		Polls:    store,
		Audience: store,
		Clock:    fixedClock{at: start},
		IDGen:    store,
	}

	expired, err := service.Create(context.Background(), application.CreatePollCommand{
		Title:        "Expired",
		Audience:     entities.AudienceAllOwners,
		OptionLabels: []string{"Yes", "No"},
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 2),
	})
	if err != nil {
		t.Fatalf("create expired: %v", err)
	}
	running, err := service.Create(context.Background(), application.CreatePollCommand{
		Title:        "Still running",
		Audience:     entities.AudienceAllOwners,
		OptionLabels: []string{"Yes", "No"},
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 30),
	})
	if err != nil {
		t.Fatalf("create running: %v", err)
	}
	for _, pollID := range []string{expired.PollID, running.PollID} {
		if _, err := service.Open(context.Background(), pollID); err != nil {
			t.Fatalf("open %s: %v", pollID, err)
		}
	}

	sweepAt := start.AddDate(0, 0, 10)
	worker := AutoClose{
		Polls:  store,
		Closer: application.Service{Polls: store, Audience: store, Clock: fixedClock{at: sweepAt}, IDGen: store},
		Clock:  fixedClock{at: sweepAt},
	}
	closed, err := worker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if closed != 1 {
		t.Fatalf("expected 1 closed poll, got %d", closed)
	}

	got, err := store.GetPoll(context.Background(), expired.PollID)
	if err != nil {
		t.Fatalf("get expired: %v", err)
	}
	if got.Status != entities.StatusClosed {
		t.Fatalf("expected expired poll closed, got %s", got.Status)
	}
	stillOpen, err := store.GetPoll(context.Background(), running.PollID)
	if err != nil {
		t.Fatalf("get running: %v", err)
	}
	if stillOpen.Status != entities.StatusOpen {
		t.Fatalf("expected running poll untouched, got %s", stillOpen.Status)
	}

	closed, err = worker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if closed != 0 {
		t.Fatalf("expected idempotent re-run, got %d", closed)
	}
}
