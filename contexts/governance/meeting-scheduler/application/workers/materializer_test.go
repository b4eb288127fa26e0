package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"comunidad/contexts/governance/meeting-scheduler/adapters/memory"
	"comunidad/contexts/governance/meeting-scheduler/application"
	"comunidad/contexts/governance/meeting-scheduler/domain/entities"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func TestMaterializeUpcomingIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	service := application.Service{Schedules: store, Clock: store, IDGen: store}

	schedule, err := service.GenerateStandard(context.Background(), application.GenerateStandardCommand{
		Year:       2026,
		Period:     entities.PeriodTrimestral,
		AutoCreate: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := service.Submit(context.Background(), schedule.ScheduleID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Mid-year: March already passed, June/September/December pending.
	worker := Materializer{
		Schedules: store,
		Meetings:  store,
		Clock:     fixedClock{at: time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)},
	}
	created, err := worker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if created != 3 {
		t.Fatalf("expected 3 materialized meetings, got %d", created)
	}

	// Re-running materializes nothing further.
	created, err = worker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected idempotent re-run, got %d new meetings", created)
	}
	if handoffs := store.CreatedMeetings(); len(handoffs) != 3 {
		t.Fatalf("expected 3 hand-offs total, got %d", len(handoffs))
	}

	updated, err := store.GetSchedule(context.Background(), schedule.ScheduleID)
	if err != nil {
		t.Fatalf("get schedule: %v", err)
	}
	for _, entry := range updated.Entries {
		if entry.Date.Month() == time.March {
			if entry.MeetingCreated {
				t.Fatalf("expected past march entry to stay unmaterialized")
			}
			continue
		}
		if !entry.MeetingCreated || entry.LinkedMeetingID == "" {
			t.Fatalf("expected entry %s to link a created meeting", entry.Date)
		}
	}
}

type flakySaveStore struct {
	*memory.Store
	armed bool
	saves int
}

func (s *flakySaveStore) SaveSchedule(ctx context.Context, schedule entities.Schedule) error {
	if s.armed {
		s.saves++
		if s.saves == 2 {
			return errors.New("schedule storage unavailable")
		}
	}
	return s.Store.SaveSchedule(ctx, schedule)
}

func TestMaterializerPersistsFlagsPerEntry(t *testing.T) {
	store := &flakySaveStore{Store: memory.NewStore()}
	service := application.Service{Schedules: store, Clock: store.Store, IDGen: store.Store}

	schedule, err := service.GenerateStandard(context.Background(), application.GenerateStandardCommand{
		Year:       2026,
		Period:     entities.PeriodTrimestral,
		AutoCreate: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := service.Submit(context.Background(), schedule.ScheduleID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// June, September and December pending; the save after September fails.
	store.armed = true
	worker := Materializer{
		Schedules: store,
		Meetings:  store.Store,
		Clock:     fixedClock{at: time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)},
	}
	if _, err := worker.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected the failing save to abort the run")
	}

	store.armed = false
	if _, err := worker.RunOnce(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	// The June flag survived the aborted run, so only the entry whose save
	// failed is handed off twice.
	juneHandoffs := 0
	for _, handoff := range store.Store.CreatedMeetings() {
		if handoff.Date.Month() == time.June {
			juneHandoffs++
		}
	}
	if juneHandoffs != 1 {
		t.Fatalf("expected the flagged june entry to materialize once, got %d", juneHandoffs)
	}
	updated, err := store.GetSchedule(context.Background(), schedule.ScheduleID)
	if err != nil {
		t.Fatalf("get schedule: %v", err)
	}
	for _, entry := range updated.Entries {
		if entry.Date.Month() == time.March {
			continue
		}
		if !entry.MeetingCreated || entry.LinkedMeetingID == "" {
			t.Fatalf("expected entry %s to link a created meeting", entry.Date)
		}
	}
}

func TestMaterializerSkipsDraftSchedules(t *testing.T) {
	store := memory.NewStore()
	service := application.Service{Schedules: store, Clock: store, IDGen: store}
	if _, err := service.GenerateStandard(context.Background(), application.GenerateStandardCommand{
		Year:       2026,
		Period:     entities.PeriodTrimestral,
		AutoCreate: true,
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	worker := Materializer{
		Schedules: store,
		Meetings:  store,
		Clock:     fixedClock{at: time.Date(2026, time.January, 2, 8, 0, 0, 0, time.UTC)},
	}
	created, err := worker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected no meetings from a draft schedule, got %d", created)
	}
}
