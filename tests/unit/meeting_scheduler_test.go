package unit

import (
	"context"
	"errors"
	"testing"

	meetingscheduler "comunidad/contexts/governance/meeting-scheduler"
	domainerrors "comunidad/contexts/governance/meeting-scheduler/domain/errors"
	httptransport "comunidad/contexts/governance/meeting-scheduler/transport/http"
)

func TestAnnualScheduleGenerationAndLock(t *testing.T) {
	module := meetingscheduler.NewInMemoryModule(nil)

	schedule, err := module.Handler.GenerateStandardHandler(context.Background(), httptransport.GenerateStandardRequest{
		Year:       2027,
		Period:     "annual",
		AutoCreate: true,
	})
	if err != nil {
		t.Fatalf("generate schedule failed: %v", err)
	}
	if len(schedule.Entries) != 12 {
		t.Fatalf("expected 12 monthly entries, got %d", len(schedule.Entries))
	}
	if schedule.Status != "draft" {
		t.Fatalf("expected draft status, got %s", schedule.Status)
	}

	_, err = module.Handler.AddEntryHandler(context.Background(), schedule.ScheduleID, httptransport.AddEntryRequest{
		Date:        schedule.Entries[0].Date,
		MeetingType: "ordinary",
	})
	if !errors.Is(err, domainerrors.ErrDuplicateDate) {
		t.Fatalf("expected duplicate date rejection, got %v", err)
	}
	_, err = module.Handler.AddEntryHandler(context.Background(), schedule.ScheduleID, httptransport.AddEntryRequest{
		Date:        "2028-01-15",
		MeetingType: "ordinary",
	})
	if !errors.Is(err, domainerrors.ErrDateOutsideYear) {
		t.Fatalf("expected outside-year rejection, got %v", err)
	}

	submitted, err := module.Handler.SubmitScheduleHandler(context.Background(), schedule.ScheduleID)
	if err != nil {
		t.Fatalf("submit schedule failed: %v", err)
	}
	if submitted.Status != "approved" {
		t.Fatalf("expected approved status, got %s", submitted.Status)
	}

	_, err = module.Handler.AddEntryHandler(context.Background(), schedule.ScheduleID, httptransport.AddEntryRequest{
		Date:        "2027-11-30",
		MeetingType: "ordinary",
	})
	if !errors.Is(err, domainerrors.ErrAlreadyApproved) {
		t.Fatalf("expected locked schedule rejection, got %v", err)
	}
}

func TestTrimestralScheduleMaterializesMeetings(t *testing.T) {
	module := meetingscheduler.NewInMemoryModule(nil)

	schedule, err := module.Handler.GenerateStandardHandler(context.Background(), httptransport.GenerateStandardRequest{
		Year:       2027,
		Period:     "trimestral",
		AutoCreate: true,
	})
	if err != nil {
		t.Fatalf("generate schedule failed: %v", err)
	}
	if len(schedule.Entries) != 4 {
		t.Fatalf("expected 4 quarterly entries, got %d", len(schedule.Entries))
	}
	if _, err := module.Handler.SubmitScheduleHandler(context.Background(), schedule.ScheduleID); err != nil {
		t.Fatalf("submit schedule failed: %v", err)
	}

	created, err := module.Materializer.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("materializer failed: %v", err)
	}
	if created != 4 {
		t.Fatalf("expected 4 materialized meetings, got %d", created)
	}
	if len(module.Store.CreatedMeetings()) != 4 {
		t.Fatalf("expected 4 created meetings in store, got %d", len(module.Store.CreatedMeetings()))
	}

	again, err := module.Materializer.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("materializer re-run failed: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected idempotent re-run, got %d", again)
	}
}
