package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"comunidad/contexts/governance/committee-meeting/adapters/memory"
	"comunidad/contexts/governance/committee-meeting/domain/entities"
	domainerrors "comunidad/contexts/governance/committee-meeting/domain/errors"
)

var meetingDay = time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*memory.Store, Service) {
	t.Helper()
	store := memory.NewStore()
	return store, Service{
		Meetings:   store,
		Agreements: store,
		Clock:      store,
		IDGen:      store,
	}
}

func scheduleMeeting(t *testing.T, service Service, agenda []AgendaItemInput) entities.Meeting {
	t.Helper()
	meeting, err := service.Schedule(context.Background(), ScheduleMeetingCommand{
		Title:         "monthly board meeting",
		Date:          meetingDay,
		Type:          "ordinary",
		Format:        entities.FormatInPerson,
		PhysicalSpace: "community hall",
		Attendees:     []string{"member-president", "member-secretary"},
		Agenda:        agenda,
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return meeting
}

func TestScheduleValidatesFormatFields(t *testing.T) {
	_, service := newService(t)
	_, err := service.Schedule(context.Background(), ScheduleMeetingCommand{
		Title:  "virtual without link",
		Date:   meetingDay,
		Format: entities.FormatVirtual,
	})
	if !errors.Is(err, domainerrors.ErrInvalidMeetingInput) {
		t.Fatalf("expected ErrInvalidMeetingInput, got %v", err)
	}

	_, err = service.Schedule(context.Background(), ScheduleMeetingCommand{
		Title:         "hybrid needs both",
		Date:          meetingDay,
		Format:        entities.FormatHybrid,
		PhysicalSpace: "community hall",
	})
	if !errors.Is(err, domainerrors.ErrInvalidMeetingInput) {
		t.Fatalf("expected ErrInvalidMeetingInput for hybrid without link, got %v", err)
	}
}

func TestCompleteDerivesAgreementsWithCategoryMapping(t *testing.T) {
	store, service := newService(t)
	meeting := scheduleMeeting(t, service, []AgendaItemInput{
		{Topic: "repair roof leak", Category: entities.TopicMaintenance, Priority: entities.PriorityHigh, ResponsibleID: "member-vocal"},
		{Topic: "review insurance policy", Category: entities.TopicLegal, Priority: entities.PriorityMedium, ResponsibleID: "member-secretary"},
		{Topic: "open floor", Category: entities.TopicOther, Priority: entities.PriorityLow},
	})
	if _, err := service.Start(context.Background(), meeting.MeetingID); err != nil {
		t.Fatalf("start: %v", err)
	}

	current, err := service.Get(context.Background(), meeting.MeetingID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	for _, item := range current.Agenda[:2] {
		if _, err := service.RecordDecision(context.Background(), RecordDecisionCommand{
			MeetingID: meeting.MeetingID,
			ItemID:    item.ItemID,
			Decision:  "approved as proposed",
		}); err != nil {
			t.Fatalf("record decision: %v", err)
		}
	}

	completed, err := service.Complete(context.Background(), meeting.MeetingID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != entities.StatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
	// Two decided items out of three.
	if rate := completed.CompletionRate(); rate < 66 || rate > 67 {
		t.Fatalf("expected completion rate near 66.7, got %v", rate)
	}

	derived := store.DerivedAgreements()
	if len(derived) != 2 {
		t.Fatalf("expected two derived agreements, got %d", len(derived))
	}
	byTopic := make(map[string]string, len(derived))
	for _, agreement := range derived {
		byTopic[agreement.Topic] = agreement.Category
	}
	if byTopic["repair roof leak"] != "operational" {
		t.Fatalf("expected maintenance topic to map to operational, got %s", byTopic["repair roof leak"])
	}
	if byTopic["review insurance policy"] != "legal" {
		t.Fatalf("expected legal topic to stay legal, got %s", byTopic["review insurance policy"])
	}
}

func TestSubmitRequiresDecidedCriticalItems(t *testing.T) {
	_, service := newService(t)
	meeting := scheduleMeeting(t, service, []AgendaItemInput{
		{Topic: "emergency pipe replacement", Category: entities.TopicMaintenance, Priority: entities.PriorityCritical, ResponsibleID: "member-vocal"},
	})
	if _, err := service.Start(context.Background(), meeting.MeetingID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := service.Complete(context.Background(), meeting.MeetingID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if _, err := service.Submit(context.Background(), meeting.MeetingID); !errors.Is(err, domainerrors.ErrCriticalUndecided) {
		t.Fatalf("expected ErrCriticalUndecided, got %v", err)
	}
}

func TestSubmitRequiresAttendees(t *testing.T) {
	_, service := newService(t)
	meeting, err := service.Schedule(context.Background(), ScheduleMeetingCommand{
		Title:         "empty room",
		Date:          meetingDay,
		Format:        entities.FormatInPerson,
		PhysicalSpace: "community hall",
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if _, err := service.Start(context.Background(), meeting.MeetingID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := service.Complete(context.Background(), meeting.MeetingID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := service.Submit(context.Background(), meeting.MeetingID); !errors.Is(err, domainerrors.ErrNoAttendees) {
		t.Fatalf("expected ErrNoAttendees, got %v", err)
	}

	if _, err := service.RegisterAttendee(context.Background(), meeting.MeetingID, "member-president"); err != nil {
		t.Fatalf("register attendee: %v", err)
	}
	submitted, err := service.Submit(context.Background(), meeting.MeetingID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Status != entities.StatusSubmitted {
		t.Fatalf("expected submitted, got %s", submitted.Status)
	}
}

func TestRecordDecisionOnlyInProgress(t *testing.T) {
	_, service := newService(t)
	meeting := scheduleMeeting(t, service, []AgendaItemInput{
		{Topic: "budget review", Category: entities.TopicFinancial, Priority: entities.PriorityHigh},
	})
	_, err := service.RecordDecision(context.Background(), RecordDecisionCommand{
		MeetingID: meeting.MeetingID,
		ItemID:    meeting.Agenda[0].ItemID,
		Decision:  "approved",
	})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on planned meeting, got %v", err)
	}
}
