package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	committeemeeting "comunidad/contexts/governance/committee-meeting"
	domainerrors "comunidad/contexts/governance/committee-meeting/domain/errors"
	httptransport "comunidad/contexts/governance/committee-meeting/transport/http"
)

func TestCommitteeMeetingDecisionsDeriveAgreements(t *testing.T) {
	module := committeemeeting.NewInMemoryModule(nil, nil)

	date := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")
	meeting, err := module.Handler.ScheduleMeetingHandler(context.Background(), httptransport.ScheduleMeetingRequest{
		Title:         "Monthly committee meeting",
		Date:          date,
		Type:          "ordinary",
		Format:        "in_person",
		PhysicalSpace: "community hall",
		Attendees:     []string{"member-president", "member-secretary"},
		Agenda: []httptransport.AgendaItemInput{
			{Topic: "Elevator maintenance contract", Category: "maintenance", Priority: "high", ResponsibleID: "member-vocal"},
			{Topic: "Summer party budget", Category: "social", Priority: "low"},
		},
	})
	if err != nil {
		t.Fatalf("schedule meeting failed: %v", err)
	}
	if meeting.Status != "planned" {
		t.Fatalf("expected planned status, got %s", meeting.Status)
	}

	if _, err := module.Handler.StartMeetingHandler(context.Background(), meeting.MeetingID); err != nil {
		t.Fatalf("start meeting failed: %v", err)
	}
	decided, err := module.Handler.RecordDecisionHandler(context.Background(), meeting.MeetingID, meeting.Agenda[0].ItemID, httptransport.RecordDecisionRequest{
		Decision:      "Renew with current provider for one year",
		ResponsibleID: "member-vocal",
	})
	if err != nil {
		t.Fatalf("record decision failed: %v", err)
	}
	if decided.CompletionRate != 50 {
		t.Fatalf("expected 50%% completion rate, got %f", decided.CompletionRate)
	}

	completed, err := module.Handler.CompleteMeetingHandler(context.Background(), meeting.MeetingID)
	if err != nil {
		t.Fatalf("complete meeting failed: %v", err)
	}
	if completed.Status != "completed" {
		t.Fatalf("expected completed status, got %s", completed.Status)
	}

	derived := module.Store.DerivedAgreements()
	if len(derived) != 1 {
		t.Fatalf("expected one derived agreement from decided items, got %d", len(derived))
	}
	if derived[0].Topic != "Elevator maintenance contract" || derived[0].ResponsibleID != "member-vocal" {
		t.Fatalf("unexpected derived agreement %+v", derived[0])
	}

	submitted, err := module.Handler.SubmitMeetingHandler(context.Background(), meeting.MeetingID)
	if err != nil {
		t.Fatalf("submit meeting failed: %v", err)
	}
	if submitted.Status != "submitted" {
		t.Fatalf("expected submitted status, got %s", submitted.Status)
	}
}

func TestCommitteeMeetingSubmitBlocksUndecidedCritical(t *testing.T) {
	module := committeemeeting.NewInMemoryModule(nil, nil)

	date := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	meeting, err := module.Handler.ScheduleMeetingHandler(context.Background(), httptransport.ScheduleMeetingRequest{
		Title:     "Emergency leak review",
		Date:      date,
		Format:    "virtual",
		VirtualLink: "https://meet.example/leak",
		Attendees: []string{"member-president"},
		Agenda: []httptransport.AgendaItemInput{
			{Topic: "Roof leak repair", Category: "maintenance", Priority: "critical", ResponsibleID: "member-vocal"},
		},
	})
	if err != nil {
		t.Fatalf("schedule meeting failed: %v", err)
	}
	if _, err := module.Handler.StartMeetingHandler(context.Background(), meeting.MeetingID); err != nil {
		t.Fatalf("start meeting failed: %v", err)
	}
	if _, err := module.Handler.CompleteMeetingHandler(context.Background(), meeting.MeetingID); err != nil {
		t.Fatalf("complete meeting failed: %v", err)
	}

	_, err = module.Handler.SubmitMeetingHandler(context.Background(), meeting.MeetingID)
	if !errors.Is(err, domainerrors.ErrCriticalUndecided) {
		t.Fatalf("expected critical undecided rejection, got %v", err)
	}
}

func TestCommitteeMeetingVirtualFormatNeedsLink(t *testing.T) {
	module := committeemeeting.NewInMemoryModule(nil, nil)

	date := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	_, err := module.Handler.ScheduleMeetingHandler(context.Background(), httptransport.ScheduleMeetingRequest{
		Title:  "Quick sync",
		Date:   date,
		Format: "virtual",
	})
	if !errors.Is(err, domainerrors.ErrInvalidMeetingInput) {
		t.Fatalf("expected invalid meeting input, got %v", err)
	}
}
