package unit

import (
	"context"
	"testing"
	"time"

	agreementtracker "comunidad/contexts/governance/agreement-tracker"
	"comunidad/contexts/governance/agreement-tracker/domain/entities"
	httptransport "comunidad/contexts/governance/agreement-tracker/transport/http"
	"comunidad/internal/shared/events"
)

func TestAgreementLifecycleWithFollowUp(t *testing.T) {
	module := agreementtracker.NewInMemoryModule(nil, nil, nil)

	created, err := module.Handler.CreateAgreementHandler(context.Background(), httptransport.CreateAgreementRequest{
		SourceType:    "manual",
		Title:         "Repair garage gate",
		Description:   "Replace the motor and rails",
		AgreementDate: "2026-09-01",
		DueDate:       "2026-10-01",
		Category:      "maintenance",
		Priority:      "high",
		ResponsibleID: "member-3",
	})
	if err != nil {
		t.Fatalf("create agreement failed: %v", err)
	}
	if created.Status != "pending" {
		t.Fatalf("expected pending status, got %s", created.Status)
	}
	if created.Number == "" {
		t.Fatalf("expected an assigned agreement number")
	}
	followUps, err := module.Store.ListFollowUpsByAgreement(context.Background(), created.AgreementID)
	if err != nil {
		t.Fatalf("list follow-ups failed: %v", err)
	}
	if len(followUps) != 1 {
		t.Fatalf("expected one auto-created follow-up, got %d", len(followUps))
	}

	percentage := 40.0
	updated, err := module.Handler.AddProgressUpdateHandler(context.Background(), created.AgreementID, httptransport.ProgressUpdateRequest{
		AuthorID:    "member-3",
		Description: "Motor ordered",
		Percentage:  &percentage,
	})
	if err != nil {
		t.Fatalf("progress update failed: %v", err)
	}
	if updated.Status != "in_progress" || updated.CompletionPercentage != 40 {
		t.Fatalf("expected in_progress at 40%%, got %s at %f", updated.Status, updated.CompletionPercentage)
	}

	completed, err := module.Handler.MarkCompletedHandler(context.Background(), created.AgreementID, httptransport.MarkCompletedRequest{
		AuthorID: "member-3",
		Note:     "Gate operational",
	})
	if err != nil {
		t.Fatalf("mark completed failed: %v", err)
	}
	if completed.Status != "completed" || completed.CompletionPercentage != 100 {
		t.Fatalf("expected completed at 100%%, got %s at %f", completed.Status, completed.CompletionPercentage)
	}
}

func TestDueSoonSweepFiresOnLongReminderLeadTimes(t *testing.T) {
	now := time.Now().UTC()
	seed := []entities.Agreement{{
		AgreementID:        "agr-reminder",
		Number:             "ACU-2026-007",
		SourceType:         entities.SourceManual,
		Title:              "Renew elevator maintenance contract",
		AgreementDate:      now.AddDate(0, 0, -20),
		DueDate:            now.AddDate(0, 0, 10),
		Category:           entities.CategoryOperational,
		Priority:           entities.PriorityHigh,
		ResponsibleID:      "member-2",
		Status:             entities.StatusPending,
		ReminderDaysBefore: 10,
		CreatedAt:          now.AddDate(0, 0, -20),
		UpdatedAt:          now.AddDate(0, 0, -20),
	}}
	sink := &captureSink{}
	module := agreementtracker.NewInMemoryModule(seed, sink, nil)

	first, err := module.DueSoonSweep.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	if first != 1 {
		t.Fatalf("expected one reminder on the reminder date, got %d", first)
	}

	second, err := module.DueSoonSweep.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if second != 0 {
		t.Fatalf("expected idempotent re-run, got %d", second)
	}

	reminders := 0
	for _, notification := range sink.Emitted() {
		if notification.Kind == events.KindDueSoon && notification.SubjectID == "agr-reminder" {
			reminders++
		}
	}
	if reminders != 1 {
		t.Fatalf("expected exactly one due-soon notification, got %d", reminders)
	}
}

func TestOverdueSweepMarksAndNotifiesOnce(t *testing.T) {
	now := time.Now().UTC()
	seed := []entities.Agreement{{
		AgreementID:   "agr-1",
		Number:        "ACU-2026-001",
		SourceType:    entities.SourceManual,
		Title:         "Paint stairwells",
		AgreementDate: now.AddDate(0, 0, -40),
		DueDate:       now.AddDate(0, 0, -5),
		Category:      entities.CategoryOperational,
		Priority:      entities.PriorityMedium,
		ResponsibleID: "member-2",
		Status:        entities.StatusPending,
		CreatedAt:     now.AddDate(0, 0, -40),
		UpdatedAt:     now.AddDate(0, 0, -40),
	}}
	sink := &captureSink{}
	module := agreementtracker.NewInMemoryModule(seed, sink, nil)

	first, err := module.OverdueSweep.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	if first != 1 {
		t.Fatalf("expected one agreement swept, got %d", first)
	}
	agreement, err := module.Store.GetAgreement(context.Background(), "agr-1")
	if err != nil {
		t.Fatalf("get agreement failed: %v", err)
	}
	if agreement.Status != entities.StatusOverdue {
		t.Fatalf("expected overdue status, got %s", agreement.Status)
	}

	second, err := module.OverdueSweep.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if second != 0 {
		t.Fatalf("expected idempotent re-run, got %d", second)
	}

	overdueNotices := 0
	for _, notification := range sink.Emitted() {
		if notification.Kind == events.KindOverdue && notification.SubjectID == "agr-1" {
			overdueNotices++
		}
	}
	if overdueNotices != 1 {
		t.Fatalf("expected exactly one overdue notification, got %d", overdueNotices)
	}
}
