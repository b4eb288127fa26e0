package bootstrap

import (
	"context"
	"testing"
	"time"

	agreementtracker "comunidad/contexts/governance/agreement-tracker"
	agreemententities "comunidad/contexts/governance/agreement-tracker/domain/entities"
	assemblyports "comunidad/contexts/governance/assembly-lifecycle/ports"
	meetingports "comunidad/contexts/governance/committee-meeting/ports"
)

func TestAssemblyDerivationUsesLegalHighPriority(t *testing.T) {
	module := agreementtracker.NewInMemoryModule(nil, nil, nil)
	creator := assemblyAgreements{agreements: module.Service}

	derived := assemblyports.DerivedAgreement{
		SourceRef:     "asm-1",
		Topic:         "Approve facade renovation",
		Description:   "Carried by simple majority",
		ResponsibleID: "member-president",
		AgreementDate: time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := creator.CreateFromAssembly(context.Background(), derived); err != nil {
		t.Fatalf("create from assembly: %v", err)
	}

	agreements, err := module.Store.ListAgreements(context.Background())
	if err != nil {
		t.Fatalf("list agreements: %v", err)
	}
	if len(agreements) != 1 {
		t.Fatalf("expected one derived agreement, got %d", len(agreements))
	}
	agreement := agreements[0]
	if agreement.Category != agreemententities.CategoryLegal {
		t.Fatalf("expected legal category, got %s", agreement.Category)
	}
	if agreement.Priority != agreemententities.PriorityHigh {
		t.Fatalf("expected high priority, got %s", agreement.Priority)
	}
	if agreement.SourceType != agreemententities.SourceAssembly || agreement.SourceRef != "asm-1" {
		t.Fatalf("unexpected source %s/%s", agreement.SourceType, agreement.SourceRef)
	}
	if agreement.ResponsibleID != "member-president" {
		t.Fatalf("unexpected responsible %s", agreement.ResponsibleID)
	}
}

func TestAssemblyDerivationSkipsExistingAgreements(t *testing.T) {
	module := agreementtracker.NewInMemoryModule(nil, nil, nil)
	creator := assemblyAgreements{agreements: module.Service}

	derived := assemblyports.DerivedAgreement{
		SourceRef:     "asm-1",
		Topic:         "Replace playground equipment",
		ResponsibleID: "member-vocal",
		AgreementDate: time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC),
	}
	// A submit retry after a partial failure replays every item; earlier
	// derivations must not duplicate.
	if err := creator.CreateFromAssembly(context.Background(), derived); err != nil {
		t.Fatalf("first derivation: %v", err)
	}
	if err := creator.CreateFromAssembly(context.Background(), derived); err != nil {
		t.Fatalf("replayed derivation: %v", err)
	}

	agreements, err := module.Store.ListAgreements(context.Background())
	if err != nil {
		t.Fatalf("list agreements: %v", err)
	}
	if len(agreements) != 1 {
		t.Fatalf("expected replay to be skipped, got %d agreements", len(agreements))
	}
}

func TestMeetingDerivationSkipsExistingAgreements(t *testing.T) {
	module := agreementtracker.NewInMemoryModule(nil, nil, nil)
	creator := meetingAgreements{agreements: module.Service}

	derived := meetingports.DerivedAgreement{
		SourceRef:     "meet-1",
		Topic:         "Repaint lobby",
		Decision:      "Approved with two quotes",
		Category:      string(agreemententities.CategoryOperational),
		ResponsibleID: "member-vocal",
		AgreementDate: time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, time.July, 3, 0, 0, 0, 0, time.UTC),
	}
	if err := creator.CreateFromMeeting(context.Background(), derived); err != nil {
		t.Fatalf("first derivation: %v", err)
	}
	if err := creator.CreateFromMeeting(context.Background(), derived); err != nil {
		t.Fatalf("replayed derivation: %v", err)
	}

	agreements, err := module.Store.ListAgreements(context.Background())
	if err != nil {
		t.Fatalf("list agreements: %v", err)
	}
	if len(agreements) != 1 {
		t.Fatalf("expected replay to be skipped, got %d agreements", len(agreements))
	}
}
