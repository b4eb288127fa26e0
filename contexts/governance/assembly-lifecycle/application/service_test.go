package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"comunidad/contexts/governance/assembly-lifecycle/adapters/memory"
	"comunidad/contexts/governance/assembly-lifecycle/domain/entities"
	domainerrors "comunidad/contexts/governance/assembly-lifecycle/domain/errors"
	"comunidad/contexts/governance/assembly-lifecycle/ports"
)

type movableClock struct{ at time.Time }

func (c *movableClock) Now() time.Time { return c.at }

var assemblyDay = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*memory.Store, *movableClock, Service) {
	t.Helper()
	store := memory.NewStore()
	store.SetProperties([]ports.PropertyRef{
		{PropertyID: "apt-101", OwnershipPercentage: 40},
		{PropertyID: "apt-102", OwnershipPercentage: 35},
		{PropertyID: "apt-103", OwnershipPercentage: 25},
	})
	clock := &movableClock{at: assemblyDay.Add(-30 * 24 * time.Hour)}
	service := Service{
		Assemblies: store,
		Properties: store,
		Sessions:   store,
		Agreements: store,
		Clock:      clock,
		IDGen:      store,
	}
	return store, clock, service
}

func planAssembly(t *testing.T, service Service, agenda []AgendaItemInput) entities.Assembly {
	t.Helper()
	assembly, err := service.Plan(context.Background(), PlanAssemblyCommand{
		Type:                    entities.AssemblyOrdinary,
		Title:                   "annual ordinary assembly",
		ConvocationDate:         assemblyDay.AddDate(0, 0, -15),
		AssemblyDate:            assemblyDay,
		FirstCallTime:           assemblyDay.Add(19 * time.Hour),
		SecondCallTime:          assemblyDay.Add(19*time.Hour + 30*time.Minute),
		MinimumQuorumFirstCall:  60,
		MinimumQuorumSecondCall: 30,
		Agenda:                  agenda,
	})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	return assembly
}

func TestPlanAssignsYearlyNumber(t *testing.T) {
	_, _, service := newService(t)
	first := planAssembly(t, service, nil)
	second := planAssembly(t, service, nil)
	if first.Number != "ORD-2026-001" {
		t.Fatalf("expected ORD-2026-001, got %s", first.Number)
	}
	if second.Number != "ORD-2026-002" {
		t.Fatalf("expected ORD-2026-002, got %s", second.Number)
	}
	if first.Status != entities.StatusPlanned {
		t.Fatalf("expected planned, got %s", first.Status)
	}
}

func TestPlanRejectsInvertedQuorumThresholds(t *testing.T) {
	_, _, service := newService(t)
	_, err := service.Plan(context.Background(), PlanAssemblyCommand{
		Type:                    entities.AssemblyOrdinary,
		Title:                   "broken thresholds",
		ConvocationDate:         assemblyDay.AddDate(0, 0, -15),
		AssemblyDate:            assemblyDay,
		FirstCallTime:           assemblyDay.Add(19 * time.Hour),
		SecondCallTime:          assemblyDay.Add(20 * time.Hour),
		MinimumQuorumFirstCall:  30,
		MinimumQuorumSecondCall: 60,
	})
	if !errors.Is(err, domainerrors.ErrInvalidAssemblyInput) {
		t.Fatalf("expected ErrInvalidAssemblyInput, got %v", err)
	}
}

func TestPlanHybridRequiresVirtualLink(t *testing.T) {
	_, _, service := newService(t)
	_, err := service.Plan(context.Background(), PlanAssemblyCommand{
		Type:                    entities.AssemblyExtraordinary,
		Title:                   "hybrid without link",
		ConvocationDate:         assemblyDay.AddDate(0, 0, -15),
		AssemblyDate:            assemblyDay,
		FirstCallTime:           assemblyDay.Add(19 * time.Hour),
		SecondCallTime:          assemblyDay.Add(20 * time.Hour),
		MinimumQuorumFirstCall:  60,
		MinimumQuorumSecondCall: 30,
		Hybrid:                  true,
	})
	if !errors.Is(err, domainerrors.ErrInvalidAssemblyInput) {
		t.Fatalf("expected ErrInvalidAssemblyInput, got %v", err)
	}
}

func TestConveneSnapshotsAbsentAndIsIdempotent(t *testing.T) {
	_, clock, service := newService(t)
	assembly := planAssembly(t, service, nil)
	clock.at = assemblyDay.Add(18 * time.Hour)

	convened, err := service.Convene(context.Background(), assembly.AssemblyID)
	if err != nil {
		t.Fatalf("convene: %v", err)
	}
	if len(convened.Quorum) != 3 {
		t.Fatalf("expected 3 quorum entries, got %d", len(convened.Quorum))
	}
	for _, entry := range convened.Quorum {
		if entry.Status != entities.AttendanceAbsent {
			t.Fatalf("expected absent snapshot, got %s", entry.Status)
		}
	}

	if _, err := service.RegisterAttendance(context.Background(), RegisterAttendanceCommand{
		AssemblyID:    assembly.AssemblyID,
		PropertyID:    "apt-101",
		Status:        entities.AttendancePresent,
		CheckInMethod: entities.CheckInManual,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Re-convening must not reset the recorded attendance.
	reconvened, err := service.Convene(context.Background(), assembly.AssemblyID)
	if err != nil {
		t.Fatalf("reconvene: %v", err)
	}
	index := reconvened.EntryIndex("apt-101")
	if index < 0 || reconvened.Quorum[index].Status != entities.AttendancePresent {
		t.Fatalf("expected apt-101 to remain present after reconvene")
	}
}

func TestRepresentedAttendanceRequiresProxy(t *testing.T) {
	_, clock, service := newService(t)
	assembly := planAssembly(t, service, nil)
	clock.at = assemblyDay.Add(18 * time.Hour)
	if _, err := service.Convene(context.Background(), assembly.AssemblyID); err != nil {
		t.Fatalf("convene: %v", err)
	}

	_, err := service.RegisterAttendance(context.Background(), RegisterAttendanceCommand{
		AssemblyID: assembly.AssemblyID,
		PropertyID: "apt-102",
		Status:     entities.AttendanceRepresented,
	})
	if !errors.Is(err, domainerrors.ErrProxyRequired) {
		t.Fatalf("expected ErrProxyRequired, got %v", err)
	}

	updated, err := service.RegisterAttendance(context.Background(), RegisterAttendanceCommand{
		AssemblyID:  assembly.AssemblyID,
		PropertyID:  "apt-102",
		Status:      entities.AttendanceRepresented,
		ProxyHolder: "apt-101",
	})
	if err != nil {
		t.Fatalf("register with proxy: %v", err)
	}
	if updated.CurrentQuorumPercentage != 35 {
		t.Fatalf("expected 35%% quorum, got %v", updated.CurrentQuorumPercentage)
	}
}

func TestQuorumThresholdFollowsWallClock(t *testing.T) {
	_, clock, service := newService(t)
	assembly := planAssembly(t, service, nil)
	clock.at = assemblyDay.Add(18 * time.Hour)
	if _, err := service.Convene(context.Background(), assembly.AssemblyID); err != nil {
		t.Fatalf("convene: %v", err)
	}
	// 40% attending: below the 60% first-call bar, above the 30% second-call bar.
	if _, err := service.RegisterAttendance(context.Background(), RegisterAttendanceCommand{
		AssemblyID:    assembly.AssemblyID,
		PropertyID:    "apt-101",
		Status:        entities.AttendancePresent,
		CheckInMethod: entities.CheckInDigital,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Before first call no threshold applies.
	summary, err := service.Quorum(context.Background(), assembly.AssemblyID)
	if err != nil {
		t.Fatalf("quorum: %v", err)
	}
	if summary.ThresholdActive || summary.QuorumReached {
		t.Fatalf("expected no active threshold before first call, got %+v", summary)
	}

	clock.at = assemblyDay.Add(19*time.Hour + 10*time.Minute)
	summary, err = service.Quorum(context.Background(), assembly.AssemblyID)
	if err != nil {
		t.Fatalf("quorum: %v", err)
	}
	if !summary.ThresholdActive || summary.Threshold != 60 || summary.QuorumReached {
		t.Fatalf("expected first-call threshold unmet, got %+v", summary)
	}

	clock.at = assemblyDay.Add(19*time.Hour + 40*time.Minute)
	summary, err = service.Quorum(context.Background(), assembly.AssemblyID)
	if err != nil {
		t.Fatalf("quorum: %v", err)
	}
	if summary.Threshold != 30 || !summary.QuorumReached {
		t.Fatalf("expected second-call threshold met, got %+v", summary)
	}
}

func TestStartSessionRequiresQuorum(t *testing.T) {
	_, clock, service := newService(t)
	assembly := planAssembly(t, service, nil)
	clock.at = assemblyDay.Add(19*time.Hour + 10*time.Minute)
	if _, err := service.Convene(context.Background(), assembly.AssemblyID); err != nil {
		t.Fatalf("convene: %v", err)
	}

	if _, err := service.StartSession(context.Background(), assembly.AssemblyID); !errors.Is(err, domainerrors.ErrQuorumNotReached) {
		t.Fatalf("expected ErrQuorumNotReached, got %v", err)
	}

	for _, property := range []string{"apt-101", "apt-102"} {
		if _, err := service.RegisterAttendance(context.Background(), RegisterAttendanceCommand{
			AssemblyID:    assembly.AssemblyID,
			PropertyID:    property,
			Status:        entities.AttendancePresent,
			CheckInMethod: entities.CheckInManual,
		}); err != nil {
			t.Fatalf("register %s: %v", property, err)
		}
	}
	started, err := service.StartSession(context.Background(), assembly.AssemblyID)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if started.Status != entities.StatusInSession {
		t.Fatalf("expected in_session, got %s", started.Status)
	}
}

func TestCompleteOnlyAfterSecondCallOnAssemblyDay(t *testing.T) {
	_, clock, service := newService(t)
	assembly := planAssembly(t, service, nil)
	clock.at = assemblyDay.Add(19*time.Hour + 10*time.Minute)
	if _, err := service.Convene(context.Background(), assembly.AssemblyID); err != nil {
		t.Fatalf("convene: %v", err)
	}
	for _, property := range []string{"apt-101", "apt-102"} {
		if _, err := service.RegisterAttendance(context.Background(), RegisterAttendanceCommand{
			AssemblyID: assembly.AssemblyID,
			PropertyID: property,
			Status:     entities.AttendancePresent,
		}); err != nil {
			t.Fatalf("register %s: %v", property, err)
		}
	}
	if _, err := service.StartSession(context.Background(), assembly.AssemblyID); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := service.Complete(context.Background(), assembly.AssemblyID); !errors.Is(err, domainerrors.ErrNotOnAssemblyDay) {
		t.Fatalf("expected ErrNotOnAssemblyDay before second call, got %v", err)
	}

	clock.at = assemblyDay.Add(21 * time.Hour)
	completed, err := service.Complete(context.Background(), assembly.AssemblyID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != entities.StatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
}

func TestSubmitGateAndAgreementDerivation(t *testing.T) {
	store, clock, service := newService(t)
	agenda := []AgendaItemInput{
		{Topic: "approve annual budget", PresenterID: "member-president", RequiresVote: true, VotingType: entities.VotingSimple},
		{Topic: "replace elevator", PresenterID: "member-treasurer", RequiresVote: true, VotingType: entities.VotingQualified},
		{Topic: "community garden update", PresenterID: "member-vocal"},
	}
	assembly := planAssembly(t, service, agenda)
	clock.at = assemblyDay.Add(19*time.Hour + 10*time.Minute)
	if _, err := service.Convene(context.Background(), assembly.AssemblyID); err != nil {
		t.Fatalf("convene: %v", err)
	}
	for _, property := range []string{"apt-101", "apt-102"} {
		if _, err := service.RegisterAttendance(context.Background(), RegisterAttendanceCommand{
			AssemblyID: assembly.AssemblyID,
			PropertyID: property,
			Status:     entities.AttendancePresent,
		}); err != nil {
			t.Fatalf("register %s: %v", property, err)
		}
	}
	if _, err := service.StartSession(context.Background(), assembly.AssemblyID); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.at = assemblyDay.Add(21 * time.Hour)
	if _, err := service.Complete(context.Background(), assembly.AssemblyID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// One voted topic still lacks a closed session.
	store.SetSession(assembly.AssemblyID, ports.SessionRef{
		SessionID: "ses-1", Motion: "approve annual budget", Closed: true, Result: ports.SessionResultApproved,
	})
	if _, err := service.Submit(context.Background(), assembly.AssemblyID); !errors.Is(err, domainerrors.ErrAgendaNotReady) {
		t.Fatalf("expected ErrAgendaNotReady, got %v", err)
	}

	store.SetSession(assembly.AssemblyID, ports.SessionRef{
		SessionID: "ses-2", Motion: "replace elevator", Closed: true, Result: "rejected",
	})
	submitted, err := service.Submit(context.Background(), assembly.AssemblyID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Status != entities.StatusSubmitted {
		t.Fatalf("expected submitted, got %s", submitted.Status)
	}

	derived := store.DerivedAgreements()
	if len(derived) != 1 {
		t.Fatalf("expected one derived agreement, got %d", len(derived))
	}
	if derived[0].Topic != "approve annual budget" || derived[0].ResponsibleID != "member-president" {
		t.Fatalf("unexpected derived agreement %+v", derived[0])
	}
	if derived[0].SourceRef != assembly.AssemblyID {
		t.Fatalf("expected source ref %s, got %s", assembly.AssemblyID, derived[0].SourceRef)
	}

	if _, err := service.Cancel(context.Background(), assembly.AssemblyID); !errors.Is(err, domainerrors.ErrTerminalState) {
		t.Fatalf("expected ErrTerminalState after submit, got %v", err)
	}
}
