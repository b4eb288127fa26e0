package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	assemblylifecycle "comunidad/contexts/governance/assembly-lifecycle"
	"comunidad/contexts/governance/assembly-lifecycle/adapters/memory"
	domainerrors "comunidad/contexts/governance/assembly-lifecycle/domain/errors"
	"comunidad/contexts/governance/assembly-lifecycle/ports"
	httptransport "comunidad/contexts/governance/assembly-lifecycle/transport/http"
)

// steppedClock lets a test walk the assembly through call times and the
// assembly day.
type steppedClock struct {
	current time.Time
}

func (c *steppedClock) Now() time.Time { return c.current }

func newAssemblyModule(clock *steppedClock) (assemblylifecycle.Module, *memory.Store) {
	store := memory.NewStore()
	module := assemblylifecycle.NewModule(assemblylifecycle.Dependencies{
		Assemblies: store,
		Properties: store,
		Sessions:   store,
		Agreements: store,
		Clock:      clock,
		IDGen:      store,
	})
	module.Store = store
	return module, store
}

func TestAssemblyFullLifecycleDerivesAgreements(t *testing.T) {
	clock := &steppedClock{current: time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)}
	module, store := newAssemblyModule(clock)
	store.SetProperties([]ports.PropertyRef{
		{PropertyID: "prop-1", OwnershipPercentage: 60},
		{PropertyID: "prop-2", OwnershipPercentage: 40},
	})

	assembly, err := module.Handler.PlanAssemblyHandler(context.Background(), httptransport.PlanAssemblyRequest{
		Type:                    "ordinary",
		Title:                   "Annual owners assembly",
		ConvocationDate:         "2026-05-30",
		AssemblyDate:            "2026-06-10",
		FirstCallTime:           "2026-06-10T09:00:00Z",
		SecondCallTime:          "2026-06-10T10:30:00Z",
		MinimumQuorumFirstCall:  60,
		MinimumQuorumSecondCall: 30,
		Agenda: []httptransport.AgendaItemInput{{
			Topic:        "Approve annual budget",
			Description:  "Budget for the next fiscal year",
			PresenterID:  "member-treasurer",
			RequiresVote: true,
			VotingType:   "simple",
		}},
	})
	if err != nil {
		t.Fatalf("plan assembly failed: %v", err)
	}

	convened, err := module.Handler.ConveneHandler(context.Background(), assembly.AssemblyID)
	if err != nil {
		t.Fatalf("convene failed: %v", err)
	}
	if convened.Status != "convened" {
		t.Fatalf("expected convened status, got %s", convened.Status)
	}

	clock.current = time.Date(2026, time.June, 10, 9, 30, 0, 0, time.UTC)
	if _, err := module.Handler.RegisterAttendanceHandler(context.Background(), assembly.AssemblyID, httptransport.RegisterAttendanceRequest{
		PropertyID: "prop-1",
		Status:     "present",
	}); err != nil {
		t.Fatalf("register attendance failed: %v", err)
	}

	quorum, err := module.Handler.QuorumHandler(context.Background(), assembly.AssemblyID)
	if err != nil {
		t.Fatalf("quorum summary failed: %v", err)
	}
	if quorum.CurrentQuorum != 60 || !quorum.QuorumReached {
		t.Fatalf("expected 60%% quorum reached at first call, got %+v", quorum)
	}

	if _, err := module.Handler.StartSessionHandler(context.Background(), assembly.AssemblyID); err != nil {
		t.Fatalf("start session failed: %v", err)
	}

	clock.current = time.Date(2026, time.June, 10, 11, 0, 0, 0, time.UTC)
	if _, err := module.Handler.CompleteHandler(context.Background(), assembly.AssemblyID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	_, err = module.Handler.SubmitHandler(context.Background(), assembly.AssemblyID)
	if !errors.Is(err, domainerrors.ErrAgendaNotReady) {
		t.Fatalf("expected submit blocked by open agenda item, got %v", err)
	}

	store.SetSession(assembly.AssemblyID, ports.SessionRef{
		SessionID: "session-1",
		Motion:    "Approve annual budget",
		Closed:    true,
		Result:    ports.SessionResultApproved,
	})
	submitted, err := module.Handler.SubmitHandler(context.Background(), assembly.AssemblyID)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Status != "submitted" {
		t.Fatalf("expected submitted status, got %s", submitted.Status)
	}

	derived := store.DerivedAgreements()
	if len(derived) != 1 {
		t.Fatalf("expected one derived agreement, got %d", len(derived))
	}
	if derived[0].Topic != "Approve annual budget" || derived[0].ResponsibleID != "member-treasurer" {
		t.Fatalf("unexpected derived agreement %+v", derived[0])
	}
}

func TestAssemblyStartSessionNeedsQuorum(t *testing.T) {
	clock := &steppedClock{current: time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)}
	module, store := newAssemblyModule(clock)
	store.SetProperties([]ports.PropertyRef{
		{PropertyID: "prop-1", OwnershipPercentage: 20},
		{PropertyID: "prop-2", OwnershipPercentage: 80},
	})

	assembly, err := module.Handler.PlanAssemblyHandler(context.Background(), httptransport.PlanAssemblyRequest{
		Type:                    "extraordinary",
		Title:                   "Roof works approval",
		ConvocationDate:         "2026-06-02",
		AssemblyDate:            "2026-06-15",
		FirstCallTime:           "2026-06-15T18:00:00Z",
		SecondCallTime:          "2026-06-15T19:00:00Z",
		MinimumQuorumFirstCall:  70,
		MinimumQuorumSecondCall: 40,
	})
	if err != nil {
		t.Fatalf("plan assembly failed: %v", err)
	}
	if _, err := module.Handler.ConveneHandler(context.Background(), assembly.AssemblyID); err != nil {
		t.Fatalf("convene failed: %v", err)
	}

	clock.current = time.Date(2026, time.June, 15, 18, 15, 0, 0, time.UTC)
	if _, err := module.Handler.RegisterAttendanceHandler(context.Background(), assembly.AssemblyID, httptransport.RegisterAttendanceRequest{
		PropertyID: "prop-1",
		Status:     "present",
	}); err != nil {
		t.Fatalf("register attendance failed: %v", err)
	}

	_, err = module.Handler.StartSessionHandler(context.Background(), assembly.AssemblyID)
	if !errors.Is(err, domainerrors.ErrQuorumNotReached) {
		t.Fatalf("expected quorum rejection at first call, got %v", err)
	}

	// The lower second-call bar admits the same attendance.
	clock.current = time.Date(2026, time.June, 15, 19, 5, 0, 0, time.UTC)
	_, err = module.Handler.StartSessionHandler(context.Background(), assembly.AssemblyID)
	if !errors.Is(err, domainerrors.ErrQuorumNotReached) {
		t.Fatalf("expected quorum rejection below second call bar, got %v", err)
	}

	if _, err := module.Handler.RegisterAttendanceHandler(context.Background(), assembly.AssemblyID, httptransport.RegisterAttendanceRequest{
		PropertyID:  "prop-2",
		Status:      "represented",
		ProxyHolder: "member-secretary",
	}); err != nil {
		t.Fatalf("register proxy failed: %v", err)
	}
	started, err := module.Handler.StartSessionHandler(context.Background(), assembly.AssemblyID)
	if err != nil {
		t.Fatalf("start session failed: %v", err)
	}
	if started.Status != "in_session" {
		t.Fatalf("expected in_session status, got %s", started.Status)
	}
}
