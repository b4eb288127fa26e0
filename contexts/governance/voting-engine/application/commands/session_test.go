package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"comunidad/contexts/governance/voting-engine/adapters/memory"
	"comunidad/contexts/governance/voting-engine/domain/entities"
	domainerrors "comunidad/contexts/governance/voting-engine/domain/errors"
	"comunidad/contexts/governance/voting-engine/ports"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newFixture(t *testing.T, at time.Time) (*memory.Store, SessionUseCase, CastVoteUseCase) {
	t.Helper()
	store := memory.NewStore()
	store.SetAssembly(ports.AssemblyProjection{AssemblyID: "asm-1", Status: "in_session", InSession: true})
	store.SetCertifier("president-1", true)
	clock := fixedClock{at: at}
	sessions := SessionUseCase{
		Sessions:   store,
		Votes:      store,
		Assemblies: store,
		Certifiers: store,
		Clock:      clock,
		IDGen:      store,
	}
	casting := CastVoteUseCase{
		Sessions:   store,
		Votes:      store,
		Assemblies: store,
		Properties: store,
		Clock:      clock,
		IDGen:      store,
	}
	return store, sessions, casting
}

func openSession(t *testing.T, store *memory.Store, sessions SessionUseCase, at time.Time, votingType entities.VotingType, custom float64) entities.VotingSession {
	t.Helper()
	session, err := sessions.CreateSession(context.Background(), CreateSessionCommand{
		AssemblyID:       "asm-1",
		Motion:           "approve annual budget",
		Type:             votingType,
		CustomPercentage: custom,
		StartTime:        at.Add(-time.Hour),
		EndTime:          at.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	session, err = sessions.OpenSession(context.Background(), session.SessionID)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return session
}

func seedVoter(store *memory.Store, propertyID string, power float64) {
	store.SetAttendance("asm-1", propertyID, true)
	store.SetOwnership(propertyID, power)
}

func TestCastVoteRejectsClosedAndDraftSessions(t *testing.T) {
	at := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	store, sessions, casting := newFixture(t, at)
	seedVoter(store, "apt-101", 40)

	draft, err := sessions.CreateSession(context.Background(), CreateSessionCommand{
		AssemblyID: "asm-1",
		Motion:     "approve annual budget",
		Type:       entities.VotingSimple,
		StartTime:  at.Add(-time.Hour),
		EndTime:    at.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := casting.CastVote(context.Background(), CastVoteCommand{
		SessionID:  draft.SessionID,
		PropertyID: "apt-101",
		Value:      entities.VoteInFavor,
	}); !errors.Is(err, domainerrors.ErrSessionNotOpen) {
		t.Fatalf("expected ErrSessionNotOpen on draft, got %v", err)
	}
}

func TestCastVoteRejectsIneligibleVoter(t *testing.T) {
	at := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	store, sessions, casting := newFixture(t, at)
	session := openSession(t, store, sessions, at, entities.VotingSimple, 0)
	store.SetOwnership("apt-404", 10)

	_, err := casting.CastVote(context.Background(), CastVoteCommand{
		SessionID:  session.SessionID,
		PropertyID: "apt-404",
		Value:      entities.VoteInFavor,
	})
	if !errors.Is(err, domainerrors.ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible, got %v", err)
	}
}

func TestCastVoteRejectsSecondBallot(t *testing.T) {
	at := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	store, sessions, casting := newFixture(t, at)
	session := openSession(t, store, sessions, at, entities.VotingSimple, 0)
	seedVoter(store, "apt-101", 40)

	if _, err := casting.CastVote(context.Background(), CastVoteCommand{
		SessionID:  session.SessionID,
		PropertyID: "apt-101",
		Value:      entities.VoteInFavor,
	}); err != nil {
		t.Fatalf("first cast: %v", err)
	}
	_, err := casting.CastVote(context.Background(), CastVoteCommand{
		SessionID:  session.SessionID,
		PropertyID: "apt-101",
		Value:      entities.VoteAgainst,
	})
	if !errors.Is(err, domainerrors.ErrDoubleVote) {
		t.Fatalf("expected ErrDoubleVote, got %v", err)
	}

	votes, err := store.ListVotesBySession(context.Background(), session.SessionID)
	if err != nil {
		t.Fatalf("list votes: %v", err)
	}
	if len(votes) != 1 || votes[0].Value != entities.VoteInFavor {
		t.Fatalf("expected the first ballot to stand, got %+v", votes)
	}
}

func TestCastVoteFreezesOwnershipPower(t *testing.T) {
	at := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	store, sessions, casting := newFixture(t, at)
	session := openSession(t, store, sessions, at, entities.VotingSimple, 0)
	seedVoter(store, "apt-101", 40)

	vote, err := casting.CastVote(context.Background(), CastVoteCommand{
		SessionID:  session.SessionID,
		PropertyID: "apt-101",
		Value:      entities.VoteInFavor,
	})
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if vote.Power != 40 {
		t.Fatalf("expected power 40, got %v", vote.Power)
	}
	if vote.Signature == "" {
		t.Fatalf("expected identified vote to carry a signature")
	}
}

func TestAnonymousSessionOmitsSignature(t *testing.T) {
	at := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	store, sessions, casting := newFixture(t, at)
	seedVoter(store, "apt-101", 40)

	session, err := sessions.CreateSession(context.Background(), CreateSessionCommand{
		AssemblyID: "asm-1",
		Motion:     "board confidence question",
		Type:       entities.VotingSimple,
		Anonymous:  true,
		StartTime:  at.Add(-time.Hour),
		EndTime:    at.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session, err = sessions.OpenSession(context.Background(), session.SessionID); err != nil {
		t.Fatalf("open session: %v", err)
	}
	vote, err := casting.CastVote(context.Background(), CastVoteCommand{
		SessionID:  session.SessionID,
		PropertyID: "apt-101",
		Value:      entities.VoteAgainst,
	})
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if vote.Signature != "" {
		t.Fatalf("expected anonymous ballot without signature, got %s", vote.Signature)
	}
}

func TestCloseSessionComputesWeightedResult(t *testing.T) {
	at := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	store, sessions, casting := newFixture(t, at)
	session := openSession(t, store, sessions, at, entities.VotingSimple, 0)
	seedVoter(store, "apt-101", 40)
	seedVoter(store, "apt-102", 35)
	seedVoter(store, "apt-103", 25)

	for property, value := range map[string]entities.VoteValue{
		"apt-101": entities.VoteInFavor,
		"apt-102": entities.VoteInFavor,
		"apt-103": entities.VoteAgainst,
	} {
		if _, err := casting.CastVote(context.Background(), CastVoteCommand{
			SessionID:  session.SessionID,
			PropertyID: property,
			Value:      value,
		}); err != nil {
			t.Fatalf("cast %s: %v", property, err)
		}
	}

	closed, err := sessions.CloseSession(context.Background(), CloseSessionCommand{
		SessionID:   session.SessionID,
		CertifiedBy: "president-1",
	})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Result == nil || *closed.Result != entities.ResultApproved {
		t.Fatalf("expected approved, got %+v", closed.Result)
	}
	if closed.Totals.PercentInFavor != 75 {
		t.Fatalf("expected 75%% in favor, got %v", closed.Totals.PercentInFavor)
	}
	if closed.Status != entities.SessionClosed {
		t.Fatalf("expected closed status, got %s", closed.Status)
	}
}

func TestCloseSessionTie(t *testing.T) {
	at := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	store, sessions, casting := newFixture(t, at)
	session := openSession(t, store, sessions, at, entities.VotingSimple, 0)
	seedVoter(store, "apt-101", 30)
	seedVoter(store, "apt-102", 30)

	for property, value := range map[string]entities.VoteValue{
		"apt-101": entities.VoteInFavor,
		"apt-102": entities.VoteAgainst,
	} {
		if _, err := casting.CastVote(context.Background(), CastVoteCommand{
			SessionID:  session.SessionID,
			PropertyID: property,
			Value:      value,
		}); err != nil {
			t.Fatalf("cast %s: %v", property, err)
		}
	}
	closed, err := sessions.CloseSession(context.Background(), CloseSessionCommand{
		SessionID:   session.SessionID,
		CertifiedBy: "president-1",
	})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Result == nil || *closed.Result != entities.ResultTie {
		t.Fatalf("expected tie, got %+v", closed.Result)
	}
}

func TestSubmitSessionRequiresCertifier(t *testing.T) {
	at := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	store, sessions, casting := newFixture(t, at)
	session := openSession(t, store, sessions, at, entities.VotingSimple, 0)
	seedVoter(store, "apt-101", 40)
	if _, err := casting.CastVote(context.Background(), CastVoteCommand{
		SessionID:  session.SessionID,
		PropertyID: "apt-101",
		Value:      entities.VoteInFavor,
	}); err != nil {
		t.Fatalf("cast: %v", err)
	}
	if _, err := sessions.CloseSession(context.Background(), CloseSessionCommand{
		SessionID:   session.SessionID,
		CertifiedBy: "president-1",
	}); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := sessions.SubmitSession(context.Background(), SubmitSessionCommand{
		SessionID: session.SessionID,
		ActorID:   "random-member",
	}); !errors.Is(err, domainerrors.ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible for non-certifier, got %v", err)
	}

	submitted, err := sessions.SubmitSession(context.Background(), SubmitSessionCommand{
		SessionID: session.SessionID,
		ActorID:   "president-1",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Status != entities.SessionSubmitted {
		t.Fatalf("expected submitted, got %s", submitted.Status)
	}
}

func TestSubmitSessionDetectsTamperedBallot(t *testing.T) {
	at := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	store, sessions, casting := newFixture(t, at)
	session := openSession(t, store, sessions, at, entities.VotingSimple, 0)
	seedVoter(store, "apt-101", 40)

	vote, err := casting.CastVote(context.Background(), CastVoteCommand{
		SessionID:  session.SessionID,
		PropertyID: "apt-101",
		Value:      entities.VoteInFavor,
	})
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if _, err := sessions.CloseSession(context.Background(), CloseSessionCommand{
		SessionID:   session.SessionID,
		CertifiedBy: "president-1",
	}); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Flip the recorded value behind the repository's back; the stored
	// signature no longer matches.
	store.TamperVote(session.SessionID, vote.PropertyID, entities.VoteAgainst)

	_, err = sessions.SubmitSession(context.Background(), SubmitSessionCommand{
		SessionID: session.SessionID,
		ActorID:   "president-1",
	})
	if !errors.Is(err, domainerrors.ErrIntegrityBroken) {
		t.Fatalf("expected ErrIntegrityBroken, got %v", err)
	}
}

func TestOpenSessionRequiresAssemblyInSession(t *testing.T) {
	at := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	store, sessions, _ := newFixture(t, at)
	store.SetAssembly(ports.AssemblyProjection{AssemblyID: "asm-1", Status: "convened", InSession: false})

	session, err := sessions.CreateSession(context.Background(), CreateSessionCommand{
		AssemblyID: "asm-1",
		Motion:     "approve annual budget",
		Type:       entities.VotingSimple,
		StartTime:  at.Add(-time.Hour),
		EndTime:    at.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := sessions.OpenSession(context.Background(), session.SessionID); !errors.Is(err, domainerrors.ErrAssemblyUnavailable) {
		t.Fatalf("expected ErrAssemblyUnavailable, got %v", err)
	}
}
