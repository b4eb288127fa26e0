package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	votingengine "comunidad/contexts/governance/voting-engine"
	domainerrors "comunidad/contexts/governance/voting-engine/domain/errors"
	"comunidad/contexts/governance/voting-engine/ports"
	httptransport "comunidad/contexts/governance/voting-engine/transport/http"
	"comunidad/internal/shared/events"
)

func seedVotingFloor(module votingengine.Module) {
	module.Store.SetAssembly(ports.AssemblyProjection{
		AssemblyID: "assembly-1",
		Status:     "in_session",
		InSession:  true,
	})
	module.Store.SetAttendance("assembly-1", "prop-1", true)
	module.Store.SetAttendance("assembly-1", "prop-2", true)
	module.Store.SetAttendance("assembly-1", "prop-3", true)
	module.Store.SetOwnership("prop-1", 40)
	module.Store.SetOwnership("prop-2", 35)
	module.Store.SetOwnership("prop-3", 25)
	module.Store.SetCertifier("member-president", true)
}

func TestVotingSessionWeightedApproval(t *testing.T) {
	sink := &captureSink{}
	module := votingengine.NewInMemoryModule(sink, nil)
	seedVotingFloor(module)

	now := time.Now().UTC()
	session, err := module.Handler.CreateSessionHandler(context.Background(), httptransport.CreateSessionRequest{
		AssemblyID: "assembly-1",
		Motion:     "Approve reserve fund increase",
		VotingType: "simple",
		StartTime:  now.Add(-time.Hour).Format(time.RFC3339),
		EndTime:    now.Add(time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if _, err := module.Handler.OpenSessionHandler(context.Background(), session.SessionID); err != nil {
		t.Fatalf("open session failed: %v", err)
	}

	for propertyID, value := range map[string]string{
		"prop-1": "in_favor",
		"prop-2": "in_favor",
		"prop-3": "against",
	} {
		if _, err := module.Handler.CastVoteHandler(context.Background(), session.SessionID, httptransport.CastVoteRequest{
			PropertyID: propertyID,
			Value:      value,
		}); err != nil {
			t.Fatalf("cast vote for %s failed: %v", propertyID, err)
		}
	}

	_, err = module.Handler.CastVoteHandler(context.Background(), session.SessionID, httptransport.CastVoteRequest{
		PropertyID: "prop-1",
		Value:      "against",
	})
	if !errors.Is(err, domainerrors.ErrDoubleVote) {
		t.Fatalf("expected double vote rejection, got %v", err)
	}

	closed, err := module.Handler.CloseSessionHandler(context.Background(), session.SessionID, httptransport.CloseSessionRequest{
		CertifiedBy: "member-president",
	})
	if err != nil {
		t.Fatalf("close session failed: %v", err)
	}
	if closed.Result != "approved" {
		t.Fatalf("expected approved result, got %q", closed.Result)
	}
	if closed.Totals.PercentInFavor != 75 {
		t.Fatalf("expected 75%% in favor, got %f", closed.Totals.PercentInFavor)
	}

	submitted, err := module.Handler.SubmitSessionHandler(context.Background(), session.SessionID, httptransport.SubmitSessionRequest{
		ActorID: "member-president",
	})
	if err != nil {
		t.Fatalf("submit session failed: %v", err)
	}
	if submitted.Status != "submitted" {
		t.Fatalf("expected submitted status, got %s", submitted.Status)
	}

	results := 0
	for _, notification := range sink.Emitted() {
		if notification.Kind == events.KindVoteResult {
			results++
		}
	}
	if results != 1 {
		t.Fatalf("expected one vote-result notification, got %d", results)
	}
}

func TestVotingRejectsIneligibleVoterAndDraftCasting(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	seedVotingFloor(module)
	module.Store.SetAttendance("assembly-1", "prop-9", false)
	module.Store.SetOwnership("prop-9", 10)

	now := time.Now().UTC()
	session, err := module.Handler.CreateSessionHandler(context.Background(), httptransport.CreateSessionRequest{
		AssemblyID: "assembly-1",
		Motion:     "Approve garden remodel",
		VotingType: "qualified",
		StartTime:  now.Add(-time.Hour).Format(time.RFC3339),
		EndTime:    now.Add(time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	_, err = module.Handler.CastVoteHandler(context.Background(), session.SessionID, httptransport.CastVoteRequest{
		PropertyID: "prop-1",
		Value:      "in_favor",
	})
	if !errors.Is(err, domainerrors.ErrSessionNotOpen) {
		t.Fatalf("expected draft session rejection, got %v", err)
	}

	if _, err := module.Handler.OpenSessionHandler(context.Background(), session.SessionID); err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	_, err = module.Handler.CastVoteHandler(context.Background(), session.SessionID, httptransport.CastVoteRequest{
		PropertyID: "prop-9",
		Value:      "in_favor",
	})
	if !errors.Is(err, domainerrors.ErrNotEligible) {
		t.Fatalf("expected eligibility rejection, got %v", err)
	}
}
