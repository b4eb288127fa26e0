package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"comunidad/contexts/governance/poll-engine/adapters/memory"
	"comunidad/contexts/governance/poll-engine/domain/entities"
	domainerrors "comunidad/contexts/governance/poll-engine/domain/errors"
	"comunidad/internal/shared/events"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

var pollDay = time.Date(2026, time.November, 10, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*memory.Store, Service) {
	t.Helper()
	store := memory.NewStore()
	store.SetOwners("member-1", "member-2", "member-3", "member-4")
	store.SetCommitteeMembers("member-1", "member-2")
	store.SetResidentOwners("member-1", "member-3")
	service := Service{
		Polls:    store,
		Audience: store,
		Sink:     store,
		Dedup:    store,
		Clock:    fixedClock{at: pollDay},
		IDGen:    store,
	}
	return store, service
}

func createOpenPoll(t *testing.T, service Service, audience entities.Audience) entities.Poll {
	t.Helper()
	poll, err := service.Create(context.Background(), CreatePollCommand{
		Title:        "Paint the lobby",
		Audience:     audience,
		OptionLabels: []string{"White", "Sand", "Gray"},
		StartDate:    pollDay.AddDate(0, 0, -1),
		EndDate:      pollDay.AddDate(0, 0, 5),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	opened, err := service.Open(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return opened
}

func TestCreateValidatesOptions(t *testing.T) {
	_, service := newFixture(t)
	_, err := service.Create(context.Background(), CreatePollCommand{
		Title:        "One option",
		Audience:     entities.AudienceAllOwners,
		OptionLabels: []string{"Yes"},
		StartDate:    pollDay,
		EndDate:      pollDay,
	})
	if !errors.Is(err, domainerrors.ErrOptionsInsufficient) {
		t.Fatalf("expected ErrOptionsInsufficient, got %v", err)
	}

	_, err = service.Create(context.Background(), CreatePollCommand{
		Title:        "Dupes",
		Audience:     entities.AudienceAllOwners,
		OptionLabels: []string{"Yes", " yes "},
		StartDate:    pollDay,
		EndDate:      pollDay,
	})
	if !errors.Is(err, domainerrors.ErrOptionsDuplicate) {
		t.Fatalf("expected ErrOptionsDuplicate, got %v", err)
	}

	_, err = service.Create(context.Background(), CreatePollCommand{
		Title:        "Inverted window",
		Audience:     entities.AudienceAllOwners,
		OptionLabels: []string{"Yes", "No"},
		StartDate:    pollDay,
		EndDate:      pollDay.AddDate(0, 0, -1),
	})
	if !errors.Is(err, domainerrors.ErrInvalidPollInput) {
		t.Fatalf("expected ErrInvalidPollInput, got %v", err)
	}
}

func TestOpenSnapshotsAudience(t *testing.T) {
	_, service := newFixture(t)
	poll := createOpenPoll(t, service, entities.AudienceResidentOwners)
	if poll.EligibleVoterCount != 2 {
		t.Fatalf("expected 2 eligible resident owners, got %d", poll.EligibleVoterCount)
	}
	if !poll.Eligible("member-3") || poll.Eligible("member-2") {
		t.Fatalf("unexpected eligibility snapshot: %v", poll.EligibleVoterIDs)
	}
}

func TestSubmitResponseRejections(t *testing.T) {
	_, service := newFixture(t)
	poll := createOpenPoll(t, service, entities.AudienceCommitteeOnly)
	option := poll.Options[0].OptionID

	if _, err := service.SubmitResponse(context.Background(), SubmitResponseCommand{
		PollID:       poll.PollID,
		RespondentID: "member-3",
		OptionID:     option,
	}); !errors.Is(err, domainerrors.ErrAudienceMismatch) {
		t.Fatalf("expected ErrAudienceMismatch, got %v", err)
	}

	if _, err := service.SubmitResponse(context.Background(), SubmitResponseCommand{
		PollID:       poll.PollID,
		RespondentID: "member-1",
		OptionID:     "no-such-option",
	}); !errors.Is(err, domainerrors.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}

	if _, err := service.SubmitResponse(context.Background(), SubmitResponseCommand{
		PollID:       poll.PollID,
		RespondentID: "member-1",
		OptionID:     option,
	}); err != nil {
		t.Fatalf("first response: %v", err)
	}
	if _, err := service.SubmitResponse(context.Background(), SubmitResponseCommand{
		PollID:       poll.PollID,
		RespondentID: "member-1",
		OptionID:     option,
	}); !errors.Is(err, domainerrors.ErrDuplicateResponse) {
		t.Fatalf("expected ErrDuplicateResponse, got %v", err)
	}
}

func TestSubmitResponseRespectsWindow(t *testing.T) {
	store, _ := newFixture(t)
	late := Service{
		Polls:    store,
		Audience: store,
		Clock:    fixedClock{at: pollDay},
		IDGen:    store,
	}
	poll, err := late.Create(context.Background(), CreatePollCommand{
		Title:        "Future poll",
		Audience:     entities.AudienceAllOwners,
		OptionLabels: []string{"Yes", "No"},
		StartDate:    pollDay.AddDate(0, 0, 3),
		EndDate:      pollDay.AddDate(0, 0, 6),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := late.Open(context.Background(), poll.PollID); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := late.SubmitResponse(context.Background(), SubmitResponseCommand{
		PollID:       poll.PollID,
		RespondentID: "member-1",
		OptionID:     poll.Options[0].OptionID,
	}); !errors.Is(err, domainerrors.ErrOutsideWindow) {
		t.Fatalf("expected ErrOutsideWindow, got %v", err)
	}
}

func TestSubmitResponseRequiresOpenPoll(t *testing.T) {
	_, service := newFixture(t)
	poll, err := service.Create(context.Background(), CreatePollCommand{
		Title:        "Still draft",
		Audience:     entities.AudienceAllOwners,
		OptionLabels: []string{"Yes", "No"},
		StartDate:    pollDay,
		EndDate:      pollDay.AddDate(0, 0, 2),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := service.SubmitResponse(context.Background(), SubmitResponseCommand{
		PollID:       poll.PollID,
		RespondentID: "member-1",
		OptionID:     poll.Options[0].OptionID,
	}); !errors.Is(err, domainerrors.ErrPollNotOpen) {
		t.Fatalf("expected ErrPollNotOpen, got %v", err)
	}
}

func TestCloseFinalizesResultsAndNotifies(t *testing.T) {
	store, service := newFixture(t)
	poll := createOpenPoll(t, service, entities.AudienceAllOwners)

	votes := map[string]int{"member-1": 0, "member-2": 0, "member-3": 1}
	for respondent, optionIdx := range votes {
		if _, err := service.SubmitResponse(context.Background(), SubmitResponseCommand{
			PollID:       poll.PollID,
			RespondentID: respondent,
			OptionID:     poll.Options[optionIdx].OptionID,
		}); err != nil {
			t.Fatalf("response %s: %v", respondent, err)
		}
	}

	closed, results, err := service.Close(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != entities.StatusClosed {
		t.Fatalf("expected closed, got %s", closed.Status)
	}
	if results.ParticipationRate != 75 {
		t.Fatalf("expected participation 75, got %.2f", results.ParticipationRate)
	}
	if results.Tie || len(results.WinnerOptionIDs) != 1 || results.WinnerOptionIDs[0] != poll.Options[0].OptionID {
		t.Fatalf("expected single winner %s, got %v (tie=%v)", poll.Options[0].OptionID, results.WinnerOptionIDs, results.Tie)
	}
	if results.Totals[0].Responses != 2 || results.Totals[1].Responses != 1 {
		t.Fatalf("unexpected tallies: %+v", results.Totals)
	}

	emitted := store.Emitted()
	if len(emitted) != 1 || emitted[0].Kind != events.KindPollResult {
		t.Fatalf("expected one poll-result notification, got %+v", emitted)
	}

	if _, _, err := service.Close(context.Background(), poll.PollID); !errors.Is(err, domainerrors.ErrTerminalState) {
		t.Fatalf("expected ErrTerminalState on second close, got %v", err)
	}
}

func TestCloseReportsTies(t *testing.T) {
	_, service := newFixture(t)
	poll := createOpenPoll(t, service, entities.AudienceAllOwners)

	for respondent, optionIdx := range map[string]int{"member-1": 0, "member-2": 1} {
		if _, err := service.SubmitResponse(context.Background(), SubmitResponseCommand{
			PollID:       poll.PollID,
			RespondentID: respondent,
			OptionID:     poll.Options[optionIdx].OptionID,
		}); err != nil {
			t.Fatalf("response %s: %v", respondent, err)
		}
	}
	_, results, err := service.Close(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if !results.Tie || len(results.WinnerOptionIDs) != 2 {
		t.Fatalf("expected a reported tie between two options, got %v", results.WinnerOptionIDs)
	}
}

func TestSpecificGroupAudienceUsesGroupList(t *testing.T) {
	_, service := newFixture(t)
	poll, err := service.Create(context.Background(), CreatePollCommand{
		Title:          "Garage users only",
		Audience:       entities.AudienceSpecificGroup,
		GroupMemberIDs: []string{"member-2", "member-4"},
		OptionLabels:   []string{"Keep", "Repaint"},
		StartDate:      pollDay.AddDate(0, 0, -1),
		EndDate:        pollDay.AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	opened, err := service.Open(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened.EligibleVoterCount != 2 || !opened.Eligible("member-4") || opened.Eligible("member-1") {
		t.Fatalf("unexpected group snapshot: %v", opened.EligibleVoterIDs)
	}
}
