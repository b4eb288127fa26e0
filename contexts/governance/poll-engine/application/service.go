package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"comunidad/contexts/governance/poll-engine/domain/entities"
	domainerrors "comunidad/contexts/governance/poll-engine/domain/errors"
	"comunidad/contexts/governance/poll-engine/ports"
	"comunidad/internal/shared/events"
)

// CreatePollCommand is the write-model input for poll creation.
type CreatePollCommand struct {
	Title          string
	Description    string
	Audience       entities.Audience
	GroupMemberIDs []string
	OptionLabels   []string
	StartDate      time.Time
	EndDate        time.Time
	Anonymous      bool
	CreatedBy      string
}

// SubmitResponseCommand records one respondent's answer.
type SubmitResponseCommand struct {
	PollID       string
	RespondentID string
	OptionID     string
	Comment      string
}

// Service orchestrates the poll lifecycle: creation, opening with an
// audience snapshot, response intake, and closure with finalized results.
type Service struct {
	Polls    ports.PollRepository
	Audience ports.AudienceDirectory
	Sink     ports.NotificationSink
	Dedup    ports.NotificationDedup
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// Create validates and stores a draft poll. Options must be at least two
// and pairwise distinct; specific-group polls carry their member list.
func (s Service) Create(ctx context.Context, cmd CreatePollCommand) (entities.Poll, error) {
	logger := ResolveLogger(s.Logger)
	title := strings.TrimSpace(cmd.Title)
	if title == "" || !cmd.Audience.Valid() {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}
	if cmd.EndDate.Before(cmd.StartDate) {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}
	if cmd.Audience == entities.AudienceSpecificGroup && len(cmd.GroupMemberIDs) == 0 {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}

	labels := make([]string, 0, len(cmd.OptionLabels))
	for _, label := range cmd.OptionLabels {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}
	if len(labels) < 2 {
		return entities.Poll{}, domainerrors.ErrOptionsInsufficient
	}
	if !entities.DistinctLabels(labels) {
		return entities.Poll{}, domainerrors.ErrOptionsDuplicate
	}

	pollID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Poll{}, err
	}
	now := s.now()
	poll := entities.Poll{
		PollID:         pollID,
		Title:          title,
		Description:    strings.TrimSpace(cmd.Description),
		Audience:       cmd.Audience,
		GroupMemberIDs: dedupeIDs(cmd.GroupMemberIDs),
		StartDate:      cmd.StartDate.UTC(),
		EndDate:        cmd.EndDate.UTC(),
		Anonymous:      cmd.Anonymous,
		Status:         entities.StatusDraft,
		CreatedBy:      strings.TrimSpace(cmd.CreatedBy),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, label := range labels {
		optionID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return entities.Poll{}, err
		}
		poll.Options = append(poll.Options, entities.Option{OptionID: optionID, Label: label})
	}
	if err := s.Polls.SavePoll(ctx, poll); err != nil {
		return entities.Poll{}, err
	}
	logger.Info("poll created",
		"event", "poll_created",
		"module", "governance/poll-engine",
		"layer", "application",
		"poll_id", poll.PollID,
		"audience", string(poll.Audience),
		"options", len(poll.Options),
	)
	return poll, nil
}

// Open moves a draft poll to open and snapshots the eligible audience, so
// later membership changes do not shift the participation denominator.
func (s Service) Open(ctx context.Context, pollID string) (entities.Poll, error) {
	logger := ResolveLogger(s.Logger)
	poll, err := s.Polls.GetPoll(ctx, strings.TrimSpace(pollID))
	if err != nil {
		return entities.Poll{}, err
	}
	if poll.Terminal() {
		return entities.Poll{}, domainerrors.ErrTerminalState
	}
	if poll.Status != entities.StatusDraft {
		return entities.Poll{}, domainerrors.ErrInvalidTransition
	}

	eligible, err := s.resolveAudience(ctx, poll)
	if err != nil {
		return entities.Poll{}, err
	}
	poll.EligibleVoterIDs = eligible
	poll.EligibleVoterCount = len(eligible)
	poll.Status = entities.StatusOpen
	poll.UpdatedAt = s.now()
	if err := s.Polls.SavePoll(ctx, poll); err != nil {
		return entities.Poll{}, err
	}
	logger.Info("poll opened",
		"event", "poll_opened",
		"module", "governance/poll-engine",
		"layer", "application",
		"poll_id", poll.PollID,
		"eligible", poll.EligibleVoterCount,
	)
	return poll, nil
}

// SubmitResponse records one answer. Rejections: poll not open, outside the
// date window, respondent outside the audience snapshot, unknown option, or
// a duplicate response.
func (s Service) SubmitResponse(ctx context.Context, cmd SubmitResponseCommand) (entities.Poll, error) {
	respondentID := strings.TrimSpace(cmd.RespondentID)
	if respondentID == "" {
		return entities.Poll{}, domainerrors.ErrInvalidPollInput
	}
	poll, err := s.Polls.GetPoll(ctx, strings.TrimSpace(cmd.PollID))
	if err != nil {
		return entities.Poll{}, err
	}
	if poll.Status != entities.StatusOpen {
		return entities.Poll{}, domainerrors.ErrPollNotOpen
	}
	now := s.now()
	if !poll.InWindow(now) {
		return entities.Poll{}, domainerrors.ErrOutsideWindow
	}
	if !poll.Eligible(respondentID) {
		return entities.Poll{}, domainerrors.ErrAudienceMismatch
	}
	if poll.OptionIndex(strings.TrimSpace(cmd.OptionID)) < 0 {
		return entities.Poll{}, domainerrors.ErrUnknownOption
	}
	if poll.HasResponded(respondentID) {
		return entities.Poll{}, domainerrors.ErrDuplicateResponse
	}

	responseID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Poll{}, err
	}
	poll.Responses = append(poll.Responses, entities.Response{
		ResponseID:   responseID,
		RespondentID: respondentID,
		OptionID:     strings.TrimSpace(cmd.OptionID),
		Comment:      strings.TrimSpace(cmd.Comment),
		SubmittedAt:  now,
	})
	poll.UpdatedAt = now
	if err := s.Polls.SavePoll(ctx, poll); err != nil {
		return entities.Poll{}, err
	}
	return poll, nil
}

// Close finalizes an open poll: participation rate against the audience
// snapshot, per-option shares, and winner(s) with explicit tie reporting.
// The result notification is best-effort.
func (s Service) Close(ctx context.Context, pollID string) (entities.Poll, entities.Results, error) {
	logger := ResolveLogger(s.Logger)
	poll, err := s.Polls.GetPoll(ctx, strings.TrimSpace(pollID))
	if err != nil {
		return entities.Poll{}, entities.Results{}, err
	}
	if poll.Terminal() {
		return entities.Poll{}, entities.Results{}, domainerrors.ErrTerminalState
	}
	if poll.Status != entities.StatusOpen {
		return entities.Poll{}, entities.Results{}, domainerrors.ErrPollNotOpen
	}

	now := s.now()
	results := entities.ComputeResults(poll)
	poll.Status = entities.StatusClosed
	poll.ParticipationRate = results.ParticipationRate
	poll.ClosedAt = &now
	poll.UpdatedAt = now
	if err := s.Polls.SavePoll(ctx, poll); err != nil {
		return entities.Poll{}, entities.Results{}, err
	}
	logger.Info("poll closed",
		"event", "poll_closed",
		"module", "governance/poll-engine",
		"layer", "application",
		"poll_id", poll.PollID,
		"responses", results.TotalResponses,
		"participation_rate", results.ParticipationRate,
		"tie", results.Tie,
	)
	s.notifyResult(ctx, poll, results, now)
	return poll, results, nil
}

// Cancel voids a poll before or during its window.
func (s Service) Cancel(ctx context.Context, pollID string) (entities.Poll, error) {
	poll, err := s.Polls.GetPoll(ctx, strings.TrimSpace(pollID))
	if err != nil {
		return entities.Poll{}, err
	}
	if poll.Terminal() {
		return entities.Poll{}, domainerrors.ErrTerminalState
	}
	poll.Status = entities.StatusCancelled
	poll.UpdatedAt = s.now()
	if err := s.Polls.SavePoll(ctx, poll); err != nil {
		return entities.Poll{}, err
	}
	return poll, nil
}

// Get returns one poll.
func (s Service) Get(ctx context.Context, pollID string) (entities.Poll, error) {
	return s.Polls.GetPoll(ctx, strings.TrimSpace(pollID))
}

// List returns all polls.
func (s Service) List(ctx context.Context) ([]entities.Poll, error) {
	return s.Polls.ListPolls(ctx)
}

// Results recomputes the read model for a poll in any state.
func (s Service) Results(ctx context.Context, pollID string) (entities.Results, error) {
	poll, err := s.Polls.GetPoll(ctx, strings.TrimSpace(pollID))
	if err != nil {
		return entities.Results{}, err
	}
	return entities.ComputeResults(poll), nil
}

func (s Service) resolveAudience(ctx context.Context, poll entities.Poll) ([]string, error) {
	if poll.Audience == entities.AudienceSpecificGroup {
		return poll.GroupMemberIDs, nil
	}
	if s.Audience == nil {
		return nil, domainerrors.ErrAudienceUnresolvable
	}
	switch poll.Audience {
	case entities.AudienceCommitteeOnly:
		return s.Audience.CommitteeMemberIDs(ctx)
	case entities.AudienceResidentOwners:
		return s.Audience.ResidentOwnerIDs(ctx)
	default:
		return s.Audience.OwnerIDs(ctx)
	}
}

func (s Service) notifyResult(ctx context.Context, poll entities.Poll, results entities.Results, now time.Time) {
	if s.Sink == nil {
		return
	}
	logger := ResolveLogger(s.Logger)
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		logger.Warn("poll result notification skipped",
			"event", "poll_result_skipped",
			"module", "governance/poll-engine",
			"layer", "application",
			"poll_id", poll.PollID,
			"error", err.Error(),
		)
		return
	}
	notification := events.Notification{
		EventID:       eventID,
		Kind:          events.KindPollResult,
		SubjectID:     poll.PollID,
		Recipients:    poll.EligibleVoterIDs,
		OccurredAtUTC: now,
		Payload: map[string]any{
			"title":              poll.Title,
			"total_responses":    results.TotalResponses,
			"participation_rate": results.ParticipationRate,
			"winner_option_ids":  results.WinnerOptionIDs,
			"tie":                results.Tie,
		},
	}
	if s.Dedup != nil {
		already, err := s.Dedup.Reserve(ctx, notification.DedupKey(), now.Add(48*time.Hour))
		if err != nil || already {
			return
		}
	}
	if err := s.Sink.Emit(ctx, notification); err != nil {
		logger.Warn("poll result notification failed",
			"event", "poll_result_failed",
			"module", "governance/poll-engine",
			"layer", "application",
			"poll_id", poll.PollID,
			"error", err.Error(),
		)
	}
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	return out
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}
