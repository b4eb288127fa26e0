package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "comunidad/contexts/governance/voting-engine/application"
	"comunidad/contexts/governance/voting-engine/domain/entities"
	domainerrors "comunidad/contexts/governance/voting-engine/domain/errors"
	"comunidad/contexts/governance/voting-engine/ports"
)

// CastVoteCommand is the write-model input for ballot casting.
type CastVoteCommand struct {
	SessionID  string
	PropertyID string
	Value      entities.VoteValue
	Method     entities.VoteMethod
	IPAddress  string
}

// CastVoteUseCase records weighted ballots. Eligibility comes from the
// assembly quorum snapshot; voting power comes from the property registry at
// cast time and is frozen on the ballot.
type CastVoteUseCase struct {
	Sessions   ports.SessionRepository
	Votes      ports.VoteRepository
	Assemblies ports.AssemblyDirectory
	Properties ports.PropertyDirectory
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// CastVote appends one ballot and refreshes the session's denormalized tally.
// The one-ballot-per-property rule is enforced twice: a fast pre-check here
// and a uniqueness guarantee inside the vote repository's append.
func (uc CastVoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (entities.Vote, error) {
	logger := application.ResolveLogger(uc.Logger)
	sessionID := strings.TrimSpace(cmd.SessionID)
	propertyID := strings.TrimSpace(cmd.PropertyID)
	if sessionID == "" || propertyID == "" || !cmd.Value.Valid() {
		logger.Warn("vote cast validation failed",
			"event", "voting_cast_validation_failed",
			"module", "governance/voting-engine",
			"layer", "application",
			"session_id", sessionID,
			"property_id", propertyID,
		)
		return entities.Vote{}, domainerrors.ErrInvalidSessionInput
	}

	session, err := uc.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return entities.Vote{}, err
	}
	now := uc.now()
	if session.Status != entities.SessionOpen {
		return entities.Vote{}, domainerrors.ErrSessionNotOpen
	}
	if now.Before(session.StartTime) || now.After(session.EndTime) {
		return entities.Vote{}, domainerrors.ErrSessionNotOpen
	}

	eligible, err := uc.Assemblies.AttendanceEligible(ctx, session.AssemblyID, propertyID)
	if err != nil {
		return entities.Vote{}, err
	}
	if !eligible {
		logger.Warn("vote cast rejected for ineligible voter",
			"event", "voting_cast_not_eligible",
			"module", "governance/voting-engine",
			"layer", "application",
			"session_id", sessionID,
			"property_id", propertyID,
		)
		return entities.Vote{}, domainerrors.ErrNotEligible
	}
	if _, found, err := uc.Votes.GetVoteByVoter(ctx, sessionID, propertyID); err != nil {
		return entities.Vote{}, err
	} else if found {
		return entities.Vote{}, domainerrors.ErrDoubleVote
	}

	power, err := uc.Properties.OwnershipPercentage(ctx, propertyID)
	if err != nil {
		return entities.Vote{}, err
	}
	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Vote{}, err
	}
	vote := entities.Vote{
		VoteID:     voteID,
		SessionID:  sessionID,
		PropertyID: propertyID,
		Value:      cmd.Value,
		Power:      power,
		CastAt:     now,
		Method:     uc.resolveMethod(cmd.Method),
		IPAddress:  strings.TrimSpace(cmd.IPAddress),
	}
	if !session.Anonymous {
		vote.Signature = entities.SignVote(vote.PropertyID, vote.Value, vote.CastAt, session.AssemblyID, session.Motion)
	}
	if err := uc.Votes.AppendVote(ctx, vote); err != nil {
		return entities.Vote{}, err
	}

	// The tally save is best-effort consistent with the ballot log; close
	// recomputes from the log so a lost update here never skews the result.
	votes, err := uc.Votes.ListVotesBySession(ctx, sessionID)
	if err == nil {
		session.Totals = entities.ComputeTotals(votes)
		session.UpdatedAt = now
		if saveErr := uc.Sessions.SaveSession(ctx, session); saveErr != nil {
			logger.Warn("session tally refresh failed",
				"event", "voting_tally_refresh_failed",
				"module", "governance/voting-engine",
				"layer", "application",
				"session_id", sessionID,
				"error", saveErr.Error(),
			)
		}
	}

	logger.Info("vote cast",
		"event", "voting_vote_cast",
		"module", "governance/voting-engine",
		"layer", "application",
		"session_id", sessionID,
		"property_id", propertyID,
		"value", string(vote.Value),
		"power", vote.Power,
		"method", string(vote.Method),
	)
	return vote, nil
}

func (uc CastVoteUseCase) resolveMethod(method entities.VoteMethod) entities.VoteMethod {
	switch method {
	case entities.MethodDigital, entities.MethodManual, entities.MethodProxy, entities.MethodRemote:
		return method
	default:
		return entities.MethodDigital
	}
}

func (uc CastVoteUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
