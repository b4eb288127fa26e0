package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "comunidad/contexts/governance/voting-engine/application"
	"comunidad/contexts/governance/voting-engine/domain/entities"
	domainerrors "comunidad/contexts/governance/voting-engine/domain/errors"
	"comunidad/contexts/governance/voting-engine/ports"
	"comunidad/internal/shared/events"
)

// CreateSessionCommand is the write-model input for session creation.
type CreateSessionCommand struct {
	AssemblyID       string
	Motion           string
	Type             entities.VotingType
	CustomPercentage float64
	Anonymous        bool
	StartTime        time.Time
	EndTime          time.Time
}

// CloseSessionCommand closes voting and certifies the tallied result.
type CloseSessionCommand struct {
	SessionID   string
	CertifiedBy string
}

// SubmitSessionCommand finalizes a certified session for the official record.
type SubmitSessionCommand struct {
	SessionID string
	ActorID   string
}

// SessionUseCase orchestrates the session lifecycle: draft creation, opening
// against a live assembly, certified close with tally, and integrity-checked
// submission.
type SessionUseCase struct {
	Sessions   ports.SessionRepository
	Votes      ports.VoteRepository
	Assemblies ports.AssemblyDirectory
	Certifiers ports.CertifierDirectory
	Sink       ports.NotificationSink
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// CreateSession registers a draft session for an existing assembly. The
// majority threshold is resolved from the voting type at creation time and
// never recomputed afterwards.
func (uc SessionUseCase) CreateSession(ctx context.Context, cmd CreateSessionCommand) (entities.VotingSession, error) {
	logger := application.ResolveLogger(uc.Logger)
	assemblyID := strings.TrimSpace(cmd.AssemblyID)
	motion := strings.TrimSpace(cmd.Motion)
	if assemblyID == "" || motion == "" || !cmd.Type.Valid() {
		logger.Warn("session create validation failed",
			"event", "voting_session_create_validation_failed",
			"module", "governance/voting-engine",
			"layer", "application",
			"assembly_id", assemblyID,
		)
		return entities.VotingSession{}, domainerrors.ErrInvalidSessionInput
	}
	required, ok := cmd.Type.RequiredPercentage(cmd.CustomPercentage)
	if !ok {
		return entities.VotingSession{}, domainerrors.ErrInvalidSessionInput
	}
	if !cmd.StartTime.Before(cmd.EndTime) {
		return entities.VotingSession{}, domainerrors.ErrInvalidSessionInput
	}
	if _, err := uc.Assemblies.GetAssembly(ctx, assemblyID); err != nil {
		return entities.VotingSession{}, err
	}

	now := uc.now()
	sessionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.VotingSession{}, err
	}
	session := entities.VotingSession{
		SessionID:          sessionID,
		AssemblyID:         assemblyID,
		Motion:             motion,
		Type:               cmd.Type,
		RequiredPercentage: required,
		Anonymous:          cmd.Anonymous,
		StartTime:          cmd.StartTime.UTC(),
		EndTime:            cmd.EndTime.UTC(),
		Status:             entities.SessionDraft,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.Sessions.SaveSession(ctx, session); err != nil {
		return entities.VotingSession{}, err
	}
	logger.Info("voting session created",
		"event", "voting_session_created",
		"module", "governance/voting-engine",
		"layer", "application",
		"session_id", session.SessionID,
		"assembly_id", session.AssemblyID,
		"voting_type", string(session.Type),
		"required_percentage", session.RequiredPercentage,
		"anonymous", session.Anonymous,
	)
	return session, nil
}

// OpenSession moves a draft session to open. The parent assembly must be in
// session, so ballots can only arrive while attendees are in the room.
func (uc SessionUseCase) OpenSession(ctx context.Context, sessionID string) (entities.VotingSession, error) {
	logger := application.ResolveLogger(uc.Logger)
	session, err := uc.Sessions.GetSession(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return entities.VotingSession{}, err
	}
	if session.Status != entities.SessionDraft {
		return entities.VotingSession{}, domainerrors.ErrTerminalState
	}
	assembly, err := uc.Assemblies.GetAssembly(ctx, session.AssemblyID)
	if err != nil {
		return entities.VotingSession{}, err
	}
	if !assembly.InSession {
		return entities.VotingSession{}, domainerrors.ErrAssemblyUnavailable
	}

	session.Status = entities.SessionOpen
	session.UpdatedAt = uc.now()
	if err := uc.Sessions.SaveSession(ctx, session); err != nil {
		return entities.VotingSession{}, err
	}
	logger.Info("voting session opened",
		"event", "voting_session_opened",
		"module", "governance/voting-engine",
		"layer", "application",
		"session_id", session.SessionID,
		"assembly_id", session.AssemblyID,
	)
	return session, nil
}

// CloseSession tallies the ballots, applies the majority rule and records the
// certified result. The tally is recomputed from the ballot log rather than
// trusted from the denormalized totals.
func (uc SessionUseCase) CloseSession(ctx context.Context, cmd CloseSessionCommand) (entities.VotingSession, error) {
	logger := application.ResolveLogger(uc.Logger)
	certifiedBy := strings.TrimSpace(cmd.CertifiedBy)
	if certifiedBy == "" {
		return entities.VotingSession{}, domainerrors.ErrInvalidSessionInput
	}
	session, err := uc.Sessions.GetSession(ctx, strings.TrimSpace(cmd.SessionID))
	if err != nil {
		return entities.VotingSession{}, err
	}
	if session.Status != entities.SessionOpen {
		return entities.VotingSession{}, domainerrors.ErrSessionNotOpen
	}

	votes, err := uc.Votes.ListVotesBySession(ctx, session.SessionID)
	if err != nil {
		return entities.VotingSession{}, err
	}
	now := uc.now()
	session.Totals = entities.ComputeTotals(votes)
	result := entities.Outcome(session.Totals, session.Type, session.RequiredPercentage)
	session.Result = &result
	session.CertifiedBy = certifiedBy
	session.ResultAt = &now
	session.Status = entities.SessionClosed
	session.UpdatedAt = now
	if err := uc.Sessions.SaveSession(ctx, session); err != nil {
		return entities.VotingSession{}, err
	}

	uc.notifyResult(ctx, session, len(votes), now)
	logger.Info("voting session closed",
		"event", "voting_session_closed",
		"module", "governance/voting-engine",
		"layer", "application",
		"session_id", session.SessionID,
		"assembly_id", session.AssemblyID,
		"result", string(result),
		"percent_in_favor", session.Totals.PercentInFavor,
		"percent_against", session.Totals.PercentAgainst,
		"certified_by", certifiedBy,
	)
	return session, nil
}

// SubmitSession finalizes a closed, certified session. Every identified
// ballot's signature is re-verified; a single mismatch blocks submission and
// names the offending voter.
func (uc SessionUseCase) SubmitSession(ctx context.Context, cmd SubmitSessionCommand) (entities.VotingSession, error) {
	logger := application.ResolveLogger(uc.Logger)
	actorID := strings.TrimSpace(cmd.ActorID)
	if actorID == "" {
		return entities.VotingSession{}, domainerrors.ErrInvalidSessionInput
	}
	session, err := uc.Sessions.GetSession(ctx, strings.TrimSpace(cmd.SessionID))
	if err != nil {
		return entities.VotingSession{}, err
	}
	if session.Status != entities.SessionClosed {
		return entities.VotingSession{}, domainerrors.ErrSessionNotClosed
	}
	if session.Result == nil || session.CertifiedBy == "" {
		return entities.VotingSession{}, domainerrors.ErrNotSubmittable
	}
	allowed, err := uc.Certifiers.CanCertify(ctx, actorID)
	if err != nil {
		return entities.VotingSession{}, err
	}
	if !allowed {
		return entities.VotingSession{}, domainerrors.ErrNotEligible
	}

	if !session.Anonymous {
		votes, err := uc.Votes.ListVotesBySession(ctx, session.SessionID)
		if err != nil {
			return entities.VotingSession{}, err
		}
		for _, vote := range votes {
			if !vote.VerifySignature(session.AssemblyID, session.Motion) {
				logger.Error("vote integrity check failed",
					"event", "voting_session_integrity_failed",
					"module", "governance/voting-engine",
					"layer", "application",
					"session_id", session.SessionID,
					"property_id", vote.PropertyID,
				)
				return entities.VotingSession{}, fmt.Errorf("%w: voter %s", domainerrors.ErrIntegrityBroken, vote.PropertyID)
			}
		}
	}

	session.Status = entities.SessionSubmitted
	session.UpdatedAt = uc.now()
	if err := uc.Sessions.SaveSession(ctx, session); err != nil {
		return entities.VotingSession{}, err
	}
	logger.Info("voting session submitted",
		"event", "voting_session_submitted",
		"module", "governance/voting-engine",
		"layer", "application",
		"session_id", session.SessionID,
		"assembly_id", session.AssemblyID,
		"actor_id", actorID,
	)
	return session, nil
}

// notifyResult is best-effort: sink failures are logged and swallowed so the
// certified close stands.
func (uc SessionUseCase) notifyResult(ctx context.Context, session entities.VotingSession, ballots int, now time.Time) {
	if uc.Sink == nil || session.Result == nil {
		return
	}
	logger := application.ResolveLogger(uc.Logger)
	notification := events.Notification{
		Kind:          events.KindVoteResult,
		SubjectID:     session.SessionID,
		Recipients:    []string{session.CertifiedBy},
		OccurredAtUTC: now,
		Payload: map[string]any{
			"assembly_id":      session.AssemblyID,
			"motion":           session.Motion,
			"result":           string(*session.Result),
			"percent_in_favor": session.Totals.PercentInFavor,
			"percent_against":  session.Totals.PercentAgainst,
			"ballots":          ballots,
		},
	}
	if eventID, err := uc.IDGen.NewID(ctx); err == nil {
		notification.EventID = eventID
	}
	if err := uc.Sink.Emit(ctx, notification); err != nil {
		logger.Warn("vote result notification emit failed",
			"event", "voting_result_emit_failed",
			"module", "governance/voting-engine",
			"layer", "application",
			"session_id", session.SessionID,
			"error", err.Error(),
		)
	}
}

func (uc SessionUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
