package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"comunidad/contexts/governance/voting-engine/application/commands"
	"comunidad/contexts/governance/voting-engine/application/queries"
	"comunidad/contexts/governance/voting-engine/domain/entities"
	domainerrors "comunidad/contexts/governance/voting-engine/domain/errors"
	httptransport "comunidad/contexts/governance/voting-engine/transport/http"
)

type Handler struct {
	Sessions  commands.SessionUseCase
	Casting   commands.CastVoteUseCase
	Breakdown queries.BreakdownUseCase
	Logger    *slog.Logger
}

func (h Handler) CreateSessionHandler(ctx context.Context, req httptransport.CreateSessionRequest) (httptransport.SessionResponse, error) {
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return httptransport.SessionResponse{}, domainerrors.ErrInvalidSessionInput
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return httptransport.SessionResponse{}, domainerrors.ErrInvalidSessionInput
	}
	session, err := h.Sessions.CreateSession(ctx, commands.CreateSessionCommand{
		AssemblyID:       req.AssemblyID,
		Motion:           req.Motion,
		Type:             entities.VotingType(req.VotingType),
		CustomPercentage: req.CustomPercentage,
		Anonymous:        req.Anonymous,
		StartTime:        startTime,
		EndTime:          endTime,
	})
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return mapSession(session), nil
}

func (h Handler) OpenSessionHandler(ctx context.Context, sessionID string) (httptransport.SessionResponse, error) {
	session, err := h.Sessions.OpenSession(ctx, sessionID)
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return mapSession(session), nil
}

func (h Handler) CloseSessionHandler(ctx context.Context, sessionID string, req httptransport.CloseSessionRequest) (httptransport.SessionResponse, error) {
	session, err := h.Sessions.CloseSession(ctx, commands.CloseSessionCommand{
		SessionID:   sessionID,
		CertifiedBy: req.CertifiedBy,
	})
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return mapSession(session), nil
}

func (h Handler) SubmitSessionHandler(ctx context.Context, sessionID string, req httptransport.SubmitSessionRequest) (httptransport.SessionResponse, error) {
	session, err := h.Sessions.SubmitSession(ctx, commands.SubmitSessionCommand{
		SessionID: sessionID,
		ActorID:   req.ActorID,
	})
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return mapSession(session), nil
}

func (h Handler) CastVoteHandler(ctx context.Context, sessionID string, req httptransport.CastVoteRequest) (httptransport.VoteResponse, error) {
	vote, err := h.Casting.CastVote(ctx, commands.CastVoteCommand{
		SessionID:  sessionID,
		PropertyID: req.PropertyID,
		Value:      entities.VoteValue(req.Value),
		Method:     entities.VoteMethod(req.Method),
		IPAddress:  req.IPAddress,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return httptransport.VoteResponse{
		VoteID:     vote.VoteID,
		SessionID:  vote.SessionID,
		PropertyID: vote.PropertyID,
		Value:      string(vote.Value),
		Power:      vote.Power,
		CastAt:     vote.CastAt.UTC().Format(time.RFC3339),
		Method:     string(vote.Method),
		Signature:  vote.Signature,
	}, nil
}

func (h Handler) BreakdownHandler(ctx context.Context, sessionID string) (httptransport.BreakdownResponse, error) {
	breakdown, err := h.Breakdown.SessionBreakdown(ctx, sessionID)
	if err != nil {
		return httptransport.BreakdownResponse{}, err
	}
	response := httptransport.BreakdownResponse{
		Session: mapSession(breakdown.Session),
		Tallies: make([]httptransport.ValueTallyDTO, 0, len(breakdown.Tallies)),
	}
	for _, tally := range breakdown.Tallies {
		response.Tallies = append(response.Tallies, httptransport.ValueTallyDTO{
			Value: string(tally.Value),
			Power: tally.Power,
			Count: tally.Count,
		})
	}
	for _, ballot := range breakdown.Ballots {
		response.Ballots = append(response.Ballots, httptransport.BallotDTO{
			PropertyID: ballot.PropertyID,
			Value:      string(ballot.Value),
			Power:      ballot.Power,
			CastAt:     ballot.CastAt.UTC().Format(time.RFC3339),
			Method:     string(ballot.Method),
			Signature:  ballot.Signature,
		})
	}
	return response, nil
}

func (h Handler) SessionsByAssemblyHandler(ctx context.Context, assemblyID string) (httptransport.SessionListResponse, error) {
	sessions, err := h.Breakdown.SessionsByAssembly(ctx, assemblyID)
	if err != nil {
		return httptransport.SessionListResponse{}, err
	}
	items := make([]httptransport.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, mapSession(session))
	}
	return httptransport.SessionListResponse{Items: items}, nil
}

func mapSession(session entities.VotingSession) httptransport.SessionResponse {
	response := httptransport.SessionResponse{
		SessionID:          session.SessionID,
		AssemblyID:         session.AssemblyID,
		Motion:             session.Motion,
		VotingType:         string(session.Type),
		RequiredPercentage: session.RequiredPercentage,
		Anonymous:          session.Anonymous,
		StartTime:          session.StartTime.UTC().Format(time.RFC3339),
		EndTime:            session.EndTime.UTC().Format(time.RFC3339),
		Status:             string(session.Status),
		Totals: httptransport.TotalsDTO{
			TotalPower:        session.Totals.TotalPower,
			PercentInFavor:    session.Totals.PercentInFavor,
			PercentAgainst:    session.Totals.PercentAgainst,
			PercentAbstention: session.Totals.PercentAbstention,
		},
		CertifiedBy: session.CertifiedBy,
	}
	if session.Result != nil {
		response.Result = string(*session.Result)
	}
	if session.ResultAt != nil {
		response.ResultAt = session.ResultAt.UTC().Format(time.RFC3339)
	}
	return response
}
