package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"comunidad/contexts/governance/poll-engine/application"
	"comunidad/contexts/governance/poll-engine/domain/entities"
	domainerrors "comunidad/contexts/governance/poll-engine/domain/errors"
	httptransport "comunidad/contexts/governance/poll-engine/transport/http"
)

type Handler struct {
	Polls  application.Service
	Logger *slog.Logger
}

func (h Handler) CreatePollHandler(ctx context.Context, req httptransport.CreatePollRequest) (httptransport.PollResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return httptransport.PollResponse{}, domainerrors.ErrInvalidPollInput
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return httptransport.PollResponse{}, domainerrors.ErrInvalidPollInput
	}
	poll, err := h.Polls.Create(ctx, application.CreatePollCommand{
		Title:          req.Title,
		Description:    req.Description,
		Audience:       entities.Audience(req.Audience),
		GroupMemberIDs: req.GroupMemberIDs,
		OptionLabels:   req.Options,
		StartDate:      start,
		EndDate:        end,
		Anonymous:      req.Anonymous,
		CreatedBy:      req.CreatedBy,
	})
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return mapPoll(poll), nil
}

func (h Handler) OpenPollHandler(ctx context.Context, pollID string) (httptransport.PollResponse, error) {
	poll, err := h.Polls.Open(ctx, pollID)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return mapPoll(poll), nil
}

func (h Handler) SubmitResponseHandler(ctx context.Context, pollID string, req httptransport.SubmitResponseRequest) (httptransport.PollResponse, error) {
	poll, err := h.Polls.SubmitResponse(ctx, application.SubmitResponseCommand{
		PollID:       pollID,
		RespondentID: req.RespondentID,
		OptionID:     req.OptionID,
		Comment:      req.Comment,
	})
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return mapPoll(poll), nil
}

func (h Handler) ClosePollHandler(ctx context.Context, pollID string) (httptransport.PollResultsResponse, error) {
	poll, results, err := h.Polls.Close(ctx, pollID)
	if err != nil {
		return httptransport.PollResultsResponse{}, err
	}
	return mapResults(poll.PollID, results), nil
}

func (h Handler) CancelPollHandler(ctx context.Context, pollID string) (httptransport.PollResponse, error) {
	poll, err := h.Polls.Cancel(ctx, pollID)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return mapPoll(poll), nil
}

func (h Handler) GetPollHandler(ctx context.Context, pollID string) (httptransport.PollResponse, error) {
	poll, err := h.Polls.Get(ctx, pollID)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return mapPoll(poll), nil
}

func (h Handler) ListPollsHandler(ctx context.Context) (httptransport.PollListResponse, error) {
	polls, err := h.Polls.List(ctx)
	if err != nil {
		return httptransport.PollListResponse{}, err
	}
	items := make([]httptransport.PollResponse, 0, len(polls))
	for _, poll := range polls {
		items = append(items, mapPoll(poll))
	}
	return httptransport.PollListResponse{Items: items}, nil
}

func (h Handler) PollResultsHandler(ctx context.Context, pollID string) (httptransport.PollResultsResponse, error) {
	results, err := h.Polls.Results(ctx, pollID)
	if err != nil {
		return httptransport.PollResultsResponse{}, err
	}
	return mapResults(pollID, results), nil
}

func mapPoll(poll entities.Poll) httptransport.PollResponse {
	options := make([]httptransport.OptionDTO, 0, len(poll.Options))
	for _, option := range poll.Options {
		options = append(options, httptransport.OptionDTO{OptionID: option.OptionID, Label: option.Label})
	}
	resp := httptransport.PollResponse{
		PollID:             poll.PollID,
		Title:              poll.Title,
		Description:        poll.Description,
		Audience:           string(poll.Audience),
		Options:            options,
		StartDate:          poll.StartDate.Format("2006-01-02"),
		EndDate:            poll.EndDate.Format("2006-01-02"),
		Anonymous:          poll.Anonymous,
		Status:             string(poll.Status),
		EligibleVoterCount: poll.EligibleVoterCount,
		ResponseCount:      len(poll.Responses),
		ParticipationRate:  poll.ParticipationRate,
	}
	if poll.ClosedAt != nil {
		resp.ClosedAt = poll.ClosedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapResults(pollID string, results entities.Results) httptransport.PollResultsResponse {
	totals := make([]httptransport.OptionTallyDTO, 0, len(results.Totals))
	for _, tally := range results.Totals {
		totals = append(totals, httptransport.OptionTallyDTO{
			OptionID:  tally.OptionID,
			Label:     tally.Label,
			Responses: tally.Responses,
			Share:     tally.Share,
		})
	}
	return httptransport.PollResultsResponse{
		PollID:            pollID,
		Totals:            totals,
		TotalResponses:    results.TotalResponses,
		ParticipationRate: results.ParticipationRate,
		WinnerOptionIDs:   results.WinnerOptionIDs,
		Tie:               results.Tie,
	}
}
