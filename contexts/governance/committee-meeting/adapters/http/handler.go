package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"comunidad/contexts/governance/committee-meeting/application"
	"comunidad/contexts/governance/committee-meeting/domain/entities"
	domainerrors "comunidad/contexts/governance/committee-meeting/domain/errors"
	httptransport "comunidad/contexts/governance/committee-meeting/transport/http"
)

type Handler struct {
	Meetings application.Service
	Logger   *slog.Logger
}

func (h Handler) ScheduleMeetingHandler(ctx context.Context, req httptransport.ScheduleMeetingRequest) (httptransport.MeetingResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return httptransport.MeetingResponse{}, domainerrors.ErrInvalidMeetingInput
	}
	agenda := make([]application.AgendaItemInput, 0, len(req.Agenda))
	for _, item := range req.Agenda {
		agenda = append(agenda, application.AgendaItemInput{
			Topic:         item.Topic,
			Category:      entities.TopicCategory(item.Category),
			Priority:      entities.Priority(item.Priority),
			ResponsibleID: item.ResponsibleID,
		})
	}
	meeting, err := h.Meetings.Schedule(ctx, application.ScheduleMeetingCommand{
		Title:               req.Title,
		Date:                date,
		Type:                req.Type,
		Format:              entities.Format(req.Format),
		PhysicalSpace:       req.PhysicalSpace,
		VirtualLink:         req.VirtualLink,
		Attendees:           req.Attendees,
		Agenda:              agenda,
		ScheduledFromSeries: req.ScheduledFromSeries,
	})
	if err != nil {
		return httptransport.MeetingResponse{}, err
	}
	return mapMeeting(meeting), nil
}

func (h Handler) StartMeetingHandler(ctx context.Context, meetingID string) (httptransport.MeetingResponse, error) {
	meeting, err := h.Meetings.Start(ctx, meetingID)
	if err != nil {
		return httptransport.MeetingResponse{}, err
	}
	return mapMeeting(meeting), nil
}

func (h Handler) RecordDecisionHandler(ctx context.Context, meetingID string, itemID string, req httptransport.RecordDecisionRequest) (httptransport.MeetingResponse, error) {
	meeting, err := h.Meetings.RecordDecision(ctx, application.RecordDecisionCommand{
		MeetingID:     meetingID,
		ItemID:        itemID,
		Decision:      req.Decision,
		ResponsibleID: req.ResponsibleID,
	})
	if err != nil {
		return httptransport.MeetingResponse{}, err
	}
	return mapMeeting(meeting), nil
}

func (h Handler) RegisterAttendeeHandler(ctx context.Context, meetingID string, req httptransport.RegisterAttendeeRequest) (httptransport.MeetingResponse, error) {
	meeting, err := h.Meetings.RegisterAttendee(ctx, meetingID, req.MemberID)
	if err != nil {
		return httptransport.MeetingResponse{}, err
	}
	return mapMeeting(meeting), nil
}

func (h Handler) CompleteMeetingHandler(ctx context.Context, meetingID string) (httptransport.MeetingResponse, error) {
	meeting, err := h.Meetings.Complete(ctx, meetingID)
	if err != nil {
		return httptransport.MeetingResponse{}, err
	}
	return mapMeeting(meeting), nil
}

func (h Handler) SubmitMeetingHandler(ctx context.Context, meetingID string) (httptransport.MeetingResponse, error) {
	meeting, err := h.Meetings.Submit(ctx, meetingID)
	if err != nil {
		return httptransport.MeetingResponse{}, err
	}
	return mapMeeting(meeting), nil
}

func (h Handler) CancelMeetingHandler(ctx context.Context, meetingID string) (httptransport.MeetingResponse, error) {
	meeting, err := h.Meetings.Cancel(ctx, meetingID)
	if err != nil {
		return httptransport.MeetingResponse{}, err
	}
	return mapMeeting(meeting), nil
}

func (h Handler) GetMeetingHandler(ctx context.Context, meetingID string) (httptransport.MeetingResponse, error) {
	meeting, err := h.Meetings.Get(ctx, meetingID)
	if err != nil {
		return httptransport.MeetingResponse{}, err
	}
	return mapMeeting(meeting), nil
}

func (h Handler) ListMeetingsHandler(ctx context.Context) (httptransport.MeetingListResponse, error) {
	meetings, err := h.Meetings.List(ctx)
	if err != nil {
		return httptransport.MeetingListResponse{}, err
	}
	items := make([]httptransport.MeetingResponse, 0, len(meetings))
	for _, meeting := range meetings {
		items = append(items, mapMeeting(meeting))
	}
	return httptransport.MeetingListResponse{Items: items}, nil
}

func mapMeeting(meeting entities.Meeting) httptransport.MeetingResponse {
	agenda := make([]httptransport.AgendaItemDTO, 0, len(meeting.Agenda))
	for _, item := range meeting.Agenda {
		agenda = append(agenda, httptransport.AgendaItemDTO{
			ItemID:        item.ItemID,
			Topic:         item.Topic,
			Category:      string(item.Category),
			Priority:      string(item.Priority),
			Decision:      item.Decision,
			ResponsibleID: item.ResponsibleID,
		})
	}
	return httptransport.MeetingResponse{
		MeetingID:           meeting.MeetingID,
		Title:               meeting.Title,
		Date:                meeting.Date.Format("2006-01-02"),
		Type:                meeting.Type,
		Format:              string(meeting.Format),
		PhysicalSpace:       meeting.PhysicalSpace,
		VirtualLink:         meeting.VirtualLink,
		Attendees:           meeting.Attendees,
		Agenda:              agenda,
		Status:              string(meeting.Status),
		ScheduledFromSeries: meeting.ScheduledFromSeries,
		CompletionRate:      meeting.CompletionRate(),
	}
}
