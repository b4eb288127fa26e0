package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"comunidad/contexts/governance/meeting-scheduler/application"
	"comunidad/contexts/governance/meeting-scheduler/domain/entities"
	domainerrors "comunidad/contexts/governance/meeting-scheduler/domain/errors"
	httptransport "comunidad/contexts/governance/meeting-scheduler/transport/http"
)

type Handler struct {
	Schedules application.Service
	Logger    *slog.Logger
}

func (h Handler) GenerateStandardHandler(ctx context.Context, req httptransport.GenerateStandardRequest) (httptransport.ScheduleResponse, error) {
	schedule, err := h.Schedules.GenerateStandard(ctx, application.GenerateStandardCommand{
		Year:       req.Year,
		Period:     entities.Period(req.Period),
		AutoCreate: req.AutoCreate,
	})
	if err != nil {
		return httptransport.ScheduleResponse{}, err
	}
	return mapSchedule(schedule), nil
}

func (h Handler) AddEntryHandler(ctx context.Context, scheduleID string, req httptransport.AddEntryRequest) (httptransport.ScheduleResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return httptransport.ScheduleResponse{}, domainerrors.ErrInvalidScheduleInput
	}
	schedule, err := h.Schedules.AddEntry(ctx, application.AddEntryCommand{
		ScheduleID:      scheduleID,
		Date:            date,
		MeetingType:     req.MeetingType,
		SuggestedTopics: req.SuggestedTopics,
		Mandatory:       req.Mandatory,
	})
	if err != nil {
		return httptransport.ScheduleResponse{}, err
	}
	return mapSchedule(schedule), nil
}

func (h Handler) SubmitScheduleHandler(ctx context.Context, scheduleID string) (httptransport.ScheduleResponse, error) {
	schedule, err := h.Schedules.Submit(ctx, scheduleID)
	if err != nil {
		return httptransport.ScheduleResponse{}, err
	}
	return mapSchedule(schedule), nil
}

func (h Handler) GetScheduleHandler(ctx context.Context, scheduleID string) (httptransport.ScheduleResponse, error) {
	schedule, err := h.Schedules.Get(ctx, scheduleID)
	if err != nil {
		return httptransport.ScheduleResponse{}, err
	}
	return mapSchedule(schedule), nil
}

func (h Handler) ListSchedulesHandler(ctx context.Context) (httptransport.ScheduleListResponse, error) {
	schedules, err := h.Schedules.List(ctx)
	if err != nil {
		return httptransport.ScheduleListResponse{}, err
	}
	items := make([]httptransport.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		items = append(items, mapSchedule(schedule))
	}
	return httptransport.ScheduleListResponse{Items: items}, nil
}

func mapSchedule(schedule entities.Schedule) httptransport.ScheduleResponse {
	entries := make([]httptransport.ScheduledEntryDTO, 0, len(schedule.Entries))
	for _, entry := range schedule.Entries {
		entries = append(entries, httptransport.ScheduledEntryDTO{
			EntryID:         entry.EntryID,
			Date:            entry.Date.Format("2006-01-02"),
			MeetingType:     entry.MeetingType,
			SuggestedTopics: entry.SuggestedTopics,
			Mandatory:       entry.Mandatory,
			LinkedMeetingID: entry.LinkedMeetingID,
			MeetingCreated:  entry.MeetingCreated,
		})
	}
	return httptransport.ScheduleResponse{
		ScheduleID: schedule.ScheduleID,
		Year:       schedule.Year,
		Period:     string(schedule.Period),
		Entries:    entries,
		AutoCreate: schedule.AutoCreate,
		Status:     string(schedule.Status),
	}
}
