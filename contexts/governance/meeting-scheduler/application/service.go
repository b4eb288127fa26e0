package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"comunidad/contexts/governance/meeting-scheduler/domain/entities"
	domainerrors "comunidad/contexts/governance/meeting-scheduler/domain/errors"
	"comunidad/contexts/governance/meeting-scheduler/ports"
)

// Meetings land mid-month; the day is arbitrary but stable so regenerated
// schedules compare equal.
const standardMeetingDay = 15

// GenerateStandardCommand is the write-model input for schedule generation.
type GenerateStandardCommand struct {
	Year       int
	Period     entities.Period
	AutoCreate bool
}

// AddEntryCommand appends a custom slot to a draft schedule.
type AddEntryCommand struct {
	ScheduleID      string
	Date            time.Time
	MeetingType     string
	SuggestedTopics []string
	Mandatory       bool
}

// Service orchestrates meeting schedules: canonical generation, manual
// slots, and approval. Materialization runs in the sweep worker.
type Service struct {
	Schedules ports.ScheduleRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// GenerateStandard produces the canonical distribution for the period:
// monthly (annual), bimonthly (semestral) or quarterly (trimestral)
// meetings, with financial reviews on quarter-end months and the December
// planning and evaluation session.
func (s Service) GenerateStandard(ctx context.Context, cmd GenerateStandardCommand) (entities.Schedule, error) {
	logger := ResolveLogger(s.Logger)
	if cmd.Year < 2000 || cmd.Year > 2200 || !cmd.Period.Valid() {
		return entities.Schedule{}, domainerrors.ErrInvalidScheduleInput
	}

	now := s.now()
	scheduleID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Schedule{}, err
	}
	schedule := entities.Schedule{
		ScheduleID: scheduleID,
		Year:       cmd.Year,
		Period:     cmd.Period,
		AutoCreate: cmd.AutoCreate,
		Status:     entities.StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, month := range cmd.Period.StandardMonths() {
		entryID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return entities.Schedule{}, err
		}
		meetingType := entities.StandardType(month)
		schedule.Entries = append(schedule.Entries, entities.ScheduledEntry{
			EntryID:         entryID,
			Date:            time.Date(cmd.Year, month, standardMeetingDay, 0, 0, 0, 0, time.UTC),
			MeetingType:     meetingType,
			SuggestedTopics: entities.StandardTopics(meetingType),
			Mandatory:       meetingType != entities.MeetingTypeOrdinary,
		})
	}
	if err := s.Schedules.SaveSchedule(ctx, schedule); err != nil {
		return entities.Schedule{}, err
	}
	logger.Info("standard schedule generated",
		"event", "schedule_generated",
		"module", "governance/meeting-scheduler",
		"layer", "application",
		"schedule_id", schedule.ScheduleID,
		"year", schedule.Year,
		"period", string(schedule.Period),
		"entries", len(schedule.Entries),
	)
	return schedule, nil
}

// AddEntry appends a custom slot. Dates stay unique within the series and
// inside the target year; approved schedules are closed for edits.
func (s Service) AddEntry(ctx context.Context, cmd AddEntryCommand) (entities.Schedule, error) {
	schedule, err := s.Schedules.GetSchedule(ctx, strings.TrimSpace(cmd.ScheduleID))
	if err != nil {
		return entities.Schedule{}, err
	}
	if schedule.Status != entities.StatusDraft {
		return entities.Schedule{}, domainerrors.ErrAlreadyApproved
	}
	if cmd.Date.Year() != schedule.Year {
		return entities.Schedule{}, domainerrors.ErrDateOutsideYear
	}
	if schedule.HasDate(cmd.Date) {
		return entities.Schedule{}, domainerrors.ErrDuplicateDate
	}
	meetingType := strings.TrimSpace(cmd.MeetingType)
	if meetingType == "" {
		meetingType = entities.MeetingTypeOrdinary
	}
	entryID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Schedule{}, err
	}
	schedule.Entries = append(schedule.Entries, entities.ScheduledEntry{
		EntryID:         entryID,
		Date:            cmd.Date.UTC(),
		MeetingType:     meetingType,
		SuggestedTopics: cmd.SuggestedTopics,
		Mandatory:       cmd.Mandatory,
	})
	schedule.UpdatedAt = s.now()
	if err := s.Schedules.SaveSchedule(ctx, schedule); err != nil {
		return entities.Schedule{}, err
	}
	return schedule, nil
}

// Submit approves the schedule, opening it for materialization.
func (s Service) Submit(ctx context.Context, scheduleID string) (entities.Schedule, error) {
	logger := ResolveLogger(s.Logger)
	schedule, err := s.Schedules.GetSchedule(ctx, strings.TrimSpace(scheduleID))
	if err != nil {
		return entities.Schedule{}, err
	}
	if schedule.Status == entities.StatusApproved {
		return entities.Schedule{}, domainerrors.ErrAlreadyApproved
	}
	if len(schedule.Entries) == 0 {
		return entities.Schedule{}, domainerrors.ErrInvalidScheduleInput
	}
	schedule.Status = entities.StatusApproved
	schedule.UpdatedAt = s.now()
	if err := s.Schedules.SaveSchedule(ctx, schedule); err != nil {
		return entities.Schedule{}, err
	}
	logger.Info("schedule approved",
		"event", "schedule_approved",
		"module", "governance/meeting-scheduler",
		"layer", "application",
		"schedule_id", schedule.ScheduleID,
		"year", schedule.Year,
	)
	return schedule, nil
}

// Get returns one schedule.
func (s Service) Get(ctx context.Context, scheduleID string) (entities.Schedule, error) {
	return s.Schedules.GetSchedule(ctx, strings.TrimSpace(scheduleID))
}

// List returns all schedules.
func (s Service) List(ctx context.Context) ([]entities.Schedule, error) {
	return s.Schedules.ListSchedules(ctx)
}

// MeetingTitle renders the display title for a materialized entry.
func MeetingTitle(schedule entities.Schedule, entry entities.ScheduledEntry) string {
	return fmt.Sprintf("%s %s (%d)", strings.ReplaceAll(entry.MeetingType, "_", " "), entry.Date.Format("January"), schedule.Year)
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}
