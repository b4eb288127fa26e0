package workers

import (
	"context"
	"log/slog"
	"time"

	application "comunidad/contexts/governance/meeting-scheduler/application"
	"comunidad/contexts/governance/meeting-scheduler/ports"
)

// Materializer turns pending entries of approved auto-create schedules into
// committee meetings. The meeting-created flag is persisted with the
// back-reference in the same save, so re-runs are a fixed point.
type Materializer struct {
	Schedules ports.ScheduleRepository
	Meetings  ports.MeetingCreator
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (w Materializer) RunOnce(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(w.Logger)
	now := w.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	schedules, err := w.Schedules.ListApprovedAutoCreate(ctx)
	if err != nil {
		logger.Error("materializer list failed",
			"event", "schedule_materializer_list_failed",
			"module", "governance/meeting-scheduler",
			"layer", "worker",
			"error", err.Error(),
		)
		return 0, err
	}

	created := 0
	for _, schedule := range schedules {
		for _, pending := range schedule.PendingEntries(today) {
			meetingID, err := w.Meetings.CreateScheduled(ctx, ports.ScheduledMeeting{
				Title:           application.MeetingTitle(schedule, pending),
				Date:            pending.Date,
				MeetingType:     pending.MeetingType,
				SuggestedTopics: pending.SuggestedTopics,
				SeriesRef:       schedule.ScheduleID,
			})
			if err != nil {
				logger.Error("scheduled meeting creation failed",
					"event", "schedule_materializer_create_failed",
					"module", "governance/meeting-scheduler",
					"layer", "worker",
					"schedule_id", schedule.ScheduleID,
					"entry_id", pending.EntryID,
					"error", err.Error(),
				)
				continue
			}
			index := schedule.EntryIndex(pending.EntryID)
			if index < 0 {
				continue
			}
			schedule.Entries[index].MeetingCreated = true
			schedule.Entries[index].LinkedMeetingID = meetingID
			schedule.UpdatedAt = now
			created++
			// Flag each entry as soon as its meeting exists; a save failure
			// then leaves at most one entry unflagged for the next run.
			if err := w.Schedules.SaveSchedule(ctx, schedule); err != nil {
				logger.Error("materializer save failed",
					"event", "schedule_materializer_save_failed",
					"module", "governance/meeting-scheduler",
					"layer", "worker",
					"schedule_id", schedule.ScheduleID,
					"entry_id", pending.EntryID,
					"error", err.Error(),
				)
				return created, err
			}
		}
	}

	logger.Info("schedule materializer completed",
		"event", "schedule_materializer_completed",
		"module", "governance/meeting-scheduler",
		"layer", "worker",
		"created", created,
	)
	return created, nil
}

func (w Materializer) now() time.Time {
	if w.Clock != nil {
		return w.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
