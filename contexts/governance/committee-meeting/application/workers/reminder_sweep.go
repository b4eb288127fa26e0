package workers

import (
	"context"
	"log/slog"
	"time"

	application "comunidad/contexts/governance/committee-meeting/application"
	"comunidad/contexts/governance/committee-meeting/ports"
	"comunidad/internal/shared/events"
)

// ReminderSweep emits one meeting reminder per planned meeting inside the
// lookahead window. Dedup keys make re-runs within a day emit nothing.
type ReminderSweep struct {
	Meetings   ports.MeetingRepository
	Dedup      ports.NotificationDedup
	Sink       ports.NotificationSink
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	WindowDays int
	BatchSize  int
	Logger     *slog.Logger
}

func (w ReminderSweep) RunOnce(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(w.Logger)
	limit := w.BatchSize
	if limit <= 0 {
		limit = 100
	}
	window := w.WindowDays
	if window <= 0 {
		window = 7
	}
	now := w.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	meetings, err := w.Meetings.ListPlannedBetween(ctx, today, today.AddDate(0, 0, window), limit)
	if err != nil {
		logger.Error("meeting reminder sweep list failed",
			"event", "meeting_reminder_sweep_list_failed",
			"module", "governance/committee-meeting",
			"layer", "worker",
			"error", err.Error(),
		)
		return 0, err
	}
	if w.Sink == nil {
		return 0, nil
	}

	emitted := 0
	for _, meeting := range meetings {
		notification := events.Notification{
			Kind:          events.KindMeetingReminder,
			SubjectID:     meeting.MeetingID,
			Recipients:    meeting.Attendees,
			OccurredAtUTC: now,
			Payload: map[string]any{
				"title":  meeting.Title,
				"date":   meeting.Date.Format("2006-01-02"),
				"format": string(meeting.Format),
			},
		}
		already, err := w.Dedup.Reserve(ctx, notification.DedupKey(), now.Add(48*time.Hour))
		if err != nil || already {
			if err != nil {
				logger.Warn("meeting reminder dedup failed",
					"event", "meeting_reminder_dedup_failed",
					"module", "governance/committee-meeting",
					"layer", "worker",
					"meeting_id", meeting.MeetingID,
					"error", err.Error(),
				)
			}
			continue
		}
		if eventID, err := w.IDGen.NewID(ctx); err == nil {
			notification.EventID = eventID
		}
		if err := w.Sink.Emit(ctx, notification); err != nil {
			logger.Warn("meeting reminder emit failed",
				"event", "meeting_reminder_emit_failed",
				"module", "governance/committee-meeting",
				"layer", "worker",
				"meeting_id", meeting.MeetingID,
				"error", err.Error(),
			)
			continue
		}
		emitted++
	}

	logger.Info("meeting reminder sweep completed",
		"event", "meeting_reminder_sweep_completed",
		"module", "governance/committee-meeting",
		"layer", "worker",
		"emitted", emitted,
	)
	return emitted, nil
}

func (w ReminderSweep) now() time.Time {
	if w.Clock != nil {
		return w.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
