package workers

import (
	"context"
	"log/slog"
	"time"

	application "comunidad/contexts/governance/agreement-tracker/application"
	"comunidad/contexts/governance/agreement-tracker/ports"
	"comunidad/internal/shared/events"
)

// DueSoonSweep emits one due-soon reminder per agreement on the day
// (due date - reminder-days-before). Dedup keys make re-runs emit nothing.
type DueSoonSweep struct {
	Agreements ports.AgreementRepository
	Dedup      ports.NotificationDedup
	Sink       ports.NotificationSink
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	BatchSize  int
	Logger     *slog.Logger
}

func (w DueSoonSweep) RunOnce(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(w.Logger)
	limit := w.BatchSize
	if limit <= 0 {
		limit = 100
	}
	now := w.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// Candidates are selected by reminder date, not by due-date proximity,
	// so long reminder lead times still fire on the right day.
	candidates, err := w.Agreements.ListReminderCandidates(ctx, today, limit)
	if err != nil {
		logger.Error("due-soon sweep list failed",
			"event", "agreement_due_soon_sweep_list_failed",
			"module", "governance/agreement-tracker",
			"layer", "worker",
			"error", err.Error(),
		)
		return 0, err
	}

	if w.Sink == nil {
		return 0, nil
	}

	emitted := 0
	for _, agreement := range candidates {
		if agreement.Terminal() {
			continue
		}
		reminderDate, ok := agreement.ReminderDate()
		if !ok || !reminderDate.Equal(today) {
			continue
		}
		notification := events.Notification{
			Kind:          events.KindDueSoon,
			SubjectID:     agreement.AgreementID,
			Recipients:    agreement.Responsibles(),
			OccurredAtUTC: now,
			Payload: map[string]any{
				"agreement_number": agreement.Number,
				"title":            agreement.Title,
				"due_date":         agreement.DueDate.Format("2006-01-02"),
				"days_before":      agreement.ReminderDaysBefore,
			},
		}
		already, err := w.Dedup.Reserve(ctx, notification.DedupKey(), now.Add(48*time.Hour))
		if err != nil || already {
			if err != nil {
				logger.Warn("due-soon dedup failed",
					"event", "agreement_due_soon_dedup_failed",
					"module", "governance/agreement-tracker",
					"layer", "worker",
					"agreement_id", agreement.AgreementID,
					"error", err.Error(),
				)
			}
			continue
		}
		if eventID, err := w.IDGen.NewID(ctx); err == nil {
			notification.EventID = eventID
		}
		if err := w.Sink.Emit(ctx, notification); err != nil {
			logger.Warn("due-soon emit failed",
				"event", "agreement_due_soon_emit_failed",
				"module", "governance/agreement-tracker",
				"layer", "worker",
				"agreement_id", agreement.AgreementID,
				"error", err.Error(),
			)
			continue
		}
		emitted++
	}

	logger.Info("due-soon sweep completed",
		"event", "agreement_due_soon_sweep_completed",
		"module", "governance/agreement-tracker",
		"layer", "worker",
		"emitted", emitted,
	)
	return emitted, nil
}

func (w DueSoonSweep) now() time.Time {
	if w.Clock != nil {
		return w.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
