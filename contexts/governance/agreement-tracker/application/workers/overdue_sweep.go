package workers

import (
	"context"
	"log/slog"
	"time"

	application "comunidad/contexts/governance/agreement-tracker/application"
	"comunidad/contexts/governance/agreement-tracker/domain/entities"
	"comunidad/contexts/governance/agreement-tracker/ports"
	"comunidad/internal/shared/events"
)

// OverdueSweep transitions past-due agreements to Overdue and emits one
// overdue notification per (agreement, day). Re-running is a fixed point:
// already-overdue agreements are not candidates again.
type OverdueSweep struct {
	Agreements ports.AgreementRepository
	Dedup      ports.NotificationDedup
	Sink       ports.NotificationSink
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	BatchSize  int
	Logger     *slog.Logger
}

// RunOnce processes candidates in bounded batches; a failing item is logged
// and skipped so one broken record never stalls the sweep.
func (w OverdueSweep) RunOnce(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(w.Logger)
	limit := w.BatchSize
	if limit <= 0 {
		limit = 10
	}
	now := w.now()

	transitioned := 0
	for {
		candidates, err := w.Agreements.ListOverdueCandidates(ctx, now, limit)
		if err != nil {
			logger.Error("overdue sweep list failed",
				"event", "agreement_overdue_sweep_list_failed",
				"module", "governance/agreement-tracker",
				"layer", "worker",
				"error", err.Error(),
			)
			return transitioned, err
		}
		if len(candidates) == 0 {
			break
		}
		progressed := 0
		for _, agreement := range candidates {
			if err := w.transition(ctx, agreement, now); err != nil {
				logger.Error("overdue transition failed",
					"event", "agreement_overdue_transition_failed",
					"module", "governance/agreement-tracker",
					"layer", "worker",
					"agreement_id", agreement.AgreementID,
					"error", err.Error(),
				)
				continue
			}
			progressed++
			transitioned++
		}
		if progressed == 0 {
			// Every candidate in the batch failed; bail out rather than spin.
			break
		}
		if len(candidates) < limit {
			break
		}
	}

	logger.Info("overdue sweep completed",
		"event", "agreement_overdue_sweep_completed",
		"module", "governance/agreement-tracker",
		"layer", "worker",
		"transitioned", transitioned,
	)
	return transitioned, nil
}

func (w OverdueSweep) transition(ctx context.Context, agreement entities.Agreement, now time.Time) error {
	agreement.Status = entities.StatusOverdue
	agreement.UpdatedAt = now
	if err := w.Agreements.SaveAgreement(ctx, agreement); err != nil {
		return err
	}
	w.notify(ctx, agreement, now)
	return nil
}

// notify is best-effort: sink failures are logged and swallowed so the state
// transition stands.
func (w OverdueSweep) notify(ctx context.Context, agreement entities.Agreement, now time.Time) {
	// Sink is optional for pure read/test wiring, so nil is treated as no-op.
	if w.Sink == nil {
		return
	}
	logger := application.ResolveLogger(w.Logger)
	notification := events.Notification{
		Kind:          events.KindOverdue,
		SubjectID:     agreement.AgreementID,
		Recipients:    agreement.Responsibles(),
		OccurredAtUTC: now,
		Payload: map[string]any{
			"agreement_number": agreement.Number,
			"title":            agreement.Title,
			"due_date":         agreement.DueDate.Format("2006-01-02"),
			"priority":         string(agreement.Priority),
		},
	}
	already, err := w.Dedup.Reserve(ctx, notification.DedupKey(), now.Add(48*time.Hour))
	if err != nil {
		logger.Warn("overdue notification dedup failed",
			"event", "agreement_overdue_dedup_failed",
			"module", "governance/agreement-tracker",
			"layer", "worker",
			"agreement_id", agreement.AgreementID,
			"error", err.Error(),
		)
		return
	}
	if already {
		return
	}
	eventID, err := w.IDGen.NewID(ctx)
	if err == nil {
		notification.EventID = eventID
	}
	if err := w.Sink.Emit(ctx, notification); err != nil {
		logger.Warn("overdue notification emit failed",
			"event", "agreement_overdue_emit_failed",
			"module", "governance/agreement-tracker",
			"layer", "worker",
			"agreement_id", agreement.AgreementID,
			"error", err.Error(),
		)
	}
}

func (w OverdueSweep) now() time.Time {
	if w.Clock != nil {
		return w.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
