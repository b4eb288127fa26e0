package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"comunidad/internal/platform/metrics"
)

// EntryPoint is one externally triggered sweep: a cron spec plus an idempotent
// RunOnce function returning the number of records it touched.
type EntryPoint struct {
	Name string
	Spec string
	Run  func(ctx context.Context) (int, error)
}

// Scheduler drives the periodic governance entry points. Sweeps are safe to
// re-run, so overlapping or duplicated triggers are harmless.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	metrics *metrics.Registry
}

func New(logger *slog.Logger, registry *metrics.Registry) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:    cron.New(),
		logger:  logger,
		metrics: registry,
	}
}

func (s *Scheduler) Register(entry EntryPoint) error {
	_, err := s.cron.AddFunc(entry.Spec, func() {
		s.runEntry(context.Background(), entry)
	})
	if err != nil {
		s.logger.Error("scheduler entry registration failed",
			"event", "scheduler_register_failed",
			"module", "internal/platform/scheduler",
			"layer", "platform",
			"entry", entry.Name,
			"spec", entry.Spec,
			"error", err.Error(),
		)
		return err
	}
	s.logger.Info("scheduler entry registered",
		"event", "scheduler_register",
		"module", "internal/platform/scheduler",
		"layer", "platform",
		"entry", entry.Name,
		"spec", entry.Spec,
	)
	return nil
}

// RunAll invokes every registered entry immediately, in registration order.
// Used on worker start so a long scheduler gap never delays overdue handling.
func (s *Scheduler) RunAll(ctx context.Context, entries []EntryPoint) {
	for _, entry := range entries {
		s.runEntry(ctx, entry)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runEntry(ctx context.Context, entry EntryPoint) {
	if s.metrics != nil {
		s.metrics.SweepRuns.WithLabelValues(entry.Name).Inc()
	}
	count, err := entry.Run(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.SweepFailures.WithLabelValues(entry.Name).Inc()
		}
		s.logger.Error("scheduler entry failed",
			"event", "scheduler_entry_failed",
			"module", "internal/platform/scheduler",
			"layer", "platform",
			"entry", entry.Name,
			"error", err.Error(),
		)
		return
	}
	if s.metrics != nil {
		s.metrics.SweepItems.WithLabelValues(entry.Name).Add(float64(count))
	}
	s.logger.Info("scheduler entry completed",
		"event", "scheduler_entry_completed",
		"module", "internal/platform/scheduler",
		"layer", "platform",
		"entry", entry.Name,
		"items", count,
	)
}
