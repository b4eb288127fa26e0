package agreementtracker

import (
	"log/slog"

	httpadapter "comunidad/contexts/governance/agreement-tracker/adapters/http"
	"comunidad/contexts/governance/agreement-tracker/adapters/memory"
	"comunidad/contexts/governance/agreement-tracker/application"
	"comunidad/contexts/governance/agreement-tracker/application/workers"
	"comunidad/contexts/governance/agreement-tracker/domain/entities"
	"comunidad/contexts/governance/agreement-tracker/ports"
)

type Module struct {
	Handler      httpadapter.Handler
	Service      application.Service
	OverdueSweep workers.OverdueSweep
	DueSoonSweep workers.DueSoonSweep
	Store        *memory.Store
}

type Dependencies struct {
	Agreements          ports.AgreementRepository
	FollowUps           ports.FollowUpRepository
	Dedup               ports.NotificationDedup
	Sink                ports.NotificationSink
	Clock               ports.Clock
	IDGen               ports.IDGenerator
	AutoCreateFollowUps bool
	SweepBatchSize      int
	DueSoonWindowDays   int
	Logger              *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Agreements:          deps.Agreements,
		FollowUps:           deps.FollowUps,
		Clock:               deps.Clock,
		IDGen:               deps.IDGen,
		AutoCreateFollowUps: deps.AutoCreateFollowUps,
		DueSoonDays:         deps.DueSoonWindowDays,
		Logger:              deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Agreements: service,
			Logger:     deps.Logger,
		},
		Service: service,
		OverdueSweep: workers.OverdueSweep{
			Agreements: deps.Agreements,
			Dedup:      deps.Dedup,
			Sink:       deps.Sink,
			Clock:      deps.Clock,
			IDGen:      deps.IDGen,
			BatchSize:  deps.SweepBatchSize,
			Logger:     deps.Logger,
		},
		DueSoonSweep: workers.DueSoonSweep{
			Agreements: deps.Agreements,
			Dedup:      deps.Dedup,
			Sink:       deps.Sink,
			Clock:      deps.Clock,
			IDGen:      deps.IDGen,
			BatchSize:  deps.SweepBatchSize,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Agreement, sink ports.NotificationSink, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Agreements:          store,
		FollowUps:           store,
		Dedup:               store,
		Sink:                sink,
		Clock:               store,
		IDGen:               store,
		AutoCreateFollowUps: true,
		Logger:              logger,
	})
	module.Store = store
	return module
}
