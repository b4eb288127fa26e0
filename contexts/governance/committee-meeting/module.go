package committeemeeting

import (
	"log/slog"

	httpadapter "comunidad/contexts/governance/committee-meeting/adapters/http"
	"comunidad/contexts/governance/committee-meeting/adapters/memory"
	"comunidad/contexts/governance/committee-meeting/application"
	"comunidad/contexts/governance/committee-meeting/application/workers"
	"comunidad/contexts/governance/committee-meeting/ports"
)

type Module struct {
	Handler       httpadapter.Handler
	Service       application.Service
	ReminderSweep workers.ReminderSweep
	Store         *memory.Store
}

type Dependencies struct {
	Meetings       ports.MeetingRepository
	Agreements     ports.AgreementCreator
	Dedup          ports.NotificationDedup
	Sink           ports.NotificationSink
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	DerivedDueDays int
	ReminderWindow int
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Meetings:       deps.Meetings,
		Agreements:     deps.Agreements,
		Clock:          deps.Clock,
		IDGen:          deps.IDGen,
		DerivedDueDays: deps.DerivedDueDays,
		Logger:         deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Meetings: service,
			Logger:   deps.Logger,
		},
		Service: service,
		ReminderSweep: workers.ReminderSweep{
			Meetings:   deps.Meetings,
			Dedup:      deps.Dedup,
			Sink:       deps.Sink,
			Clock:      deps.Clock,
			IDGen:      deps.IDGen,
			WindowDays: deps.ReminderWindow,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(sink ports.NotificationSink, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Meetings:   store,
		Agreements: store,
		Dedup:      store,
		Sink:       sink,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
