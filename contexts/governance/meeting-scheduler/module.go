package meetingscheduler

import (
	"log/slog"

	httpadapter "comunidad/contexts/governance/meeting-scheduler/adapters/http"
	"comunidad/contexts/governance/meeting-scheduler/adapters/memory"
	"comunidad/contexts/governance/meeting-scheduler/application"
	"comunidad/contexts/governance/meeting-scheduler/application/workers"
	"comunidad/contexts/governance/meeting-scheduler/ports"
)

type Module struct {
	Handler      httpadapter.Handler
	Service      application.Service
	Materializer workers.Materializer
	Store        *memory.Store
}

type Dependencies struct {
	Schedules ports.ScheduleRepository
	Meetings  ports.MeetingCreator
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Schedules: deps.Schedules,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Schedules: service,
			Logger:    deps.Logger,
		},
		Service: service,
		Materializer: workers.Materializer{
			Schedules: deps.Schedules,
			Meetings:  deps.Meetings,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Schedules: store,
		Meetings:  store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
