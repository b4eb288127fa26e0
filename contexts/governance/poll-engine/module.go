package pollengine

import (
	"log/slog"

	httpadapter "comunidad/contexts/governance/poll-engine/adapters/http"
	"comunidad/contexts/governance/poll-engine/adapters/memory"
	"comunidad/contexts/governance/poll-engine/application"
	"comunidad/contexts/governance/poll-engine/application/workers"
	"comunidad/contexts/governance/poll-engine/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Service   application.Service
	AutoClose workers.AutoClose
	Store     *memory.Store
}

type Dependencies struct {
	Polls    ports.PollRepository
	Audience ports.AudienceDirectory
	Sink     ports.NotificationSink
	Dedup    ports.NotificationDedup
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Polls:    deps.Polls,
		Audience: deps.Audience,
		Sink:     deps.Sink,
		Dedup:    deps.Dedup,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Polls:  service,
			Logger: deps.Logger,
		},
		Service: service,
		AutoClose: workers.AutoClose{
			Polls:  deps.Polls,
			Closer: service,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(sink ports.NotificationSink, logger *slog.Logger) Module {
	store := memory.NewStore()
	if sink == nil {
		sink = store
	}
	module := NewModule(Dependencies{
		Polls:    store,
		Audience: store,
		Sink:     sink,
		Dedup:    store,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
