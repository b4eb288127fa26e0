package memberregistry

import (
	"log/slog"

	httpadapter "comunidad/contexts/governance/member-registry/adapters/http"
	"comunidad/contexts/governance/member-registry/adapters/memory"
	"comunidad/contexts/governance/member-registry/application"
	"comunidad/contexts/governance/member-registry/domain/entities"
	"comunidad/contexts/governance/member-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Members    ports.MemberRepository
	Properties ports.PropertyDirectory
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Members:    deps.Members,
		Properties: deps.Properties,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Members: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(seed []entities.Member, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Members:    store,
		Properties: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
