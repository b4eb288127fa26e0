package assemblylifecycle

import (
	"log/slog"

	httpadapter "comunidad/contexts/governance/assembly-lifecycle/adapters/http"
	"comunidad/contexts/governance/assembly-lifecycle/adapters/memory"
	"comunidad/contexts/governance/assembly-lifecycle/application"
	"comunidad/contexts/governance/assembly-lifecycle/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Assemblies     ports.AssemblyRepository
	Properties     ports.PropertyDirectory
	Sessions       ports.SessionDirectory
	Agreements     ports.AgreementCreator
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	DerivedDueDays int
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Assemblies:     deps.Assemblies,
		Properties:     deps.Properties,
		Sessions:       deps.Sessions,
		Agreements:     deps.Agreements,
		Clock:          deps.Clock,
		IDGen:          deps.IDGen,
		DerivedDueDays: deps.DerivedDueDays,
		Logger:         deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Assemblies: service,
			Logger:     deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Assemblies: store,
		Properties: store,
		Sessions:   store,
		Agreements: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
