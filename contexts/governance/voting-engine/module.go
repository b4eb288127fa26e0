package votingengine

import (
	"log/slog"

	httpadapter "comunidad/contexts/governance/voting-engine/adapters/http"
	"comunidad/contexts/governance/voting-engine/adapters/memory"
	"comunidad/contexts/governance/voting-engine/application/commands"
	"comunidad/contexts/governance/voting-engine/application/queries"
	"comunidad/contexts/governance/voting-engine/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Sessions  commands.SessionUseCase
	Casting   commands.CastVoteUseCase
	Breakdown queries.BreakdownUseCase
	Store     *memory.Store
}

type Dependencies struct {
	Sessions   ports.SessionRepository
	Votes      ports.VoteRepository
	Assemblies ports.AssemblyDirectory
	Properties ports.PropertyDirectory
	Certifiers ports.CertifierDirectory
	Sink       ports.NotificationSink
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	sessions := commands.SessionUseCase{
		Sessions:   deps.Sessions,
		Votes:      deps.Votes,
		Assemblies: deps.Assemblies,
		Certifiers: deps.Certifiers,
		Sink:       deps.Sink,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	casting := commands.CastVoteUseCase{
		Sessions:   deps.Sessions,
		Votes:      deps.Votes,
		Assemblies: deps.Assemblies,
		Properties: deps.Properties,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	breakdown := queries.BreakdownUseCase{
		Sessions: deps.Sessions,
		Votes:    deps.Votes,
	}
	return Module{
		Handler: httpadapter.Handler{
			Sessions:  sessions,
			Casting:   casting,
			Breakdown: breakdown,
			Logger:    deps.Logger,
		},
		Sessions:  sessions,
		Casting:   casting,
		Breakdown: breakdown,
	}
}

func NewInMemoryModule(sink ports.NotificationSink, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Sessions:   store,
		Votes:      store,
		Assemblies: store,
		Properties: store,
		Certifiers: store,
		Sink:       sink,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
