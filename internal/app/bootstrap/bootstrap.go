package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	agreementtracker "comunidad/contexts/governance/agreement-tracker"
	agreementmemory "comunidad/contexts/governance/agreement-tracker/adapters/memory"
	agreementpostgres "comunidad/contexts/governance/agreement-tracker/adapters/postgres"
	assemblylifecycle "comunidad/contexts/governance/assembly-lifecycle"
	assemblymemory "comunidad/contexts/governance/assembly-lifecycle/adapters/memory"
	committeemeeting "comunidad/contexts/governance/committee-meeting"
	meetingmemory "comunidad/contexts/governance/committee-meeting/adapters/memory"
	meetingscheduler "comunidad/contexts/governance/meeting-scheduler"
	schedulermemory "comunidad/contexts/governance/meeting-scheduler/adapters/memory"
	memberregistry "comunidad/contexts/governance/member-registry"
	membermemory "comunidad/contexts/governance/member-registry/adapters/memory"
	pollengine "comunidad/contexts/governance/poll-engine"
	pollmemory "comunidad/contexts/governance/poll-engine/adapters/memory"
	propertyview "comunidad/contexts/governance/property-view"
	votingengine "comunidad/contexts/governance/voting-engine"
	votingmemory "comunidad/contexts/governance/voting-engine/adapters/memory"
	votingpostgres "comunidad/contexts/governance/voting-engine/adapters/postgres"
	votingports "comunidad/contexts/governance/voting-engine/ports"
	"comunidad/internal/platform/config"
	"comunidad/internal/platform/db"
	"comunidad/internal/platform/httpserver"
	"comunidad/internal/platform/messaging"
	"comunidad/internal/platform/metrics"
	"comunidad/internal/platform/scheduler"
)

// Package bootstrap is the composition root. Construction and cross-context
// wiring stay here so module code never imports sibling contexts.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	scheduler *scheduler.Scheduler
	entries   []scheduler.EntryPoint
	postgres  *db.Postgres
	logger    *slog.Logger
}

// moduleSet is the fully wired governance core shared by both processes.
type moduleSet struct {
	properties propertyview.Module
	members    memberregistry.Module
	agreements agreementtracker.Module
	voting     votingengine.Module
	assemblies assemblylifecycle.Module
	meetings   committeemeeting.Module
	schedules  meetingscheduler.Module
	polls      pollengine.Module
	postgres   *db.Postgres
	bus        *messaging.Bus
}

// buildModules wires every governance module. With a Postgres DSN the
// agreement and voting repositories run on the database; the remaining
// modules stay on their memory adapters.
func buildModules(cfg config.Config, logger *slog.Logger) (*moduleSet, error) {
	bus := messaging.NewBus(logger)
	properties := propertyview.NewInMemoryModule(nil)

	var pg *db.Postgres
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		var err error
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
	}

	memberStore := membermemory.NewStore(nil)
	members := memberregistry.NewModule(memberregistry.Dependencies{
		Members:    memberStore,
		Properties: memberPropertyDirectory{registry: properties.Registry},
		Clock:      memberStore,
		IDGen:      memberStore,
		Logger:     logger,
	})
	members.Store = memberStore

	agreementDeps := agreementtracker.Dependencies{
		Sink:                bus,
		AutoCreateFollowUps: true,
		SweepBatchSize:      cfg.OverdueSweepBatchSize,
		DueSoonWindowDays:   cfg.DueSoonWindowDays,
		Logger:              logger,
	}
	var agreementStore *agreementmemory.Store
	if pg != nil {
		repo := agreementpostgres.NewRepository(pg.DB, logger)
		agreementDeps.Agreements = repo
		agreementDeps.FollowUps = repo
		agreementDeps.Dedup = repo
		agreementDeps.Clock = agreementpostgres.SystemClock{}
		agreementDeps.IDGen = agreementpostgres.UUIDGenerator{}
	} else {
		agreementStore = agreementmemory.NewStore(nil)
		agreementDeps.Agreements = agreementStore
		agreementDeps.FollowUps = agreementStore
		agreementDeps.Dedup = agreementStore
		agreementDeps.Clock = agreementStore
		agreementDeps.IDGen = agreementStore
	}
	agreements := agreementtracker.NewModule(agreementDeps)
	agreements.Store = agreementStore

	var (
		sessionRepo votingports.SessionRepository
		voteRepo    votingports.VoteRepository
		votingClock votingports.Clock
		votingIDGen votingports.IDGenerator
		votingStore *votingmemory.Store
	)
	if pg != nil {
		repo := votingpostgres.NewRepository(pg.DB, logger)
		sessionRepo = repo
		voteRepo = repo
		votingClock = votingpostgres.SystemClock{}
		votingIDGen = votingpostgres.UUIDGenerator{}
	} else {
		votingStore = votingmemory.NewStore()
		sessionRepo = votingStore
		voteRepo = votingStore
		votingClock = votingStore
		votingIDGen = votingStore
	}

	assemblyStore := assemblymemory.NewStore()
	assemblies := assemblylifecycle.NewModule(assemblylifecycle.Dependencies{
		Assemblies: assemblyStore,
		Properties: propertyRefDirectory{registry: properties.Registry},
		Sessions:   sessionDirectory{sessions: sessionRepo},
		Agreements: assemblyAgreements{agreements: agreements.Service},
		Clock:      assemblyStore,
		IDGen:      assemblyStore,
		Logger:     logger,
	})
	assemblies.Store = assemblyStore

	voting := votingengine.NewModule(votingengine.Dependencies{
		Sessions:   sessionRepo,
		Votes:      voteRepo,
		Assemblies: assemblyDirectory{assemblies: assemblies.Service},
		Properties: ownershipDirectory{registry: properties.Registry},
		Certifiers: certifierDirectory{members: memberStore},
		Sink:       bus,
		Clock:      votingClock,
		IDGen:      votingIDGen,
		Logger:     logger,
	})
	voting.Store = votingStore

	meetingStore := meetingmemory.NewStore()
	meetings := committeemeeting.NewModule(committeemeeting.Dependencies{
		Meetings:   meetingStore,
		Agreements: meetingAgreements{agreements: agreements.Service},
		Dedup:      meetingStore,
		Sink:       bus,
		Clock:      meetingStore,
		IDGen:      meetingStore,
		Logger:     logger,
	})
	meetings.Store = meetingStore

	scheduleStore := schedulermemory.NewStore()
	schedules := meetingscheduler.NewModule(meetingscheduler.Dependencies{
		Schedules: scheduleStore,
		Meetings:  scheduledMeetings{meetings: meetings.Service},
		Clock:     scheduleStore,
		IDGen:     scheduleStore,
		Logger:    logger,
	})
	schedules.Store = scheduleStore

	pollStore := pollmemory.NewStore()
	polls := pollengine.NewModule(pollengine.Dependencies{
		Polls:    pollStore,
		Audience: pollAudience{members: memberStore, registry: properties.Registry},
		Sink:     bus,
		Dedup:    pollStore,
		Clock:    pollStore,
		IDGen:    pollStore,
		Logger:   logger,
	})
	polls.Store = pollStore

	return &moduleSet{
		properties: properties,
		members:    members,
		agreements: agreements,
		voting:     voting,
		assemblies: assemblies,
		meetings:   meetings,
		schedules:  schedules,
		polls:      polls,
		postgres:   pg,
		bus:        bus,
	}, nil
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	modules, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	registry := metrics.New()
	server := httpserver.New(
		modules.members,
		modules.agreements,
		modules.voting,
		modules.assemblies,
		modules.meetings,
		modules.schedules,
		modules.polls,
		registry,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: modules.postgres,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	modules, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	registry := metrics.New()
	sched := scheduler.New(logger, registry)

	var entries []scheduler.EntryPoint
	if cfg.EnableOverdueSweep {
		entries = append(entries, scheduler.EntryPoint{
			Name: "sweep_overdue_agreements",
			Spec: "@daily",
			Run:  modules.agreements.OverdueSweep.RunOnce,
		})
	}
	if cfg.EnableDueSoonReminders {
		entries = append(entries, scheduler.EntryPoint{
			Name: "send_due_soon_reminders",
			Spec: "@daily",
			Run:  modules.agreements.DueSoonSweep.RunOnce,
		})
	}
	if cfg.EnableScheduleMaterializer {
		entries = append(entries, scheduler.EntryPoint{
			Name: "materialize_upcoming_meetings",
			Spec: "@daily",
			Run:  modules.schedules.Materializer.RunOnce,
		})
	}
	if cfg.EnablePollAutoClose {
		entries = append(entries, scheduler.EntryPoint{
			Name: "close_expired_polls",
			Spec: "@daily",
			Run:  modules.polls.AutoClose.RunOnce,
		})
	}
	if cfg.EnableMeetingReminders {
		entries = append(entries, scheduler.EntryPoint{
			Name: "send_meeting_reminders",
			Spec: "@weekly",
			Run:  modules.meetings.ReminderSweep.RunOnce,
		})
	}
	for _, entry := range entries {
		if err := sched.Register(entry); err != nil {
			return nil, err
		}
	}

	return &WorkerApp{
		scheduler: sched,
		entries:   entries,
		postgres:  modules.postgres,
		logger:    logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

// Run executes every sweep once on start, then hands control to cron until
// the context ends.
func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"entries", len(w.entries),
	)
	w.scheduler.RunAll(ctx, w.entries)
	w.scheduler.Start()
	<-ctx.Done()
	<-w.scheduler.Stop().Done()
	return nil
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
