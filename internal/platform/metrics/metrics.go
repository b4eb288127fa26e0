package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry groups the governance process collectors. One instance per process,
// built at the composition root and handed to the scheduler and HTTP server.
type Registry struct {
	Gatherer prometheus.Gatherer

	SweepRuns     *prometheus.CounterVec
	SweepItems    *prometheus.CounterVec
	SweepFailures *prometheus.CounterVec
	VotesCast     prometheus.Counter
	Notifications *prometheus.CounterVec
}

func New() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Registry{
		Gatherer: reg,
		SweepRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_sweep_runs_total",
			Help: "Scheduler entry point invocations by sweep name.",
		}, []string{"sweep"}),
		SweepItems: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_sweep_items_total",
			Help: "Records transitioned or materialized by sweep name.",
		}, []string{"sweep"}),
		SweepFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_sweep_failures_total",
			Help: "Sweep cycles that returned an error, by sweep name.",
		}, []string{"sweep"}),
		VotesCast: factory.NewCounter(prometheus.CounterOpts{
			Name: "governance_votes_cast_total",
			Help: "Ballots accepted by the voting engine.",
		}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_notifications_total",
			Help: "Notifications handed to the sink by kind.",
		}, []string{"kind"}),
	}
}
