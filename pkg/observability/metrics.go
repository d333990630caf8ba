package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for engine activity.
// Collectors live on a private registry so several engines can coexist.
type Metrics struct {
	MachinesBuilt    *prometheus.CounterVec
	StringsEvaluated *prometheus.CounterVec
	TrapsDiscovered  *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers the engine collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		MachinesBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_machines_built_total",
				Help: "Total number of machine descriptions built, by resulting kind",
			},
			[]string{"kind"},
		),
		StringsEvaluated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_strings_evaluated_total",
				Help: "Total number of candidate strings evaluated",
			},
			[]string{"machine", "outcome"},
		),
		TrapsDiscovered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_traps_discovered_total",
				Help: "Machines whose implicit trap state was reached",
			},
			[]string{"machine"},
		),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.MachinesBuilt, m.StringsEvaluated, m.TrapsDiscovered)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMachineBuilt: func(_ context.Context, e *domain.MachineEvent) {
			m.MachinesBuilt.WithLabelValues(e.Kind.String()).Inc()
		},
		OnStringEvaluated: func(_ context.Context, e *domain.MatchEvent) {
			m.StringsEvaluated.WithLabelValues(e.Machine, string(e.Outcome)).Inc()
		},
		OnTrapDiscovered: func(_ context.Context, e *domain.MachineEvent) {
			m.TrapsDiscovered.WithLabelValues(e.Machine).Inc()
		},
	}
}

// Registry exposes the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
