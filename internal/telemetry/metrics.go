package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"intervalcoach/internal/core/timekeeper"
)

// Metrics holds the workout collectors registered on one registry.
type Metrics struct {
	RunsStarted      prometheus.Counter
	RunsCompleted    prometheus.Counter
	Ticks            *prometheus.CounterVec
	PhaseRemaining   *prometheus.GaugeVec
	ListenerFailures *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "intervalcoach",
			Subsystem: "timer",
			Name:      "runs_started_total",
			Help:      "Total workout runs started.",
		}),
		RunsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "intervalcoach",
			Subsystem: "timer",
			Name:      "runs_completed_total",
			Help:      "Total workout runs that reached the end of their plan.",
		}),
		Ticks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intervalcoach",
			Subsystem: "timer",
			Name:      "ticks_total",
			Help:      "Total tick notifications, labelled by phase.",
		}, []string{"phase"}),
		PhaseRemaining: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "intervalcoach",
			Subsystem: "timer",
			Name:      "phase_remaining_seconds",
			Help:      "Seconds left in the current phase; zero for phases not running.",
		}, []string{"phase"}),
		ListenerFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intervalcoach",
			Subsystem: "events",
			Name:      "listener_failures_total",
			Help:      "Listener callbacks that panicked, labelled by notification kind.",
		}, []string{"kind"}),
	}
}

// Attach subscribes the collectors to keeper's notifications.
func (m *Metrics) Attach(keeper *timekeeper.TimeKeeper) {
	keeper.Started.Subscribe(func(timekeeper.RunInfo) {
		m.RunsStarted.Inc()
	})
	keeper.Tick.Subscribe(func(tick timekeeper.TickEvent) {
		m.Ticks.WithLabelValues(tick.Phase.String()).Inc()
		for _, phase := range []timekeeper.Phase{timekeeper.PhasePreparation, timekeeper.PhaseWork, timekeeper.PhaseRest} {
			value := 0.0
			if phase == tick.Phase {
				value = float64(tick.Remaining)
			}
			m.PhaseRemaining.WithLabelValues(phase.String()).Set(value)
		}
	})
	keeper.Ended.Subscribe(func(timekeeper.RunInfo) {
		m.RunsCompleted.Inc()
		m.PhaseRemaining.Reset()
	})
}

// RecordListenerFailure counts a failed listener; it matches eventhub.Diagnostics.
func (m *Metrics) RecordListenerFailure(kind string, _ error) {
	m.ListenerFailures.WithLabelValues(kind).Inc()
}
