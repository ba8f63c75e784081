package montecarlo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for the simulation engine.
type Metrics struct {
	runsStarted   prometheus.Counter
	runsFinished  *prometheus.CounterVec
	activeRuns    prometheus.Gauge
	trialDuration prometheus.Histogram
	runDuration   *prometheus.HistogramVec
}

// NewMetrics creates engine metrics registered on the default registerer.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates engine metrics registered on a custom registerer.
// Tests use this with a throwaway registry to avoid duplicate registration.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		runsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tidecast_engine_runs_started_total",
			Help: "Total number of simulation runs accepted",
		}),

		runsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tidecast_engine_runs_finished_total",
			Help: "Total number of simulation runs reaching a terminal state",
		}, []string{"status"}),

		activeRuns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tidecast_engine_active_runs",
			Help: "Number of simulation runs currently executing",
		}),

		trialDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tidecast_engine_trial_duration_seconds",
			Help:    "Duration of individual Monte Carlo trials in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}),

		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tidecast_engine_run_duration_seconds",
			Help:    "End-to-end duration of simulation runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10), // 10ms to ~43m
		}, []string{"framework"}),
	}
}

// RecordRunStarted records an accepted run.
func (m *Metrics) RecordRunStarted() {
	if m == nil {
		return
	}
	m.runsStarted.Inc()
	m.activeRuns.Inc()
}

// RecordRunFinished records a run reaching a terminal state.
func (m *Metrics) RecordRunFinished(framework string, status Status, seconds float64) {
	if m == nil {
		return
	}
	m.runsFinished.WithLabelValues(string(status)).Inc()
	m.activeRuns.Dec()
	m.runDuration.WithLabelValues(framework).Observe(seconds)
}

// RecordTrialDuration records one trial's wall-clock duration.
func (m *Metrics) RecordTrialDuration(seconds float64) {
	if m == nil {
		return
	}
	m.trialDuration.Observe(seconds)
}
