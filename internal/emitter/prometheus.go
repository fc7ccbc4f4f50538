// Package emitter publishes collection metrics for watch mode.
package emitter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records collection outcomes. It satisfies collector.Observer so a
// Collector can report per-region events without knowing about Prometheus.
type Metrics struct {
	instancesCollected *prometheus.GaugeVec
	pageFailures       *prometheus.CounterVec
	runDuration        prometheus.Histogram
	runsTotal          prometheus.Counter
}

// NewMetrics registers the collection metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		instancesCollected: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ec2inv_instances_collected",
			Help: "Instances collected in the most recent run, per region.",
		}, []string{"region"}),
		pageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ec2inv_page_failures_total",
			Help: "Describe-instances page fetches that failed and truncated a region.",
		}, []string{"region"}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ec2inv_run_duration_seconds",
			Help:    "Time taken by a full collection run.",
			Buckets: prometheus.DefBuckets,
		}),
		runsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ec2inv_runs_total",
			Help: "Completed collection runs.",
		}),
	}
}

// RegionCollected records the instance count for a region.
func (m *Metrics) RegionCollected(region string, count int) {
	m.instancesCollected.WithLabelValues(region).Set(float64(count))
}

// PageFailure records a truncated region.
func (m *Metrics) PageFailure(region string) {
	m.pageFailures.WithLabelValues(region).Inc()
}

// RunCompleted records a finished run and its duration in seconds.
func (m *Metrics) RunCompleted(seconds float64) {
	m.runsTotal.Inc()
	m.runDuration.Observe(seconds)
}
