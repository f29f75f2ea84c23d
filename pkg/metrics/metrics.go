// Package metrics exposes prometheus metrics about datadesk sessions.
//
// Sessions are short-lived (one per CLI invocation), so metrics are not scraped:
// they are written to a file in the prometheus text format, to be picked up
// by the node exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "datadesk"

// M describes metrics for a session
type M struct {
	Commits      prometheus.Counter
	Checkpoints  prometheus.Counter
	Rollbacks    *prometheus.CounterVec
	Versions     prometheus.Gauge
	HistoryBytes prometheus.Gauge

	registry *prometheus.Registry
}

// New builds metrics registered on a fresh registry
func New() *M {
	m := &M{
		Commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_total",
			Help:      "Number of versions committed",
		}),
		Checkpoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkpoints_total",
			Help:      "Number of checkpoints created",
		}),
		Rollbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollbacks_total",
			Help:      "Number of rollbacks, by outcome",
		}, []string{"outcome"}),
		Versions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_versions",
			Help:      "Number of versions kept in history",
		}),
		HistoryBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_bytes",
			Help:      "Estimated memory held by the history, in bytes",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(m.Commits, m.Checkpoints, m.Rollbacks, m.Versions, m.HistoryBytes)
	return m
}

// Rollback counts a rollback with its outcome
func (m *M) Rollback(outcome string) {
	m.Rollbacks.WithLabelValues(outcome).Inc()
}

// History records the size of the history
func (m *M) History(versions int, bytes int64) {
	m.Versions.Set(float64(versions))
	m.HistoryBytes.Set(float64(bytes))
}

// Registry returns the registry holding these metrics
func (m *M) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics to a file, in the prometheus text format
func (m *M) WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, m.registry)
}
