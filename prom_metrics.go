package workload

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromMetrics is a MetricsPolicy that exports task activity as
// Prometheus collectors. Register the values returned by Collectors.
type PromMetrics struct {
	executed prometheus.Counter
	queued   prometheus.Gauge
	removed  prometheus.Counter
}

// NewPromMetrics creates collectors labelled with the given task name.
func NewPromMetrics(task string) *PromMetrics {
	labels := prometheus.Labels{"task": task}
	return &PromMetrics{
		executed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "workload_executed_total",
			Help:        "Items computed by the task",
			ConstLabels: labels,
		}),
		queued: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "workload_queued",
			Help:        "Entries currently pending in the task",
			ConstLabels: labels,
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "workload_removed_total",
			Help:        "Entries removed after completing or being canceled",
			ConstLabels: labels,
		}),
	}
}

func (m *PromMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.executed, m.queued, m.removed}
}

func (m *PromMetrics) IncExecuted() { m.executed.Inc() }
func (m *PromMetrics) IncQueued()   { m.queued.Inc() }

func (m *PromMetrics) BatchDecQueued(n int64) {
	if n == 0 {
		return
	}
	m.queued.Sub(float64(n))
	m.removed.Add(float64(n))
}
