package taskpool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics exports pool activity as Prometheus collectors.
type PrometheusMetrics struct {
	queued   prometheus.Gauge
	executed prometheus.Counter
	panicked prometheus.Counter
	workers  prometheus.Gauge
	latency  prometheus.Histogram
}

// NewPrometheusMetrics creates the pool collectors and registers them
// with reg. A nil reg means prometheus.DefaultRegisterer.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) (*PrometheusMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &PrometheusMetrics{
		queued: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "taskpool",
			Name:      "tasks_queued",
			Help:      "Number of tasks waiting in the queue.",
		}),
		executed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "taskpool",
			Name:      "tasks_executed_total",
			Help:      "Number of tasks executed, including panicked ones.",
		}),
		panicked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "taskpool",
			Name:      "tasks_panicked_total",
			Help:      "Number of tasks that panicked.",
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "taskpool",
			Name:      "workers",
			Help:      "Number of running workers.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "taskpool",
			Name:      "task_duration_seconds",
			Help:      "Task execution time.",

			// 24 buckets: [10us, 20us, ..., 84s, +Inf]
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 24),
		}),
	}
	for _, c := range []prometheus.Collector{m.queued, m.executed, m.panicked, m.workers, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) IncQueued()       { m.queued.Inc() }
func (m *PrometheusMetrics) DecQueued()       { m.queued.Dec() }
func (m *PrometheusMetrics) IncExecuted()     { m.executed.Inc() }
func (m *PrometheusMetrics) IncPanicked()     { m.panicked.Inc() }
func (m *PrometheusMetrics) SetWorkers(n int) { m.workers.Set(float64(n)) }

func (m *PrometheusMetrics) ObserveExecution(d time.Duration) {
	m.latency.Observe(d.Seconds())
}
