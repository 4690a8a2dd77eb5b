// Package metrics exposes Prometheus collectors for the aggregation cycle.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tillsync"

// Cycle outcomes used as the "outcome" label.
const (
	OutcomeSuccess        = "success"
	OutcomeFetchFailed    = "fetch_failed"
	OutcomePersistFailed  = "persist_failed"
	OutcomeLockFailed     = "lock_failed"
	OutcomePartialFailure = "partial_failure"
)

// Recorder is the write side the cycle uses. A nil *Metrics is a valid no-op Recorder.
type Recorder interface {
	CycleFinished(outcome string, elapsed time.Duration)
	RowsSkipped(n int)
	OrdersIngested(n int)
	DuplicateOrders(n int)
	AggregateUpsertFailed()
	AckFailed()
}

// Metrics holds every collector, registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	cycles          *prometheus.CounterVec
	cycleDuration   prometheus.Histogram
	rowsSkipped     prometheus.Counter
	ordersIngested  prometheus.Counter
	duplicateOrders prometheus.Counter
	upsertFailures  prometheus.Counter
	ackFailures     prometheus.Counter
}

var _ Recorder = (*Metrics)(nil)

// New creates the collectors on a fresh registry together with the Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg)
}

// NewWithRegistry registers the cycle collectors on reg.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cycle",
			Name:      "runs_total",
			Help:      "Aggregation cycles by outcome.",
		}, []string{"outcome"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cycle",
			Name:      "duration_seconds",
			Help:      "Wall time of one aggregation cycle, lock wait included.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		rowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "rows_skipped_total",
			Help:      "Purchase rows dropped as malformed.",
		}),
		ordersIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "orders_total",
			Help:      "Orders persisted and folded into aggregates.",
		}),
		duplicateOrders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "duplicate_orders_total",
			Help:      "Redelivered orders skipped by the dedup check.",
		}),
		upsertFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregate",
			Name:      "upsert_failures_total",
			Help:      "Aggregate upserts that failed and left the aggregate stale.",
		}),
		ackFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "device",
			Name:      "ack_failures_total",
			Help:      "Buffer clear requests that failed after a successful persist.",
		}),
	}

	reg.MustRegister(
		m.cycles,
		m.cycleDuration,
		m.rowsSkipped,
		m.ordersIngested,
		m.duplicateOrders,
		m.upsertFailures,
		m.ackFailures,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) CycleFinished(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(outcome).Inc()
	m.cycleDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) RowsSkipped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rowsSkipped.Add(float64(n))
}

func (m *Metrics) OrdersIngested(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ordersIngested.Add(float64(n))
}

func (m *Metrics) DuplicateOrders(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.duplicateOrders.Add(float64(n))
}

func (m *Metrics) AggregateUpsertFailed() {
	if m == nil {
		return
	}
	m.upsertFailures.Inc()
}

func (m *Metrics) AckFailed() {
	if m == nil {
		return
	}
	m.ackFailures.Inc()
}
