// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by route template, method and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spendwise",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled, by route, method and status code.",
	}, []string{"route", "method", "status"})

	// HTTPDuration observes request latency by route template and method.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "spendwise",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// Aggregations counts engine runs by summary operation and outcome.
	Aggregations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spendwise",
		Subsystem: "summary",
		Name:      "aggregations_total",
		Help:      "Budget aggregations computed, by operation and result.",
	}, []string{"operation", "result"})

	// SnapshotDuration observes how long loading an aggregation snapshot takes.
	SnapshotDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "spendwise",
		Subsystem: "summary",
		Name:      "snapshot_load_seconds",
		Help:      "Time spent loading expenses, fixed expenses and income for one aggregation.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	})

	// AuditWriteFailures counts audit entries that could not be stored.
	AuditWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "spendwise",
		Subsystem: "audit",
		Name:      "write_failures_total",
		Help:      "Audit log entries dropped because the insert failed.",
	})
)

// ObserveAggregation records the outcome of one summary operation.
func ObserveAggregation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	Aggregations.WithLabelValues(operation, result).Inc()
}
