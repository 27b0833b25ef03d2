// Package sidegamemetrics records side-game service metrics.
package sidegamemetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SideGameMetrics is the metrics surface used by the side-game service.
type SideGameMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
	RecordResultsComputed(ctx context.Context, format string)
	RecordCacheHit(ctx context.Context)
	RecordCacheMiss(ctx context.Context)
}

type prometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	computed  *prometheus.CounterVec
	cache     *prometheus.CounterVec
}

// NewPrometheus registers the side-game collectors on reg.
func NewPrometheus(reg prometheus.Registerer, namespace string) (SideGameMetrics, error) {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sidegame",
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sidegame",
			Name:      "operation_success_total",
			Help:      "Service operations that completed without an infrastructure error.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sidegame",
			Name:      "operation_failures_total",
			Help:      "Service operations that returned an error or panicked.",
		}, []string{"operation", "service"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sidegame",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		computed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sidegame",
			Name:      "results_computed_total",
			Help:      "Game results computed, by format.",
		}, []string{"format"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sidegame",
			Name:      "results_cache_total",
			Help:      "Result cache lookups, by outcome.",
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.successes, m.failures, m.duration, m.computed, m.cache} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordResultsComputed(_ context.Context, format string) {
	m.computed.WithLabelValues(format).Inc()
}

func (m *prometheusMetrics) RecordCacheHit(_ context.Context) {
	m.cache.WithLabelValues("hit").Inc()
}

func (m *prometheusMetrics) RecordCacheMiss(_ context.Context) {
	m.cache.WithLabelValues("miss").Inc()
}

// NoOpMetrics discards every measurement.
type NoOpMetrics struct{}

// NewNoop returns metrics that record nothing.
func NewNoop() SideGameMetrics {
	return &NoOpMetrics{}
}

func (*NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (*NoOpMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (*NoOpMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (*NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (*NoOpMetrics) RecordResultsComputed(context.Context, string)                          {}
func (*NoOpMetrics) RecordCacheHit(context.Context)                                         {}
func (*NoOpMetrics) RecordCacheMiss(context.Context)                                        {}
