// Package metrics exposes Prometheus metrics for table factory invocations.
//
// # Basic Usage
//
//	timer := metrics.NewTimer("mysql-x")
//	src, err := factory.CreateTableSource(ctx)
//	metrics.ObserveInvocation("mysql-x", metrics.KindSource, err, timer.Stop())
//
// Every invocation increments nebula_table_factory_invocations_total; failed
// invocations additionally increment nebula_table_factory_validation_errors_total
// labelled with the error category.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ajitpratap0/nebula-jdbc/pkg/nebulaerrors"
)

// Invocation kinds
const (
	KindSource = "source"
	KindSink   = "sink"
)

// Invocation results
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// FactoryInvocations counts table factory invocations.
	// Labels: connector (factory identifier), kind (source/sink), result (success/failure)
	//
	// Example:
	//	metrics.FactoryInvocations.WithLabelValues("mysql-x", "source", "success").Inc()
	FactoryInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_table_factory_invocations_total",
			Help: "Total number of table factory invocations",
		},
		[]string{"connector", "kind", "result"},
	)

	// ValidationErrors counts rejected table definitions by error category.
	// Labels: connector (factory identifier), error_type (nebulaerrors.ErrorType)
	ValidationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_table_factory_validation_errors_total",
			Help: "Total number of table definitions rejected by option validation",
		},
		[]string{"connector", "error_type"},
	)

	// FactoryLatency tracks how long option resolution takes, in seconds.
	FactoryLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "nebula_table_factory_duration_seconds",
			Help: "Table factory option resolution latency in seconds",
			Buckets: []float64{
				1e-6, // 1μs
				1e-5, // 10μs
				1e-4, // 100μs
				1e-3, // 1ms
				1e-2, // 10ms
				1e-1, // 100ms
			},
		},
		[]string{"connector", "kind"},
	)
)

// ObserveInvocation records the outcome and latency of one factory invocation.
func ObserveInvocation(connector, kind string, err error, elapsed time.Duration) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
		errType := string(nebulaerrors.TypeOf(err))
		if errType == "" {
			errType = string(nebulaerrors.ErrorTypeInternal)
		}
		ValidationErrors.WithLabelValues(connector, errType).Inc()
	}
	FactoryInvocations.WithLabelValues(connector, kind, result).Inc()
	FactoryLatency.WithLabelValues(connector, kind).Observe(elapsed.Seconds())
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
// The name parameter is for identification in logs or metrics.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the name the timer was created with.
func (t *Timer) Name() string { return t.name }

// Stop returns the elapsed duration since creation. The timer can be stopped
// multiple times, each returning the total elapsed time since creation.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
