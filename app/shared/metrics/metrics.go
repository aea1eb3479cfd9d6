// Package metrics defines the operation metrics contract service layers
// record against, with an OTel-backed implementation and a no-op for tests.
package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OperationMetrics records per-operation counters and durations for a
// service component.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, component string)
	RecordOperationSuccess(ctx context.Context, operation, component string)
	RecordOperationFailure(ctx context.Context, operation, component string)
	RecordOperationDuration(ctx context.Context, operation, component string, duration time.Duration)
}

// OTelMetrics implements OperationMetrics on an OTel meter.
type OTelMetrics struct {
	attempts  metric.Int64Counter
	successes metric.Int64Counter
	failures  metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewOTelMetrics registers the instruments on the given meter.
func NewOTelMetrics(meter metric.Meter) (*OTelMetrics, error) {
	attempts, err := meter.Int64Counter("operation_attempts_total")
	if err != nil {
		return nil, err
	}
	successes, err := meter.Int64Counter("operation_successes_total")
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("operation_failures_total")
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("operation_duration_seconds")
	if err != nil {
		return nil, err
	}
	return &OTelMetrics{
		attempts:  attempts,
		successes: successes,
		failures:  failures,
		duration:  duration,
	}, nil
}

func opAttrs(operation, component string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("component", component),
	)
}

func (m *OTelMetrics) RecordOperationAttempt(ctx context.Context, operation, component string) {
	m.attempts.Add(ctx, 1, opAttrs(operation, component))
}

func (m *OTelMetrics) RecordOperationSuccess(ctx context.Context, operation, component string) {
	m.successes.Add(ctx, 1, opAttrs(operation, component))
}

func (m *OTelMetrics) RecordOperationFailure(ctx context.Context, operation, component string) {
	m.failures.Add(ctx, 1, opAttrs(operation, component))
}

func (m *OTelMetrics) RecordOperationDuration(ctx context.Context, operation, component string, duration time.Duration) {
	m.duration.Record(ctx, duration.Seconds(), opAttrs(operation, component))
}

// NoOpMetrics satisfies OperationMetrics without recording anything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)                {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)                {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
