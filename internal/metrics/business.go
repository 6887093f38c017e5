package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics defines the interface for recording business operation metrics.
// Implementations track operation counts, durations and anonymized value volume
// across the keys, anonymization and audit domains.
type BusinessMetrics interface {
	// RecordOperation records a business operation with its status.
	// Domain examples: "keys", "anonymization"
	// Operation examples: "obtain_secret", "anonymize_hash", "audit_record"
	// Status examples: "success", "error"
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the duration of a business operation with its status.
	// Duration is recorded in seconds as a histogram for percentile calculations.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordValues adds count to the number of cell values processed by an operation.
	RecordValues(ctx context.Context, domain, operation string, count int64)
}

// operationBuckets cover sub-millisecond tokenization up to multi-second batch runs.
var operationBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30}

type businessMetrics struct {
	operations metric.Int64Counter
	durations  metric.Float64Histogram
	values     metric.Int64Counter
}

// NewBusinessMetrics registers the business instruments on meterProvider. Every
// instrument name is prefixed with namespace, e.g. "anonymizer_operations_total".
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operations, err := meter.Int64Counter(
		namespace+"_operations_total",
		metric.WithDescription("Business operations by domain, operation and status"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durations, err := meter.Float64Histogram(
		namespace+"_operation_duration_seconds",
		metric.WithDescription("Business operation latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(operationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	values, err := meter.Int64Counter(
		namespace+"_values_total",
		metric.WithDescription("Cell values pseudonymized"),
		metric.WithUnit("{value}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create value counter: %w", err)
	}

	return &businessMetrics{operations: operations, durations: durations, values: values}, nil
}

func operationAttrs(domain, operation string, extra ...attribute.KeyValue) metric.MeasurementOption {
	attrs := append([]attribute.KeyValue{
		attribute.String("domain", domain),
		attribute.String("operation", operation),
	}, extra...)
	return metric.WithAttributes(attrs...)
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operations.Add(ctx, 1, operationAttrs(domain, operation, attribute.String("status", status)))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durations.Record(ctx, duration.Seconds(), operationAttrs(domain, operation, attribute.String("status", status)))
}

func (b *businessMetrics) RecordValues(ctx context.Context, domain, operation string, count int64) {
	if count <= 0 {
		return
	}
	b.values.Add(ctx, count, operationAttrs(domain, operation))
}

// NoOpBusinessMetrics discards every measurement. The container uses it when
// metrics are disabled so decorators never check for nil.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics returns a recorder that drops all measurements.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (*NoOpBusinessMetrics) RecordOperation(context.Context, string, string, string) {}

func (*NoOpBusinessMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {}

func (*NoOpBusinessMetrics) RecordValues(context.Context, string, string, int64) {}
