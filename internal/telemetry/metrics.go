package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level instruments, nil until InitMetrics runs. With telemetry
// disabled they come from the global no-op provider.
var (
	TodoOperationsTotal metric.Int64Counter
	TodoItems           metric.Int64UpDownCounter
)

// InitMetrics creates the instruments from the global meter provider.
// Call it after Init.
func InitMetrics() {
	meter := otel.Meter(instrumentationName)

	TodoOperationsTotal, _ = meter.Int64Counter("todo.operations.total",
		metric.WithDescription("Todo API operations by name and outcome"),
	)
	TodoItems, _ = meter.Int64UpDownCounter("todo.items",
		metric.WithDescription("Todo items currently stored"),
	)
}

// RecordOperation counts one todo operation. It tolerates InitMetrics not
// having run, which is the case in unit tests.
func RecordOperation(ctx context.Context, op, outcome string) {
	if TodoOperationsTotal == nil {
		return
	}
	TodoOperationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", outcome),
	))
}

// AddItems adjusts the stored item gauge by delta.
func AddItems(ctx context.Context, delta int64) {
	if TodoItems == nil {
		return
	}
	TodoItems.Add(ctx, delta)
}
