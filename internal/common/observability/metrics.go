// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider    *metric.MeterProvider
	meter            otelmetric.Meter
	snapshotCounter  otelmetric.Int64Counter
	snapshotDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	snapshotCounter, _ := meter.Int64Counter(
		"statistics.snapshots",
		otelmetric.WithDescription("Number of statistics snapshots computed"),
	)

	snapshotDuration, _ := meter.Float64Histogram(
		"statistics.snapshot_duration",
		otelmetric.WithDescription("Statistics snapshot duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:    provider,
		meter:            meter,
		snapshotCounter:  snapshotCounter,
		snapshotDuration: snapshotDuration,
	}
}

func (o *Observability) RecordSnapshot(ctx context.Context, status string) {
	if o.snapshotCounter != nil {
		o.snapshotCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordSnapshotDuration(ctx context.Context, duration time.Duration, status string) {
	if o.snapshotDuration != nil {
		o.snapshotDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
