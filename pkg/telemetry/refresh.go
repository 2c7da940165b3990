package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

const (
	AttrDataset = "beemo_dataset"
	AttrStatus  = "beemo_status"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RefreshMetrics covers one refresh cycle: how often it ran, how long it
// took and how much CSV each dataset produced.
type RefreshMetrics struct {
	cycles   otelmetric.Int64Counter
	duration otelmetric.Float64Histogram
	bytes    otelmetric.Int64Counter
	rows     otelmetric.Int64Counter
}

func NewRefreshMetrics(meter otelmetric.Meter) (*RefreshMetrics, error) {
	cycles, err := meter.Int64Counter(
		"beemo_refresh_cycles_total",
		otelmetric.WithDescription("Completed dataset refresh cycles, by status"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"beemo_refresh_duration_seconds",
		otelmetric.WithDescription("Wall time of a full refresh cycle"),
		otelmetric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	bytes, err := meter.Int64Counter(
		"beemo_dataset_bytes",
		otelmetric.WithDescription("Size of the published CSV per dataset"),
		otelmetric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := meter.Int64Counter(
		"beemo_dataset_rows",
		otelmetric.WithDescription("Published rows per dataset, header excluded"),
	)
	if err != nil {
		return nil, err
	}

	return &RefreshMetrics{cycles: cycles, duration: duration, bytes: bytes, rows: rows}, nil
}

// RecordDataset records one refreshed dataset.
func (m *RefreshMetrics) RecordDataset(ctx context.Context, dataset string, bytes, rows int) {
	attrs := otelmetric.WithAttributes(attribute.String(AttrDataset, dataset))
	m.bytes.Add(ctx, int64(bytes), attrs)
	m.rows.Add(ctx, int64(rows), attrs)
}

// RecordCycle records the outcome of a whole refresh cycle.
func (m *RefreshMetrics) RecordCycle(ctx context.Context, elapsed time.Duration, success bool) {
	status := StatusSuccess
	if !success {
		status = StatusError
	}
	attrs := otelmetric.WithAttributes(attribute.String(AttrStatus, status))
	m.cycles.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
