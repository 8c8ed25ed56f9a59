package telemetry

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Timer records durations in milliseconds on a histogram.
type Timer struct {
	histogram metric.Float64Histogram
	attrs     []attribute.KeyValue
}

type TimerConfig struct {
	Name        string
	Description string
	Attributes  map[string]string
	Boundaries  []float64
}

func NewTimer(meter metric.Meter, cfg TimerConfig) (*Timer, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("timer name required")
	}
	opts := []metric.Float64HistogramOption{
		metric.WithDescription(cfg.Description),
		metric.WithUnit("ms"),
	}
	if len(cfg.Boundaries) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(cfg.Boundaries...))
	}

	histogram, err := meter.Float64Histogram(cfg.Name, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create timer %s: %w", cfg.Name, err)
	}

	attrs := make([]attribute.KeyValue, 0, len(cfg.Attributes))
	for k, v := range cfg.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	return &Timer{histogram: histogram, attrs: attrs}, nil
}

func (t *Timer) Record(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	all := append(slices.Clip(t.attrs), attrs...)
	t.histogram.Record(ctx, float64(d)/float64(time.Millisecond), metric.WithAttributes(all...))
}
