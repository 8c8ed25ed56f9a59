package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/storacha/rangestream/pkg/telemetry"
)

func collectSum(t *testing.T, reader *metric.ManualReader, name string) metricdata.Sum[int64] {
	t.Helper()
	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				sum, ok := m.Data.(metricdata.Sum[int64])
				require.True(t, ok)
				return sum
			}
		}
	}
	t.Fatalf("metric %s not found", name)
	return metricdata.Sum[int64]{}
}

func TestCounter(t *testing.T) {
	ctx := context.Background()
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() {
		require.NoError(t, provider.Shutdown(ctx))
	}()

	tel := telemetry.NewWithMeter(provider.Meter("test"))
	defer tel.Shutdown(ctx)

	counter, err := telemetry.NewCounter(tel.Meter(), telemetry.CounterConfig{
		Name:        "test_counter",
		Description: "Test counter",
		Attributes:  map[string]string{"instance": "a"},
	})
	require.NoError(t, err)

	counter.Add(ctx, 5)
	counter.Inc(ctx)
	counter.Add(ctx, 10, telemetry.StringAttr("method", "GET"))

	sum := collectSum(t, reader, "test_counter")
	assert.True(t, sum.IsMonotonic)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
		v, ok := dp.Attributes.Value("instance")
		require.True(t, ok)
		assert.Equal(t, "a", v.AsString())
	}
	assert.Equal(t, int64(16), total)
}

func TestCounterWithAttributesDoesNotLeak(t *testing.T) {
	ctx := context.Background()
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(ctx)

	base, err := telemetry.NewCounter(provider.Meter("test"), telemetry.CounterConfig{Name: "scoped"})
	require.NoError(t, err)

	get := base.WithAttributes(attribute.String("method", "GET"))
	head := base.WithAttributes(attribute.String("method", "HEAD"))
	get.Inc(ctx)
	head.Add(ctx, 2)
	base.Inc(ctx)

	sum := collectSum(t, reader, "scoped")
	require.Len(t, sum.DataPoints, 3)

	byMethod := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value("method")
		byMethod[v.AsString()] += dp.Value
	}
	assert.Equal(t, map[string]int64{"GET": 1, "HEAD": 2, "": 1}, byMethod)
}

func TestNewCounterRequiresName(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	_, err := telemetry.NewCounter(provider.Meter("test"), telemetry.CounterConfig{})
	require.Error(t, err)
}

func TestNewWithoutEndpoint(t *testing.T) {
	tel, err := telemetry.New(context.Background(), telemetry.Config{ServiceName: "test"})
	require.NoError(t, err)
	require.NotNil(t, tel.Meter())
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestTracerProviderFallsBackToGlobal(t *testing.T) {
	tel, err := telemetry.New(context.Background(), telemetry.Config{ServiceName: "test"})
	require.NoError(t, err)

	tracer := tel.TracerProvider().Tracer("test")
	_, span := tracer.Start(context.Background(), "noop")
	defer span.End()
	assert.False(t, span.SpanContext().IsSampled())
}

func TestTimer(t *testing.T) {
	ctx := context.Background()
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(ctx)

	_, err := telemetry.NewTimer(provider.Meter("test"), telemetry.TimerConfig{})
	require.Error(t, err)

	timer, err := telemetry.NewTimer(provider.Meter("test"), telemetry.TimerConfig{Name: "latency"})
	require.NoError(t, err)
	timer.Record(ctx, 1500*time.Microsecond)
	timer.Record(ctx, 2*time.Millisecond)

	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	h, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, h.DataPoints, 1)
	assert.Equal(t, uint64(2), h.DataPoints[0].Count)
	assert.InDelta(t, 3.5, h.DataPoints[0].Sum, 0.001)
	assert.Equal(t, "ms", rm.ScopeMetrics[0].Metrics[0].Unit)
}
