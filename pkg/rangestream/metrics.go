package rangestream

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/storacha/rangestream/pkg/telemetry"
)

// Metrics holds the instruments a [Streamer] records on.
type Metrics struct {
	requests    *telemetry.Counter
	bytes       *telemetry.Counter
	interrupted *telemetry.Counter
	duration    *telemetry.Timer
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requests, err := telemetry.NewCounter(meter, telemetry.CounterConfig{
		Name:        "rangestream_requests_total",
		Description: "Stream requests by response status",
	})
	if err != nil {
		return nil, err
	}
	bytes, err := telemetry.NewCounter(meter, telemetry.CounterConfig{
		Name:        "rangestream_bytes_total",
		Description: "Body bytes written to clients",
		Unit:        "By",
	})
	if err != nil {
		return nil, err
	}
	interrupted, err := telemetry.NewCounter(meter, telemetry.CounterConfig{
		Name:        "rangestream_interrupted_total",
		Description: "Streams that ended before the window was fully sent",
	})
	if err != nil {
		return nil, err
	}
	duration, err := telemetry.NewTimer(meter, telemetry.TimerConfig{
		Name:        "rangestream_stream_duration",
		Description: "Time from open to the last body byte",
		Boundaries:  []float64{10, 50, 100, 500, 1000, 5000, 30000, 120000, 600000},
	})
	if err != nil {
		return nil, err
	}
	return &Metrics{requests: requests, bytes: bytes, interrupted: interrupted, duration: duration}, nil
}

func (m *Metrics) record(ctx context.Context, res Result, elapsed time.Duration) {
	if m == nil {
		return
	}
	// the request context may already be cancelled by a disconnect
	ctx = context.WithoutCancel(ctx)
	status := telemetry.StringAttr("status", strconv.Itoa(res.Status))
	m.requests.Inc(ctx, status)
	m.duration.Record(ctx, elapsed, status)
	if res.BytesWritten > 0 {
		m.bytes.Add(ctx, res.BytesWritten)
	}
	if res.Interrupted {
		m.interrupted.Inc(ctx)
	}
}
