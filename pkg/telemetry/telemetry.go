// Package telemetry wires OpenTelemetry metrics and traces for the stream
// server.
//
// When an endpoint is configured, a periodic OTLP/HTTP metric exporter and a
// batching OTLP/HTTP span exporter are installed as the global providers.
// Without one, instruments are created against the global providers, which
// are no-ops until something else installs real ones.
//
//	tel, err := telemetry.New(ctx, telemetry.Config{
//	    ServiceName:     "rangestream",
//	    ServiceVersion:  build.Version,
//	    Endpoint:        "localhost:4318",
//	    Insecure:        true,
//	    PublishInterval: 30 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(ctx)
//
//	requests, _ := telemetry.NewCounter(tel.Meter(), telemetry.CounterConfig{
//	    Name:        "requests_total",
//	    Description: "Total number of requests",
//	})
//	requests.Inc(ctx, telemetry.StringAttr("status", "206"))
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

var log = logging.Logger("telemetry")

const defaultPublishInterval = 30 * time.Second

type Config struct {
	ServiceName     string
	ServiceVersion  string
	InstanceID      string
	Environment     string
	Endpoint        string
	Insecure        bool
	Headers         map[string]string
	PublishInterval time.Duration
}

// Telemetry owns the meter and tracer providers, when they were created.
type Telemetry struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          metric.Meter
}

// New creates a Telemetry from the config. An empty endpoint yields a
// Telemetry backed by the global providers. Metrics and traces share the
// endpoint; the exporters append their own /v1/metrics and /v1/traces paths.
func New(ctx context.Context, cfg Config) (*Telemetry, error) {
	otlp := newOTLPHTTPOptions(cfg.Endpoint, cfg.Insecure, cfg.Headers)
	opts := otlp.metricOptions()
	if len(opts) == 0 {
		log.Debug("no metrics endpoint configured, using global providers")
		return &Telemetry{meter: otel.Meter(cfg.ServiceName)}, nil
	}

	if cfg.PublishInterval <= 0 {
		cfg.PublishInterval = defaultPublishInterval
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mp, err := newProvider(ctx, cfg, res, opts)
	if err != nil {
		return nil, fmt.Errorf("creating meter provider: %w", err)
	}
	tp, err := newTracerProvider(ctx, cfg, res, otlp.traceOptions())
	if err != nil {
		return nil, errors.Join(fmt.Errorf("creating tracer provider: %w", err), mp.Shutdown(ctx))
	}
	log.Infow("exporting telemetry", "endpoint", cfg.Endpoint, "interval", cfg.PublishInterval)
	return &Telemetry{meterProvider: mp, tracerProvider: tp, meter: mp.Meter(cfg.ServiceName)}, nil
}

// NewWithMeter wraps an existing meter, useful in tests with a manual reader.
func NewWithMeter(meter metric.Meter) *Telemetry {
	return &Telemetry{meter: meter}
}

func (t *Telemetry) Meter() metric.Meter {
	return t.meter
}

// TracerProvider returns the exporting provider, or the global one when no
// endpoint was configured.
func (t *Telemetry) TracerProvider() trace.TracerProvider {
	if t.tracerProvider == nil {
		return otel.GetTracerProvider()
	}
	return t.tracerProvider
}

// Shutdown flushes and stops the exporters.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.tracerProvider != nil {
		errs = append(errs, t.tracerProvider.Shutdown(ctx))
	}
	if t.meterProvider != nil {
		errs = append(errs, t.meterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

func StringAttr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

func Int64Attr(key string, value int64) attribute.KeyValue {
	return attribute.Int64(key, value)
}
