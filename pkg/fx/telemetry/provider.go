package telemetry

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/fx"

	"github.com/storacha/rangestream/pkg/build"
	"github.com/storacha/rangestream/pkg/config/app"
	"github.com/storacha/rangestream/pkg/rangestream"
	"github.com/storacha/rangestream/pkg/telemetry"
)

const serviceName = "rangestream"

var Module = fx.Module("telemetry",
	fx.Provide(
		NewTelemetry,
		NewStreamMetrics,
		fx.Annotate(
			NewTracingMiddleware,
			fx.ResultTags(`group:"echo_middleware"`),
		),
	),
)

func NewTelemetry(cfg app.TelemetryConfig, lc fx.Lifecycle) (*telemetry.Telemetry, error) {
	tel, err := telemetry.New(context.Background(), telemetry.Config{
		ServiceName:     serviceName,
		ServiceVersion:  build.Version,
		Endpoint:        cfg.MetricsEndpoint,
		Insecure:        cfg.Insecure,
		Headers:         cfg.Headers,
		PublishInterval: cfg.PublishInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tel.Shutdown(ctx)
		},
	})
	return tel, nil
}

func NewStreamMetrics(tel *telemetry.Telemetry) (*rangestream.Metrics, error) {
	return rangestream.NewMetrics(tel.Meter())
}

// NewTracingMiddleware starts a server span per request. Spans are dropped
// unless an endpoint is configured.
func NewTracingMiddleware(tel *telemetry.Telemetry) echo.MiddlewareFunc {
	return otelecho.Middleware(serviceName, otelecho.WithTracerProvider(tel.TracerProvider()))
}
