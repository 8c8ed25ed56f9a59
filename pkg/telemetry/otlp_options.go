package telemetry

import (
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
)

type otlpHTTPOptions struct {
	endpoint string
	insecure bool
	headers  map[string]string
}

func newOTLPHTTPOptions(endpoint string, insecure bool, headers map[string]string) otlpHTTPOptions {
	return otlpHTTPOptions{
		endpoint: endpoint,
		insecure: insecure,
		headers:  headers,
	}
}

func (o otlpHTTPOptions) metricOptions() []otlpmetrichttp.Option {
	if o.endpoint == "" {
		return nil
	}

	options := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(o.endpoint)}

	if o.insecure {
		options = append(options, otlpmetrichttp.WithInsecure())
	}

	if len(o.headers) > 0 {
		options = append(options, otlpmetrichttp.WithHeaders(o.headers))
	}

	return options
}

func (o otlpHTTPOptions) traceOptions() []otlptracehttp.Option {
	if o.endpoint == "" {
		return nil
	}

	options := []otlptracehttp.Option{otlptracehttp.WithEndpoint(o.endpoint)}

	if o.insecure {
		options = append(options, otlptracehttp.WithInsecure())
	}

	if len(o.headers) > 0 {
		options = append(options, otlptracehttp.WithHeaders(o.headers))
	}

	return options
}
