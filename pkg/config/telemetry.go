package config

import (
	"time"

	"github.com/storacha/rangestream/pkg/config/app"
)

type TelemetryConfig struct {
	MetricsEndpoint string            `mapstructure:"metrics_endpoint" toml:"metrics_endpoint,omitempty"`
	Insecure        bool              `mapstructure:"insecure" toml:"insecure,omitempty"`
	Headers         map[string]string `mapstructure:"headers" toml:"headers,omitempty"`
	PublishInterval time.Duration     `mapstructure:"publish_interval" toml:"publish_interval,omitempty"`
}

func (t TelemetryConfig) Validate() error {
	return validateConfig(t)
}

func (t TelemetryConfig) ToAppConfig() app.TelemetryConfig {
	return app.TelemetryConfig{
		MetricsEndpoint: t.MetricsEndpoint,
		Insecure:        t.Insecure,
		Headers:         t.Headers,
		PublishInterval: t.PublishInterval,
	}
}
