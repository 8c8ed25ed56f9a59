package config

import (
	"fmt"

	"github.com/storacha/rangestream/pkg/config/app"
)

// ServeConfig is everything the serve command reads from flags, environment
// and the config file.
type ServeConfig struct {
	Repo      RepoConfig      `mapstructure:"repo" toml:"repo"`
	Server    ServerConfig    `mapstructure:"server" toml:"server"`
	Stream    StreamConfig    `mapstructure:"stream" toml:"stream"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" toml:"telemetry,omitempty"`
}

func (s ServeConfig) Validate() error {
	return validateConfig(s)
}

func (s ServeConfig) ToAppConfig() (app.AppConfig, error) {
	var (
		err error
		out app.AppConfig
	)

	out.Server = s.Server.ToAppConfig()

	out.Storage, err = s.Repo.ToAppConfig()
	if err != nil {
		return app.AppConfig{}, fmt.Errorf("converting repo to app config: %w", err)
	}

	out.Stream, err = s.Stream.ToAppConfig()
	if err != nil {
		return app.AppConfig{}, fmt.Errorf("converting stream to app config: %w", err)
	}

	out.Telemetry = s.Telemetry.ToAppConfig()
	return out, nil
}

// CatalogConfig is what the catalog commands need: just the repo.
type CatalogConfig struct {
	Repo RepoConfig `mapstructure:"repo" toml:"repo"`
}

func (c CatalogConfig) Validate() error {
	return validateConfig(c)
}

func (c CatalogConfig) ToAppConfig() (app.StorageConfig, error) {
	return c.Repo.ToAppConfig()
}
