package config

import (
	"fmt"

	"github.com/storacha/rangestream/pkg/config/app"
	"github.com/storacha/rangestream/pkg/rangestream"
)

type StreamConfig struct {
	ChunkSize         int    `mapstructure:"chunk_size" validate:"min=1" flag:"chunk-size" toml:"chunk_size"`
	RangeMode         string `mapstructure:"range_mode" validate:"omitempty,oneof=seek header-only" flag:"range-mode" toml:"range_mode"`
	MaxBytesPerSecond int    `mapstructure:"max_bytes_per_second" validate:"min=0" flag:"max-bytes-per-second" toml:"max_bytes_per_second,omitempty"`
	DefaultMimeType   string `mapstructure:"default_mime_type" validate:"required" toml:"default_mime_type"`
}

func (s StreamConfig) Validate() error {
	return validateConfig(s)
}

func (s StreamConfig) ToAppConfig() (app.StreamConfig, error) {
	mode, err := rangestream.ParseRangeMode(s.RangeMode)
	if err != nil {
		return app.StreamConfig{}, fmt.Errorf("stream config: %w", err)
	}
	return app.StreamConfig{
		ChunkSize:         s.ChunkSize,
		RangeMode:         mode,
		MaxBytesPerSecond: s.MaxBytesPerSecond,
		DefaultMimeType:   s.DefaultMimeType,
	}, nil
}
