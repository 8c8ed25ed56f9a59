package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/storacha/rangestream/pkg/rangestream"
)

// Key is a configuration key path used with Viper.
type Key string

const (
	ServerHost Key = "server.host"
	ServerPort Key = "server.port"
)

const (
	StreamChunkSize         Key = "stream.chunk_size"
	StreamRangeMode         Key = "stream.range_mode"
	StreamMaxBytesPerSecond Key = "stream.max_bytes_per_second"
	StreamDefaultMimeType   Key = "stream.default_mime_type"
)

const (
	TelemetryPublishInterval Key = "telemetry.publish_interval"
)

var defaultValues = map[Key]any{
	ServerHost: "localhost",
	ServerPort: 3000,

	StreamChunkSize:         rangestream.DefaultChunkSize,
	StreamRangeMode:         string(rangestream.RangeModeSeek),
	StreamMaxBytesPerSecond: 0,
	StreamDefaultMimeType:   rangestream.DefaultMimeType,

	TelemetryPublishInterval: 30 * time.Second,
}

// SetDefaults sets all viper defaults for configuration.
// Called before viper.Unmarshal() to ensure defaults are available.
func SetDefaults() {
	for k, v := range defaultValues {
		viper.SetDefault(string(k), v)
	}
}
