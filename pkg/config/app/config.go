package app

import (
	"time"

	"github.com/storacha/rangestream/pkg/rangestream"
)

// AppConfig is the root configuration for the entire application
type AppConfig struct {
	Server    ServerConfig
	Storage   StorageConfig
	Stream    StreamConfig
	Telemetry TelemetryConfig
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string
	Port uint
}

// StorageConfig says where media bytes and catalog entries live. An empty
// DataDir selects in-memory stores.
type StorageConfig struct {
	DataDir string
	Catalog CatalogStorageConfig
	Media   MediaStorageConfig
	// Minio, when set, replaces the media directory.
	Minio *MinioConfig
}

type CatalogStorageConfig struct {
	Dir string
}

type MediaStorageConfig struct {
	Dir string
}

type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

type MinioConfig struct {
	Endpoint    string
	Bucket      string
	Credentials Credentials
	Insecure    bool
}

type StreamConfig struct {
	ChunkSize         int
	RangeMode         rangestream.RangeMode
	MaxBytesPerSecond int
	DefaultMimeType   string
}

type TelemetryConfig struct {
	MetricsEndpoint string
	Insecure        bool
	Headers         map[string]string
	PublishInterval time.Duration
}
