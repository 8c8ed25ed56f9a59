package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/storacha/rangestream/pkg/config/app"
)

type Credentials struct {
	AccessKeyID     string `mapstructure:"access_key_id" validate:"required" toml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" validate:"required" toml:"secret_access_key"`
}

type MinioConfig struct {
	Endpoint    string      `mapstructure:"endpoint" validate:"required" toml:"endpoint"`
	Bucket      string      `mapstructure:"bucket" validate:"required" toml:"bucket"`
	Credentials Credentials `mapstructure:"credentials" toml:"credentials,omitempty"`
	Insecure    bool        `mapstructure:"insecure" toml:"insecure,omitempty"`
}

// BlobStorageConfig moves media bytes out of the data directory and onto an
// S3 compatible server.
type BlobStorageConfig struct {
	Minio MinioConfig `mapstructure:"minio" toml:"minio,omitempty"`
}

type RepoConfig struct {
	// DataDir holds the catalog and, without blob storage, the media files.
	// Empty keeps everything in memory.
	DataDir     string             `mapstructure:"data_dir" flag:"data-dir" toml:"data_dir"`
	BlobStorage *BlobStorageConfig `mapstructure:"blob_storage" validate:"omitempty" toml:"blob_storage,omitempty"`
}

func (r RepoConfig) Validate() error {
	return validateConfig(r)
}

func (r RepoConfig) ToAppConfig() (app.StorageConfig, error) {
	var out app.StorageConfig
	if r.BlobStorage != nil && r.BlobStorage.Minio.Endpoint != "" {
		m := r.BlobStorage.Minio
		out.Minio = &app.MinioConfig{
			Endpoint:    m.Endpoint,
			Bucket:      m.Bucket,
			Credentials: app.Credentials(m.Credentials),
			Insecure:    m.Insecure,
		}
	}

	if r.DataDir == "" {
		if out.Minio != nil {
			return app.StorageConfig{}, fmt.Errorf("blob storage requires a data directory for the catalog")
		}
		log.Warn("no data directory configured, media and catalog are kept in memory")
		return out, nil
	}

	if err := os.MkdirAll(r.DataDir, 0755); err != nil {
		return app.StorageConfig{}, fmt.Errorf("creating data directory: %w", err)
	}
	out.DataDir = r.DataDir
	out.Catalog = app.CatalogStorageConfig{Dir: filepath.Join(r.DataDir, "catalog")}
	if out.Minio == nil {
		out.Media = app.MediaStorageConfig{Dir: filepath.Join(r.DataDir, "media")}
	}
	return out, nil
}
