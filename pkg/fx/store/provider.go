package store

import (
	"go.uber.org/fx"

	"github.com/storacha/rangestream/pkg/config/app"
	"github.com/storacha/rangestream/pkg/fx/store/filesystem"
	"github.com/storacha/rangestream/pkg/fx/store/memory"
	"github.com/storacha/rangestream/pkg/fx/store/s3"
)

// StorageModule returns the appropriate storage module based on configuration.
// With MinIO configured, media bytes go to the bucket and the catalog stays on
// disk. Without a data dir everything is kept in memory.
func StorageModule(cfg app.StorageConfig) fx.Option {
	if cfg.Minio != nil && cfg.Minio.Endpoint != "" {
		return fx.Options(
			s3.Module,
			filesystem.CatalogModule,
		)
	} else if cfg.DataDir == "" {
		return memory.Module
	}
	return filesystem.Module
}
