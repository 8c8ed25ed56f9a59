package s3

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/fx"

	"github.com/storacha/rangestream/pkg/config/app"
	"github.com/storacha/rangestream/pkg/health"
	"github.com/storacha/rangestream/pkg/store/objectstore"
	minio_store "github.com/storacha/rangestream/pkg/store/objectstore/minio"
)

const healthCheckInterval = 10 * time.Second

// Module provides the media store backed by an S3-compatible bucket.
// Note: the catalog is NOT provided, use filesystem.CatalogModule alongside this.
var Module = fx.Module("s3-store",
	fx.Provide(
		fx.Annotate(
			NewMediaStore,
			fx.As(fx.Self()),
			fx.As(new(objectstore.Store)),
		),
		fx.Annotate(
			NewReadinessCheck,
			fx.ResultTags(`group:"readiness_check"`),
		),
	),
)

func NewMediaStore(cfg app.StorageConfig, lc fx.Lifecycle) (*minio_store.Store, error) {
	if cfg.Minio == nil || cfg.Minio.Endpoint == "" || cfg.Minio.Bucket == "" {
		return nil, fmt.Errorf("minio configuration required: endpoint and bucket must be set")
	}

	options := minio.Options{Secure: !cfg.Minio.Insecure}
	if cfg.Minio.Credentials.AccessKeyID != "" && cfg.Minio.Credentials.SecretAccessKey != "" {
		options.Creds = credentials.NewStaticV4(
			cfg.Minio.Credentials.AccessKeyID,
			cfg.Minio.Credentials.SecretAccessKey,
			"",
		)
	}

	s, err := minio_store.New(cfg.Minio.Endpoint, cfg.Minio.Bucket, options)
	if err != nil {
		return nil, fmt.Errorf("creating media s3 store: %w", err)
	}

	stop, err := s.StartHealthCheck(healthCheckInterval)
	if err != nil {
		return nil, fmt.Errorf("starting media s3 store health check: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stop()
			return nil
		},
	})
	return s, nil
}

// NewReadinessCheck reports the bucket as unavailable while the client's
// health probe is failing.
func NewReadinessCheck(s *minio_store.Store) health.ReadinessCheck {
	return health.ReadinessCheck{
		Name: "objectstore",
		Check: func(ctx context.Context) error {
			if !s.IsOnline() {
				return errors.New("object store is offline")
			}
			return nil
		},
	}
}
