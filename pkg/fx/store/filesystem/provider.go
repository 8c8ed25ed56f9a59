package filesystem

import (
	"context"
	"fmt"
	"os"

	leveldb "github.com/ipfs/go-ds-leveldb"
	"go.uber.org/fx"

	"github.com/storacha/rangestream/pkg/config/app"
	"github.com/storacha/rangestream/pkg/store/catalog"
	"github.com/storacha/rangestream/pkg/store/objectstore"
	"github.com/storacha/rangestream/pkg/store/objectstore/localfs"
)

var Module = fx.Module("filesystem-store",
	fx.Provide(
		NewMediaStore,
		NewCatalog,
	),
)

// CatalogModule provides only the on-disk catalog, for setups that keep media
// bytes elsewhere.
var CatalogModule = fx.Module("filesystem-catalog",
	fx.Provide(
		NewCatalog,
	),
)

func NewMediaStore(cfg app.StorageConfig) (objectstore.Store, error) {
	if cfg.Media.Dir == "" {
		return nil, fmt.Errorf("no data dir provided for media store")
	}
	s, err := localfs.New(cfg.Media.Dir, true)
	if err != nil {
		return nil, fmt.Errorf("creating media store: %w", err)
	}
	return s, nil
}

func NewCatalog(cfg app.StorageConfig, lc fx.Lifecycle) (catalog.Catalog, error) {
	if cfg.Catalog.Dir == "" {
		return nil, fmt.Errorf("no data dir provided for catalog")
	}

	ds, err := newDs(cfg.Catalog.Dir)
	if err != nil {
		return nil, fmt.Errorf("creating catalog: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return ds.Close()
		},
	})

	return catalog.NewCachedCatalog(catalog.NewDsCatalog(ds), catalog.DefaultCacheSize)
}

func newDs(path string) (*leveldb.Datastore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("creating leveldb for store at path %s: %w", path, err)
	}
	return leveldb.NewDatastore(path, nil)
}
