package memory

import (
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/sync"
	"go.uber.org/fx"

	"github.com/storacha/rangestream/pkg/store/catalog"
	"github.com/storacha/rangestream/pkg/store/objectstore"
	memstore "github.com/storacha/rangestream/pkg/store/objectstore/memory"
)

var Module = fx.Module("memory-store",
	fx.Provide(
		fx.Annotate(
			memstore.NewStore,
			fx.As(new(objectstore.Store)),
		),
		NewCatalog,
	),
)

func NewCatalog() catalog.Catalog {
	return catalog.NewDsCatalog(sync.MutexWrap(datastore.NewMapDatastore()))
}
