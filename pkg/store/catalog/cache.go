package catalog

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of entries kept by [NewCachedCatalog] when
// no size is given.
const DefaultCacheSize = 1024

// CachedCatalog keeps recently read entries in memory. Writes go through to
// the underlying catalog and evict the cached entry. Misses are not cached.
type CachedCatalog struct {
	Catalog
	entries *lru.Cache[string, Entry]
}

var _ Catalog = (*CachedCatalog)(nil)

func NewCachedCatalog(c Catalog, size int) (*CachedCatalog, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, fmt.Errorf("creating entry cache: %w", err)
	}
	return &CachedCatalog{Catalog: c, entries: entries}, nil
}

func (c *CachedCatalog) Get(ctx context.Context, id string) (Entry, error) {
	if e, ok := c.entries.Get(id); ok {
		return e, nil
	}
	e, err := c.Catalog.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	c.entries.Add(id, e)
	return e, nil
}

func (c *CachedCatalog) Put(ctx context.Context, entry Entry) error {
	c.entries.Remove(entry.ID)
	return c.Catalog.Put(ctx, entry)
}

func (c *CachedCatalog) Delete(ctx context.Context, id string) error {
	c.entries.Remove(id)
	return c.Catalog.Delete(ctx, id)
}
