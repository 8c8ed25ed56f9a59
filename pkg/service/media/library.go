package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/storacha/rangestream/pkg/store"
	"github.com/storacha/rangestream/pkg/store/catalog"
	"github.com/storacha/rangestream/pkg/store/objectstore"
)

// Library keeps the catalog and the object store in step.
type Library struct {
	catalog catalog.Catalog
	objects objectstore.Store
}

func NewLibrary(c catalog.Catalog, objects objectstore.Store) *Library {
	return &Library{catalog: c, objects: objects}
}

// Add stores size bytes read from data under id and registers them in the
// catalog. An existing entry with the same id is replaced.
func (l *Library) Add(ctx context.Context, id string, size int64, mimeType string, data io.Reader) (catalog.Entry, error) {
	if err := catalog.ValidateID(id); err != nil {
		return catalog.Entry{}, err
	}
	if size < 0 {
		return catalog.Entry{}, fmt.Errorf("size of %s must not be negative, got %d", id, size)
	}
	if err := l.objects.Put(ctx, id, uint64(size), data); err != nil {
		return catalog.Entry{}, fmt.Errorf("storing %s: %w", id, err)
	}
	entry := catalog.Entry{
		ID:       id,
		Key:      id,
		Size:     size,
		MimeType: mimeType,
		Created:  time.Now().UTC(),
	}
	if err := l.catalog.Put(ctx, entry); err != nil {
		return catalog.Entry{}, fmt.Errorf("registering %s: %w", id, err)
	}
	log.Infow("added media", "id", id, "size", size, "mime_type", mimeType)
	return entry, nil
}

// Remove drops id from the catalog and deletes its object.
func (l *Library) Remove(ctx context.Context, id string) error {
	entry, err := l.catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := l.catalog.Delete(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("unregistering %s: %w", id, err)
	}
	if err := l.objects.Delete(ctx, entry.Key); err != nil {
		return fmt.Errorf("deleting object %s: %w", entry.Key, err)
	}
	log.Infow("removed media", "id", id)
	return nil
}

func (l *Library) Get(ctx context.Context, id string) (catalog.Entry, error) {
	return l.catalog.Get(ctx, id)
}

func (l *Library) List(ctx context.Context) ([]catalog.Entry, error) {
	return l.catalog.List(ctx)
}
