// Package catalog maps media ids to the objects that hold their bytes.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"

	"github.com/storacha/rangestream/pkg/store"
)

const prefix = "/media/"

// ErrInvalidID is returned for ids that cannot be used as a catalog key.
var ErrInvalidID = errors.New("invalid media id")

var idExpr = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// Entry describes one servable media file.
type Entry struct {
	ID string `json:"id"`
	// Key locates the bytes in the object store.
	Key string `json:"key"`
	// Size is the declared size in bytes, 0 when unknown.
	Size     int64     `json:"size"`
	MimeType string    `json:"mimeType,omitempty"`
	Created  time.Time `json:"created"`
}

type Catalog interface {
	Get(ctx context.Context, id string) (Entry, error)
	Put(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Entry, error)
}

// ValidateID reports whether id can be stored in a catalog.
func ValidateID(id string) error {
	if !idExpr.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

type DsCatalog struct {
	data datastore.Datastore
}

var _ Catalog = (*DsCatalog)(nil)

// NewDsCatalog creates a [Catalog] backed by an IPFS datastore.
func NewDsCatalog(ds datastore.Datastore) *DsCatalog {
	return &DsCatalog{data: ds}
}

func (d *DsCatalog) Get(ctx context.Context, id string) (Entry, error) {
	if err := ValidateID(id); err != nil {
		return Entry{}, store.ErrNotFound
	}
	value, err := d.data.Get(ctx, datastore.NewKey(prefix+id))
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return Entry{}, store.ErrNotFound
		}
		return Entry{}, fmt.Errorf("getting from datastore: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(value, &e); err != nil {
		return Entry{}, fmt.Errorf("decoding entry %s: %w", id, err)
	}
	return e, nil
}

func (d *DsCatalog) Put(ctx context.Context, entry Entry) error {
	if err := ValidateID(entry.ID); err != nil {
		return err
	}
	if entry.Key == "" {
		return fmt.Errorf("entry %s has no object key", entry.ID)
	}
	if entry.Created.IsZero() {
		entry.Created = time.Now().UTC()
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding entry: %w", err)
	}
	if err := d.data.Put(ctx, datastore.NewKey(prefix+entry.ID), b); err != nil {
		return fmt.Errorf("writing to datastore: %w", err)
	}
	return nil
}

func (d *DsCatalog) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return store.ErrNotFound
	}
	k := datastore.NewKey(prefix + id)
	has, err := d.data.Has(ctx, k)
	if err != nil {
		return fmt.Errorf("checking datastore: %w", err)
	}
	if !has {
		return store.ErrNotFound
	}
	if err := d.data.Delete(ctx, k); err != nil {
		return fmt.Errorf("deleting from datastore: %w", err)
	}
	return nil
}

// List returns every entry ordered by id.
func (d *DsCatalog) List(ctx context.Context) ([]Entry, error) {
	results, err := d.data.Query(ctx, query.Query{
		Prefix: prefix,
		Orders: []query.Order{query.OrderByKey{}},
	})
	if err != nil {
		return nil, fmt.Errorf("querying datastore: %w", err)
	}
	defer results.Close()

	var entries []Entry
	for r := range results.Next() {
		if r.Error != nil {
			return nil, fmt.Errorf("iterating query results: %w", r.Error)
		}
		var e Entry
		if err := json.Unmarshal(r.Value, &e); err != nil {
			return nil, fmt.Errorf("decoding entry %s: %w", r.Key, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
