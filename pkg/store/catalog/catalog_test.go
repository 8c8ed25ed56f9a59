package catalog_test

import (
	"testing"
	"time"

	"github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	leveldb "github.com/ipfs/go-ds-leveldb"
	"github.com/stretchr/testify/require"

	"github.com/storacha/rangestream/pkg/store"
	"github.com/storacha/rangestream/pkg/store/catalog"
)

func TestDsCatalog(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		c := catalog.NewDsCatalog(dssync.MutexWrap(datastore.NewMapDatastore()))

		e := catalog.Entry{
			ID:       "track-1",
			Key:      "track-1",
			Size:     1000,
			MimeType: "audio/mpeg",
			Created:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		}
		require.NoError(t, c.Put(t.Context(), e))

		got, err := c.Get(t.Context(), "track-1")
		require.NoError(t, err)
		require.Equal(t, e, got)
	})

	t.Run("missing", func(t *testing.T) {
		c := catalog.NewDsCatalog(datastore.NewMapDatastore())

		_, err := c.Get(t.Context(), "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, c.Delete(t.Context(), "nope"), store.ErrNotFound)
	})

	t.Run("sets created", func(t *testing.T) {
		c := catalog.NewDsCatalog(datastore.NewMapDatastore())
		require.NoError(t, c.Put(t.Context(), catalog.Entry{ID: "a", Key: "a"}))

		got, err := c.Get(t.Context(), "a")
		require.NoError(t, err)
		require.False(t, got.Created.IsZero())
		require.Zero(t, got.Size)
	})

	t.Run("rejects invalid ids", func(t *testing.T) {
		c := catalog.NewDsCatalog(datastore.NewMapDatastore())
		for _, id := range []string{"", "../x", "a/b", ".hidden", "with space"} {
			err := c.Put(t.Context(), catalog.Entry{ID: id, Key: "k"})
			require.ErrorIs(t, err, catalog.ErrInvalidID, id)
			_, err = c.Get(t.Context(), id)
			require.ErrorIs(t, err, store.ErrNotFound)
		}
	})

	t.Run("requires key", func(t *testing.T) {
		c := catalog.NewDsCatalog(datastore.NewMapDatastore())
		require.Error(t, c.Put(t.Context(), catalog.Entry{ID: "a"}))
	})

	t.Run("list and delete", func(t *testing.T) {
		c := catalog.NewDsCatalog(datastore.NewMapDatastore())
		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, c.Put(t.Context(), catalog.Entry{ID: id, Key: id}))
		}

		entries, err := c.List(t.Context())
		require.NoError(t, err)
		require.Len(t, entries, 3)
		require.Equal(t, []string{"a", "b", "c"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})

		require.NoError(t, c.Delete(t.Context(), "b"))
		entries, err = c.List(t.Context())
		require.NoError(t, err)
		require.Len(t, entries, 2)
	})

	t.Run("leveldb", func(t *testing.T) {
		ds, err := leveldb.NewDatastore(t.TempDir(), nil)
		require.NoError(t, err)
		defer ds.Close()

		c := catalog.NewDsCatalog(ds)
		require.NoError(t, c.Put(t.Context(), catalog.Entry{ID: "persisted", Key: "persisted", Size: 42}))

		got, err := c.Get(t.Context(), "persisted")
		require.NoError(t, err)
		require.Equal(t, int64(42), got.Size)
	})
}
