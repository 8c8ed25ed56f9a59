package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/storacha/rangestream/pkg/store/objectstore"
)

// Store keeps objects in a map. It is meant for tests and ephemeral servers.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ objectstore.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		objects: make(map[string][]byte),
	}
}

func (s *Store) Put(ctx context.Context, key string, size uint64, data io.Reader) error {
	// one byte past size is enough to tell a long body from an exact one
	limit := int64(math.MaxInt64)
	if size < math.MaxInt64 {
		limit = int64(size) + 1
	}
	buf, err := io.ReadAll(io.LimitReader(data, limit))
	if err != nil {
		return fmt.Errorf("reading object %s: %w", key, err)
	}
	if uint64(len(buf)) != size {
		return fmt.Errorf("put object size mismatch: got %d, expected %d", len(buf), size)
	}

	s.mu.Lock()
	s.objects[key] = buf
	s.mu.Unlock()
	return nil
}

func (s *Store) Get(ctx context.Context, key string, opts ...objectstore.GetOption) (objectstore.Object, error) {
	s.mu.RLock()
	data, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, objectstore.ErrNotExist
	}

	r := objectstore.NewGetConfig(opts...).Range()
	size := uint64(len(data))
	if !r.Satisfiable(size) {
		return nil, objectstore.ErrRangeNotSatisfiable{Range: r}
	}
	if r.IsSet() {
		data = data[r.Start : r.Start+r.Length(size)]
	}
	return &object{data: data}, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

type object struct {
	data []byte
}

func (o *object) Size() int64 {
	return int64(len(o.data))
}

func (o *object) Body() io.ReadCloser {
	return readSeekNopCloser{bytes.NewReader(o.data)}
}

type readSeekNopCloser struct {
	*bytes.Reader
}

func (readSeekNopCloser) Close() error { return nil }
