// Package localfs stores objects as plain files below a root directory.
// Keys are slash separated paths relative to the root.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	logging "github.com/ipfs/go-log/v2"

	"github.com/storacha/rangestream/pkg/store/objectstore"
)

var log = logging.Logger("objectstore/localfs")

const tempDir = ".temp"

type Store struct {
	root string
	sync bool
}

var _ objectstore.Store = (*Store)(nil)

// New opens a store rooted at path, creating the directory if needed. When
// sync is set, files are fsynced before they become visible.
func New(path string, sync bool) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(path, tempDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Store{root: path, sync: sync}, nil
}

// Root is the directory objects are stored under.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) path(key string) (string, error) {
	rel := filepath.FromSlash(key)
	if key == "" || !filepath.IsLocal(rel) || rel == tempDir || filepath.Dir(rel) == tempDir {
		return "", fmt.Errorf("%w: %q", objectstore.ErrInvalidKey, key)
	}
	return filepath.Join(s.root, rel), nil
}

// Put writes the object to a temporary file and renames it into place, so
// readers never observe a partial object.
func (s *Store) Put(ctx context.Context, key string, size uint64, data io.Reader) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Join(s.root, tempDir), "put-")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	closed, renamed := false, false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if !renamed {
			_ = os.Remove(tmp.Name())
		}
	}()

	n, err := io.Copy(tmp, data)
	if err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	if uint64(n) != size {
		log.Errorw("put object size mismatch", "key", key, "expected_size", size, "actual_size", n)
		return fmt.Errorf("put object size mismatch: got %d, expected %d", n, size)
	}
	if s.sync {
		if err := tmp.Sync(); err != nil {
			return fmt.Errorf("syncing file: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	closed = true

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	renamed = true
	log.Debugw("put object", "key", key, "size", size)
	return nil
}

func (s *Store) Get(ctx context.Context, key string, opts ...objectstore.GetOption) (objectstore.Object, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	cfg := objectstore.NewGetConfig(opts...)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, objectstore.ErrNotExist
		}
		return nil, fmt.Errorf("opening %s: %w", key, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", key, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, objectstore.ErrNotExist
	}

	size := uint64(info.Size())
	r := cfg.Range()
	if !r.Satisfiable(size) {
		f.Close()
		return nil, objectstore.ErrRangeNotSatisfiable{Range: r}
	}
	log.Debugw("got object", "key", key, "size", size, "options", cfg)
	if !r.IsSet() {
		return &object{size: int64(size), body: f}, nil
	}

	if _, err := f.Seek(int64(r.Start), io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("seeking %s: %w", key, err)
	}
	n := int64(r.Length(size))
	return &object{
		size: n,
		body: &sectionReadCloser{Reader: io.LimitReader(f, n), Closer: f},
	}, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

type object struct {
	size int64
	body io.ReadCloser
}

func (o *object) Size() int64 {
	return o.size
}

func (o *object) Body() io.ReadCloser {
	return o.body
}

type sectionReadCloser struct {
	io.Reader
	io.Closer
}
