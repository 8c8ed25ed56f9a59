package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/minio/minio-go/v7"

	"github.com/storacha/rangestream/pkg/store/objectstore"
)

var log = logging.Logger("objectstore/minio")

type Store struct {
	client *minio.Client
	bucket string
}

var _ objectstore.Store = (*Store)(nil)

func New(endpoint, bucket string, opts minio.Options) (*Store, error) {
	client, err := minio.New(endpoint, &opts)
	if err != nil {
		return nil, err
	}

	// allow for 5 seconds to check for existing bucket, and or create one.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if exists, err := client.BucketExists(ctx, bucket); err != nil {
		return nil, fmt.Errorf("failed to check if bucket %s exists: %w", bucket, err)
	} else if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	return &Store{
		client: client,
		bucket: bucket,
	}, nil
}

// StartHealthCheck probes the server every interval until the returned
// function is called. [Store.IsOnline] reflects the latest probe.
func (s *Store) StartHealthCheck(interval time.Duration) (context.CancelFunc, error) {
	return s.client.HealthCheck(interval)
}

// IsOnline reports whether the client's last health probe succeeded.
func (s *Store) IsOnline() bool {
	return s.client.IsOnline()
}

func (s *Store) Put(ctx context.Context, key string, size uint64, body io.Reader) error {
	start := time.Now()
	log.Debugw("putting object", "bucket", s.bucket, "key", key, "size", size)
	obj, err := s.client.PutObject(ctx, s.bucket, key, body, int64(size), minio.PutObjectOptions{})
	if err != nil {
		log.Errorw("failed to put object", "bucket", s.bucket, "key", key, "size", size, "error", err)
		return fmt.Errorf("put object with key %s: %w", key, err)
	}
	// minio rejects bodies that do not match the declared size, this catches
	// servers that do not.
	if obj.Size != int64(size) {
		log.Errorw("put object size mismatch", "bucket", s.bucket, "key", key, "expected_size", size, "actual_size", obj.Size)
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			log.Errorw("failed to clean up partial object", "bucket", s.bucket, "key", key, "error", err)
		}
		return fmt.Errorf("put object size mismatch: got %d, expected %d", obj.Size, size)
	}
	log.Debugw("put object", "bucket", s.bucket, "key", key, "size", size, "duration", time.Since(start))
	return nil
}

type object struct {
	body *minio.Object
	size int64
}

func (o *object) Size() int64 {
	return o.size
}

func (o *object) Body() io.ReadCloser {
	return o.body
}

func (s *Store) Get(ctx context.Context, key string, opts ...objectstore.GetOption) (objectstore.Object, error) {
	start := time.Now()
	cfg := objectstore.NewGetConfig(opts...)
	r := cfg.Range()
	log.Debugw("getting object", "bucket", s.bucket, "key", key, "options", cfg)

	// Stat first: GetObject is lazy and only reports a missing key on the
	// first read, and calling Stat on a ranged object returns the full size.
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, objectstore.ErrNotExist
		}
		log.Errorw("get object stat failed", "bucket", s.bucket, "key", key, "error", err)
		return nil, fmt.Errorf("get object with key %s: %w", key, err)
	}
	size := uint64(info.Size)
	if !r.Satisfiable(size) {
		return nil, objectstore.ErrRangeNotSatisfiable{Range: r}
	}

	miOpts := minio.GetObjectOptions{}
	if r.IsSet() {
		// minio-go reads to EOF when end is 0
		var end int64
		if r.End != nil {
			end = int64(*r.End)
		}
		if err := miOpts.SetRange(int64(r.Start), end); err != nil {
			return nil, fmt.Errorf("invalid range %s for key %s: %w", r, key, err)
		}
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, miOpts)
	if err != nil {
		log.Errorw("get object failed", "bucket", s.bucket, "key", key, "error", err)
		return nil, fmt.Errorf("get object with key %s: %w", key, err)
	}

	length := int64(size)
	if r.IsSet() {
		length = int64(r.Length(size))
	}
	log.Debugw("got object", "bucket", s.bucket, "key", key, "size", length, "duration", time.Since(start))
	return &object{body: obj, size: length}, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("delete object with key %s: %w", key, err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	var merr minio.ErrorResponse
	return errors.As(err, &merr) && merr.Code == minio.NoSuchKey
}
