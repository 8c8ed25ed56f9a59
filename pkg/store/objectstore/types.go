package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap/zapcore"
)

var (
	// ErrNotExist is returned when no object is stored under a key.
	ErrNotExist = errors.New("object does not exist")
	// ErrInvalidKey is returned for keys a backend cannot address, such as
	// paths escaping the root of a local store.
	ErrInvalidKey = errors.New("invalid object key")
)

// ErrRangeNotSatisfiable is returned when a requested byte range falls
// outside of the object.
type ErrRangeNotSatisfiable struct {
	Range Range
}

func (e ErrRangeNotSatisfiable) Error() string {
	return fmt.Sprintf("range not satisfiable: %s", e.Range)
}

type Store interface {
	// Put stores an object with the given key and size from the provided reader.
	// The size parameter should match the actual bytes to be read from data.
	Put(ctx context.Context, key string, size uint64, data io.Reader) error
	// Get retrieves the object identified by the given key.
	// Use GetOption functions like WithRange to retrieve partial objects.
	Get(ctx context.Context, key string, opts ...GetOption) (Object, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

type Object interface {
	// Size returns the size of the returned body in bytes. For ranged reads
	// this is the length of the range.
	Size() int64
	Body() io.ReadCloser
}

type GetOption func(cfg *GetConfig)

type Range struct {
	// Start is the starting byte position (inclusive)
	Start uint64
	// End is the ending byte position (inclusive), nil means read to EOF
	End *uint64
}

func (r Range) String() string {
	if r.End == nil {
		return fmt.Sprintf("%d-", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, *r.End)
}

// IsSet reports whether the range selects anything other than the whole object.
func (r Range) IsSet() bool {
	return r.Start != 0 || r.End != nil
}

// Satisfiable reports whether the range lies inside an object of the given size.
func (r Range) Satisfiable(size uint64) bool {
	if !r.IsSet() {
		return true
	}
	if r.Start >= size {
		return false
	}
	if r.End != nil && (*r.End < r.Start || *r.End >= size) {
		return false
	}
	return true
}

// Length is the number of bytes the range selects from an object of the
// given size.
func (r Range) Length(size uint64) uint64 {
	if r.End == nil {
		return size - r.Start
	}
	return *r.End - r.Start + 1
}

type GetConfig struct {
	byteRange Range
}

func NewGetConfig(opts ...GetOption) *GetConfig {
	cfg := &GetConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (o *GetConfig) Range() Range {
	return o.byteRange
}

func (o *GetConfig) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint64("start", o.byteRange.Start)
	if o.byteRange.End != nil {
		encoder.AddUint64("end", *o.byteRange.End)
	}
	return nil
}

// WithRange configures a byte range to extract.
// Start and End are inclusive byte positions, following HTTP range semantics.
// End can be nil to read from Start to EOF.
func WithRange(byteRange Range) GetOption {
	return func(opts *GetConfig) {
		opts.byteRange = byteRange
	}
}
