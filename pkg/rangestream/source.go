package rangestream

import (
	"context"
	"io"
	"os"
)

// Opener opens a source for sequential reading, positioned at its first byte.
type Opener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// RangeOpener is implemented by openers whose storage can start reading at an
// offset. Start and end are inclusive; a nil end reads to the end of the
// source. The returned reader yields only the requested bytes. A range the
// stored source cannot satisfy is reported as [ErrRangeNotSatisfiable].
type RangeOpener interface {
	Opener
	OpenRange(ctx context.Context, path string, start uint64, end *uint64) (io.ReadCloser, error)
}

// OpenerFunc adapts a plain function to an [Opener].
type OpenerFunc func(ctx context.Context, path string) (io.ReadCloser, error)

func (f OpenerFunc) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return f(ctx, path)
}

// FileOpener opens paths on the local filesystem.
type FileOpener struct{}

var _ Opener = FileOpener{}

func (FileOpener) Open(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path)
}
