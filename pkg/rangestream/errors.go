package rangestream

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned by [Streamer.Stream] when the declared size of the
// source is negative. Nothing has been written to the sink when it is returned.
var ErrInvalidSize = errors.New("invalid declared size")

// ErrRangeNotSatisfiable is returned by a [RangeOpener] when the requested
// bytes lie outside the stored source. The streamer then opens the whole
// source and positions it itself.
var ErrRangeNotSatisfiable = errors.New("range not satisfiable by source")

// SourceOpenError is logged when a source cannot be opened. The streamer does
// not return it; the client sees [StatusSourceUnavailable] instead.
type SourceOpenError struct {
	Path string
	Err  error
}

func (e *SourceOpenError) Error() string {
	return fmt.Sprintf("opening source %q: %s", e.Path, e.Err)
}

func (e *SourceOpenError) Unwrap() error {
	return e.Err
}
