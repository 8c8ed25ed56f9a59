package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/storacha/rangestream/pkg/rangestream"
)

// Opener serves stream sources out of a Store. Paths are object keys.
type Opener struct {
	store Store
}

var _ rangestream.RangeOpener = (*Opener)(nil)

func NewOpener(store Store) *Opener {
	return &Opener{store: store}
}

func (o *Opener) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := o.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return obj.Body(), nil
}

func (o *Opener) OpenRange(ctx context.Context, key string, start uint64, end *uint64) (io.ReadCloser, error) {
	obj, err := o.store.Get(ctx, key, WithRange(Range{Start: start, End: end}))
	if err != nil {
		var rerr ErrRangeNotSatisfiable
		if errors.As(err, &rerr) {
			return nil, fmt.Errorf("%w: %w", rangestream.ErrRangeNotSatisfiable, err)
		}
		return nil, err
	}
	return obj.Body(), nil
}
