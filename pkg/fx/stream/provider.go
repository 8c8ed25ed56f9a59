package stream

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/storacha/rangestream/pkg/config/app"
	"github.com/storacha/rangestream/pkg/rangestream"
	"github.com/storacha/rangestream/pkg/store/objectstore"
)

var Module = fx.Module("stream",
	fx.Provide(
		NewStreamer,
	),
)

// NewStreamer creates the streamer shared by all media requests. Sources are
// looked up in the media object store by key.
func NewStreamer(cfg app.StreamConfig, objects objectstore.Store, metrics *rangestream.Metrics) (*rangestream.Streamer, error) {
	s, err := rangestream.New(
		objectstore.NewOpener(objects),
		rangestream.WithChunkSize(cfg.ChunkSize),
		rangestream.WithRangeMode(cfg.RangeMode),
		rangestream.WithRateLimit(cfg.MaxBytesPerSecond),
		rangestream.WithDefaultMimeType(cfg.DefaultMimeType),
		rangestream.WithMetrics(metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamer: %w", err)
	}
	return s, nil
}
