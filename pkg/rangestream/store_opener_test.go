package rangestream_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storacha/rangestream/pkg/rangestream"
	"github.com/storacha/rangestream/pkg/store/objectstore"
	"github.com/storacha/rangestream/pkg/store/objectstore/memory"
)

func TestStreamFromObjectStore(t *testing.T) {
	data := payload(100)
	store := memory.NewStore()
	require.NoError(t, store.Put(context.Background(), "clip", uint64(len(data)), bytes.NewReader(data)))
	s := newStreamer(t, objectstore.NewOpener(store))

	tests := []struct {
		name          string
		size          int64
		header        string
		body          []byte
		contentRange  string
		contentLength string
	}{
		{name: "range inside the object", size: 100, header: "bytes=10-19", body: data[10:20], contentRange: "bytes 10-19/100", contentLength: "10"},
		{name: "unknown size with end past the object", size: 0, header: "bytes=0-999999", body: data},
		{name: "unknown size with start past the object", size: 0, header: "bytes=5000-", body: nil},
		{name: "declared size larger than the object", size: 1000, header: "bytes=600-", body: nil, contentRange: "bytes 600-999/1000", contentLength: "400"},
		{name: "end past the stored bytes", size: 1000, header: "bytes=50-199", body: data[50:], contentRange: "bytes 50-199/1000", contentLength: "150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := newRecordingSink()
			req := rangeRequest(tt.size, tt.header)
			req.Path = "clip"

			res, err := s.Stream(context.Background(), sink, req)
			require.NoError(t, err)

			assert.Equal(t, http.StatusPartialContent, sink.status)
			assert.Equal(t, len(tt.body), sink.body.Len())
			if len(tt.body) > 0 {
				assert.Equal(t, tt.body, sink.body.Bytes())
			}
			assert.Equal(t, tt.contentRange, sink.header.Get("Content-Range"))
			assert.Equal(t, tt.contentLength, sink.header.Get("Content-Length"))
			assert.False(t, res.Interrupted)
		})
	}

	t.Run("missing object is still unavailable", func(t *testing.T) {
		sink := newRecordingSink()
		req := rangeRequest(0, "bytes=0-9")
		req.Path = "nope"

		res, err := s.Stream(context.Background(), sink, req)
		require.NoError(t, err)
		assert.Equal(t, rangestream.StatusSourceUnavailable, res.Status)
		assert.Zero(t, sink.body.Len())
	})
}
