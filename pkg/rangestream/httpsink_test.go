package rangestream_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storacha/rangestream/pkg/rangestream"
)

// unflushedWriter hides the recorder's Flush so the sink cannot flush.
type unflushedWriter struct {
	rec *httptest.ResponseRecorder
}

func (w unflushedWriter) Header() http.Header         { return w.rec.Header() }
func (w unflushedWriter) Write(p []byte) (int, error) { return w.rec.Write(p) }
func (w unflushedWriter) WriteHeader(code int)        { w.rec.WriteHeader(code) }

func TestHTTPSink(t *testing.T) {
	data := payload(20_000)

	t.Run("streams over a recorder", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/track", nil)
		req.Header.Set("Range", "bytes=1000-1999")
		rec := httptest.NewRecorder()

		s := newStreamer(t, streamOpener(&trackedSource{r: bytes.NewReader(data)}))
		_, err := s.Stream(req.Context(), rangestream.NewHTTPSink(rec, req),
			rangestream.NewRequest("track", int64(len(data)), "audio/mpeg", req.Header))
		require.NoError(t, err)

		assert.Equal(t, http.StatusPartialContent, rec.Code)
		assert.Equal(t, "bytes 1000-1999/20000", rec.Header().Get("Content-Range"))
		assert.Equal(t, data[1000:2000], rec.Body.Bytes())
		assert.True(t, rec.Flushed)
	})

	t.Run("writer without flush still streams", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/media/track", nil)
		rec := httptest.NewRecorder()

		s := newStreamer(t, streamOpener(&trackedSource{r: bytes.NewReader(data)}))
		_, err := s.Stream(req.Context(), rangestream.NewHTTPSink(unflushedWriter{rec}, req),
			rangestream.NewRequest("track", int64(len(data)), "audio/mpeg", req.Header))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, data, rec.Body.Bytes())
		assert.False(t, rec.Flushed)
	})

	t.Run("cancelled request reads as disconnected", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest(http.MethodGet, "/media/track", nil).WithContext(ctx)
		sink := rangestream.NewHTTPSink(httptest.NewRecorder(), req)

		assert.True(t, sink.IsClientConnected())
		cancel()
		assert.False(t, sink.IsClientConnected())
	})

	t.Run("served by net/http", func(t *testing.T) {
		s := newStreamer(t, rangestream.OpenerFunc(func(context.Context, string) (io.ReadCloser, error) {
			return &trackedSource{r: bytes.NewReader(data)}, nil
		}))
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := s.Stream(r.Context(), rangestream.NewHTTPSink(w, r),
				rangestream.NewRequest("track", int64(len(data)), "", r.Header))
			assert.NoError(t, err)
		}))
		defer srv.Close()

		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		req.Header.Set("Range", "bytes=19990-")
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var body bytes.Buffer
		_, err = body.ReadFrom(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusPartialContent, resp.StatusCode)
		assert.Equal(t, "10", resp.Header.Get("Content-Length"))
		assert.Equal(t, rangestream.DefaultMimeType, resp.Header.Get("Content-Type"))
		assert.Equal(t, data[19990:], body.Bytes())
	})
}
