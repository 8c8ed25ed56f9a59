package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/storacha/rangestream/pkg/config/app"
	"github.com/storacha/rangestream/pkg/rangestream"
)

func memoryConfig() app.AppConfig {
	return app.AppConfig{
		Server: app.ServerConfig{Host: "127.0.0.1", Port: 0},
		Stream: app.StreamConfig{
			ChunkSize:       rangestream.DefaultChunkSize,
			RangeMode:       rangestream.RangeModeSeek,
			DefaultMimeType: rangestream.DefaultMimeType,
		},
	}
}

func TestModulesValidate(t *testing.T) {
	require.NoError(t, fx.ValidateApp(CommonModules(memoryConfig()), StreamModule))
}

func TestServeMemory(t *testing.T) {
	var e *echo.Echo
	fxApp := fxtest.New(t,
		CommonModules(memoryConfig()),
		StreamModule,
		fx.Populate(&e),
	)
	fxApp.RequireStart()
	defer fxApp.RequireStop()

	data := bytes.Repeat([]byte("0123456789"), 100)
	put := httptest.NewRequest(http.MethodPut, "/media/track", bytes.NewReader(data))
	put.Header.Set("Content-Type", "audio/flac")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, put)
	require.Equal(t, http.StatusCreated, rec.Code)

	get := httptest.NewRequest(http.MethodGet, "/media/track", nil)
	get.Header.Set("Range", "bytes=500-")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, get)
	require.Equal(t, http.StatusPartialContent, rec.Code)
	require.Equal(t, "audio/flac", rec.Header().Get("Content-Type"))
	require.Equal(t, "bytes 500-999/1000", rec.Header().Get("Content-Range"))
	require.Equal(t, data[500:], rec.Body.Bytes())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "range mode: seek")
}
