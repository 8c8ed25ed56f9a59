package admin

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Client {
	t.Helper()
	e := echo.New()
	NewRoutes().RegisterRoutes(e)
	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return NewClient(strings.TrimPrefix(ts.URL, "http://"))
}

func TestLogLevels(t *testing.T) {
	logger := logging.Logger("admin-test")
	c := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, c.SetLogLevel(ctx, "admin-test", "debug"))
	require.True(t, logger.Desugar().Core().Enabled(-1))

	res, err := c.ListLogLevels(ctx)
	require.NoError(t, err)
	require.Equal(t, "debug", res.Levels["admin-test"])

	require.NoError(t, c.SetLogLevel(ctx, "admin-test", "error"))
	res, err = c.ListLogLevels(ctx)
	require.NoError(t, err)
	require.Equal(t, "error", res.Levels["admin-test"])
}

func TestSetLogLevelErrors(t *testing.T) {
	logging.Logger("admin-test")
	c := newTestServer(t)
	ctx := context.Background()

	require.Error(t, c.SetLogLevel(ctx, "", "info"))
	require.Error(t, c.SetLogLevel(ctx, "admin-test", ""))
	require.Error(t, c.SetLogLevel(ctx, "admin-test", "loud"))
	require.Error(t, c.SetLogLevel(ctx, "no-such-subsystem", "info"))
}
