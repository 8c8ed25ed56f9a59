package status

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/storacha/rangestream/pkg/health"
)

func runAgainst(t *testing.T, checks ...health.ReadinessCheck) (string, error) {
	t.Helper()
	e := echo.New()
	health.NewHandler(health.NewChecker(checks...)).RegisterRoutes(e)
	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetContext(context.Background())
	require.NoError(t, Cmd.Flags().Set("api", strings.TrimPrefix(ts.URL, "http://")))
	err := runStatus(Cmd, nil)
	return out.String(), err
}

func TestStatusReady(t *testing.T) {
	out, err := runAgainst(t, health.ReadinessCheck{
		Name:  "objectstore",
		Check: func(context.Context) error { return nil },
	})
	require.NoError(t, err)
	require.Contains(t, out, "Status:   ok")
	require.Contains(t, out, "objectstore")
}

func TestStatusNotReady(t *testing.T) {
	out, err := runAgainst(t, health.ReadinessCheck{
		Name:  "objectstore",
		Check: func(context.Context) error { return errors.New("offline") },
	})
	require.Error(t, err)
	require.Contains(t, out, "failed")
	require.Contains(t, out, "offline")
}
