package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/storacha/rangestream/pkg/admin"
)

func TestLogListCmd(t *testing.T) {
	expected := map[string]string{
		"system1": "info",
		"system2": "debug",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/log/level", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)

		json.NewEncoder(w).Encode(admin.ListLogLevelsResponse{Levels: expected})
	}))
	defer server.Close()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"log", "list", "--api", strings.TrimPrefix(server.URL, "http://")})
	require.NoError(t, root.Execute())

	for k, v := range expected {
		require.Contains(t, out.String(), k)
		require.Contains(t, out.String(), v)
	}
}

func TestLogSetLevelCmd(t *testing.T) {
	t.Run("sets level for a single system", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/admin/log/level", r.URL.Path)
			require.Equal(t, http.MethodPost, r.Method)

			var req admin.SetLogLevelRequest
			json.NewDecoder(r.Body).Decode(&req)

			require.Equal(t, "system1", req.Subsystem)
			require.Equal(t, "DEBUG", req.Level)
		}))
		defer server.Close()

		root := newRootCmd()
		root.SetArgs([]string{"log", "set-level", "--system", "system1", "DEBUG", "--api", strings.TrimPrefix(server.URL, "http://")})
		require.NoError(t, root.Execute())
	})

	t.Run("sets level for multiple systems", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			require.Equal(t, http.MethodPost, r.Method)

			var req admin.SetLogLevelRequest
			json.NewDecoder(r.Body).Decode(&req)

			require.Contains(t, []string{"system1", "system2"}, req.Subsystem)
			require.Equal(t, "WARN", req.Level)
		}))
		defer server.Close()

		root := newRootCmd()
		root.SetArgs([]string{"log", "set-level", "--system", "system1", "--system", "system2", "WARN", "--api", strings.TrimPrefix(server.URL, "http://")})
		require.NoError(t, root.Execute())
		require.EqualValues(t, 2, requests.Load())
	})

	t.Run("sets level for all systems", func(t *testing.T) {
		var posts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/admin/log/level", r.URL.Path)

			if r.Method == http.MethodGet {
				json.NewEncoder(w).Encode(admin.ListLogLevelsResponse{
					Levels: map[string]string{"system1": "info", "system2": "info"},
				})
				return
			}

			posts.Add(1)
			var req admin.SetLogLevelRequest
			json.NewDecoder(r.Body).Decode(&req)
			require.Equal(t, "FATAL", req.Level)
		}))
		defer server.Close()

		root := newRootCmd()
		root.SetArgs([]string{"log", "set-level", "FATAL", "--api", strings.TrimPrefix(server.URL, "http://")})
		require.NoError(t, root.Execute())
		require.EqualValues(t, 2, posts.Load())
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		root := newRootCmd()
		root.SilenceUsage = true
		root.SilenceErrors = true
		root.SetArgs([]string{"log", "set-level", "--system", "x", "loud", "--api", strings.TrimPrefix(server.URL, "http://")})
		require.Error(t, root.Execute())
	})
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rangestream",
		Short: "rangestream test root",
	}
	root.AddCommand(NewLogCmd())
	return root
}
