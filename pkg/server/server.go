package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"

	"github.com/storacha/rangestream/pkg/build"
	echofx "github.com/storacha/rangestream/pkg/fx/echo"
	"github.com/storacha/rangestream/pkg/rangestream"
)

var log = logging.Logger("server")

const repoURL = "https://github.com/storacha/rangestream"

type ServerInfo struct {
	Build     BuildInfo `json:"build"`
	RangeMode string    `json:"rangeMode"`
}

type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Repo    string `json:"repo"`
}

// InfoServer serves build and configuration details at the root path.
type InfoServer struct {
	handler http.Handler
}

var _ echofx.RouteRegistrar = (*InfoServer)(nil)

func NewInfoServer(streamer *rangestream.Streamer) *InfoServer {
	return &InfoServer{handler: NewHandler(streamer.Mode())}
}

func (s *InfoServer) RegisterRoutes(e *echo.Echo) {
	e.GET("/", echo.WrapHandler(s.handler))
}

// NewHandler displays version info.
func NewHandler(mode rangestream.RangeMode) http.Handler {
	info := ServerInfo{
		Build: BuildInfo{
			Version: build.Version,
			Commit:  build.Commit,
			Repo:    repoURL,
		},
		RangeMode: string(mode),
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Accept"), "application/json") {
			w.Header().Set("Content-Type", "application/json")
			data, err := json.Marshal(&info)
			if err != nil {
				log.Errorf("failed JSON marshal server info: %s", err)
				http.Error(w, "failed JSON marshal server info", http.StatusInternalServerError)
				return
			}
			w.Write(data)
		} else {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprintf(w, "rangestream %s\n", info.Build.Version)
			fmt.Fprintf(w, "- %s\n", repoURL)
			fmt.Fprintf(w, "- range mode: %s", info.RangeMode)
		}
	})
}
