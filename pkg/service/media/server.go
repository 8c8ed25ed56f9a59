package media

import (
	"errors"
	"fmt"
	"net/http"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"

	echofx "github.com/storacha/rangestream/pkg/fx/echo"
	"github.com/storacha/rangestream/pkg/rangestream"
	"github.com/storacha/rangestream/pkg/server/handler"
)

var log = logging.Logger("media")

var _ echofx.RouteRegistrar = (*Server)(nil)

// Server exposes the library over HTTP.
type Server struct {
	library  *Library
	streamer *rangestream.Streamer
}

func NewServer(library *Library, streamer *rangestream.Streamer) *Server {
	return &Server{library: library, streamer: streamer}
}

func (srv *Server) RegisterRoutes(e *echo.Echo) {
	get := NewMediaGetHandler(srv.library, srv.streamer).ToEcho()
	e.GET("/media/:id", get)
	e.HEAD("/media/:id", get)
	e.PUT("/media/:id", NewMediaPutHandler(srv.library).ToEcho())
}

// NewMediaGetHandler streams the requested window of a catalog entry. HEAD
// requests get the same headers without a body.
func NewMediaGetHandler(library *Library, streamer *rangestream.Streamer) handler.Func {
	return func(ctx handler.Context) error {
		r, w := ctx.Request(), ctx.Response()

		entry, err := library.Get(r.Context(), ctx.Param("id"))
		if err != nil {
			return fmt.Errorf("looking up media: %w", err)
		}

		req := rangestream.NewRequest(entry.Key, entry.Size, entry.MimeType, r.Header)
		req.HeadersOnly = r.Method == http.MethodHead

		_, err = streamer.Stream(r.Context(), rangestream.NewHTTPSink(w, r), req)
		if err != nil {
			if errors.Is(err, rangestream.ErrInvalidSize) {
				log.Errorw("catalog entry has an invalid size", "id", entry.ID, "size", entry.Size)
			}
			return fmt.Errorf("streaming %s: %w", entry.ID, err)
		}
		return nil
	}
}

// NewMediaPutHandler stores the request body and registers it under the id
// in the path. The body length must be declared up front.
func NewMediaPutHandler(library *Library) handler.Func {
	return func(ctx handler.Context) error {
		r := ctx.Request()
		if r.ContentLength < 0 {
			return echo.NewHTTPError(http.StatusLengthRequired, "Content-Length required")
		}

		entry, err := library.Add(r.Context(), ctx.Param("id"), r.ContentLength, r.Header.Get("Content-Type"), r.Body)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusCreated, entry)
	}
}
