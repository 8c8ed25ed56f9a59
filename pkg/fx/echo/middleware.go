package echo

import (
	"errors"
	"fmt"
	"net/http"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/storacha/rangestream/pkg/store"
	"github.com/storacha/rangestream/pkg/store/catalog"
	"github.com/storacha/rangestream/pkg/store/objectstore"
)

// ErrorHandler is a middleware that logs errors to the provided logger.
func ErrorHandler(log logging.EventLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				// do not log HTTP errors, since they have been "handled" already
				if _, ok := err.(*echo.HTTPError); !ok {
					log.Error(err)
				}
			}
			return err
		}
	}
}

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPErrorHandler turns handler errors into JSON responses. Responses that
// are already committed, such as a stream cut short, are left alone.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, message := errorStatus(err)
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Error: message})
	}
	if err != nil {
		log.Errorw("failed to send error response", "error", err)
	}
}

func errorStatus(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code, fmt.Sprintf("%v", he.Message)
	case errors.Is(err, store.ErrNotFound), errors.Is(err, objectstore.ErrNotExist):
		return http.StatusNotFound, http.StatusText(http.StatusNotFound)
	case errors.Is(err, catalog.ErrInvalidID), errors.Is(err, objectstore.ErrInvalidKey):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func RequestLogger(logger *logging.ZapEventLogger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:        true,
		LogLatency:       true,
		LogRemoteIP:      true,
		LogURI:           true,
		LogUserAgent:     true,
		LogStatus:        true,
		LogContentLength: true,
		LogResponseSize:  true,
		LogHeaders:       []string{"Range"},
		LogError:         true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("remote_ip", v.RemoteIP),
				zap.Duration("latency", v.Latency),
				zap.String("user_agent", v.UserAgent),
				zap.String("content_length", v.ContentLength),
				zap.Int64("response_size", v.ResponseSize),
				zap.Reflect("headers", v.Headers),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= http.StatusInternalServerError:
				logger.WithOptions(zap.Fields(fields...)).Error("server error")
			case v.Status >= http.StatusBadRequest:
				logger.WithOptions(zap.Fields(fields...)).Warn("client error")
			default:
				logger.WithOptions(zap.Fields(fields...)).Info("request completed")
			}
			return nil
		},
	})
}
