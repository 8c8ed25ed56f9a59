package rangestream

import (
	"errors"
	"fmt"
	"net/http"
)

// ResponseSink is the transport side of a stream. Headers must be set before
// WriteHeader is called, and WriteHeader before the first Write.
type ResponseSink interface {
	Header() http.Header
	WriteHeader(statusCode int)
	Write(p []byte) (int, error)
	// DisableBuffering makes subsequent writes reach the client as they are
	// made instead of accumulating in transport buffers. It is called once,
	// after WriteHeader and before the first body byte. Transports without
	// buffering treat it as a no-op.
	DisableBuffering()
	// IsClientConnected reports whether the client is still there to receive
	// bytes. It is polled once per chunk.
	IsClientConnected() bool
}

// NewHTTPSink adapts a [http.ResponseWriter] to a [ResponseSink]. Client
// liveness follows the request context, which net/http cancels when the
// connection goes away.
func NewHTTPSink(w http.ResponseWriter, r *http.Request) ResponseSink {
	return &httpSink{
		w:  w,
		r:  r,
		rc: http.NewResponseController(w),
	}
}

type httpSink struct {
	w     http.ResponseWriter
	r     *http.Request
	rc    *http.ResponseController
	flush bool
}

func (s *httpSink) Header() http.Header {
	return s.w.Header()
}

func (s *httpSink) WriteHeader(statusCode int) {
	s.w.WriteHeader(statusCode)
}

func (s *httpSink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err != nil {
		return n, err
	}
	if s.flush {
		if err := s.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return n, err
		}
	}
	return n, nil
}

func (s *httpSink) DisableBuffering() {
	if err := s.rc.Flush(); err != nil {
		if errors.Is(err, http.ErrNotSupported) {
			log.Debugw("response writer cannot flush, writes stay buffered", "type", fmt.Sprintf("%T", s.w))
			return
		}
		log.Warnw("flushing response headers", "error", err)
		return
	}
	s.flush = true
}

func (s *httpSink) IsClientConnected() bool {
	return s.r.Context().Err() == nil
}
