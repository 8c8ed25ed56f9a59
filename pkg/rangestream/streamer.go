package rangestream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var log = logging.Logger("rangestream")

// StatusSourceUnavailable is the status sent when the source cannot be opened.
// Existing players expect 505 here, so it is kept even though the code names
// an HTTP version error.
const StatusSourceUnavailable = http.StatusHTTPVersionNotSupported

// Request describes one stream. It is built per call by the caller that
// resolved the file.
type Request struct {
	// Path locates the source; it is passed to the [Opener] untouched.
	Path string
	// Size is the declared size of the source in bytes. Zero means unknown.
	Size int64
	// MimeType is sent as Content-Type.
	MimeType string
	// Range is the raw value of the Range header.
	Range string
	// HasRange is true when the request carried a Range header at all.
	HasRange bool
	// HeadersOnly skips the body, for HEAD requests.
	HeadersOnly bool
}

// NewRequest builds a [Request] from the headers of an HTTP request.
func NewRequest(path string, size int64, mimeType string, header http.Header) Request {
	req := Request{Path: path, Size: size, MimeType: mimeType}
	if values := header.Values("Range"); len(values) > 0 {
		req.Range = values[0]
		req.HasRange = true
	}
	return req
}

// Result reports what a stream sent.
type Result struct {
	Status       int
	Window       Window
	BytesWritten int64
	// Interrupted is true when the copy stopped before the source or window
	// was exhausted, because of a disconnect or an I/O error.
	Interrupted bool
}

// Streamer serves byte windows of sources opened through an [Opener]. It
// holds no per-request state and may be shared between goroutines.
type Streamer struct {
	opener Opener
	cfg    config
}

func New(opener Opener, opts ...Option) (*Streamer, error) {
	cfg := config{
		chunkSize:       DefaultChunkSize,
		mode:            RangeModeSeek,
		defaultMimeType: DefaultMimeType,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Streamer{opener: opener, cfg: cfg}, nil
}

// Mode returns the range mode the streamer was configured with.
func (s *Streamer) Mode() RangeMode {
	return s.cfg.mode
}

// Stream writes the window of req described by its Range header to sink.
//
// A source that cannot be opened results in a bare [StatusSourceUnavailable]
// response and a nil error. A negative declared size returns [ErrInvalidSize]
// before anything is written. Once headers are sent, read and write failures
// end the stream and are logged; they are not returned.
func (s *Streamer) Stream(ctx context.Context, sink ResponseSink, req Request) (Result, error) {
	start := time.Now()
	win := Resolve(req.Size, req.Range, req.HasRange)
	log := log.With("path", req.Path, "size", req.Size)
	if req.HasRange {
		log = log.With("range", req.Range)
	}

	plan := s.plan(req, win)
	src, err := s.open(ctx, req.Path, req.Size, &plan)
	if err != nil {
		log.Warnw("source unavailable", "error", &SourceOpenError{Path: req.Path, Err: err})
		sink.WriteHeader(StatusSourceUnavailable)
		res := Result{Status: StatusSourceUnavailable, Window: win}
		s.cfg.metrics.record(ctx, res, time.Since(start))
		return res, nil
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Warnw("closing source", "error", err)
		}
	}()

	if req.Size < 0 {
		return Result{}, fmt.Errorf("%w: %d bytes declared for %q", ErrInvalidSize, req.Size, req.Path)
	}

	res := Result{Status: http.StatusOK, Window: win}
	if win.Partial {
		res.Status = http.StatusPartialContent
	}
	s.writeHeaders(log, sink, req, win, res.Status)

	if !req.HeadersOnly {
		sink.DisableBuffering()
		res.BytesWritten, res.Interrupted = s.copy(ctx, log, sink, src, plan)
	}

	s.cfg.metrics.record(ctx, res, time.Since(start))
	log.Debugw("stream finished", "status", res.Status, "window", win, "bytes", res.BytesWritten, "interrupted", res.Interrupted)
	return res, nil
}

func (s *Streamer) writeHeaders(log *zap.SugaredLogger, sink ResponseSink, req Request, win Window, status int) {
	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = s.cfg.defaultMimeType
	}

	h := sink.Header()
	h.Set("Content-Type", mimeType)
	h.Set("Cache-Control", "public, must-revalidate, max-age=0")
	h.Set("Pragma", "no-cache")
	h.Set("Accept-Ranges", "bytes")
	if req.Size > 0 {
		if n := win.ContentLength(); n >= 0 {
			h.Set("Content-Length", strconv.FormatInt(n, 10))
		} else {
			log.Debugw("range end precedes start, omitting Content-Length", "window", win)
		}
		if win.Partial {
			h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", win.Begin, win.End, req.Size))
		}
	}
	h.Set("Content-Transfer-Encoding", "binary")
	sink.WriteHeader(status)
}

// readPlan is the slice of the source that goes into the body.
type readPlan struct {
	// offset is the first source byte to send.
	offset int64
	// limit is the number of bytes to send, -1 for everything up to EOF.
	limit int64
	// positioned is set once the reader already starts at offset.
	positioned bool
}

func (s *Streamer) plan(req Request, win Window) readPlan {
	if s.cfg.mode == RangeModeHeaderOnly || req.Size < 0 {
		return readPlan{limit: -1}
	}
	switch {
	case req.Size > 0 || win.HasEnd:
		return readPlan{offset: win.Begin, limit: max(win.ContentLength(), 0)}
	default:
		return readPlan{offset: win.Begin, limit: -1}
	}
}

// open asks a range-capable opener for just the planned bytes when the window
// lies inside the source. Everything else is opened from the start and
// positioned later by copy.
func (s *Streamer) open(ctx context.Context, path string, size int64, p *readPlan) (io.ReadCloser, error) {
	ro, ok := s.opener.(RangeOpener)
	if !ok || p.limit == 0 || (p.offset == 0 && p.limit < 0) {
		return s.opener.Open(ctx, path)
	}
	if size > 0 && p.offset >= size {
		return s.opener.Open(ctx, path)
	}

	var end *uint64
	if p.limit > 0 {
		last := p.offset + p.limit - 1
		if size > 0 && last >= size {
			last = size - 1
		}
		e := uint64(last)
		end = &e
	}
	rc, err := ro.OpenRange(ctx, path, uint64(p.offset), end)
	if errors.Is(err, ErrRangeNotSatisfiable) {
		log.Debugw("stored source is shorter than the window, reading from the start", "path", path, "error", err)
		return s.opener.Open(ctx, path)
	}
	if err != nil {
		return nil, err
	}
	p.positioned = true
	return rc, nil
}

func (s *Streamer) copy(ctx context.Context, log *zap.SugaredLogger, sink ResponseSink, src io.Reader, p readPlan) (written int64, interrupted bool) {
	if p.limit == 0 {
		return 0, false
	}
	if !p.positioned && p.offset > 0 {
		if err := skip(src, p.offset); err != nil {
			log.Warnw("positioning source", "offset", p.offset, "error", err)
			return 0, true
		}
	}

	var limiter *rate.Limiter
	if s.cfg.rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.cfg.rateLimit), max(s.cfg.rateLimit, s.cfg.chunkSize))
	}

	buf := make([]byte, s.cfg.chunkSize)
	remaining := p.limit
	for remaining != 0 {
		if ctx.Err() != nil || !sink.IsClientConnected() {
			log.Debugw("client went away", "bytes", written)
			return written, true
		}

		chunk := buf
		if remaining > 0 && remaining < int64(len(chunk)) {
			chunk = chunk[:remaining]
		}
		n, rerr := src.Read(chunk)
		if n > 0 {
			if limiter != nil {
				if err := limiter.WaitN(ctx, n); err != nil {
					log.Debugw("rate limit wait aborted", "bytes", written, "error", err)
					return written, true
				}
			}
			wn, werr := sink.Write(chunk[:n])
			written += int64(wn)
			if remaining > 0 {
				remaining -= int64(n)
			}
			if werr != nil {
				log.Warnw("writing chunk", "bytes", written, "error", werr)
				return written, true
			}
		}
		if errors.Is(rerr, io.EOF) {
			return written, false
		}
		if rerr != nil {
			log.Warnw("reading chunk", "bytes", written, "error", rerr)
			return written, true
		}
	}
	return written, false
}

// skip advances r to offset. Seekable sources jump; streams are read past.
// Running out of bytes is not an error: the body is simply empty.
func skip(r io.Reader, offset int64) error {
	if sk, ok := r.(io.Seeker); ok {
		_, err := sk.Seek(offset, io.SeekStart)
		return err
	}
	_, err := io.CopyN(io.Discard, r, offset)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
