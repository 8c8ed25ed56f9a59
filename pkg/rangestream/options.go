package rangestream

import (
	"fmt"
)

// DefaultChunkSize is the number of bytes read from the source per iteration.
const DefaultChunkSize = 8 * 1024

// DefaultMimeType is the content type used when a request does not carry one.
const DefaultMimeType = "audio/mp3"

// RangeMode selects how the body of a ranged response is produced.
type RangeMode string

const (
	// RangeModeSeek sends exactly the bytes described by Content-Range. The
	// source is opened at the range start when the opener supports it,
	// otherwise it is seeked or read past.
	RangeModeSeek RangeMode = "seek"
	// RangeModeHeaderOnly always streams the source from its first byte and
	// relies on the headers alone to describe the range. This suits storage
	// that applies Range semantics itself.
	RangeModeHeaderOnly RangeMode = "header-only"
)

// ParseRangeMode converts a configuration string to a [RangeMode].
func ParseRangeMode(s string) (RangeMode, error) {
	switch RangeMode(s) {
	case RangeModeSeek, "":
		return RangeModeSeek, nil
	case RangeModeHeaderOnly:
		return RangeModeHeaderOnly, nil
	default:
		return "", fmt.Errorf("unknown range mode %q", s)
	}
}

type config struct {
	chunkSize       int
	mode            RangeMode
	rateLimit       int
	defaultMimeType string
	metrics         *Metrics
}

// Option configures a [Streamer].
type Option func(cfg *config) error

// WithChunkSize sets the number of bytes read per iteration of the copy loop.
func WithChunkSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("chunk size must be positive, got %d", n)
		}
		cfg.chunkSize = n
		return nil
	}
}

// WithRangeMode sets how ranged bodies are produced. The default is
// [RangeModeSeek].
func WithRangeMode(mode RangeMode) Option {
	return func(cfg *config) error {
		if mode != RangeModeSeek && mode != RangeModeHeaderOnly {
			return fmt.Errorf("unknown range mode %q", mode)
		}
		cfg.mode = mode
		return nil
	}
}

// WithRateLimit caps the throughput of every stream at bytesPerSecond. Zero
// disables the limit.
func WithRateLimit(bytesPerSecond int) Option {
	return func(cfg *config) error {
		if bytesPerSecond < 0 {
			return fmt.Errorf("rate limit must not be negative, got %d", bytesPerSecond)
		}
		cfg.rateLimit = bytesPerSecond
		return nil
	}
}

// WithDefaultMimeType sets the content type sent when a request has none.
func WithDefaultMimeType(mimeType string) Option {
	return func(cfg *config) error {
		cfg.defaultMimeType = mimeType
		return nil
	}
}

// WithMetrics records stream outcomes on the given instruments.
func WithMetrics(m *Metrics) Option {
	return func(cfg *config) error {
		cfg.metrics = m
		return nil
	}
}
