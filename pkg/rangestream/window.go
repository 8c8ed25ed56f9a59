package rangestream

import "go.uber.org/zap/zapcore"

// Window is the byte window resolved for a single request.
type Window struct {
	// Begin is the first byte to serve (inclusive).
	Begin int64
	// End is the last byte to serve (inclusive). When the declared size is
	// unknown and the client gave no end it is -1.
	End int64
	// Partial is true when the request carried a Range header, whether or not
	// the header could be parsed.
	Partial bool
	// HasEnd is true when the client supplied an explicit end offset.
	HasEnd bool
}

// Resolve computes the window for a source of the given declared size. The
// default window covers the whole source; a parsable range moves Begin and,
// when present, End. Offsets are not clamped against size.
func Resolve(size int64, rangeHeader string, hasRange bool) Window {
	w := Window{Begin: 0, End: size - 1, Partial: hasRange}
	if !hasRange {
		return w
	}
	r, ok := ParseRange(rangeHeader)
	if !ok {
		return w
	}
	w.Begin = r.Start
	if r.End != nil {
		w.End = *r.End
		w.HasEnd = true
	}
	return w
}

// ContentLength is the number of bytes in the window. It is only meaningful
// when the declared size is known.
func (w Window) ContentLength() int64 {
	return w.End - w.Begin + 1
}

func (w Window) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("begin", w.Begin)
	enc.AddInt64("end", w.End)
	enc.AddBool("partial", w.Partial)
	return nil
}
