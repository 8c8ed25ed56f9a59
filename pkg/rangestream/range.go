package rangestream

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// rangeExpr matches the first `bytes=<start>-[<end>]` spec in a Range header.
// Spaces and tabs may follow the `=`; the unit is matched case-insensitively.
var rangeExpr = regexp.MustCompile(`(?i)bytes=[ \t]*(\d+)-(\d*)`)

// Range is a byte range requested by a client. Start and End are inclusive
// offsets; a nil End means "to the end of the file".
type Range struct {
	Start int64
	End   *int64
}

func (r Range) String() string {
	if r.End == nil {
		return fmt.Sprintf("%d-", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, *r.End)
}

// ParseRange extracts the first byte range from a raw Range header value. The
// second return value is false when the header does not contain a usable
// range, including when an offset or the window length does not fit in an
// int64. An end of exactly "0" is treated as absent. Only the first range of a
// multi-range header is honored.
func ParseRange(header string) (Range, bool) {
	m := rangeExpr.FindStringSubmatch(header)
	if m == nil {
		return Range{}, false
	}
	start, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Range{}, false
	}
	r := Range{Start: start}
	// a bare "0" end counts as absent, so bytes=N-0 reads to the end
	if m[2] != "" && m[2] != "0" {
		end, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return Range{}, false
		}
		// the window length end-start+1 must fit in an int64
		if end-start == math.MaxInt64 {
			return Range{}, false
		}
		r.End = &end
	}
	return r, true
}
