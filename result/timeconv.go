package result

import (
	"fmt"
	"strings"
	"time"
)

// compactLen is the minimum length of a compact timestamp:
// YYYYMMDDHHMMSSmmm.
const compactLen = 17

// ISOFromCompact converts a compact timestamp digit string to the
// `YYYY-MM-DDTHH:MM:SS.mmm000` form used in emitted records. Conversion is
// fixed-offset slicing: the millisecond part is always cut at the same
// offset no matter how long the input is, and the literal "000" suffix is
// appended rather than real sub-millisecond precision. An absent input maps
// to an absent output.
func ISOFromCompact(ts string) string {
	if len(ts) < compactLen {
		return ""
	}
	return fmt.Sprintf("%s-%s-%sT%s:%s:%s.%s000",
		ts[0:4], ts[4:6], ts[6:8], ts[8:10], ts[10:12], ts[12:14], ts[14:17])
}

// ElapsedBetween returns the elapsed milliseconds between two compact
// timestamps. Unparseable or absent inputs yield zero.
func ElapsedBetween(start, end string) int64 {
	st, ok := parseCompact(start)
	if !ok {
		return 0
	}
	et, ok := parseCompact(end)
	if !ok {
		return 0
	}
	ms := et.Sub(st).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}

func parseCompact(ts string) (time.Time, bool) {
	if len(ts) < compactLen {
		return time.Time{}, false
	}
	t, err := time.Parse("20060102150405.000", ts[:14]+"."+ts[14:17])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NormalizeTimestamp converts a flexible timestamp such as
// `2007-10-01 15:12:42.268` or `20071001151242268` into the compact form.
// All separators are optional and parts from milliseconds down to hours may
// be omitted when they are zero.
func NormalizeTimestamp(in string) (string, error) {
	var digits strings.Builder
	for _, r := range in {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '.' || r == ':' || r == 'T':
			// separator, ignored
		default:
			return "", fmt.Errorf("invalid timestamp %q", in)
		}
	}
	ts := digits.String()
	if len(ts) < 8 {
		return "", fmt.Errorf("invalid timestamp %q: date part is required", in)
	}
	if len(ts) > compactLen {
		return "", fmt.Errorf("invalid timestamp %q", in)
	}
	ts += strings.Repeat("0", compactLen-len(ts))
	if _, ok := parseCompact(ts); !ok {
		return "", fmt.Errorf("invalid timestamp %q", in)
	}
	return ts, nil
}

// SecondsFromMillis renders a millisecond duration as seconds with exactly
// three decimal places, the format every emitted record uses.
func SecondsFromMillis(ms int64) string {
	return fmt.Sprintf("%.3f", float64(ms)/1000)
}
