package timeutil

import (
	"strings"
	"time"
)

// DefaultActiveMargin is the grace applied on both ends of a booking
// interval when deciding whether it is active right now. A pass stays valid
// for guests arriving a little early and leaving a little late.
const DefaultActiveMargin = 15 * time.Minute

// Precision selects which textual timestamp form a filter parameter expects.
// The workspace-management API is inconsistent here: booking time filters
// take minute precision without a zone suffix, visitor arrival filters take
// second precision with a trailing Z.
type Precision int

const (
	PrecisionSecond Precision = iota
	PrecisionMinute
)

type StampFormat struct {
	Precision Precision
	ZSuffix   bool
}

var (
	// SecondStamp renders "2006-01-02T15:04:05Z".
	SecondStamp = StampFormat{Precision: PrecisionSecond, ZSuffix: true}
	// MinuteStamp renders "2006-01-02T15:04".
	MinuteStamp = StampFormat{Precision: PrecisionMinute}
)

func (f StampFormat) Render(t time.Time) string {
	layout := "2006-01-02T15:04:05"
	if f.Precision == PrecisionMinute {
		layout = "2006-01-02T15:04"
	}
	s := t.UTC().Format(layout)
	if f.ZSuffix {
		s += "Z"
	}
	return s
}

// TodayWindowUTC returns the current UTC day as the closed interval
// [00:00:00.000, 23:59:59.999].
func TodayWindowUTC(now time.Time) (start, end time.Time) {
	now = now.UTC()
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999_000_000, time.UTC)
	return start, end
}

// upstreamLayouts covers the wall-clock shapes the record API emits.
// Timezone-naive strings are interpreted as UTC.
var upstreamLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Parse interprets an upstream timestamp string. The bool result reports
// whether the string was parseable; malformed values never abort a
// resolution, they just render the interval unmatchable.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range upstreamLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// IsActiveNow reports whether now falls within [from-margin, to+margin].
// Unparsable endpoints yield false.
func IsActiveNow(now time.Time, from, to string, margin time.Duration) bool {
	f, ok := Parse(from)
	if !ok {
		return false
	}
	t, ok := Parse(to)
	if !ok {
		return false
	}
	return !now.Before(f.Add(-margin)) && !now.After(t.Add(margin))
}

// Overlaps reports whether the interval [from, to] intersects [start, end].
func Overlaps(from, to string, start, end time.Time) bool {
	f, ok := Parse(from)
	if !ok {
		return false
	}
	t, ok := Parse(to)
	if !ok {
		return false
	}
	return !t.Before(start) && !f.After(end)
}
