// internal/app/system/daterange/daterange.go

// Package daterange resolves caller-supplied date bounds into the
// half-open [Start, End) intervals the analytics aggregators query with.
package daterange

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
)

// DayFormat is the canonical calendar-day key used across the office-admin
// aggregators ("2006-01-02"). The daily trend aggregator derives its day
// keys database-side with $dateToString "%Y-%m-%d", which produces the
// same shape.
const DayFormat = "2006-01-02"

// DefaultWindowDays is the trailing window applied when the caller
// supplies no bounds: end is the start of tomorrow, start is 29 days
// earlier, covering today plus the previous 29 calendar days.
const DefaultWindowDays = 30

// Range is a half-open datetime interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// IsEmpty reports whether the range selects nothing.
func (r Range) IsEmpty() bool {
	return !r.Start.Before(r.End)
}

// From returns the start bound formatted as a day key.
func (r Range) From() string { return r.Start.Format(DayFormat) }

// To returns the end bound formatted as a day key.
func (r Range) To() string { return r.End.Format(DayFormat) }

// FromRequest reads start|from and end|to query parameters and resolves
// them with Resolve.
func FromRequest(r *http.Request, now time.Time) Range {
	start := query.Get(r, "start")
	if start == "" {
		start = query.Get(r, "from")
	}
	end := query.Get(r, "end")
	if end == "" {
		end = query.Get(r, "to")
	}
	return Resolve(start, end, now)
}

// Resolve turns optional date strings into a concrete half-open interval.
//
// An absent end defaults to the start of tomorrow (so the window includes
// all of today); an absent start defaults to DefaultWindowDays-1 days
// before that end. A supplied bound that does not parse yields an empty
// range: the original backend fed Invalid Date into its queries, which
// matched no documents, and callers depend on that quiet no-data answer
// rather than a 400.
func Resolve(startStr, endStr string, now time.Time) Range {
	end := startOfDay(now).AddDate(0, 0, 1)
	if endStr != "" {
		parsed, ok := parseDate(endStr, now.Location())
		if !ok {
			return Range{}
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -(DefaultWindowDays - 1))
	if startStr != "" {
		parsed, ok := parseDate(startStr, now.Location())
		if !ok {
			return Range{}
		}
		start = parsed
	}

	return Range{Start: start, End: end}
}

// parseDate accepts plain calendar dates and RFC 3339 timestamps.
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	if t, err := time.ParseInLocation(DayFormat, s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Days returns every calendar-day key in [Start, End), in order. Used by
// the office-admin daily stats, which materializes rows for empty days.
func (r Range) Days() []string {
	if r.IsEmpty() {
		return nil
	}
	var days []string
	for d := startOfDay(r.Start); d.Before(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DayFormat))
	}
	return days
}
