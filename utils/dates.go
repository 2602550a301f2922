package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// ParseDate accepts either a bare "YYYY-MM-DD" date or a full RFC 3339
// timestamp (the calendar widget sends the latter) and truncates it to a
// UTC calendar day.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return TruncateToDay(t), nil
}

// TruncateToDay drops the time-of-day component, keeping the UTC date.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns every calendar day from start to end inclusive as
// "YYYY-MM-DD" strings. The result is empty when end precedes start, so the
// walk is finite by construction.
func DaysBetween(start, end time.Time) []string {
	start, end = TruncateToDay(start), TruncateToDay(end)
	if end.Before(start) {
		return nil
	}

	days := make([]string, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days
}

// RangesOverlap reports whether the two inclusive day ranges share at least
// one calendar day.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !TruncateToDay(aEnd).Before(TruncateToDay(bStart)) &&
		!TruncateToDay(bEnd).Before(TruncateToDay(aStart))
}
