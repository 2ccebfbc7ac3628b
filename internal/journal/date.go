// internal/journal/date.go
package journal

import (
	"sort"
	"time"
)

// DateLayout is the calendar-date format used throughout the journal.
const DateLayout = "2006-01-02"

// ParseDate parses a journal date string. The zero time is returned for
// empty or malformed dates so callers can treat them as "not logged".
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// MonthKey returns the YYYY-MM bucket key for a date string, or "" when
// the date is missing or malformed.
func MonthKey(date string) string {
	t := ParseDate(date)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01")
}

// SortTradesByDate sorts trades ascending by date. The sort is stable so
// same-day trades keep their logged order.
func SortTradesByDate(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return ParseDate(trades[i].Date).Before(ParseDate(trades[j].Date))
	})
}
