// Package window resolves the time window used to filter entries before
// trend aggregation. The current time is always injected by the caller so
// the resolution stays deterministic and testable.
package window

import (
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultDays is the fallback window when the parameter is missing,
	// unparsable, or out of range.
	DefaultDays = 30
	// MinDays is the smallest accepted window.
	MinDays = 1
	// MaxDays is the largest accepted window.
	MaxDays = 365
)

// DateFormat is the ISO date layout used for trading dates throughout.
const DateFormat = "2006-01-02"

// Resolve parses a requested day count and returns the inclusive window
// start (midnight UTC of today-(days-1)) together with the effective day
// count. Invalid input silently falls back to DefaultDays rather than
// rejecting the request.
func Resolve(param string, now time.Time) (time.Time, int) {
	days := DefaultDays
	if trimmed := strings.TrimSpace(param); trimmed != "" {
		if n, err := strconv.Atoi(trimmed); err == nil && n >= MinDays && n <= MaxDays {
			days = n
		}
	}

	utc := now.UTC()
	today := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -(days - 1)), days
}

// WeekStart returns the Monday of the ISO week containing the given
// YYYY-MM-DD date. Reports false for unparsable dates.
func WeekStart(date string) (string, bool) {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return "", false
	}

	// Monday=0 .. Sunday=6
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(DateFormat), true
}
