package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name      string
		param     string
		wantDays  int
		wantStart string
	}{
		{"default when empty", "", 30, "2024-05-17"},
		{"explicit value", "7", 7, "2024-06-09"},
		{"one day covers only today", "1", 1, "2024-06-15"},
		{"max accepted", "365", 365, "2023-06-17"},
		{"zero falls back", "0", 30, "2024-05-17"},
		{"negative falls back", "-5", 30, "2024-05-17"},
		{"too large falls back", "366", 30, "2024-05-17"},
		{"unparsable falls back", "abc", 30, "2024-05-17"},
		{"whitespace tolerated", " 14 ", 14, "2024-06-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, days := Resolve(tt.param, now)
			assert.Equal(t, tt.wantDays, days)
			assert.Equal(t, tt.wantStart, start.Format(DateFormat))
			assert.Equal(t, time.UTC, start.Location())
			assert.Equal(t, 0, start.Hour())
		})
	}
}

func TestResolveUsesUTCCalendarDay(t *testing.T) {
	// 23:30 in UTC+10 is still the previous UTC calendar day
	loc := time.FixedZone("UTC+10", 10*3600)
	now := time.Date(2024, 6, 16, 9, 30, 0, 0, loc) // 2024-06-15 23:30 UTC

	start, days := Resolve("1", now)
	assert.Equal(t, 1, days)
	assert.Equal(t, "2024-06-15", start.Format(DateFormat))
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-06-10", "2024-06-10"}, // Monday maps to itself
		{"2024-06-12", "2024-06-10"}, // Wednesday
		{"2024-06-16", "2024-06-10"}, // Sunday belongs to the preceding Monday
		{"2024-06-17", "2024-06-17"}, // next Monday starts a new week
	}

	for _, tt := range tests {
		got, ok := WeekStart(tt.date)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestWeekStartUnparsable(t *testing.T) {
	_, ok := WeekStart("not-a-date")
	assert.False(t, ok)

	_, ok = WeekStart("")
	assert.False(t, ok)
}
