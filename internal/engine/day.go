package engine

import (
	"strings"
	"time"
)

// DayLayout is the calendar-day key format used by every log entry.
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD key into midnight UTC. Day arithmetic happens on
// these values so that DST shifts in the configured zone never skip or repeat a day.
func ParseDay(s string) (time.Time, bool) {
	t, err := time.Parse(DayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// NormalizeDay returns the canonical form of a day key.
func NormalizeDay(s string) (string, bool) {
	t, ok := ParseDay(s)
	if !ok {
		return "", false
	}
	return FormatDay(t), true
}

// AddDays shifts a day key by n calendar days. Malformed keys come back unchanged.
func AddDays(day string, n int) string {
	t, ok := ParseDay(day)
	if !ok {
		return day
	}
	return FormatDay(t.AddDate(0, 0, n))
}

// Calendar pins "today" to a single timezone. Every date a command computes goes
// through the same Calendar.
type Calendar struct {
	loc *time.Location
}

func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Today returns the day key of now in the calendar's zone.
func (c Calendar) Today(now time.Time) string {
	return now.In(c.Location()).Format(DayLayout)
}

// Weekday returns the weekday of a day key (Sunday=0).
func Weekday(day string) (time.Weekday, bool) {
	t, ok := ParseDay(day)
	if !ok {
		return 0, false
	}
	return t.Weekday(), true
}
