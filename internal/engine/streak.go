package engine

import (
	"time"

	"habitquest/internal/storage"
)

const (
	// MetricThreshold is the minimum value a metric entry needs to count.
	MetricThreshold = 5.0

	// MaxLookbackDays bounds the backward walk of StreakAsOf. Runs longer than
	// this are reported as MaxLookbackDays.
	MaxLookbackDays = 60
)

// Qualifies reports whether an entry counts toward streaks and consistency.
func Qualifies(e storage.LogEntry, isMetric bool) bool {
	if !e.Completed {
		return false
	}
	if !isMetric {
		return true
	}
	return e.Value != nil && *e.Value >= MetricThreshold
}

// entriesByDay indexes logs by canonical day key. Later entries win, matching
// replace-on-write semantics.
func entriesByDay(logs []storage.LogEntry) map[string]storage.LogEntry {
	out := make(map[string]storage.LogEntry, len(logs))
	for _, e := range logs {
		key, ok := NormalizeDay(e.Date)
		if !ok {
			continue
		}
		out[key] = e
	}
	return out
}

func qualifyingDays(h storage.Habit) map[string]bool {
	days := map[string]bool{}
	for key, e := range entriesByDay(h.Logs) {
		if Qualifies(e, h.IsMetric) {
			days[key] = true
		}
	}
	return days
}

// walkBack counts consecutive qualifying days ending at anchor, or at the day
// before when anchor itself does not qualify. limit <= 0 means unbounded; the
// walk still ends because days is finite.
func walkBack(days map[string]bool, anchor time.Time, limit int) int {
	if len(days) == 0 {
		return 0
	}
	d := anchor
	if !days[FormatDay(d)] {
		d = d.AddDate(0, 0, -1)
	}
	n := 0
	for limit <= 0 || n < limit {
		if !days[FormatDay(d)] {
			break
		}
		n++
		d = d.AddDate(0, 0, -1)
	}
	return n
}

// CurrentStreak returns the run of qualifying days ending today. An unlogged
// today does not break a run that reaches yesterday. Entries after today are
// never visited.
func CurrentStreak(h storage.Habit, today string) int {
	t, ok := ParseDay(today)
	if !ok {
		return 0
	}
	return walkBack(qualifyingDays(h), t, 0)
}

// StreakAsOf reconstructs the streak as it stood on a past day, walking back at
// most MaxLookbackDays.
func StreakAsOf(h storage.Habit, day string) int {
	t, ok := ParseDay(day)
	if !ok {
		return 0
	}
	return walkBack(qualifyingDays(h), t, MaxLookbackDays)
}

// LongestStreak returns the longest run of consecutive qualifying days on or
// before today.
func LongestStreak(h storage.Habit, today string) int {
	end, ok := ParseDay(today)
	if !ok {
		return 0
	}
	days := qualifyingDays(h)
	best := 0
	for key := range days {
		t, _ := ParseDay(key)
		if t.After(end) || days[FormatDay(t.AddDate(0, 0, -1))] {
			continue
		}
		// key starts a run; count forward.
		n := 0
		for d := t; !d.After(end) && days[FormatDay(d)]; d = d.AddDate(0, 0, 1) {
			n++
		}
		if n > best {
			best = n
		}
	}
	return best
}

// QualifiesOn reports whether h has a qualifying entry for day.
func QualifiesOn(h storage.Habit, day string) bool {
	key, ok := NormalizeDay(day)
	if !ok {
		return false
	}
	e, ok := entriesByDay(h.Logs)[key]
	return ok && Qualifies(e, h.IsMetric)
}
