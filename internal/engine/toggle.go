package engine

import (
	"slices"

	"habitquest/internal/storage"
)

// ToggleCompletion writes the entry for day and returns the updated habit plus
// the signed XP change. The input habit is left untouched.
//
// Metric habits store {completed: value >= MetricThreshold, value}; a nil value
// clears the day. Boolean habits flip the day when value is nil and otherwise
// set completed = value > 0.
//
// The streak cache is recomputed against today. A malformed day returns an
// unchanged copy and a zero delta.
func ToggleCompletion(h storage.Habit, day string, value *float64, today string) (storage.Habit, int) {
	out := cloneHabit(h)
	key, ok := NormalizeDay(day)
	if !ok {
		return out, 0
	}

	prev, had := entriesByDay(h.Logs)[key]
	var prevPtr *storage.LogEntry
	if had {
		prevPtr = &prev
	}
	next := nextEntry(h.IsMetric, prevPtr, key, value)

	out.Logs = replaceDay(out.Logs, key, next)

	wasQualified := had && Qualifies(prev, h.IsMetric)
	isQualified := Qualifies(next, h.IsMetric)
	delta := 0
	switch {
	case isQualified && !wasQualified:
		delta = XPPerCompletion
	case wasQualified && !isQualified:
		delta = -XPPerCompletion
	}

	out.Streak = CurrentStreak(out, today)
	return out, delta
}

func nextEntry(isMetric bool, prev *storage.LogEntry, day string, value *float64) storage.LogEntry {
	if isMetric {
		if value == nil {
			return storage.LogEntry{Date: day}
		}
		v := *value
		return storage.LogEntry{Date: day, Completed: v >= MetricThreshold, Value: &v}
	}
	if value != nil {
		return storage.LogEntry{Date: day, Completed: *value > 0}
	}
	return storage.LogEntry{Date: day, Completed: prev == nil || !Qualifies(*prev, false)}
}

// replaceDay puts e at the position of the first entry for day, drops any other
// entries for that day, or appends when the day was never logged.
func replaceDay(logs []storage.LogEntry, day string, e storage.LogEntry) []storage.LogEntry {
	out := make([]storage.LogEntry, 0, len(logs)+1)
	placed := false
	for _, cur := range logs {
		key, ok := NormalizeDay(cur.Date)
		if !ok || key != day {
			out = append(out, cur)
			continue
		}
		if !placed {
			out = append(out, e)
			placed = true
		}
	}
	if !placed {
		out = append(out, e)
	}
	return out
}

func cloneHabit(h storage.Habit) storage.Habit {
	out := h
	out.Logs = make([]storage.LogEntry, len(h.Logs))
	for i, e := range h.Logs {
		if e.Value != nil {
			v := *e.Value
			e.Value = &v
		}
		out.Logs[i] = e
	}
	out.Reminders = slices.Clone(h.Reminders)
	return out
}
