package engine

import (
	"testing"
	"time"

	"habitquest/internal/storage"
)

func done(day string) storage.LogEntry {
	return storage.LogEntry{Date: day, Completed: true}
}

func missed(day string) storage.LogEntry {
	return storage.LogEntry{Date: day}
}

func metric(day string, v float64) storage.LogEntry {
	return storage.LogEntry{Date: day, Completed: v >= MetricThreshold, Value: &v}
}

func habitWith(logs ...storage.LogEntry) storage.Habit {
	return storage.Habit{ID: "h", Name: "h", Logs: logs}
}

// runEnding returns n consecutive completed days ending at end.
func runEnding(end string, n int) []storage.LogEntry {
	out := make([]storage.LogEntry, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, done(AddDays(end, -i)))
	}
	return out
}

func TestCurrentStreakEmpty(t *testing.T) {
	if got := CurrentStreak(habitWith(), "2024-01-03"); got != 0 {
		t.Fatalf("CurrentStreak(empty)=%d, want 0", got)
	}
}

func TestCurrentStreakCountsRunIncludingToday(t *testing.T) {
	for n := 1; n <= 12; n++ {
		logs := append([]storage.LogEntry{missed(AddDays("2024-03-10", -n))}, runEnding("2024-03-10", n)...)
		if got := CurrentStreak(habitWith(logs...), "2024-03-10"); got != n {
			t.Fatalf("n=%d: CurrentStreak=%d", n, got)
		}
	}
}

func TestCurrentStreakStepsBackWhenTodayFails(t *testing.T) {
	h := habitWith(done("2024-01-01"), done("2024-01-02"), missed("2024-01-03"))
	if got := CurrentStreak(h, "2024-01-03"); got != 2 {
		t.Fatalf("CurrentStreak=%d, want 2", got)
	}

	// Unlogged today behaves the same as a failed today.
	h = habitWith(done("2024-01-01"), done("2024-01-02"))
	if got := CurrentStreak(h, "2024-01-03"); got != 2 {
		t.Fatalf("CurrentStreak(unlogged today)=%d, want 2", got)
	}

	// A gap of two days breaks it.
	if got := CurrentStreak(h, "2024-01-04"); got != 0 {
		t.Fatalf("CurrentStreak(after gap)=%d, want 0", got)
	}
}

func TestCurrentStreakIgnoresFutureEntries(t *testing.T) {
	base := habitWith(done("2024-01-01"), done("2024-01-02"))
	withFuture := habitWith(done("2024-01-01"), done("2024-01-02"), done("2024-01-03"), done("2024-01-09"))
	if a, b := CurrentStreak(base, "2024-01-02"), CurrentStreak(withFuture, "2024-01-02"); a != b {
		t.Fatalf("future entries changed streak: %d vs %d", a, b)
	}
}

func TestCurrentStreakCrossesMonthAndYear(t *testing.T) {
	h := habitWith(done("2023-12-30"), done("2023-12-31"), done("2024-01-01"))
	if got := CurrentStreak(h, "2024-01-01"); got != 3 {
		t.Fatalf("year boundary streak=%d, want 3", got)
	}
	h = habitWith(done("2024-02-28"), done("2024-02-29"), done("2024-03-01"))
	if got := CurrentStreak(h, "2024-03-01"); got != 3 {
		t.Fatalf("leap day streak=%d, want 3", got)
	}
}

func TestMetricBelowThresholdDoesNotCount(t *testing.T) {
	h := habitWith(metric("2024-01-01", 6), metric("2024-01-02", 4))
	h.IsMetric = true
	if got := CurrentStreak(h, "2024-01-02"); got != 1 {
		t.Fatalf("CurrentStreak=%d, want 1 (value 4 does not qualify)", got)
	}

	// completed without a value never qualifies for a metric habit.
	h = habitWith(done("2024-01-02"))
	h.IsMetric = true
	if got := CurrentStreak(h, "2024-01-02"); got != 0 {
		t.Fatalf("CurrentStreak(no value)=%d, want 0", got)
	}
}

func TestStreakAsOfIsBounded(t *testing.T) {
	h := habitWith(runEnding("2024-06-30", 100)...)
	if got := StreakAsOf(h, "2024-06-30"); got != MaxLookbackDays {
		t.Fatalf("StreakAsOf=%d, want %d", got, MaxLookbackDays)
	}
	if got := CurrentStreak(h, "2024-06-30"); got != 100 {
		t.Fatalf("CurrentStreak=%d, want 100", got)
	}
	if got := StreakAsOf(h, "2024-04-01"); got != 10 {
		t.Fatalf("StreakAsOf(mid run)=%d, want 10", got)
	}
}

func TestStreakMalformedDay(t *testing.T) {
	h := habitWith(done("2024-01-01"))
	if got := CurrentStreak(h, "not-a-date"); got != 0 {
		t.Fatalf("CurrentStreak(bad day)=%d", got)
	}
	if got := StreakAsOf(h, ""); got != 0 {
		t.Fatalf("StreakAsOf(bad day)=%d", got)
	}
}

func TestLastEntryForDayWins(t *testing.T) {
	h := habitWith(done("2024-01-02"), missed("2024-01-02"))
	if got := CurrentStreak(h, "2024-01-02"); got != 0 {
		t.Fatalf("CurrentStreak=%d, want 0", got)
	}
}

func TestLongestStreak(t *testing.T) {
	logs := append(runEnding("2024-01-05", 5), runEnding("2024-01-20", 3)...)
	h := habitWith(logs...)
	if got := LongestStreak(h, "2024-01-20"); got != 5 {
		t.Fatalf("LongestStreak=%d, want 5", got)
	}
	if got := LongestStreak(h, "2024-01-03"); got != 3 {
		t.Fatalf("LongestStreak(before end of run)=%d, want 3", got)
	}
}

func TestCalendarToday(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("no tzdata")
	}
	now := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	if got := NewCalendar(tokyo).Today(now); got != "2024-01-02" {
		t.Fatalf("Tokyo today=%s", got)
	}
	if got := NewCalendar(nil).Today(now); got != "2024-01-01" {
		t.Fatalf("UTC today=%s", got)
	}
}
