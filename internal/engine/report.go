package engine

import (
	"math"
	"sort"
	"time"

	"habitquest/internal/storage"
)

const (
	// DefaultWindowDays is the length of the progress report window.
	DefaultWindowDays = 30

	// WeakLinkThreshold is the completion rate under which the weakest habit is flagged.
	WeakLinkThreshold = 80.0
)

// HabitRate is a habit's qualifying-day rate inside a report window.
type HabitRate struct {
	HabitID string
	Name    string
	Rate    float64 // percent
}

type Report struct {
	Start   string
	End     string
	Points  []Point
	Rates   []HabitRate
	Weakest *HabitRate // nil when every habit is at or above WeakLinkThreshold
}

// WindowEnd pages a report window back from today by offset days.
func WindowEnd(today string, offset int) string {
	if offset < 0 {
		offset = 0
	}
	return AddDays(today, -offset)
}

// BuildReport computes the series for the n days ending at end, each habit's
// completion rate over the same days and the weakest link.
func BuildReport(habits []storage.Habit, end string, n int) Report {
	points := WindowSeries(habits, end, n)
	r := Report{Points: points}
	if len(points) == 0 {
		return r
	}
	r.Start = points[0].Date
	r.End = points[len(points)-1].Date

	window := make(map[string]bool, len(points))
	for _, p := range points {
		window[p.Date] = true
	}
	for _, h := range habits {
		completions := 0
		for day := range qualifyingDays(h) {
			if window[day] {
				completions++
			}
		}
		r.Rates = append(r.Rates, HabitRate{
			HabitID: h.ID,
			Name:    h.Name,
			Rate:    float64(completions) / float64(len(points)) * 100,
		})
	}

	sorted := make([]HabitRate, len(r.Rates))
	copy(sorted, r.Rates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rate < sorted[j].Rate })
	if len(sorted) > 0 && sorted[0].Rate < WeakLinkThreshold {
		weak := sorted[0]
		r.Weakest = &weak
	}
	return r
}

// DayIntensity is the consistency of one calendar day.
type DayIntensity struct {
	Date  string
	Ratio float64
}

// MonthIntensity returns DailyConsistency for every day of the month.
func MonthIntensity(habits []storage.Habit, year int, month time.Month) []DayIntensity {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysIn := first.AddDate(0, 1, -1).Day()
	out := make([]DayIntensity, 0, daysIn)
	for i := 0; i < daysIn; i++ {
		day := FormatDay(first.AddDate(0, 0, i))
		out = append(out, DayIntensity{Date: day, Ratio: DailyConsistency(habits, day)})
	}
	return out
}

// HabitSummary is the compact view of a habit sent to the coach.
type HabitSummary struct {
	Name           string  `json:"name"`
	Streak         int     `json:"streak"`
	CompletionRate float64 `json:"completionRate"`
	Last7Days      int     `json:"last7Days"`
}

// Summarize builds coach summaries. The completion rate is qualifying entries
// over all logged entries; Last7Days counts qualifying entries among the seven
// most recently written.
func Summarize(habits []storage.Habit) []HabitSummary {
	out := make([]HabitSummary, 0, len(habits))
	for _, h := range habits {
		qualifying := 0
		for _, e := range h.Logs {
			if Qualifies(e, h.IsMetric) {
				qualifying++
			}
		}
		recent := h.Logs
		if len(recent) > 7 {
			recent = recent[len(recent)-7:]
		}
		last7 := 0
		for _, e := range recent {
			if Qualifies(e, h.IsMetric) {
				last7++
			}
		}
		rate := float64(qualifying) / math.Max(float64(len(h.Logs)), 1) * 100
		out = append(out, HabitSummary{
			Name:           h.Name,
			Streak:         h.Streak,
			CompletionRate: math.Round(rate*10) / 10,
			Last7Days:      last7,
		})
	}
	return out
}
