package engine

import (
	"math"
	"time"

	"habitquest/internal/storage"
)

// Potential score weights.
const (
	MomentumWeight   = 2.0
	MomentumCap      = 10.0
	ConsistencyBonus = 10.0
	BonusThreshold   = 80.0
)

// DailyConsistency is the fraction of habits with a qualifying entry on day.
// It is 0 for an empty collection or a malformed day.
func DailyConsistency(habits []storage.Habit, day string) float64 {
	key, ok := NormalizeDay(day)
	if !ok || len(habits) == 0 {
		return 0
	}
	done := 0
	for _, h := range habits {
		e, ok := entriesByDay(h.Logs)[key]
		if ok && Qualifies(e, h.IsMetric) {
			done++
		}
	}
	return float64(done) / float64(len(habits))
}

// Potential blends a consistency percentage with streak momentum, capped at 100.
func Potential(consistency float64, avgStreak float64) float64 {
	momentum := math.Min(MomentumCap, avgStreak*MomentumWeight)
	bonus := 0.0
	if consistency > BonusThreshold {
		bonus = ConsistencyBonus
	}
	return math.Min(100, consistency+momentum+bonus)
}

type Point struct {
	Date        string
	Consistency int     // percent of habits qualifying that day
	Streak      float64 // average StreakAsOf across habits, one decimal
	Potential   int
}

// WindowSeries returns one Point per day from windowEnd-(n-1) through windowEnd,
// oldest first.
func WindowSeries(habits []storage.Habit, windowEnd string, n int) []Point {
	end, ok := ParseDay(windowEnd)
	if !ok || n <= 0 {
		return nil
	}

	sets := make([]map[string]bool, len(habits))
	for i := range habits {
		sets[i] = qualifyingDays(habits[i])
	}

	out := make([]Point, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := end.AddDate(0, 0, -i)
		consistency, avgStreak := dayStats(sets, d)
		out = append(out, Point{
			Date:        FormatDay(d),
			Consistency: int(math.Round(consistency)),
			Streak:      math.Round(avgStreak*10) / 10,
			Potential:   int(math.Round(Potential(consistency, avgStreak))),
		})
	}
	return out
}

// dayStats returns the consistency percentage and the average streak for d.
func dayStats(sets []map[string]bool, d time.Time) (float64, float64) {
	if len(sets) == 0 {
		return 0, 0
	}
	key := FormatDay(d)
	done, total := 0, 0
	for _, days := range sets {
		if days[key] {
			done++
		}
		total += walkBack(days, d, MaxLookbackDays)
	}
	n := float64(len(sets))
	return float64(done) / n * 100, float64(total) / n
}
