package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"habitquest/internal/storage"
)

func TestDailyConsistency(t *testing.T) {
	if got := DailyConsistency(nil, "2024-01-01"); got != 0 {
		t.Fatalf("DailyConsistency(no habits)=%v, want 0", got)
	}

	habits := []storage.Habit{
		habitWith(done("2024-01-01")),
		habitWith(missed("2024-01-01")),
	}
	if got := DailyConsistency(habits, "2024-01-01"); got != 0.5 {
		t.Fatalf("DailyConsistency=%v, want 0.5", got)
	}
	if got := DailyConsistency(habits, "garbage"); got != 0 {
		t.Fatalf("DailyConsistency(bad day)=%v, want 0", got)
	}
}

func TestPotential(t *testing.T) {
	cases := []struct {
		consistency, avg, want float64
	}{
		{0, 0, 0},
		{50, 2, 54},
		{50, 20, 60},  // momentum capped at 10
		{80, 1, 82},   // no bonus at exactly 80
		{90, 5, 100},  // 90+10+10 capped
		{81, 0.5, 92}, // 81+1+10
	}
	for _, tc := range cases {
		if got := Potential(tc.consistency, tc.avg); got != tc.want {
			t.Fatalf("Potential(%v,%v)=%v, want %v", tc.consistency, tc.avg, got, tc.want)
		}
	}
}

func TestWindowSeries(t *testing.T) {
	habits := []storage.Habit{
		habitWith(done("2024-01-30"), done("2024-01-31"), done("2024-02-01")),
		habitWith(done("2024-02-01")),
	}

	got := WindowSeries(habits, "2024-02-01", 3)
	want := []Point{
		{Date: "2024-01-30", Consistency: 50, Streak: 0.5, Potential: 51},
		{Date: "2024-01-31", Consistency: 50, Streak: 1, Potential: 52},
		{Date: "2024-02-01", Consistency: 100, Streak: 2, Potential: 100},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("WindowSeries mismatch (-want +got):\n%s", diff)
	}
}

func TestWindowSeriesIsPureAndRestartable(t *testing.T) {
	habits := []storage.Habit{habitWith(runEnding("2024-05-10", 7)...)}
	a := WindowSeries(habits, "2024-05-10", 14)
	b := WindowSeries(habits, "2024-05-10", 14)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("repeated call differs:\n%s", diff)
	}
	if len(a) != 14 || a[0].Date != "2024-04-27" || a[13].Date != "2024-05-10" {
		t.Fatalf("unexpected window: first=%s last=%s len=%d", a[0].Date, a[len(a)-1].Date, len(a))
	}
}

func TestWindowSeriesDegenerate(t *testing.T) {
	if got := WindowSeries(nil, "2024-01-01", 0); got != nil {
		t.Fatalf("n=0 should be nil, got %v", got)
	}
	if got := WindowSeries(nil, "bad", 5); got != nil {
		t.Fatalf("bad end should be nil, got %v", got)
	}
	got := WindowSeries(nil, "2024-01-01", 2)
	want := []Point{{Date: "2023-12-31"}, {Date: "2024-01-01"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("empty habits (-want +got):\n%s", diff)
	}
}
