package ui

import "testing"

func TestProgressBar(t *testing.T) {
	cases := []struct {
		value, total, width int
		want                string
	}{
		{0, 500, 10, "[----------]"},
		{250, 500, 10, "[#####-----]"},
		{900, 500, 4, "[####]"},
		{-3, 0, 1, "[---]"},
	}
	for _, tc := range cases {
		if got := ProgressBar(tc.value, tc.total, tc.width); got != tc.want {
			t.Fatalf("ProgressBar(%d,%d,%d)=%q, want %q", tc.value, tc.total, tc.width, got, tc.want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 50, 100, 150}, 100); got != "▁▅██" {
		t.Fatalf("Sparkline=%q", got)
	}
	if got := Sparkline(nil, 0); got != "" {
		t.Fatalf("empty Sparkline=%q", got)
	}
}

func TestHeatLevel(t *testing.T) {
	cases := map[float64]int{0: 0, 0.25: 1, 0.5: 2, 0.75: 3, 1: 4}
	for ratio, want := range cases {
		if got := HeatLevel(ratio); got != want {
			t.Fatalf("HeatLevel(%v)=%d, want %d", ratio, got, want)
		}
	}
}
