package engine

import (
	"testing"

	"habitquest/internal/storage"
)

func TestLevelForXP(t *testing.T) {
	cases := map[int]int{-10: 1, 0: 1, 499: 1, 500: 2, 999: 2, 1000: 3, 1250: 3, 2500: 6}
	for xp, want := range cases {
		if got := LevelForXP(xp); got != want {
			t.Fatalf("LevelForXP(%d)=%d, want %d", xp, got, want)
		}
	}
	for level := 1; level <= 10; level++ {
		if got := LevelForXP(XPRequiredForLevel(level)); got != level {
			t.Fatalf("LevelForXP(XPRequiredForLevel(%d))=%d", level, got)
		}
	}
}

func TestApplyXPClampsAtZero(t *testing.T) {
	if got := ApplyXP(30, -XPPerCompletion); got != 0 {
		t.Fatalf("ApplyXP(30,-50)=%d, want 0", got)
	}
	if got := ApplyXP(30, XPPerSuggestion); got != 55 {
		t.Fatalf("ApplyXP(30,25)=%d, want 55", got)
	}
}

func TestLevelProgressAndRank(t *testing.T) {
	into, pct := LevelProgress(1250)
	if into != 250 || pct != 50 {
		t.Fatalf("LevelProgress(1250)=(%d,%v)", into, pct)
	}
	if Rank(5) != "Novice" || Rank(6) != "Adept" {
		t.Fatalf("unexpected ranks %q %q", Rank(5), Rank(6))
	}
}

func TestMasteryTrack(t *testing.T) {
	habits := make([]storage.Habit, 5)
	habits[0].Streak = 10
	mc := NewMasteryChecker(storage.Profile{XP: 600}, habits)

	earned := map[string]bool{}
	for _, m := range mc.GetMilestones() {
		earned[m.ID] = m.Earned
		if m.Progress < 0 || m.Progress > 100 {
			t.Fatalf("%s progress %v out of range", m.ID, m.Progress)
		}
	}
	want := map[string]bool{
		"habit_architect": true,
		"streak_master":   true,
		"xp_collector":    false,
		"apprentice":      true,
		"adept":           false,
	}
	for id, w := range want {
		if earned[id] != w {
			t.Fatalf("%s earned=%v, want %v", id, earned[id], w)
		}
	}
	if got := mc.CountEarned(); got != 3 {
		t.Fatalf("CountEarned=%d, want 3", got)
	}
}
