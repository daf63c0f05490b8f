package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"habitquest/internal/storage"
)

func loadedBoard(t *testing.T) boardModel {
	t.Helper()
	m := newBoardModel(context.Background(), nil)
	five := 5.0
	next, _ := m.Update(loadedMsg{
		profile: &storage.Profile{Name: "Habit Explorer", XP: 550, Level: 2},
		habits: []storage.Habit{
			{ID: "a", Name: "Read", Color: "#6366f1", Streak: 2, Logs: []storage.LogEntry{{Date: "2026-10-19", Completed: true}}},
			{ID: "b", Name: "Pushups", Color: "#22c55e", IsMetric: true, Logs: []storage.LogEntry{{Date: "2026-10-19", Completed: true, Value: &five}}},
		},
		today: "2026-10-19",
	})
	return next.(boardModel)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardViewShowsHabitsAndConsistency(t *testing.T) {
	m := loadedBoard(t)
	view := m.View()
	for _, want := range []string{"Read", "Pushups", "Today 100%", "Level 2", "[metric 5]"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBoardMetricHabitOpensInput(t *testing.T) {
	m := loadedBoard(t)

	next, _ := m.Update(key("down"))
	m = next.(boardModel)
	if m.selected != 1 {
		t.Fatalf("selected=%d, want 1", m.selected)
	}

	next, _ = m.Update(key(" "))
	m = next.(boardModel)
	if !m.editing() || m.inputFor != "b" {
		t.Fatalf("expected value input for metric habit, got inputFor=%q", m.inputFor)
	}

	next, _ = m.Update(key("esc"))
	m = next.(boardModel)
	if m.editing() {
		t.Fatalf("esc should cancel value input")
	}
}

func TestBoardBooleanHabitTogglesDirectly(t *testing.T) {
	m := loadedBoard(t)
	next, cmd := m.Update(key("c"))
	m = next.(boardModel)
	if m.editing() {
		t.Fatalf("boolean habit should not ask for a value")
	}
	if cmd == nil {
		t.Fatalf("expected toggle command")
	}
}

func TestBoardRejectsBadMetricValue(t *testing.T) {
	m := loadedBoard(t)
	next, _ := m.Update(key("down"))
	next, _ = next.(boardModel).Update(key(" "))
	next, _ = next.(boardModel).Update(key("x"))
	next, cmd := next.(boardModel).Update(key("enter"))
	m = next.(boardModel)
	if cmd != nil {
		t.Fatalf("bad value should not toggle")
	}
	if !m.editing() {
		t.Fatalf("input should stay open after a bad value")
	}
}
