package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"habitquest/internal/engine"
	"habitquest/internal/storage"
	"habitquest/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	profile *storage.Profile
	habits  []storage.Habit
	today   string

	selected int

	// Metric habits take a value before toggling.
	input     textinput.Model
	inputFor  string
	inputName string

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	profile *storage.Profile
	habits  []storage.Habit
	today   string
	err     error
}

type toggledMsg struct {
	name string
	res  *engine.ToggleResult
	err  error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	ti := textinput.New()
	ti.Placeholder = "value (empty clears)"
	ti.CharLimit = 12
	ti.Width = 20
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		input:   ti,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.RefreshStreaks(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		st, err := m.svc.LoadState(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{profile: &st.Profile, habits: st.Habits, today: m.svc.Today()}
	}
}

func (m boardModel) toggleCmd(h storage.Habit, value *float64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleHabit(m.ctx, h.ID, "", value)
		return toggledMsg{name: h.Name, res: res, err: err}
	}
}

func (m boardModel) editing() bool {
	return m.inputFor != ""
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		m.habits = msg.habits
		m.today = msg.today
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Log failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = describeToggle(msg.name, msg.res)
		return m, m.loadCmd()
	case tea.KeyMsg:
		if m.editing() {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.habits)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			if m.selected < 0 || m.selected >= len(m.habits) {
				return m, nil
			}
			h := m.habits[m.selected]
			if h.IsMetric {
				m.inputFor = h.ID
				m.inputName = h.Name
				m.input.SetValue("")
				m.lastLog = fmt.Sprintf("Value for %s (>= %.0f qualifies):", h.Name, engine.MetricThreshold)
				cmd := m.input.Focus()
				return m, cmd
			}
			m.lastLog = fmt.Sprintf("Logging %s…", h.Name)
			return m, m.toggleCmd(h, nil)
		}
	}
	return m, nil
}

func (m boardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.inputFor = ""
		m.input.Blur()
		m.lastLog = "Cancelled."
		return m, nil
	case "enter":
		value, err := engine.ParseValue(m.input.Value())
		if err != nil {
			m.lastLog = err.Error()
			return m, nil
		}
		h := storage.Habit{ID: m.inputFor, Name: m.inputName}
		m.inputFor = ""
		m.input.Blur()
		m.lastLog = fmt.Sprintf("Logging %s…", h.Name)
		return m, m.toggleCmd(h, value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *boardModel) clampSelection() {
	if m.selected >= len(m.habits) {
		m.selected = len(m.habits) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func describeToggle(name string, res *engine.ToggleResult) string {
	if res == nil {
		return name + " logged."
	}
	var b strings.Builder
	switch {
	case res.XPDelta > 0:
		fmt.Fprintf(&b, "%s %s: +%d XP, streak %d", ui.IconDone, name, res.XPDelta, res.Streak)
	case res.XPDelta < 0:
		fmt.Fprintf(&b, "%s undone: %d XP, streak %d", name, res.XPDelta, res.Streak)
	default:
		fmt.Fprintf(&b, "%s updated, streak %d", name, res.Streak)
	}
	if res.LevelUp {
		fmt.Fprintf(&b, "  %s %d → %d", ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
	}
	return b.String()
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.profile == nil {
		return "HabitQuest | loading…"
	}
	into, _ := engine.LevelProgress(m.profile.XP)
	bar := ui.ProgressBar(into, engine.XPPerLevel, 30)
	today := int(engine.DailyConsistency(m.habits, m.today)*100 + 0.5)
	return fmt.Sprintf("HabitQuest | %s | Level %d %s | XP %d %s | Today %d%%",
		m.profile.Name, m.profile.Level, engine.Rank(m.profile.Level), m.profile.XP, bar, today)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Last 7 days"}
	if m.today != "" {
		series := engine.WindowSeries(m.habits, m.today, 7)
		vals := make([]float64, len(series))
		for i, p := range series {
			vals[i] = float64(p.Consistency)
		}
		lines = append(lines, "  "+ui.Sparkline(vals, 100))
	}
	if m.profile != nil {
		mc := engine.NewMasteryChecker(*m.profile, m.habits)
		lines = append(lines, "", fmt.Sprintf("Mastery %d/%d", mc.CountEarned(), len(mc.GetMilestones())))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- space/c: log today")
	lines = append(lines, "- esc: cancel value")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{"Habits"}
	if len(m.habits) == 0 {
		out = append(out, "(none yet: hq add <name>)")
		return strings.Join(out, "\n")
	}
	for i, h := range m.habits {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		done, value := todayEntry(h, m.today)
		line := fmt.Sprintf("%s%s %s %s  %s%d", cursor, ui.DoneMark(done), ui.Swatch(h.Color), h.Name, ui.IconFire, h.Streak)
		if h.IsMetric {
			line += "  [metric"
			if value != nil {
				line += fmt.Sprintf(" %g", *value)
			}
			line += "]"
		}
		out = append(out, line)
	}
	if m.editing() {
		out = append(out, "", m.inputName+": "+m.input.View())
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

// todayEntry reports whether today qualifies and the metric value logged, if any.
func todayEntry(h storage.Habit, today string) (bool, *float64) {
	for i := len(h.Logs) - 1; i >= 0; i-- {
		if h.Logs[i].Date == today {
			return engine.Qualifies(h.Logs[i], h.IsMetric), h.Logs[i].Value
		}
	}
	return false, nil
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
