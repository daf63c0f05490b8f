package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HabitQuest theme (CLI + TUI).
// Reusable styles, a few emojis and the small text charts used by report and board.

const (
	IconQuest   = "🗺️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconFire    = "🔥"
	IconBell    = "🔔"
	IconRobot   = "🤖"
	IconChart   = "📈"
	IconLock    = "🔒"
)

var (
	cPrimary = lipgloss.Color("63")  // indigo
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

// Heat levels for the calendar, from empty to fully consistent.
var heat = []lipgloss.Color{"237", "22", "28", "34", "46"}

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Swatch renders a block in the habit's hex color.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}

// DoneMark is the today column in lists.
func DoneMark(done bool) string {
	if done {
		return Good.Render("✔")
	}
	return Dim.Render("·")
}

// Percent colors a 0-100 score: good at 80 and above, warn from 50.
func Percent(v int) string {
	s := fmt.Sprintf("%3d%%", v)
	switch {
	case v >= 80:
		return Good.Render(s)
	case v >= 50:
		return Warn.Render(s)
	default:
		return Bad.Render(s)
	}
}

// ProgressBar draws value/total as a fixed-width bar.
func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := int(float64(value) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline maps values in [0, max] onto block characters.
func Sparkline(values []float64, max float64) string {
	if max <= 0 {
		max = 1
	}
	var b strings.Builder
	for _, v := range values {
		if v < 0 {
			v = 0
		}
		if v > max {
			v = max
		}
		idx := int(math.Round(v / max * float64(len(sparks)-1)))
		b.WriteRune(sparks[idx])
	}
	return b.String()
}

// HeatLevel buckets a 0-1 ratio into the calendar's five shades.
func HeatLevel(ratio float64) int {
	switch {
	case ratio <= 0:
		return 0
	case ratio < 0.34:
		return 1
	case ratio < 0.67:
		return 2
	case ratio < 1:
		return 3
	default:
		return 4
	}
}

// IntensityCell renders one calendar day shaded by its consistency ratio.
// A day of 0 renders an unlabeled cell for legends.
func IntensityCell(day int, ratio float64) string {
	label := "   "
	if day > 0 {
		label = fmt.Sprintf("%3d", day)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(heat[HeatLevel(ratio)]).
		Render(label)
}
