package engine

import (
	"fmt"
	"strings"
)

// Frequency is informational; streaks are always counted in calendar days.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// ParseFrequency parses user input; empty input means daily.
func ParseFrequency(input string) (Frequency, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return FrequencyDaily, nil
	}
	f := Frequency(s)
	if !f.IsValid() {
		return "", ValidationError{Field: "frequency", Reason: fmt.Sprintf("want daily, weekly or monthly, got %q", input)}
	}
	return f, nil
}

const (
	DefaultCategory = "General"
	DefaultColor    = "#6366f1"
)
