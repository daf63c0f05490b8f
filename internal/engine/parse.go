package engine

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// ParseValue parses an optional metric magnitude. Empty input means no value.
func ParseValue(input string) (*float64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, ValidationError{Field: "value", Reason: "must be a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, ValidationError{Field: "value", Reason: "must be a finite number"}
	}
	if v < 0 {
		return nil, ValidationError{Field: "value", Reason: "must not be negative"}
	}
	return &v, nil
}

// ParseClock validates an HH:MM reminder time.
func ParseClock(input string) (string, error) {
	s := strings.TrimSpace(input)
	if !clockRe.MatchString(s) {
		return "", ValidationError{Field: "time", Reason: "want HH:MM"}
	}
	return s, nil
}

// ParseWeekdays parses "1,2,3" (0=Sunday). Duplicates are dropped and the
// result is sorted.
func ParseWeekdays(input string) ([]int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || d < 0 || d > 6 {
			return nil, ValidationError{Field: "days", Reason: "want comma separated 0-6"}
		}
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return out, nil
}

// ParseColor accepts #rrggbb; empty input falls back to DefaultColor.
func ParseColor(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return DefaultColor, nil
	}
	if !colorRe.MatchString(s) {
		return "", ValidationError{Field: "color", Reason: "want #rrggbb"}
	}
	return strings.ToLower(s), nil
}
