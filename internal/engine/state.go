package engine

import (
	"fmt"
	"strings"

	"habitquest/internal/storage"
)

// State is everything a command reads: the profile and the habit collection.
// Pure engine functions take it (or its parts) as input instead of reaching
// into storage.
type State struct {
	Profile storage.Profile
	Habits  []storage.Habit
}

func (s *State) Habit(id string) (*storage.Habit, bool) {
	for i := range s.Habits {
		if s.Habits[i].ID == id {
			return &s.Habits[i], true
		}
	}
	return nil, false
}

func (s *State) Level() int {
	return LevelForXP(s.Profile.XP)
}

// Resolve finds a habit by exact id, unique id prefix or case-insensitive name.
func (s *State) Resolve(ref string) (*storage.Habit, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ValidationError{Field: "habit", Reason: "is required"}
	}
	if h, ok := s.Habit(ref); ok {
		return h, nil
	}

	var matches []int
	for i := range s.Habits {
		if strings.HasPrefix(s.Habits[i].ID, ref) || strings.EqualFold(s.Habits[i].Name, ref) {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 0:
		return nil, NotFoundError{Kind: "habit", ID: ref}
	case 1:
		return &s.Habits[matches[0]], nil
	default:
		return nil, ValidationError{Field: "habit", Reason: fmt.Sprintf("%q matches %d habits", ref, len(matches))}
	}
}
