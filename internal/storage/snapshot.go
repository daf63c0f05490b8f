package storage

import (
	"encoding/json"
	"fmt"
	"io"
)

// Snapshot keys match the browser local-storage layout so exported files can be
// moved between the web build and the CLI.
const (
	HabitsKey = "habitquest_habits"
	UserKey   = "habitquest_user"
)

type Snapshot struct {
	Habits []Habit  `json:"habitquest_habits"`
	User   *Profile `json:"habitquest_user,omitempty"`
}

func WriteSnapshot(w io.Writer, s Snapshot) error {
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	for i := range s.Habits {
		if s.Habits[i].ID == "" {
			return Snapshot{}, fmt.Errorf("decode snapshot: habit %d has no id", i)
		}
	}
	return s, nil
}
