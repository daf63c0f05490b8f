package storage

import "time"

type Profile struct {
	Key           string    `json:"-"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Provider      string    `json:"provider,omitempty"`
	XP            int       `json:"xp"`
	Level         int       `json:"level"`
	JoinedAt      time.Time `json:"joinedAt"`
	StreakFreezes int       `json:"streakFreezes"`
}

// LogEntry is one calendar day of a habit. Date is a YYYY-MM-DD key.
type LogEntry struct {
	Date      string   `json:"date"`
	Completed bool     `json:"completed"`
	Value     *float64 `json:"value,omitempty"`
}

type Reminder struct {
	ID      string `json:"id"`
	HabitID string `json:"-"`
	Time    string `json:"time"` // HH:MM
	Days    []int  `json:"days"` // 0=Sunday
	Enabled bool   `json:"enabled"`
}

type Habit struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Color       string     `json:"color"`
	Frequency   string     `json:"frequency"`
	IsMetric    bool       `json:"isMetric,omitempty"`
	Streak      int        `json:"streak"`
	CreatedAt   time.Time  `json:"createdAt"`
	Logs        []LogEntry `json:"logs"`
	Reminders   []Reminder `json:"reminders"`
}
