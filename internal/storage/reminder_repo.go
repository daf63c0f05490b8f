package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type ReminderRepo struct {
	db DBTX
}

func NewReminderRepo(db DBTX) *ReminderRepo {
	return &ReminderRepo{db: db}
}

func (r *ReminderRepo) Insert(ctx context.Context, rem Reminder) error {
	days, err := json.Marshal(rem.Days)
	if err != nil {
		return fmt.Errorf("marshal reminder days: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO reminders (id, habit_id, time, days, enabled) VALUES (?, ?, ?, ?, ?)
	`, rem.ID, rem.HabitID, rem.Time, string(days), boolToInt(rem.Enabled))
	if err != nil {
		return fmt.Errorf("reminder insert: %w", err)
	}
	return nil
}

func (r *ReminderRepo) ListByHabit(ctx context.Context, habitID string) ([]Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, habit_id, time, days, enabled FROM reminders WHERE habit_id = ? ORDER BY time ASC, id ASC
	`, habitID)
	if err != nil {
		return nil, fmt.Errorf("reminder list: %w", err)
	}
	grouped, err := scanReminderRows(rows)
	if err != nil {
		return nil, err
	}
	return grouped[habitID], nil
}

// ListAll returns every reminder grouped by habit id.
func (r *ReminderRepo) ListAll(ctx context.Context) (map[string][]Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, habit_id, time, days, enabled FROM reminders ORDER BY time ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("reminder list all: %w", err)
	}
	return scanReminderRows(rows)
}

func scanReminderRows(rows *sql.Rows) (map[string][]Reminder, error) {
	defer rows.Close()

	out := map[string][]Reminder{}
	for rows.Next() {
		var (
			rem     Reminder
			daysRaw string
			enabled int
		)
		if err := rows.Scan(&rem.ID, &rem.HabitID, &rem.Time, &daysRaw, &enabled); err != nil {
			return nil, fmt.Errorf("reminder scan: %w", err)
		}
		if daysRaw != "" {
			if err := json.Unmarshal([]byte(daysRaw), &rem.Days); err != nil {
				return nil, fmt.Errorf("unmarshal reminder days: %w", err)
			}
		}
		rem.Enabled = enabled != 0
		out[rem.HabitID] = append(out[rem.HabitID], rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reminder rows: %w", err)
	}
	return out, nil
}
