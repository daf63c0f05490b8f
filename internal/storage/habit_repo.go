package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type HabitRepo struct {
	db DBTX
}

func NewHabitRepo(db DBTX) *HabitRepo {
	return &HabitRepo{db: db}
}

type HabitInsert struct {
	ID          string
	Name        string
	Description string
	Category    string
	Color       string
	Frequency   string
	IsMetric    bool
	Streak      int
	CreatedAt   time.Time
}

// Insert adds a habit on top of the list (newest first).
func (r *HabitRepo) Insert(ctx context.Context, in HabitInsert) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (
			id, name, description, category, color, frequency,
			is_metric, streak, created_at, position
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM habits))
	`, in.ID, in.Name, in.Description, in.Category, in.Color, in.Frequency,
		boolToInt(in.IsMetric), in.Streak, formatStoredTime(in.CreatedAt))
	if err != nil {
		return fmt.Errorf("habit insert: %w", err)
	}
	return nil
}

// Get returns the habit with its logs and reminders, or nil when it does not exist.
func (r *HabitRepo) Get(ctx context.Context, id string) (*Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, category, color, frequency, is_metric, streak, created_at
		FROM habits
		WHERE id = ?
	`, id)
	h, err := scanHabitRow(row)
	if err != nil || h == nil {
		return nil, err
	}

	logs, err := NewLogRepo(r.db).ListByHabit(ctx, id)
	if err != nil {
		return nil, err
	}
	reminders, err := NewReminderRepo(r.db).ListByHabit(ctx, id)
	if err != nil {
		return nil, err
	}
	h.Logs = logs
	h.Reminders = reminders
	return h, nil
}

// ListAll returns every habit, newest first, with logs and reminders attached.
func (r *HabitRepo) ListAll(ctx context.Context) ([]Habit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, category, color, frequency, is_metric, streak, created_at
		FROM habits
		ORDER BY position DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("habit list: %w", err)
	}
	defer rows.Close()

	var out []Habit
	for rows.Next() {
		h, err := scanHabitRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("habit list rows: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	logs, err := NewLogRepo(r.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	reminders, err := NewReminderRepo(r.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Logs = logs[out[i].ID]
		out[i].Reminders = reminders[out[i].ID]
	}
	return out, nil
}

func (r *HabitRepo) Rename(ctx context.Context, id string, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE habits SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return false, fmt.Errorf("habit rename: %w", err)
	}
	return affected(res)
}

func (r *HabitRepo) UpdateStreak(ctx context.Context, id string, streak int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habits SET streak = ? WHERE id = ?`, streak, id)
	if err != nil {
		return fmt.Errorf("habit update streak: %w", err)
	}
	return nil
}

// Delete removes the habit together with its logs and reminders.
// Callers that need atomicity run it inside WithTx.
func (r *HabitRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM habit_logs WHERE habit_id = ?`, id); err != nil {
		return false, fmt.Errorf("habit delete logs: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE habit_id = ?`, id); err != nil {
		return false, fmt.Errorf("habit delete reminders: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("habit delete: %w", err)
	}
	return affected(res)
}

// DeleteAll wipes habits, logs and reminders. Used by snapshot import.
func (r *HabitRepo) DeleteAll(ctx context.Context) error {
	for _, stmt := range []string{
		`DELETE FROM habit_logs`,
		`DELETE FROM reminders`,
		`DELETE FROM habits`,
	} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("habit delete all: %w", err)
		}
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabitRow(row scanner) (*Habit, error) {
	var (
		h         Habit
		isMetric  int
		createdAt string
	)
	if err := row.Scan(
		&h.ID, &h.Name, &h.Description, &h.Category, &h.Color, &h.Frequency,
		&isMetric, &h.Streak, &createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("habit scan: %w", err)
	}
	t, err := parseStoredTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("habit created_at: %w", err)
	}
	h.CreatedAt = t
	h.IsMetric = isMetric != 0
	return &h, nil
}
