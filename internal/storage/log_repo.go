package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type LogRepo struct {
	db DBTX
}

func NewLogRepo(db DBTX) *LogRepo {
	return &LogRepo{db: db}
}

// Upsert writes the entry for (habitID, e.Date). An existing entry for the same
// day is replaced in place and keeps its original position.
func (r *LogRepo) Upsert(ctx context.Context, habitID string, e LogEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habit_logs (habit_id, date, completed, value, seq)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM habit_logs))
		ON CONFLICT(habit_id, date) DO UPDATE SET
			completed = excluded.completed,
			value = excluded.value
	`, habitID, e.Date, boolToInt(e.Completed), nullFloat(e.Value))
	if err != nil {
		return fmt.Errorf("log upsert: %w", err)
	}
	return nil
}

// ListByHabit returns the habit's entries in insertion order.
func (r *LogRepo) ListByHabit(ctx context.Context, habitID string) ([]LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, date, completed, value
		FROM habit_logs
		WHERE habit_id = ?
		ORDER BY seq ASC
	`, habitID)
	if err != nil {
		return nil, fmt.Errorf("log list: %w", err)
	}
	grouped, err := scanLogRows(rows)
	if err != nil {
		return nil, err
	}
	return grouped[habitID], nil
}

// ListAll returns every entry grouped by habit id, each group in insertion order.
func (r *LogRepo) ListAll(ctx context.Context) (map[string][]LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, date, completed, value
		FROM habit_logs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("log list all: %w", err)
	}
	return scanLogRows(rows)
}

func scanLogRows(rows *sql.Rows) (map[string][]LogEntry, error) {
	defer rows.Close()

	out := map[string][]LogEntry{}
	for rows.Next() {
		var (
			habitID   string
			e         LogEntry
			completed int
			value     sql.NullFloat64
		)
		if err := rows.Scan(&habitID, &e.Date, &completed, &value); err != nil {
			return nil, fmt.Errorf("log scan: %w", err)
		}
		e.Completed = completed != 0
		if value.Valid {
			v := value.Float64
			e.Value = &v
		}
		out[habitID] = append(out[habitID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("log rows: %w", err)
	}
	return out, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
