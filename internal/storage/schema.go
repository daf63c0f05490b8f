package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			key TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT,
			provider TEXT,
			xp INTEGER DEFAULT 0,
			level INTEGER DEFAULT 1,
			joined_at TEXT NOT NULL,
			streak_freezes INTEGER DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS habits (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT DEFAULT '',
			category TEXT DEFAULT 'General',
			color TEXT DEFAULT '#6366f1',
			frequency TEXT DEFAULT 'daily',
			is_metric INTEGER DEFAULT 0,
			streak INTEGER DEFAULT 0,
			created_at TEXT NOT NULL,
			position INTEGER NOT NULL
		);`,
		// One row per habit per calendar day; seq keeps insertion order across replacements.
		`CREATE TABLE IF NOT EXISTS habit_logs (
			habit_id TEXT NOT NULL,
			date TEXT NOT NULL,
			completed INTEGER NOT NULL,
			value REAL,
			seq INTEGER NOT NULL,
			PRIMARY KEY (habit_id, date),
			FOREIGN KEY(habit_id) REFERENCES habits(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS reminders (
			id TEXT PRIMARY KEY,
			habit_id TEXT NOT NULL,
			time TEXT NOT NULL,
			days TEXT NOT NULL,
			enabled INTEGER DEFAULT 1,
			FOREIGN KEY(habit_id) REFERENCES habits(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_habit_logs_habit_seq ON habit_logs(habit_id, seq);`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_habit_id ON reminders(habit_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE profile ADD COLUMN provider TEXT;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
