package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const MainProfileKey = "main_user"

const (
	DefaultProfileName   = "Habit Explorer"
	DefaultStreakFreezes = 1
)

type ProfileRepo struct {
	db DBTX
}

func NewProfileRepo(db DBTX) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, key string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, id, name, email, provider, xp, level, joined_at, streak_freezes
		FROM profile WHERE key = ?
	`, key)

	var (
		p        Profile
		email    sql.NullString
		provider sql.NullString
		joined   string
	)
	if err := row.Scan(&p.Key, &p.ID, &p.Name, &email, &provider, &p.XP, &p.Level, &joined, &p.StreakFreezes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	p.Email = email.String
	p.Provider = provider.String
	t, err := parseStoredTime(joined)
	if err != nil {
		return nil, fmt.Errorf("profile joined_at: %w", err)
	}
	p.JoinedAt = t
	return &p, nil
}

func (r *ProfileRepo) GetOrCreateMain(ctx context.Context) (*Profile, error) {
	p, err := r.Get(ctx, MainProfileKey)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	fresh := Profile{
		Key:           MainProfileKey,
		ID:            "user_" + uuid.NewString()[:8],
		Name:          DefaultProfileName,
		Level:         1,
		JoinedAt:      time.Now().UTC(),
		StreakFreezes: DefaultStreakFreezes,
	}
	if err := r.Put(ctx, &fresh); err != nil {
		return nil, err
	}
	return r.Get(ctx, MainProfileKey)
}

// Put inserts or fully replaces the profile row for p.Key.
func (r *ProfileRepo) Put(ctx context.Context, p *Profile) error {
	if p.Key == "" {
		p.Key = MainProfileKey
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profile (key, id, name, email, provider, xp, level, joined_at, streak_freezes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			id = excluded.id,
			name = excluded.name,
			email = excluded.email,
			provider = excluded.provider,
			xp = excluded.xp,
			level = excluded.level,
			joined_at = excluded.joined_at,
			streak_freezes = excluded.streak_freezes
	`, p.Key, p.ID, p.Name, nullString(p.Email), nullString(p.Provider), p.XP, p.Level, formatStoredTime(p.JoinedAt), p.StreakFreezes)
	if err != nil {
		return fmt.Errorf("profile put: %w", err)
	}
	return nil
}

// UpdateXP writes the xp total and its derived level.
func (r *ProfileRepo) UpdateXP(ctx context.Context, key string, xp int, level int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE profile SET xp = ?, level = ? WHERE key = ?`, xp, level, key)
	if err != nil {
		return fmt.Errorf("profile update xp: %w", err)
	}
	return nil
}

func formatStoredTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseStoredTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
