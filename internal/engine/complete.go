package engine

import (
	"context"
	"database/sql"
	"math"
	"strings"

	"go.uber.org/zap"

	"habitquest/internal/storage"
)

type ToggleResult struct {
	HabitID     string
	Date        string
	Qualified   bool
	XPDelta     int
	Streak      int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
}

// ToggleHabit logs day for the habit (today when day is empty) and persists the
// entry, the recomputed streak and the XP change in one transaction.
func (s *Service) ToggleHabit(ctx context.Context, id string, day string, value *float64) (*ToggleResult, error) {
	today := s.Today()
	if strings.TrimSpace(day) == "" {
		day = today
	}
	key, ok := NormalizeDay(day)
	if !ok {
		return nil, ValidationError{Field: "date", Reason: "want YYYY-MM-DD"}
	}
	if value != nil && (math.IsNaN(*value) || math.IsInf(*value, 0)) {
		return nil, ValidationError{Field: "value", Reason: "must be a finite number"}
	}

	var res *ToggleResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		habits := storage.NewHabitRepo(tx)
		h, err := habits.Get(ctx, id)
		if err != nil {
			return err
		}
		if h == nil {
			return NotFoundError{Kind: "habit", ID: id}
		}

		updated, delta := ToggleCompletion(*h, key, value, today)
		entry := entriesByDay(updated.Logs)[key]
		if err := storage.NewLogRepo(tx).Upsert(ctx, id, entry); err != nil {
			return err
		}
		if err := habits.UpdateStreak(ctx, id, updated.Streak); err != nil {
			return err
		}
		before, after, err := grantXP(ctx, storage.NewProfileRepo(tx), delta)
		if err != nil {
			return err
		}
		res = &ToggleResult{
			HabitID:     id,
			Date:        key,
			Qualified:   Qualifies(entry, updated.IsMetric),
			XPDelta:     delta,
			Streak:      updated.Streak,
			LevelBefore: before,
			LevelAfter:  after,
			LevelUp:     after > before,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("habit toggled",
		zap.String("id", id),
		zap.String("date", key),
		zap.Bool("qualified", res.Qualified),
		zap.Int("xp_delta", res.XPDelta),
		zap.Int("streak", res.Streak))
	return res, nil
}
