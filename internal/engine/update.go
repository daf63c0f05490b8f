package engine

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"habitquest/internal/storage"
)

func (s *Service) RenameHabit(ctx context.Context, id string, name string) error {
	n, err := normalizeName(name)
	if err != nil {
		return err
	}
	ok, err := s.habits.Rename(ctx, id, n)
	if err != nil {
		return err
	}
	if !ok {
		return NotFoundError{Kind: "habit", ID: id}
	}
	return nil
}

// DeleteHabit removes the habit, its logs and its reminders. XP already earned
// is kept.
func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		ok, err := storage.NewHabitRepo(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return NotFoundError{Kind: "habit", ID: id}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("habit deleted", zap.String("id", id))
	return nil
}

// RefreshStreaks recomputes every cached streak against today. Run it after a
// day rollover so a broken streak shows as broken before anything is toggled.
func (s *Service) RefreshStreaks(ctx context.Context) (int, error) {
	today := s.Today()
	changed := 0
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		repo := storage.NewHabitRepo(tx)
		habits, err := repo.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, h := range habits {
			streak := CurrentStreak(h, today)
			if streak == h.Streak {
				continue
			}
			if err := repo.UpdateStreak(ctx, h.ID, streak); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		s.log.Debug("streaks refreshed", zap.String("today", today), zap.Int("changed", changed))
	}
	return changed, nil
}
