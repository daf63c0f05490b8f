package engine

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"habitquest/internal/storage"
)

// Export captures the current state in the local-storage snapshot layout.
func (s *Service) Export(ctx context.Context) (storage.Snapshot, error) {
	st, err := s.LoadState(ctx)
	if err != nil {
		return storage.Snapshot{}, err
	}
	p := st.Profile
	return storage.Snapshot{Habits: st.Habits, User: &p}, nil
}

// Import replaces every habit (and the profile when the snapshot has one).
// Cached streaks in the file are ignored and recomputed against today.
func (s *Service) Import(ctx context.Context, snap storage.Snapshot) (int, error) {
	today := s.Today()
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		habits := storage.NewHabitRepo(tx)
		logs := storage.NewLogRepo(tx)
		reminders := storage.NewReminderRepo(tx)
		if err := habits.DeleteAll(ctx); err != nil {
			return err
		}
		// Insert oldest first so the list comes back in file order.
		for i := len(snap.Habits) - 1; i >= 0; i-- {
			h := snap.Habits[i]
			freq := h.Frequency
			if freq == "" {
				freq = string(FrequencyDaily)
			}
			if err := habits.Insert(ctx, storage.HabitInsert{
				ID:          h.ID,
				Name:        h.Name,
				Description: h.Description,
				Category:    firstNonEmpty(h.Category, DefaultCategory),
				Color:       firstNonEmpty(h.Color, DefaultColor),
				Frequency:   freq,
				IsMetric:    h.IsMetric,
				Streak:      CurrentStreak(h, today),
				CreatedAt:   h.CreatedAt,
			}); err != nil {
				return fmt.Errorf("import habit %s: %w", h.ID, err)
			}
			for _, e := range h.Logs {
				key, ok := NormalizeDay(e.Date)
				if !ok {
					s.log.Warn("skipping malformed log date", zap.String("habit", h.ID), zap.String("date", e.Date))
					continue
				}
				e.Date = key
				if err := logs.Upsert(ctx, h.ID, e); err != nil {
					return err
				}
			}
			for _, r := range h.Reminders {
				r.HabitID = h.ID
				if err := reminders.Insert(ctx, r); err != nil {
					return err
				}
			}
		}
		if snap.User == nil {
			return nil
		}
		p := *snap.User
		p.Key = storage.MainProfileKey
		p.XP = ApplyXP(p.XP, 0)
		p.Level = LevelForXP(p.XP)
		return storage.NewProfileRepo(tx).Put(ctx, &p)
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("snapshot imported", zap.Int("habits", len(snap.Habits)))
	return len(snap.Habits), nil
}

// SignIn stores an authenticated profile. An existing signed-in profile is
// only replaced when replace is set; the local profile created on first run
// never blocks sign-in.
func (s *Service) SignIn(ctx context.Context, p storage.Profile, replace bool) (*storage.Profile, bool, error) {
	cur, err := s.getProfile(ctx)
	if err != nil {
		return nil, false, err
	}
	if cur.Provider != "" && !replace {
		return cur, false, nil
	}
	p.Key = storage.MainProfileKey
	p.XP = ApplyXP(p.XP, 0)
	p.Level = LevelForXP(p.XP)
	if err := s.profiles.Put(ctx, &p); err != nil {
		return nil, false, err
	}
	s.log.Info("signed in", zap.String("provider", p.Provider), zap.String("id", p.ID))
	return &p, true, nil
}

func firstNonEmpty(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
