package engine

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"habitquest/internal/storage"
)

type ReminderInput struct {
	Time string // HH:MM
	Days []int  // 0=Sunday
}

type CreateHabitInput struct {
	Name        string
	Description string
	Category    string
	Color       string
	Frequency   Frequency
	IsMetric    bool
	Reminder    *ReminderInput
}

type CreateResult struct {
	HabitID     string
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
}

// CreateHabit adds a habit with empty logs and a zero streak.
func (s *Service) CreateHabit(ctx context.Context, in CreateHabitInput) (*CreateResult, error) {
	return s.createHabit(ctx, in, 0)
}

// CreateSuggestedHabit adds a habit proposed by the coach and grants the
// suggestion bonus.
func (s *Service) CreateSuggestedHabit(ctx context.Context, in CreateHabitInput) (*CreateResult, error) {
	return s.createHabit(ctx, in, XPPerSuggestion)
}

func (s *Service) createHabit(ctx context.Context, in CreateHabitInput, bonus int) (*CreateResult, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	color, err := ParseColor(in.Color)
	if err != nil {
		return nil, err
	}
	freq := in.Frequency
	if freq == "" {
		freq = FrequencyDaily
	}
	if !freq.IsValid() {
		return nil, ValidationError{Field: "frequency", Reason: string(freq)}
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}

	var reminder *storage.Reminder
	if in.Reminder != nil {
		clock, err := ParseClock(in.Reminder.Time)
		if err != nil {
			return nil, err
		}
		reminder = &storage.Reminder{
			ID:      uuid.NewString()[:8],
			Time:    clock,
			Days:    in.Reminder.Days,
			Enabled: true,
		}
	}

	id := uuid.NewString()
	res := &CreateResult{HabitID: id}
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.NewHabitRepo(tx).Insert(ctx, storage.HabitInsert{
			ID:          id,
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			Category:    category,
			Color:       color,
			Frequency:   string(freq),
			IsMetric:    in.IsMetric,
			CreatedAt:   s.now(),
		}); err != nil {
			return err
		}
		if reminder != nil {
			reminder.HabitID = id
			if err := storage.NewReminderRepo(tx).Insert(ctx, *reminder); err != nil {
				return err
			}
		}
		if bonus == 0 {
			return nil
		}
		before, after, err := grantXP(ctx, storage.NewProfileRepo(tx), bonus)
		if err != nil {
			return err
		}
		res.XPAwarded = bonus
		res.LevelBefore, res.LevelAfter = before, after
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("habit created",
		zap.String("id", id),
		zap.String("name", name),
		zap.Bool("metric", in.IsMetric),
		zap.Int("xp_bonus", bonus))
	return res, nil
}
