package engine

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"habitquest/internal/storage"
)

type Service struct {
	db        *sql.DB
	cal       Calendar
	log       *zap.Logger
	now       func() time.Time
	profiles  *storage.ProfileRepo
	habits    *storage.HabitRepo
	logs      *storage.LogRepo
	reminders *storage.ReminderRepo
}

type Option func(*Service)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(db *sql.DB, cal Calendar, opts ...Option) *Service {
	s := &Service{
		db:        db,
		cal:       cal,
		log:       zap.NewNop(),
		now:       time.Now,
		profiles:  storage.NewProfileRepo(db),
		habits:    storage.NewHabitRepo(db),
		logs:      storage.NewLogRepo(db),
		reminders: storage.NewReminderRepo(db),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ProfileRepo() *storage.ProfileRepo { return s.profiles }
func (s *Service) HabitRepo() *storage.HabitRepo     { return s.habits }
func (s *Service) Calendar() Calendar                { return s.cal }

// Today is the current day key in the configured zone.
func (s *Service) Today() string {
	return s.cal.Today(s.now())
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", ValidationError{Field: "name", Reason: "is required"}
	}
	return n, nil
}

// getProfile loads the main profile and repairs a stored level that drifted
// from its xp.
func (s *Service) getProfile(ctx context.Context) (*storage.Profile, error) {
	p, err := s.profiles.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	computed := LevelForXP(p.XP)
	if p.Level != computed {
		p.Level = computed
		if err := s.profiles.UpdateXP(ctx, p.Key, p.XP, p.Level); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// LoadState reads the profile and every habit.
func (s *Service) LoadState(ctx context.Context) (*State, error) {
	p, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}
	habits, err := s.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &State{Profile: *p, Habits: habits}, nil
}

// grantXP applies delta to the main profile inside tx and returns the levels
// before and after.
func grantXP(ctx context.Context, profiles *storage.ProfileRepo, delta int) (int, int, error) {
	p, err := profiles.GetOrCreateMain(ctx)
	if err != nil {
		return 0, 0, err
	}
	before := LevelForXP(p.XP)
	p.XP = ApplyXP(p.XP, delta)
	after := LevelForXP(p.XP)
	if err := profiles.UpdateXP(ctx, p.Key, p.XP, after); err != nil {
		return 0, 0, err
	}
	return before, after, nil
}
