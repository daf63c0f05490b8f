package engine

import (
	"context"
	"slices"
	"sort"
	"time"

	"habitquest/internal/storage"
)

type DueReminder struct {
	HabitID   string
	HabitName string
	Time      string
	Done      bool // today already qualifies
}

// RemindersFor lists the enabled reminders scheduled on day's weekday, ordered
// by time of day.
func RemindersFor(habits []storage.Habit, day string) []DueReminder {
	wd, ok := Weekday(day)
	if !ok {
		return nil
	}
	var out []DueReminder
	for _, h := range habits {
		done := QualifiesOn(h, day)
		for _, r := range h.Reminders {
			if !r.Enabled || !slices.Contains(r.Days, int(wd)) {
				continue
			}
			out = append(out, DueReminder{HabitID: h.ID, HabitName: h.Name, Time: r.Time, Done: done})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// DueReminders returns today's reminders.
func (s *Service) DueReminders(ctx context.Context) ([]DueReminder, error) {
	habits, err := s.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return RemindersFor(habits, s.Today()), nil
}

// Now returns the service clock in the calendar's zone.
func (s *Service) Now() time.Time {
	return s.now().In(s.cal.Location())
}
