package engine

import (
	"math"

	"habitquest/internal/storage"
)

// Milestone is one entry of the mastery track.
type Milestone struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Progress    float64 // 0-100
	Earned      bool
}

// MasteryChecker calculates mastery track progress for the profile.
type MasteryChecker struct {
	profile storage.Profile
	habits  []storage.Habit
}

func NewMasteryChecker(profile storage.Profile, habits []storage.Habit) *MasteryChecker {
	return &MasteryChecker{
		profile: profile,
		habits:  habits,
	}
}

// GetMilestones returns all milestones with their progress.
func (c *MasteryChecker) GetMilestones() []Milestone {
	return []Milestone{
		c.countMilestone("habit_architect", "Habit Architect", "Create 5 custom habits", "📐", len(c.habits), 5),
		c.countMilestone("streak_master", "Streak Master", "Reach a 10-day streak", "⚡", c.bestStreak(), 10),
		c.countMilestone("xp_collector", "XP Collector", "Reach 1000 Total XP", "💎", c.profile.XP, 1000),

		// Level milestones
		c.countMilestone("apprentice", "Apprentice", "Reach level 2", "🌱", LevelForXP(c.profile.XP), 2),
		c.countMilestone("adept", "Adept", "Reach level 6", "🌟", LevelForXP(c.profile.XP), 6),
	}
}

// CountEarned returns how many milestones have been earned.
func (c *MasteryChecker) CountEarned() int {
	count := 0
	for _, m := range c.GetMilestones() {
		if m.Earned {
			count++
		}
	}
	return count
}

func (c *MasteryChecker) bestStreak() int {
	best := 0
	for _, h := range c.habits {
		if h.Streak > best {
			best = h.Streak
		}
	}
	return best
}

func (c *MasteryChecker) countMilestone(id, name, desc, icon string, have, want int) Milestone {
	progress := 0.0
	if want > 0 && have > 0 {
		progress = math.Min(100, float64(have)/float64(want)*100)
	}
	return Milestone{
		ID:          id,
		Name:        name,
		Description: desc,
		Icon:        icon,
		Progress:    progress,
		Earned:      have >= want,
	}
}
