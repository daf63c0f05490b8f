package engine

const (
	// XPPerCompletion is granted (or taken back) when a day changes qualification.
	XPPerCompletion = 50

	// XPPerSuggestion is the bonus for creating a habit from a coach suggestion.
	XPPerSuggestion = 25

	// XPPerLevel is the flat width of every level.
	XPPerLevel = 500
)

// LevelForXP returns floor(xp/500)+1. Negative xp counts as 0.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPRequiredForLevel returns the total XP at which the given level starts.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * XPPerLevel
}

// ApplyXP adds delta to xp and clamps the result at 0.
func ApplyXP(xp int, delta int) int {
	xp += delta
	if xp < 0 {
		return 0
	}
	return xp
}

// LevelProgress returns the XP earned inside the current level and the same
// amount as a percentage of the level width.
func LevelProgress(xp int) (int, float64) {
	if xp < 0 {
		xp = 0
	}
	into := xp % XPPerLevel
	return into, float64(into) / float64(XPPerLevel) * 100
}

// Rank is the title shown next to the level.
func Rank(level int) string {
	if level > 5 {
		return "Adept"
	}
	return "Novice"
}
