package topics

const (
	// MinDifficulty and MaxDifficulty bound the 1..5 question hardness knob.
	MinDifficulty = 1
	MaxDifficulty = 5

	raiseThreshold = 0.75
	lowerThreshold = 0.40
)

// SuggestDifficulty is the per-topic difficulty hint: an untouched topic keeps
// the base level, a topic answered well gets one step harder, a struggling
// one gets one step easier. The result stays within [MinDifficulty,
// MaxDifficulty]. The session-wide difficulty update is a separate rule owned
// by the session package.
func SuggestDifficulty(baseDifficulty int, stats Stats) int {
	if stats.Asked == 0 {
		return baseDifficulty
	}
	if stats.AvgScore >= raiseThreshold {
		return min(MaxDifficulty, baseDifficulty+1)
	}
	if stats.AvgScore <= lowerThreshold {
		return max(MinDifficulty, baseDifficulty-1)
	}
	return baseDifficulty
}
