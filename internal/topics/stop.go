package topics

// Stop reasons returned by StopReason.
const (
	StopTurnLimit      = "turn_limit"
	StopCoverageTarget = "coverage_target"
)

// StopReason decides whether the interview should terminate after the given
// number of completed turns. It returns an empty string while the interview
// should continue. There is no other termination path in the engine; an
// explicit stop from the candidate is the conversational layer's business.
func StopReason(plan *Plan, tracker *Tracker, turnsAsked int) string {
	if turnsAsked >= plan.Rules.MaxTotalTurns {
		return StopTurnLimit
	}
	if tracker.MustCoverage() >= plan.Rules.TargetMustCoverage &&
		tracker.OverallCoverage() >= tracker.Threshold() {
		return StopCoverageTarget
	}
	return ""
}
