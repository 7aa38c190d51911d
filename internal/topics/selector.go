package topics

import (
	"fmt"
	"sort"
)

// neverAskedSentinel orders never-asked topics before any topic with a real
// last-turn value.
const neverAskedSentinel = -999

// Selection is the transient per-turn result of topic selection. Topic is a
// copy; mutating it does not touch the plan.
type Selection struct {
	Topic             Topic
	Reason            string
	DesiredDifficulty int
}

// startBias lists topic ids each grade prefers to open the interview with.
// Only consulted on the very first turn.
var startBias = map[Grade][]string{
	GradeJunior: {"python_basics", "oop_principles"},
	GradeMiddle: {"system_design", "concurrency", "python_basics"},
	GradeSenior: {"system_design_advanced", "concurrency_deep", "system_design"},
}

// SelectNext picks the topic to probe on the given turn and a target
// difficulty for it. It always returns a selection: when cooldowns would
// filter out every topic the full list is used instead.
func SelectNext(plan *Plan, tracker *Tracker, currentTurn, baseDifficulty int) Selection {
	eligible := eligibleTopics(plan, tracker, currentTurn)
	if len(eligible) == 0 {
		eligible = indices(len(plan.Topics))
	}

	if currentTurn == 1 {
		if sel := pickStartTopic(plan, tracker, eligible, baseDifficulty); sel != nil {
			return *sel
		}
	}

	mustTarget := plan.Rules.TargetMustCoverage
	mustNeed := tracker.MustCoverage() < mustTarget

	pool := eligible
	if mustNeed {
		var mustCandidates []int
		for _, i := range eligible {
			t := plan.Topics[i]
			if t.Priority == PriorityMust && (t.Status == StatusPending || t.Status == StatusInProgress) {
				mustCandidates = append(mustCandidates, i)
			}
		}
		if len(mustCandidates) > 0 {
			pool = mustCandidates
		}
	}

	sorted := append([]int(nil), pool...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return lessByRank(plan, tracker, sorted[a], sorted[b])
	})
	chosen := plan.Topics[sorted[0]]

	return newSelection(plan, tracker, chosen, baseDifficulty)
}

// StayOnTopic is the stickiness override: keep probing the just-asked topic
// while it exists and is not yet covered, instead of re-running selection.
// Returns nil when the override does not apply.
func StayOnTopic(plan *Plan, tracker *Tracker, topicID string, baseDifficulty int) *Selection {
	topic := plan.Topic(topicID)
	if topic == nil || topic.Status == StatusCovered {
		return nil
	}
	sel := newSelection(plan, tracker, *topic, baseDifficulty)
	sel.Reason = fmt.Sprintf("staying on %s until covered (asked=%d)", topic.ID, tracker.StatsFor(topic.ID).Asked)
	return &sel
}

// eligibleTopics filters out covered topics still inside the cooldown window.
func eligibleTopics(plan *Plan, tracker *Tracker, currentTurn int) []int {
	cooldown := plan.Rules.TopicCooldown
	var eligible []int
	for i, topic := range plan.Topics {
		stats := tracker.StatsFor(topic.ID)
		onCooldown := topic.Status == StatusCovered &&
			cooldown > 0 &&
			stats.LastTurn >= 0 &&
			currentTurn-stats.LastTurn <= cooldown
		if onCooldown {
			continue
		}
		eligible = append(eligible, i)
	}
	return eligible
}

func pickStartTopic(plan *Plan, tracker *Tracker, eligible []int, baseDifficulty int) *Selection {
	eligibleSet := make(map[int]bool, len(eligible))
	for _, i := range eligible {
		eligibleSet[i] = true
	}
	for _, id := range startBias[plan.Grade] {
		i, ok := plan.index[id]
		if !ok || !eligibleSet[i] {
			continue
		}
		topic := plan.Topics[i]
		if topic.Status == StatusCovered {
			continue
		}
		sel := newSelection(plan, tracker, topic, baseDifficulty)
		sel.Reason = fmt.Sprintf("start bias for grade %s: %s", plan.Grade, topic.ID)
		return &sel
	}
	return nil
}

// lessByRank orders candidates by the tuple (priority rank, completion ratio,
// average score, last turn or the never-asked sentinel), ascending. The least
// covered must-topic that was asked longest ago wins.
func lessByRank(plan *Plan, tracker *Tracker, a, b int) bool {
	ra, rb := rankOf(plan, tracker, a), rankOf(plan, tracker, b)
	for i := range ra {
		if ra[i] != rb[i] {
			return ra[i] < rb[i]
		}
	}
	return false
}

func rankOf(plan *Plan, tracker *Tracker, i int) [4]float64 {
	topic := plan.Topics[i]
	stats := tracker.StatsFor(topic.ID)

	priorityRank := 1.0
	if topic.Priority == PriorityMust {
		priorityRank = 0
	}

	minQ := topic.MinQuestions
	if minQ < 1 {
		minQ = 1
	}
	completion := float64(stats.Asked) / float64(minQ)

	lastTurn := float64(stats.LastTurn)
	if stats.LastTurn < 0 {
		lastTurn = neverAskedSentinel
	}

	return [4]float64{priorityRank, completion, stats.AvgScore, lastTurn}
}

func newSelection(plan *Plan, tracker *Tracker, topic Topic, baseDifficulty int) Selection {
	stats := tracker.StatsFor(topic.ID)
	return Selection{
		Topic:             topic,
		DesiredDifficulty: SuggestDifficulty(baseDifficulty, stats),
		Reason: fmt.Sprintf("must coverage=%.2f target=%.2f; picked %s (asked=%d, avg=%.2f)",
			tracker.MustCoverage(), plan.Rules.TargetMustCoverage, topic.ID, stats.Asked, stats.AvgScore),
	}
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
