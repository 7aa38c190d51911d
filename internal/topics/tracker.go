package topics

// DefaultCoverageThreshold is the minimum running average score a topic needs
// before it can count as covered.
const DefaultCoverageThreshold = 0.7

// Stats accumulates per-topic progress. LastTurn is -1 until the topic has
// been asked at least once.
type Stats struct {
	Asked    int
	AvgScore float64
	LastTurn int
}

// AskedQuestion is one entry of the append-only question log.
type AskedQuestion struct {
	TurnID     int
	Question   string
	TopicID    string
	Difficulty int
}

// Tracker records answers and keeps the three coverage ratios derived from
// the per-topic stats. One tracker belongs to exactly one plan and one
// interview session; it is not safe for concurrent use and does not need to
// be, the interview loop is strictly sequential.
type Tracker struct {
	plan      *Plan
	asked     []AskedQuestion
	stats     map[string]*Stats
	threshold float64

	overall float64
	must    float64
	nice    float64
}

// NewTracker seeds one Stats entry per plan topic. A non-positive threshold
// falls back to DefaultCoverageThreshold.
func NewTracker(plan *Plan, threshold float64) *Tracker {
	if threshold <= 0 {
		threshold = DefaultCoverageThreshold
	}
	stats := make(map[string]*Stats, len(plan.Topics))
	for _, t := range plan.Topics {
		stats[t.ID] = &Stats{LastTurn: -1}
	}
	return &Tracker{plan: plan, stats: stats, threshold: threshold}
}

// Record registers an answered question: the raw score (expected 0..4) is
// clamped and normalized to [0,1], folded into the topic's running mean, and
// all coverage ratios are recomputed from scratch.
func (t *Tracker) Record(topicID string, turnID int, question string, rawScore float64, difficulty int) {
	stats := t.statsFor(topicID)
	normalized := clamp(rawScore, 0, 4) / 4

	stats.Asked++
	stats.AvgScore = (stats.AvgScore*float64(stats.Asked-1) + normalized) / float64(stats.Asked)
	stats.LastTurn = turnID

	t.asked = append(t.asked, AskedQuestion{
		TurnID:     turnID,
		Question:   question,
		TopicID:    topicID,
		Difficulty: difficulty,
	})

	t.recalc()
}

// recalc recomputes every topic's coverage score and status, then the
// per-priority and overall ratios. The recomputation is total: nothing is
// updated incrementally, so the three ratios are always consistent with the
// current stats. A priority class with no topics keeps its previous ratio.
func (t *Tracker) recalc() {
	var mustScores, niceScores []float64

	for i := range t.plan.Topics {
		topic := &t.plan.Topics[i]
		stats := t.statsFor(topic.ID)

		minQ := topic.MinQuestions
		if minQ < 1 {
			minQ = 1
		}
		completion := clamp(float64(stats.Asked)/float64(minQ), 0, 1)
		coverage := completion * clamp(stats.AvgScore, 0, 1)
		topic.CoverageScore = coverage

		if stats.Asked > 0 && topic.Status == StatusPending {
			topic.Status = StatusInProgress
		}
		// Covered is terminal: a later bad streak never reverts it.
		if topic.Status != StatusCovered && stats.Asked >= minQ && stats.AvgScore >= t.threshold {
			topic.Status = StatusCovered
		}

		if topic.Priority == PriorityMust {
			mustScores = append(mustScores, coverage)
		} else {
			niceScores = append(niceScores, coverage)
		}
	}

	if len(mustScores) > 0 {
		t.must = mean(mustScores)
	}
	if len(niceScores) > 0 {
		t.nice = mean(niceScores)
	}
	all := make([]float64, 0, len(mustScores)+len(niceScores))
	all = append(all, mustScores...)
	all = append(all, niceScores...)
	if len(all) > 0 {
		t.overall = mean(all)
	}
}

func (t *Tracker) statsFor(topicID string) *Stats {
	if s, ok := t.stats[topicID]; ok {
		return s
	}
	s := &Stats{LastTurn: -1}
	t.stats[topicID] = s
	return s
}

// StatsFor returns a copy of the topic's stats. Unknown topics report zero
// values with LastTurn -1.
func (t *Tracker) StatsFor(topicID string) Stats {
	if s, ok := t.stats[topicID]; ok {
		return *s
	}
	return Stats{LastTurn: -1}
}

func (t *Tracker) MustCoverage() float64    { return t.must }
func (t *Tracker) NiceCoverage() float64    { return t.nice }
func (t *Tracker) OverallCoverage() float64 { return t.overall }
func (t *Tracker) Threshold() float64       { return t.threshold }

// Asked returns the question log in insertion order.
func (t *Tracker) Asked() []AskedQuestion {
	return append([]AskedQuestion(nil), t.asked...)
}

// Snapshot is the coverage view handed to the reporting layer.
type Snapshot struct {
	Overall float64
	Must    float64
	Nice    float64
	Topics  map[string]float64
}

func (t *Tracker) Snapshot() Snapshot {
	perTopic := make(map[string]float64, len(t.plan.Topics))
	for _, topic := range t.plan.Topics {
		perTopic[topic.ID] = topic.CoverageScore
	}
	return Snapshot{
		Overall: t.overall,
		Must:    t.must,
		Nice:    t.nice,
		Topics:  perTopic,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
