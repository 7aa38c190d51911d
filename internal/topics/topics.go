package topics

import "strings"

// Priority marks whether a topic is mandatory for a passing coverage score.
type Priority string

const (
	PriorityMust Priority = "must"
	PriorityNice Priority = "nice"
)

// Status is the lifecycle of a topic within a single interview.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCovered    Status = "covered"
	StatusSkipped    Status = "skipped"
)

// Grade is the candidate seniority tier used to size the interview.
type Grade string

const (
	GradeJunior Grade = "Junior"
	GradeMiddle Grade = "Middle"
	GradeSenior Grade = "Senior"
)

// ParseGrade normalizes a free-form grade string. Unknown values fall back to
// Junior so a session can always start.
func ParseGrade(s string) Grade {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "middle":
		return GradeMiddle
	case "senior":
		return GradeSenior
	default:
		return GradeJunior
	}
}

// Topic is a subject area the interview should probe. Topics are owned by
// value inside a Plan; the tracker mutates Status and CoverageScore through
// the plan's index and nothing else aliases them.
type Topic struct {
	ID            string
	Name          string
	Priority      Priority
	MinQuestions  int
	Tags          []string
	Status        Status
	CoverageScore float64
}

// Rules holds the coverage policy derived from the grade at plan-build time.
// Immutable once the plan is built.
type Rules struct {
	TargetMustCoverage float64
	MaxTotalTurns      int
	TopicCooldown      int
}

// Plan is the per-session interview plan: an ordered topic list plus the
// coverage rules. Ordering and rules are fixed after BuildPlan; only the
// topics' Status and CoverageScore change during the session.
type Plan struct {
	Role    string
	Grade   Grade
	Topics  []Topic
	Rules   Rules
	Summary string

	index map[string]int
}

func (p *Plan) buildIndex() {
	p.index = make(map[string]int, len(p.Topics))
	for i, t := range p.Topics {
		p.index[t.ID] = i
	}
}

// Topic returns a pointer into the plan's topic slice, or nil when the id is
// unknown.
func (p *Plan) Topic(id string) *Topic {
	i, ok := p.index[id]
	if !ok {
		return nil
	}
	return &p.Topics[i]
}

// MustTopicNames lists display names of all must-priority topics in plan order.
func (p *Plan) MustTopicNames() []string {
	names := make([]string, 0, len(p.Topics))
	for _, t := range p.Topics {
		if t.Priority == PriorityMust {
			names = append(names, t.Name)
		}
	}
	return names
}
