package session

import (
	"github.com/google/uuid"

	"github.com/dmaksimov/interview-coach/internal/topics"
)

const (
	defaultDifficulty = 2
	recentScoresKept  = 3
)

// Turn is one completed question/answer exchange.
type Turn struct {
	TurnID        int
	Question      string
	Answer        string
	InternalNotes string
}

// State is the mutable per-interview session state. Exactly one interview
// owns a State; the loop is sequential so no locking is involved. Concurrent
// interviews in the same process must each build their own State.
type State struct {
	ID            string
	CandidateName string
	Position      string
	Grade         topics.Grade
	Experience    string

	Difficulty            int
	History               []Turn
	ExtractedFacts        []string
	RecentScores          []int
	LastIntent            Intent
	HallucinationDetected bool
	HonestyCount          int
	RunningSummary        string
}

func NewState(candidateName, position string, grade topics.Grade, experience string) *State {
	return &State{
		ID:            uuid.NewString(),
		CandidateName: candidateName,
		Position:      position,
		Grade:         grade,
		Experience:    experience,
		Difficulty:    defaultDifficulty,
		LastIntent:    IntentNormalAnswer,
	}
}

// UpdateDifficulty folds a new answer score into the bounded score history
// and applies the session-wide adjustment: two strong answers in a row force
// an escalation, two weak ones force a de-escalation, regardless of the
// requested delta. The new level is clamped to [1,5] and stored.
func (s *State) UpdateDifficulty(score, requestedDelta int) int {
	scores := make([]int, 0, 2)
	if n := len(s.RecentScores); n > 0 {
		scores = append(scores, s.RecentScores[n-1])
	}
	scores = append(scores, score)

	s.RecentScores = append(s.RecentScores, score)
	if len(s.RecentScores) > recentScoresKept {
		s.RecentScores = s.RecentScores[len(s.RecentScores)-recentScoresKept:]
	}

	delta := requestedDelta
	if len(scores) >= 2 {
		last, prev := scores[len(scores)-1], scores[len(scores)-2]
		if last >= 3 && prev >= 3 && delta < 1 {
			delta = 1
		}
		if last <= 1 && prev <= 1 && delta > -1 {
			delta = -1
		}
	}

	level := s.Difficulty + delta
	if level < topics.MinDifficulty {
		level = topics.MinDifficulty
	}
	if level > topics.MaxDifficulty {
		level = topics.MaxDifficulty
	}
	s.Difficulty = level

	return level
}

// RememberRecent returns the last n turns, newest last.
func (s *State) RememberRecent(n int) []Turn {
	if n >= len(s.History) {
		return s.History
	}
	return s.History[len(s.History)-n:]
}
