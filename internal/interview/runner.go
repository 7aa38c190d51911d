// Package interview drives one full interview session: topic selection,
// question generation, answer analysis, coverage tracking, and the final
// report, turn by turn until a stop condition fires.
package interview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/dmaksimov/interview-coach/internal/ai"
	"github.com/dmaksimov/interview-coach/internal/resources"
	"github.com/dmaksimov/interview-coach/internal/session"
	"github.com/dmaksimov/interview-coach/internal/topics"
)

// Stop reasons the loop produces on its own, alongside the coverage engine's.
const (
	StopCandidateRequest = "candidate_stop"
	StopAnswersExhausted = "answers_exhausted"
)

// AnswerSource feeds candidate answers into the loop. Interactive runs read
// the terminal; scripted runs replay a scenario file. io.EOF means there are
// no more answers and the interview wraps up.
type AnswerSource interface {
	NextAnswer(question string) (string, error)
}

// Exchange is one visible question/answer pair with the engine's verdict.
type Exchange struct {
	TurnID     int
	TopicID    string
	Question   string
	Answer     string
	Intent     session.Intent
	Score      int
	Difficulty int
	Notes      string
}

// Result is everything a caller needs to render the interview outcome.
type Result struct {
	StopReason string
	Turns      int
	Exchanges  []Exchange
	Snapshot   topics.Snapshot
	Feedback   *ai.Feedback
	Confidence int
	State      *session.State
}

// Runner wires the coverage engine, session state, and assistant together.
type Runner struct {
	plan      *topics.Plan
	tracker   *topics.Tracker
	state     *session.State
	assistant ai.Assistant
	answers   AnswerSource
	library   *resources.Library
	logger    *zap.Logger

	// AskHook, when set, is called with each question before the answer is
	// requested. The CLI uses it to print the interviewer's message.
	AskHook func(question string)
}

// NewRunner wires a session together. A non-positive coverageThreshold falls
// back to the tracker's default.
func NewRunner(plan *topics.Plan, state *session.State, assistant ai.Assistant, answers AnswerSource, library *resources.Library, coverageThreshold float64, logger *zap.Logger) *Runner {
	return &Runner{
		plan:      plan,
		tracker:   topics.NewTracker(plan, coverageThreshold),
		state:     state,
		assistant: assistant,
		answers:   answers,
		library:   library,
		logger:    logger,
	}
}

// Tracker exposes the live coverage tracker, mainly for progress rendering.
func (r *Runner) Tracker() *topics.Tracker { return r.tracker }

// Run executes the interview until a stop condition fires and returns the
// final report. The loop is sequential: one question, one answer, one verdict
// per turn.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{State: r.state}

	turnID := 1
	currentTopic := ""
	var lastQuestion, lastAnswer, followup string
	intent := session.IntentNormalAnswer

	for {
		selection := r.selectTopic(currentTopic, turnID)
		if selection.Topic.ID != currentTopic {
			// A followup only makes sense while probing the same topic.
			followup = ""
		}
		r.logger.Debug("topic selected",
			zap.Int("turn", turnID),
			zap.String("topic", selection.Topic.ID),
			zap.Int("difficulty", selection.DesiredDifficulty),
			zap.String("reason", selection.Reason),
		)

		plan, err := r.assistant.NextQuestion(ctx, ai.QuestionRequest{
			Topic:         selection.Topic,
			Difficulty:    selection.DesiredDifficulty,
			Summary:       r.state.RunningSummary,
			LastQuestion:  lastQuestion,
			LastAnswer:    lastAnswer,
			Intent:        string(intent),
			Followup:      followup,
			CandidateName: r.state.CandidateName,
		})
		if err != nil {
			return nil, fmt.Errorf("generate question: %w", err)
		}
		question := plan.NextQuestion
		if session.QuestionAlreadyCovered(r.state, question) {
			r.logger.Debug("question repeats covered ground", zap.String("question", question))
		}

		if r.AskHook != nil {
			r.AskHook(question)
		}

		answer, err := r.answers.NextAnswer(question)
		if errors.Is(err, io.EOF) {
			result.StopReason = StopAnswersExhausted
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read answer: %w", err)
		}

		intent = session.ClassifyIntent(answer)
		r.state.LastIntent = intent

		if intent == session.IntentStop {
			result.StopReason = StopCandidateRequest
			break
		}
		if intent == session.IntentProgress {
			r.logger.Info("progress requested",
				zap.Float64("overall", r.tracker.OverallCoverage()),
				zap.Float64("must", r.tracker.MustCoverage()),
				zap.Int("turns", turnID-1),
			)
			lastQuestion, lastAnswer = question, answer
			followup = ""
			continue
		}

		analysis, err := r.assistant.AnalyzeAnswer(ctx, ai.AnalysisRequest{
			Question:   question,
			Answer:     answer,
			Topic:      selection.Topic,
			Difficulty: selection.DesiredDifficulty,
			Summary:    r.state.RunningSummary,
		})
		if err != nil {
			return nil, fmt.Errorf("analyze answer: %w", err)
		}

		if session.DetectHallucination(answer) || len(analysis.HallucinationFlags) > 0 {
			r.state.HallucinationDetected = true
			r.logger.Warn("possible hallucination flagged",
				zap.Int("turn", turnID),
				zap.Strings("flags", analysis.HallucinationFlags),
			)
		}
		if admitsUncertainty(answer) {
			r.state.HonestyCount++
		}

		newDifficulty := r.state.UpdateDifficulty(analysis.AnswerScore, analysis.DifficultyDelta)
		r.tracker.Record(selection.Topic.ID, turnID, question, float64(analysis.AnswerScore), selection.DesiredDifficulty)
		session.ExtractFacts(r.state, answer)
		session.RegisterTurn(r.state, session.Turn{
			TurnID:        turnID,
			Question:      question,
			Answer:        answer,
			InternalNotes: analysis.InternalMemo,
		})

		result.Exchanges = append(result.Exchanges, Exchange{
			TurnID:     turnID,
			TopicID:    selection.Topic.ID,
			Question:   question,
			Answer:     answer,
			Intent:     intent,
			Score:      analysis.AnswerScore,
			Difficulty: selection.DesiredDifficulty,
			Notes:      analysis.InternalMemo,
		})

		r.logger.Debug("turn recorded",
			zap.Int("turn", turnID),
			zap.String("topic", selection.Topic.ID),
			zap.Int("score", analysis.AnswerScore),
			zap.Int("session_difficulty", newDifficulty),
			zap.Float64("overall", r.tracker.OverallCoverage()),
		)

		currentTopic = selection.Topic.ID
		lastQuestion, lastAnswer = question, answer
		followup = analysis.RecommendedFollowup

		if reason := topics.StopReason(r.plan, r.tracker, turnID); reason != "" {
			result.StopReason = reason
			turnID++
			break
		}
		turnID++
	}

	result.Turns = turnID - 1
	result.Snapshot = r.tracker.Snapshot()

	feedback, err := r.finalFeedback(ctx)
	if err != nil {
		return nil, err
	}
	result.Feedback = feedback
	result.Confidence = Confidence(r.plan, r.tracker, r.state)

	return result, nil
}

// selectTopic prefers staying on the current topic while it still needs
// questions, otherwise runs full selection.
func (r *Runner) selectTopic(currentTopic string, turnID int) topics.Selection {
	if currentTopic != "" {
		if stay := topics.StayOnTopic(r.plan, r.tracker, currentTopic, r.state.Difficulty); stay != nil {
			return *stay
		}
	}
	return topics.SelectNext(r.plan, r.tracker, turnID, r.state.Difficulty)
}

func (r *Runner) finalFeedback(ctx context.Context) (*ai.Feedback, error) {
	var covered, open []topics.Topic
	for _, t := range r.plan.Topics {
		if t.Status == topics.StatusCovered {
			covered = append(covered, t)
		} else {
			open = append(open, t)
		}
	}

	feedback, err := r.assistant.FinalFeedback(ctx, ai.FeedbackRequest{
		CandidateName: r.state.CandidateName,
		Position:      r.state.Position,
		Grade:         string(r.state.Grade),
		Summary:       r.state.RunningSummary,
		Facts:         r.state.ExtractedFacts,
		Snapshot:      r.tracker.Snapshot(),
		CoveredTopics: covered,
		OpenTopics:    open,
	})
	if err != nil {
		return nil, fmt.Errorf("final feedback: %w", err)
	}

	if r.library != nil {
		for i := range feedback.HardSkills.KnowledgeGaps {
			gap := &feedback.HardSkills.KnowledgeGaps[i]
			if len(gap.Resources) == 0 {
				gap.Resources = r.library.Lookup(gapTopicID(r.plan, gap.Topic))
			}
		}
	}

	return feedback, nil
}

// gapTopicID maps a gap's display name back to a plan topic ID so the
// resource catalog can resolve it. Unknown names pass through unchanged and
// hit the catalog's generic fallback.
func gapTopicID(plan *topics.Plan, name string) string {
	for _, t := range plan.Topics {
		if strings.EqualFold(t.Name, name) || t.ID == name {
			return t.ID
		}
	}
	return name
}

var uncertaintyPhrases = []string{
	"i don't know",
	"i do not know",
	"i'm not sure",
	"i am not sure",
	"never used",
	"haven't worked with",
}

func admitsUncertainty(answer string) bool {
	lower := strings.ToLower(answer)
	for _, phrase := range uncertaintyPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
