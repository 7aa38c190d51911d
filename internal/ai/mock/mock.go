// Package mock provides a deterministic Assistant for offline runs and tests.
// Scores follow a simple heuristic on the answer text so scripted scenarios
// produce repeatable coverage numbers without a model call.
package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmaksimov/interview-coach/internal/ai"
	"github.com/dmaksimov/interview-coach/internal/topics"
)

type Assistant struct{}

func New() *Assistant { return &Assistant{} }

// AnalyzeAnswer scores without a model: near-empty answers rate 1, answers
// that touch a topic tag rate 3, everything else rates 2.
func (a *Assistant) AnalyzeAnswer(_ context.Context, req ai.AnalysisRequest) (*ai.Analysis, error) {
	score := scoreAnswer(req.Answer, req.Topic)

	correctness := ai.CorrectnessPartiallyCorrect
	if score >= 3 {
		correctness = ai.CorrectnessCorrect
	} else if score <= 1 {
		correctness = ai.CorrectnessIncorrect
	}

	return &ai.Analysis{
		DetectedIntent:      "NORMAL_ANSWER",
		AnswerScore:         score,
		Correctness:         correctness,
		RecommendedFollowup: fmt.Sprintf("Dig deeper into %s.", req.Topic.Name),
		DifficultyDelta:     0,
		InternalMemo:        "deterministic analysis",
	}, nil
}

// NextQuestion builds a templated question from the topic and difficulty.
func (a *Assistant) NextQuestion(_ context.Context, req ai.QuestionRequest) (*ai.QuestionPlan, error) {
	question := fmt.Sprintf("[difficulty %d] Tell me about %s.", req.Difficulty, req.Topic.Name)
	if req.Followup != "" {
		question = fmt.Sprintf("[difficulty %d] %s", req.Difficulty, req.Followup)
	}

	action := ai.ActionAskQuestion
	switch req.Intent {
	case "ROLE_REVERSAL":
		action = ai.ActionAnswerReversalThenAsk
	case "OFF_TOPIC":
		action = ai.ActionRedirectAndAsk
	}

	return &ai.QuestionPlan{
		NextAction:   action,
		NextQuestion: question,
		Topic:        req.Topic.ID,
		Difficulty:   req.Difficulty,
		InternalMemo: "deterministic question",
	}, nil
}

// FinalFeedback assembles the report directly from the coverage snapshot.
func (a *Assistant) FinalFeedback(_ context.Context, req ai.FeedbackRequest) (*ai.Feedback, error) {
	feedback := &ai.Feedback{
		Decision: ai.Decision{
			Grade:                req.Grade,
			HiringRecommendation: recommendation(req.Snapshot),
			ConfidenceScore:      int(req.Snapshot.Overall * 100),
		},
		SoftSkills: ai.SoftSkills{
			Clarity:    "not assessed in deterministic mode",
			Honesty:    "not assessed in deterministic mode",
			Engagement: "not assessed in deterministic mode",
		},
	}

	for _, t := range req.CoveredTopics {
		feedback.HardSkills.ConfirmedSkills = append(feedback.HardSkills.ConfirmedSkills, ai.SkillEvidence{
			Topic:    t.Name,
			Evidence: fmt.Sprintf("coverage score %.2f", t.CoverageScore),
		})
	}
	for _, t := range req.OpenTopics {
		if t.Priority != topics.PriorityMust {
			continue
		}
		feedback.HardSkills.KnowledgeGaps = append(feedback.HardSkills.KnowledgeGaps, ai.KnowledgeGap{
			Topic:         t.Name,
			WhatWentWrong: "topic was not covered during the session",
		})
		feedback.Roadmap.NextSteps = append(feedback.Roadmap.NextSteps, fmt.Sprintf("Review %s.", t.Name))
	}

	return feedback, nil
}

func scoreAnswer(answer string, topic topics.Topic) int {
	words := strings.Fields(answer)
	if len(words) < 3 {
		return 1
	}
	lower := strings.ToLower(answer)
	for _, tag := range topic.Tags {
		if strings.Contains(lower, strings.ToLower(tag)) {
			return 3
		}
	}
	return 2
}

func recommendation(snapshot topics.Snapshot) string {
	switch {
	case snapshot.Must >= 0.85 && snapshot.Overall >= 0.8:
		return "HIRE"
	case snapshot.Must >= 0.6:
		return "BORDERLINE"
	default:
		return "NO_HIRE"
	}
}
