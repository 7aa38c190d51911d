package ai

import (
	"context"

	"github.com/dmaksimov/interview-coach/internal/topics"
)

// Correctness labels how factually right an answer was.
type Correctness string

const (
	CorrectnessCorrect          Correctness = "CORRECT"
	CorrectnessPartiallyCorrect Correctness = "PARTIALLY_CORRECT"
	CorrectnessIncorrect        Correctness = "INCORRECT"
	CorrectnessUnknown          Correctness = "UNKNOWN"
)

// NextAction tells the conversational layer how to frame the next message.
type NextAction string

const (
	ActionAskQuestion           NextAction = "ASK_QUESTION"
	ActionAnswerReversalThenAsk NextAction = "ANSWER_ROLE_REVERSAL_THEN_ASK"
	ActionRedirectAndAsk        NextAction = "REDIRECT_AND_ASK"
	ActionClarifyThenAsk        NextAction = "CLARIFY_THEN_ASK"
)

// Analysis is the observer's verdict on one candidate answer. AnswerScore is
// the raw 0..4 quality rating the coverage engine consumes; DifficultyDelta
// is the observer's requested adjustment, -1..1.
type Analysis struct {
	DetectedIntent      string
	AnswerScore         int
	Correctness         Correctness
	KeyStrengths        []string
	KeyGaps             []string
	HallucinationFlags  []string
	RecommendedFollowup string
	DifficultyDelta     int
	InternalMemo        string
	Raw                 string
}

// FallbackAnalysis is the repair value used when the model output cannot be
// parsed: a neutral score that neither sinks nor inflates coverage, and no
// difficulty pressure. Malformed output is repaired here, before it ever
// reaches the engine.
func FallbackAnalysis(raw string) *Analysis {
	return &Analysis{
		DetectedIntent:  "NORMAL_ANSWER",
		AnswerScore:     2,
		Correctness:     CorrectnessUnknown,
		DifficultyDelta: 0,
		InternalMemo:    "analysis fallback: unparseable observer output",
		Raw:             raw,
	}
}

// QuestionPlan is the interviewer's plan for the next visible message.
type QuestionPlan struct {
	NextAction   NextAction
	NextQuestion string
	Topic        string
	Difficulty   int
	InternalMemo string
	Raw          string
}

// AnalysisRequest carries everything the observer needs about one exchange.
type AnalysisRequest struct {
	Question   string
	Answer     string
	Topic      topics.Topic
	Difficulty int
	Summary    string
}

// QuestionRequest asks for the next interview question on a selected topic.
type QuestionRequest struct {
	Topic         topics.Topic
	Difficulty    int
	Summary       string
	LastQuestion  string
	LastAnswer    string
	Intent        string
	Followup      string
	CandidateName string
}

// FeedbackRequest carries the session wrap-up inputs for the final report.
type FeedbackRequest struct {
	CandidateName string
	Position      string
	Grade         string
	Summary       string
	Facts         []string
	Snapshot      topics.Snapshot
	CoveredTopics []topics.Topic
	OpenTopics    []topics.Topic
}

// Decision is the structured hiring outcome.
type Decision struct {
	Grade                string
	HiringRecommendation string
	ConfidenceScore      int
}

type SkillEvidence struct {
	Topic    string
	Evidence string
}

type KnowledgeGap struct {
	Topic         string
	WhatWentWrong string
	CorrectAnswer string
	Resources     []string
}

type HardSkills struct {
	ConfirmedSkills []SkillEvidence
	KnowledgeGaps   []KnowledgeGap
}

type SoftSkills struct {
	Clarity    string
	Honesty    string
	Engagement string
}

type Roadmap struct {
	NextSteps []string
	Resources []string
}

// Feedback is the structured final report handed to the reporting layer.
type Feedback struct {
	Decision   Decision
	HardSkills HardSkills
	SoftSkills SoftSkills
	Roadmap    Roadmap
}

// Assistant is the contract between the interview loop and whatever language
// model backs it. The deterministic mock implementation keeps the CLI usable
// without credentials.
type Assistant interface {
	AnalyzeAnswer(ctx context.Context, req AnalysisRequest) (*Analysis, error)
	NextQuestion(ctx context.Context, req QuestionRequest) (*QuestionPlan, error)
	FinalFeedback(ctx context.Context, req FeedbackRequest) (*Feedback, error)
}
