package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/dmaksimov/interview-coach/internal/ai"
	"github.com/dmaksimov/interview-coach/internal/topics"
	"github.com/dmaksimov/interview-coach/internal/utils"
)

//go:embed prompts/observer.md
var observerTemplate string

//go:embed prompts/interviewer.md
var interviewerTemplate string

//go:embed prompts/feedback.md
var feedbackTemplate string

const defaultMaxLogLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Coach implements ai.Assistant on top of a Gemini content generator.
// Model output is parsed leniently: whatever cannot be coerced into the
// expected shape is replaced with an explicit fallback value so the engine
// never sees malformed input.
type Coach struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewCoach(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Coach {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Coach{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// observerPayload mirrors the JSON schema the observer prompt requests.
type observerPayload struct {
	DetectedIntent      string   `mapstructure:"detected_intent"`
	AnswerScore         int      `mapstructure:"answer_score"`
	Correctness         string   `mapstructure:"correctness"`
	KeyStrengths        []string `mapstructure:"key_strengths"`
	KeyGaps             []string `mapstructure:"key_gaps"`
	HallucinationFlags  []string `mapstructure:"hallucination_flags"`
	RecommendedFollowup string   `mapstructure:"recommended_followup"`
	DifficultyDelta     int      `mapstructure:"difficulty_delta"`
	InternalMemo        string   `mapstructure:"internal_memo"`
}

type interviewerPayload struct {
	NextAction   string `mapstructure:"next_action"`
	NextQuestion string `mapstructure:"next_question"`
	Topic        string `mapstructure:"topic"`
	Difficulty   int    `mapstructure:"difficulty"`
	InternalMemo string `mapstructure:"internal_memo"`
}

type feedbackPayload struct {
	Decision struct {
		Grade                string `mapstructure:"grade"`
		HiringRecommendation string `mapstructure:"hiring_recommendation"`
		ConfidenceScore      int    `mapstructure:"confidence_score"`
	} `mapstructure:"decision"`
	HardSkills struct {
		ConfirmedSkills []struct {
			Topic    string `mapstructure:"topic"`
			Evidence string `mapstructure:"evidence"`
		} `mapstructure:"confirmed_skills"`
		KnowledgeGaps []struct {
			Topic         string   `mapstructure:"topic"`
			WhatWentWrong string   `mapstructure:"what_went_wrong"`
			CorrectAnswer string   `mapstructure:"correct_answer"`
			Resources     []string `mapstructure:"resources"`
		} `mapstructure:"knowledge_gaps"`
	} `mapstructure:"hard_skills"`
	SoftSkills struct {
		Clarity    string `mapstructure:"clarity"`
		Honesty    string `mapstructure:"honesty"`
		Engagement string `mapstructure:"engagement"`
	} `mapstructure:"soft_skills"`
	Roadmap struct {
		NextSteps []string `mapstructure:"next_steps"`
		Resources []string `mapstructure:"resources"`
	} `mapstructure:"roadmap"`
}

// AnalyzeAnswer runs the observer prompt. Unparseable output degrades to a
// neutral fallback analysis instead of an error: the interview must not stall
// because the model rambled.
func (c *Coach) AnalyzeAnswer(ctx context.Context, req ai.AnalysisRequest) (*ai.Analysis, error) {
	prompt := renderTemplate(observerTemplate, map[string]string{
		"TOPIC_NAME": req.Topic.Name,
		"TOPIC_TAGS": strings.Join(req.Topic.Tags, ", "),
		"DIFFICULTY": fmt.Sprintf("%d", req.Difficulty),
		"SUMMARY":    orNone(req.Summary),
		"QUESTION":   req.Question,
		"ANSWER":     req.Answer,
	})

	raw, err := c.generate(ctx, "observer", prompt)
	if err != nil {
		return nil, err
	}

	var payload observerPayload
	if err := decodeJSON(raw, &payload); err != nil {
		c.logger.Warn("falling back to neutral analysis",
			zap.Error(err),
			zap.String("response_preview", utils.TruncateForLog(raw, c.maxLogLen)),
		)
		return ai.FallbackAnalysis(raw), nil
	}

	analysis := &ai.Analysis{
		DetectedIntent:      payload.DetectedIntent,
		AnswerScore:         clampInt(payload.AnswerScore, 0, 4),
		Correctness:         parseCorrectness(payload.Correctness),
		KeyStrengths:        trimAll(payload.KeyStrengths),
		KeyGaps:             trimAll(payload.KeyGaps),
		HallucinationFlags:  trimAll(payload.HallucinationFlags),
		RecommendedFollowup: strings.TrimSpace(payload.RecommendedFollowup),
		DifficultyDelta:     clampInt(payload.DifficultyDelta, -1, 1),
		InternalMemo:        strings.TrimSpace(payload.InternalMemo),
		Raw:                 raw,
	}
	return analysis, nil
}

// NextQuestion runs the interviewer prompt. On parse failure a redirect plan
// built around the topic name keeps the conversation going.
func (c *Coach) NextQuestion(ctx context.Context, req ai.QuestionRequest) (*ai.QuestionPlan, error) {
	prompt := renderTemplate(interviewerTemplate, map[string]string{
		"TOPIC_ID":      req.Topic.ID,
		"TOPIC_NAME":    req.Topic.Name,
		"TOPIC_TAGS":    strings.Join(req.Topic.Tags, ", "),
		"DIFFICULTY":    fmt.Sprintf("%d", req.Difficulty),
		"CANDIDATE":     orNone(req.CandidateName),
		"INTENT":        orNone(req.Intent),
		"FOLLOWUP":      orNone(req.Followup),
		"SUMMARY":       orNone(req.Summary),
		"LAST_QUESTION": orNone(req.LastQuestion),
		"LAST_ANSWER":   orNone(req.LastAnswer),
	})

	raw, err := c.generate(ctx, "interviewer", prompt)
	if err != nil {
		return nil, err
	}

	var payload interviewerPayload
	if err := decodeJSON(raw, &payload); err != nil || strings.TrimSpace(payload.NextQuestion) == "" {
		c.logger.Warn("falling back to generic question plan",
			zap.Error(err),
			zap.String("response_preview", utils.TruncateForLog(raw, c.maxLogLen)),
		)
		return fallbackPlan(req, raw), nil
	}

	return &ai.QuestionPlan{
		NextAction:   parseNextAction(payload.NextAction),
		NextQuestion: strings.TrimSpace(payload.NextQuestion),
		Topic:        req.Topic.ID,
		Difficulty:   req.Difficulty,
		InternalMemo: strings.TrimSpace(payload.InternalMemo),
		Raw:          raw,
	}, nil
}

// FinalFeedback runs the review prompt once the interview is over.
func (c *Coach) FinalFeedback(ctx context.Context, req ai.FeedbackRequest) (*ai.Feedback, error) {
	prompt := renderTemplate(feedbackTemplate, map[string]string{
		"CANDIDATE": req.CandidateName,
		"POSITION":  req.Position,
		"GRADE":     req.Grade,
		"OVERALL":   fmt.Sprintf("%.2f", req.Snapshot.Overall),
		"MUST":      fmt.Sprintf("%.2f", req.Snapshot.Must),
		"NICE":      fmt.Sprintf("%.2f", req.Snapshot.Nice),
		"COVERED":   topicNames(req.CoveredTopics),
		"OPEN":      topicNames(req.OpenTopics),
		"SUMMARY":   orNone(req.Summary),
		"FACTS":     orNone(strings.Join(req.Facts, "; ")),
	})

	raw, err := c.generate(ctx, "feedback", prompt)
	if err != nil {
		return nil, err
	}

	var payload feedbackPayload
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, fmt.Errorf("parse feedback response: %w", err)
	}

	feedback := &ai.Feedback{
		Decision: ai.Decision{
			Grade:                payload.Decision.Grade,
			HiringRecommendation: payload.Decision.HiringRecommendation,
			ConfidenceScore:      clampInt(payload.Decision.ConfidenceScore, 0, 100),
		},
		SoftSkills: ai.SoftSkills{
			Clarity:    payload.SoftSkills.Clarity,
			Honesty:    payload.SoftSkills.Honesty,
			Engagement: payload.SoftSkills.Engagement,
		},
		Roadmap: ai.Roadmap{
			NextSteps: trimAll(payload.Roadmap.NextSteps),
			Resources: trimAll(payload.Roadmap.Resources),
		},
	}
	for _, sk := range payload.HardSkills.ConfirmedSkills {
		feedback.HardSkills.ConfirmedSkills = append(feedback.HardSkills.ConfirmedSkills, ai.SkillEvidence{
			Topic:    sk.Topic,
			Evidence: sk.Evidence,
		})
	}
	for _, gap := range payload.HardSkills.KnowledgeGaps {
		feedback.HardSkills.KnowledgeGaps = append(feedback.HardSkills.KnowledgeGaps, ai.KnowledgeGap{
			Topic:         gap.Topic,
			WhatWentWrong: gap.WhatWentWrong,
			CorrectAnswer: gap.CorrectAnswer,
			Resources:     gap.Resources,
		})
	}

	return feedback, nil
}

func (c *Coach) generate(ctx context.Context, kind, prompt string) (string, error) {
	c.logger.Debug("gemini generate content request",
		zap.String("kind", kind),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.logger.Debug("gemini generate content response",
		zap.String("kind", kind),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, c.maxLogLen)),
	)

	return raw, nil
}

func renderTemplate(template string, values map[string]string) string {
	out := template
	for key, value := range values {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

// decodeJSON unmarshals the (possibly fenced) model output into a generic map
// and coerces it into target. WeaklyTypedInput smooths over models that quote
// numbers or return a bare string where a list is expected.
func decodeJSON(raw string, target any) error {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return fmt.Errorf("parse model response: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func fallbackPlan(req ai.QuestionRequest, raw string) *ai.QuestionPlan {
	return &ai.QuestionPlan{
		NextAction:   ai.ActionAskQuestion,
		NextQuestion: fmt.Sprintf("Let's talk about %s. Could you walk me through your experience with it?", req.Topic.Name),
		Topic:        req.Topic.ID,
		Difficulty:   req.Difficulty,
		InternalMemo: "question fallback: unparseable interviewer output",
		Raw:          raw,
	}
}

func parseCorrectness(s string) ai.Correctness {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ai.CorrectnessCorrect):
		return ai.CorrectnessCorrect
	case string(ai.CorrectnessPartiallyCorrect):
		return ai.CorrectnessPartiallyCorrect
	case string(ai.CorrectnessIncorrect):
		return ai.CorrectnessIncorrect
	default:
		return ai.CorrectnessUnknown
	}
}

func parseNextAction(s string) ai.NextAction {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ai.ActionAnswerReversalThenAsk):
		return ai.ActionAnswerReversalThenAsk
	case string(ai.ActionRedirectAndAsk):
		return ai.ActionRedirectAndAsk
	case string(ai.ActionClarifyThenAsk):
		return ai.ActionClarifyThenAsk
	default:
		return ai.ActionAskQuestion
	}
}

func topicNames(list []topics.Topic) string {
	if len(list) == 0 {
		return "none"
	}
	names := make([]string, 0, len(list))
	for _, t := range list {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}

func trimAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
