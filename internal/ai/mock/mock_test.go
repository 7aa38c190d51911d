package mock

import (
	"context"
	"strings"
	"testing"

	"github.com/dmaksimov/interview-coach/internal/ai"
	"github.com/dmaksimov/interview-coach/internal/topics"
)

func testTopic() topics.Topic {
	return topics.Topic{
		ID:       "db_sql_basics",
		Name:     "SQL and Databases",
		Priority: topics.PriorityMust,
		Tags:     []string{"sql", "database"},
	}
}

func TestAnalyzeAnswerScoring(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{"near empty", "no", 1},
		{"tag match", "I would add an index to the database table", 3},
		{"generic", "I usually just try things until they work", 2},
	}

	assistant := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := assistant.AnalyzeAnswer(context.Background(), ai.AnalysisRequest{
				Answer: tt.answer,
				Topic:  testTopic(),
			})
			if err != nil {
				t.Fatalf("AnalyzeAnswer returned error: %v", err)
			}
			if analysis.AnswerScore != tt.want {
				t.Fatalf("score for %q = %d, want %d", tt.answer, analysis.AnswerScore, tt.want)
			}
		})
	}
}

func TestNextQuestionUsesFollowup(t *testing.T) {
	assistant := New()

	plan, err := assistant.NextQuestion(context.Background(), ai.QuestionRequest{
		Topic:      testTopic(),
		Difficulty: 3,
		Followup:   "What is a transaction?",
	})
	if err != nil {
		t.Fatalf("NextQuestion returned error: %v", err)
	}
	if !strings.Contains(plan.NextQuestion, "What is a transaction?") {
		t.Fatalf("expected followup in question, got %q", plan.NextQuestion)
	}
	if !strings.Contains(plan.NextQuestion, "difficulty 3") {
		t.Fatalf("expected difficulty marker, got %q", plan.NextQuestion)
	}
}

func TestNextQuestionRedirectsOffTopic(t *testing.T) {
	assistant := New()

	plan, err := assistant.NextQuestion(context.Background(), ai.QuestionRequest{
		Topic:  testTopic(),
		Intent: "OFF_TOPIC",
	})
	if err != nil {
		t.Fatalf("NextQuestion returned error: %v", err)
	}
	if plan.NextAction != ai.ActionRedirectAndAsk {
		t.Fatalf("expected REDIRECT_AND_ASK, got %s", plan.NextAction)
	}
}

func TestFinalFeedbackFromSnapshot(t *testing.T) {
	assistant := New()

	feedback, err := assistant.FinalFeedback(context.Background(), ai.FeedbackRequest{
		Grade:    "Middle",
		Snapshot: topics.Snapshot{Overall: 0.82, Must: 0.9},
		CoveredTopics: []topics.Topic{
			{Name: "SQL and Databases", CoverageScore: 0.9},
		},
		OpenTopics: []topics.Topic{
			{Name: "Concurrency", Priority: topics.PriorityMust},
			{Name: "Caching", Priority: topics.PriorityNice},
		},
	})
	if err != nil {
		t.Fatalf("FinalFeedback returned error: %v", err)
	}
	if feedback.Decision.HiringRecommendation != "HIRE" {
		t.Fatalf("expected HIRE, got %s", feedback.Decision.HiringRecommendation)
	}
	if feedback.Decision.ConfidenceScore != 82 {
		t.Fatalf("expected confidence 82, got %d", feedback.Decision.ConfidenceScore)
	}
	if len(feedback.HardSkills.ConfirmedSkills) != 1 {
		t.Fatalf("expected one confirmed skill, got %+v", feedback.HardSkills.ConfirmedSkills)
	}
	// Only must topics become gaps.
	if len(feedback.HardSkills.KnowledgeGaps) != 1 || feedback.HardSkills.KnowledgeGaps[0].Topic != "Concurrency" {
		t.Fatalf("unexpected gaps: %+v", feedback.HardSkills.KnowledgeGaps)
	}
}
