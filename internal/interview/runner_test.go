package interview

import (
	"context"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dmaksimov/interview-coach/internal/ai/mock"
	"github.com/dmaksimov/interview-coach/internal/resources"
	"github.com/dmaksimov/interview-coach/internal/scenario"
	"github.com/dmaksimov/interview-coach/internal/session"
	"github.com/dmaksimov/interview-coach/internal/topics"
)

// echoSource answers every question by repeating it, which always mentions
// the topic name and therefore rates well with the deterministic assistant.
type echoSource struct {
	limit int
	asked int
}

func (e *echoSource) NextAnswer(question string) (string, error) {
	if e.limit > 0 && e.asked >= e.limit {
		return "", io.EOF
	}
	e.asked++
	return question, nil
}

func newTestRunner(t *testing.T, answers AnswerSource) (*Runner, *topics.Plan) {
	t.Helper()
	return newThresholdRunner(t, answers, 0)
}

func newThresholdRunner(t *testing.T, answers AnswerSource, threshold float64) (*Runner, *topics.Plan) {
	t.Helper()
	plan := topics.BuildPlan("Python Developer", "Junior", "1 year of Django")
	state := session.NewState("Alex", "Python Developer", plan.Grade, "1 year of Django")
	library, err := resources.NewLibrary()
	if err != nil {
		t.Fatalf("NewLibrary returned error: %v", err)
	}
	return NewRunner(plan, state, mock.New(), answers, library, threshold, zap.NewNop()), plan
}

func TestRunStopsAtTurnLimit(t *testing.T) {
	runner, plan := newTestRunner(t, &echoSource{})

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.StopReason != topics.StopTurnLimit {
		t.Fatalf("expected %s, got %s", topics.StopTurnLimit, result.StopReason)
	}
	if result.Turns != plan.Rules.MaxTotalTurns {
		t.Fatalf("expected %d turns, got %d", plan.Rules.MaxTotalTurns, result.Turns)
	}
	if len(result.Exchanges) != result.Turns {
		t.Fatalf("expected %d exchanges, got %d", result.Turns, len(result.Exchanges))
	}
	if result.Feedback == nil {
		t.Fatalf("expected a final feedback report")
	}
	if result.Snapshot.Overall <= 0 {
		t.Fatalf("expected nonzero coverage after a full run, got %.2f", result.Snapshot.Overall)
	}
}

func TestRunStopsOnCandidateRequest(t *testing.T) {
	answers := scenario.NewAnswers([]string{
		"Python uses indentation for blocks and everything is an object.",
		"stop interview",
	})
	runner, _ := newTestRunner(t, answers)

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.StopReason != StopCandidateRequest {
		t.Fatalf("expected %s, got %s", StopCandidateRequest, result.StopReason)
	}
	if result.Turns != 1 {
		t.Fatalf("expected 1 completed turn, got %d", result.Turns)
	}
}

func TestRunStopsWhenAnswersRunOut(t *testing.T) {
	runner, _ := newTestRunner(t, &echoSource{limit: 3})

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.StopReason != StopAnswersExhausted {
		t.Fatalf("expected %s, got %s", StopAnswersExhausted, result.StopReason)
	}
	if result.Turns != 3 {
		t.Fatalf("expected 3 completed turns, got %d", result.Turns)
	}
}

func TestProgressRequestDoesNotConsumeATurn(t *testing.T) {
	answers := scenario.NewAnswers([]string{
		"Python scoping follows the LEGB rule and objects are reference counted.",
		"how am i doing so far?",
		"stop interview",
	})
	runner, _ := newTestRunner(t, answers)

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	// Three scripted messages, but only the first one was a scored answer.
	if result.Turns != 1 {
		t.Fatalf("expected 1 scored turn, got %d", result.Turns)
	}
	if got := len(runner.Tracker().Asked()); got != 1 {
		t.Fatalf("expected 1 recorded question, got %d", got)
	}
}

func TestRunFlagsHallucination(t *testing.T) {
	answers := scenario.NewAnswers([]string{
		"In Python 4.0 they are removing the for loop entirely.",
		"stop interview",
	})
	runner, _ := newTestRunner(t, answers)

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !result.State.HallucinationDetected {
		t.Fatalf("expected hallucination flag on the session")
	}
}

func TestRunCountsHonestAdmissions(t *testing.T) {
	answers := scenario.NewAnswers([]string{
		"I don't know, I have not used that part of the language.",
		"stop interview",
	})
	runner, _ := newTestRunner(t, answers)

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.State.HonestyCount != 1 {
		t.Fatalf("expected honesty count 1, got %d", result.State.HonestyCount)
	}
}

func TestRunFillsGapResources(t *testing.T) {
	// A short run leaves most must topics open; the deterministic assistant
	// reports them as gaps without resources and the library fills them in.
	runner, _ := newTestRunner(t, &echoSource{limit: 2})

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Feedback.HardSkills.KnowledgeGaps) == 0 {
		t.Fatalf("expected open must topics to show up as gaps")
	}
	for _, gap := range result.Feedback.HardSkills.KnowledgeGaps {
		if len(gap.Resources) == 0 {
			t.Fatalf("gap %q has no study resources", gap.Topic)
		}
	}
}

func TestRunStaysOnTopicUntilCovered(t *testing.T) {
	runner, _ := newTestRunner(t, &echoSource{limit: 4})

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	// Junior topics need two questions each, so turns pair up by topic.
	if result.Exchanges[0].TopicID != result.Exchanges[1].TopicID {
		t.Fatalf("expected turn 2 to stay on %s, got %s", result.Exchanges[0].TopicID, result.Exchanges[1].TopicID)
	}
	if result.Exchanges[2].TopicID == result.Exchanges[1].TopicID {
		t.Fatalf("expected turn 3 to move on from %s", result.Exchanges[1].TopicID)
	}
}

func TestConfiguredThresholdChangesCoveredTransition(t *testing.T) {
	// Two questions at score 3 normalize to 0.75: enough to cover a junior
	// topic at the default threshold, not at a stricter configured one.
	lenient, lenientPlan := newThresholdRunner(t, &echoSource{limit: 2}, 0)
	if _, err := lenient.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if lenientPlan.Topics[0].Status != topics.StatusCovered {
		t.Fatalf("expected %s covered at the default threshold, got %s", lenientPlan.Topics[0].ID, lenientPlan.Topics[0].Status)
	}

	strict, strictPlan := newThresholdRunner(t, &echoSource{limit: 2}, 0.9)
	if got := strict.Tracker().Threshold(); got != 0.9 {
		t.Fatalf("tracker threshold = %.2f, want 0.9", got)
	}
	if _, err := strict.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	for _, topic := range strictPlan.Topics {
		if topic.Status == topics.StatusCovered {
			t.Fatalf("topic %s covered despite 0.9 threshold", topic.ID)
		}
	}
}

func TestAskHookSeesEveryQuestion(t *testing.T) {
	runner, _ := newTestRunner(t, &echoSource{limit: 2})

	var asked []string
	runner.AskHook = func(question string) { asked = append(asked, question) }

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	// Two answered questions plus the final one that hit EOF.
	if len(asked) != 3 {
		t.Fatalf("expected 3 asked questions, got %d", len(asked))
	}
	for _, q := range asked {
		if !strings.Contains(q, "difficulty") {
			t.Fatalf("question missing difficulty marker: %q", q)
		}
	}
}
