package session

import (
	"fmt"
	"regexp"
	"strings"
)

// Intent classifies what the candidate's message is doing, before the answer
// itself goes to the observer for scoring.
type Intent string

const (
	IntentNormalAnswer Intent = "NORMAL_ANSWER"
	IntentOffTopic     Intent = "OFF_TOPIC"
	IntentRoleReversal Intent = "ROLE_REVERSAL"
	IntentProgress     Intent = "PROGRESS"
	IntentStop         Intent = "STOP"
)

// The classifier is an ordered rule list evaluated top to bottom, first match
// wins. Later rules never see a message an earlier rule claimed.
var (
	stopPhrases = []string{
		"stop interview",
		"stop the interview",
		"/stop",
		"give me feedback",
		"let's wrap up",
	}
	progressPhrases = []string{
		"progress",
		"how am i doing",
		"coverage so far",
	}
	roleReversalHints = []string{
		"what do you think",
		"your opinion",
		"how would you",
		"and you?",
		"do you like",
	}
	offTopicHints = []string{
		"joke",
		"weather",
		"cat video",
		"lunch",
		"movie",
	}
)

func ClassifyIntent(message string) Intent {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "stop" || containsAny(text, stopPhrases) {
		return IntentStop
	}
	if containsAny(text, progressPhrases) {
		return IntentProgress
	}
	if containsAny(text, roleReversalHints) {
		return IntentRoleReversal
	}
	if containsAny(text, offTopicHints) {
		return IntentOffTopic
	}
	return IntentNormalAnswer
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// DetectHallucination checks the candidate's message against known trap
// claims (facts that sound plausible but are false).
func DetectHallucination(message string) bool {
	text := strings.ToLower(message)
	trap := strings.Contains(text, "python 4.0") && strings.Contains(text, "for")
	obviouslyFalse := strings.Contains(text, "removing the for loop") ||
		strings.Contains(text, "deprecating the for loop")
	return trap || obviouslyFalse
}

var injectionHints = []string{
	"ignore all previous",
	"ignore the rules",
	"ignore your instructions",
	"disregard instructions",
	"system prompt",
	"you are now",
}

// DetectPromptInjection flags attempts to steer the interviewer off its role.
func DetectPromptInjection(message string) bool {
	return containsAny(strings.ToLower(message), injectionHints)
}

var absoluteClaim = regexp.MustCompile(`\b(always|never)\b`)

// DetectControversialClaim flags confident absolute statements, which the
// interviewer should challenge. Questions are not claims.
func DetectControversialClaim(message string) bool {
	text := strings.ToLower(strings.TrimSpace(message))
	if strings.HasSuffix(text, "?") {
		return false
	}
	return absoluteClaim.MatchString(text)
}

// DetectOffTopicContext is a coarse relevance check: an answer unrelated to
// both the question and the topic tags is treated as off-topic.
func DetectOffTopicContext(answer, question string, tags []string) bool {
	answerL := strings.ToLower(answer)
	for _, tag := range tags {
		if strings.Contains(answerL, strings.ToLower(tag)) {
			return false
		}
	}
	questionWords := significantWords(question)
	for word := range significantWords(answer) {
		if questionWords[word] {
			return false
		}
	}
	return true
}

func significantWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?:;\"'()")
		if len(w) >= 4 {
			words[w] = true
		}
	}
	return words
}

var sentenceSplit = regexp.MustCompile(`[.!?]`)

// ExtractFacts pulls candidate statements worth remembering (sentences of at
// least three words) into the session's fact list, deduplicated.
func ExtractFacts(s *State, answer string) []string {
	var snippets []string
	for _, sentence := range sentenceSplit.Split(answer, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if len(strings.Fields(sentence)) >= 3 {
			snippets = append(snippets, sentence)
		}
	}

	known := make(map[string]bool, len(s.ExtractedFacts))
	for _, fact := range s.ExtractedFacts {
		known[fact] = true
	}
	for _, sn := range snippets {
		if !known[sn] {
			s.ExtractedFacts = append(s.ExtractedFacts, sn)
			known[sn] = true
		}
	}

	return snippets
}

// RegisterTurn appends the turn to history and refreshes the running summary
// from the last few exchanges.
func RegisterTurn(s *State, turn Turn) {
	s.History = append(s.History, turn)
	updateSummary(s)
}

func updateSummary(s *State) {
	recent := s.RememberRecent(3)
	parts := make([]string, 0, len(recent))
	for _, t := range recent {
		parts = append(parts, fmt.Sprintf("Q%d:%s | A:%s", t.TurnID, truncate(t.Question, 50), truncate(t.Answer, 60)))
	}
	s.RunningSummary = strings.Join(parts, " || ")
}

// QuestionAlreadyCovered reports whether the next question repeats an earlier
// one or probes a fact the candidate already volunteered.
func QuestionAlreadyCovered(s *State, nextQuestion string) bool {
	normalized := strings.ToLower(strings.TrimSpace(nextQuestion))
	if normalized == "" {
		return false
	}
	for _, turn := range s.History {
		if strings.Contains(strings.ToLower(turn.Question), normalized) {
			return true
		}
	}
	firstWord := strings.Split(normalized, " ")[0]
	for _, fact := range s.ExtractedFacts {
		if strings.Contains(strings.ToLower(fact), firstWord) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
