package interview

import (
	"fmt"
	"strings"

	"github.com/dmaksimov/interview-coach/internal/ai"
	"github.com/dmaksimov/interview-coach/internal/session"
	"github.com/dmaksimov/interview-coach/internal/topics"
)

const (
	confidenceBase        = 70
	hallucinationPenalty  = 20
	mustShortfallPenalty  = 15
	overallLowPenalty     = 10
	mustMetBonus          = 15
	overallStrongBonus    = 10
	overallStrongMargin   = 0.15
	honestyBonusPerAnswer = 3
	honestyBonusCap       = 10
)

// Confidence scores how much the final verdict can be trusted, 0..100. It
// starts from a neutral base and moves on coverage quality and candidate
// behavior: hallucinations hurt, honest "I don't know" answers help a little.
func Confidence(plan *topics.Plan, tracker *topics.Tracker, state *session.State) int {
	score := confidenceBase

	if state.HallucinationDetected {
		score -= hallucinationPenalty
	}

	must := tracker.MustCoverage()
	overall := tracker.OverallCoverage()
	target := plan.Rules.TargetMustCoverage
	threshold := tracker.Threshold()

	if must < target {
		score -= mustShortfallPenalty
	} else {
		score += mustMetBonus
	}
	if overall < threshold {
		score -= overallLowPenalty
	} else if overall >= threshold+overallStrongMargin {
		score += overallStrongBonus
	}

	honesty := state.HonestyCount * honestyBonusPerAnswer
	if honesty > honestyBonusCap {
		honesty = honestyBonusCap
	}
	score += honesty

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// FormatResult renders the whole interview outcome as a plain text report for
// the terminal.
func FormatResult(result *Result, plan *topics.Plan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Interview report: %s (%s, %s)\n", result.State.CandidateName, result.State.Position, result.State.Grade)
	fmt.Fprintf(&b, "Stopped after %d turns (%s)\n\n", result.Turns, humanStopReason(result.StopReason))

	fmt.Fprintf(&b, "Coverage: overall %.0f%%, must %.0f%%, nice-to-have %.0f%%\n",
		result.Snapshot.Overall*100, result.Snapshot.Must*100, result.Snapshot.Nice*100)
	fmt.Fprintf(&b, "Verdict confidence: %d/100\n\n", result.Confidence)

	b.WriteString("Topics:\n")
	for _, t := range plan.Topics {
		fmt.Fprintf(&b, "  [%s] %-30s coverage %.0f%%\n", statusMark(t.Status), t.Name, t.CoverageScore*100)
	}
	b.WriteString("\n")

	if result.Feedback != nil {
		b.WriteString(formatFeedback(result.Feedback))
	}

	return b.String()
}

func formatFeedback(feedback *ai.Feedback) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Decision: %s (%s), model confidence %d/100\n\n",
		feedback.Decision.HiringRecommendation, feedback.Decision.Grade, feedback.Decision.ConfidenceScore)

	if len(feedback.HardSkills.ConfirmedSkills) > 0 {
		b.WriteString("Confirmed skills:\n")
		for _, sk := range feedback.HardSkills.ConfirmedSkills {
			fmt.Fprintf(&b, "  + %s: %s\n", sk.Topic, sk.Evidence)
		}
		b.WriteString("\n")
	}

	if len(feedback.HardSkills.KnowledgeGaps) > 0 {
		b.WriteString("Knowledge gaps:\n")
		for _, gap := range feedback.HardSkills.KnowledgeGaps {
			fmt.Fprintf(&b, "  - %s: %s\n", gap.Topic, gap.WhatWentWrong)
			if gap.CorrectAnswer != "" {
				fmt.Fprintf(&b, "    correct answer: %s\n", gap.CorrectAnswer)
			}
			for _, link := range gap.Resources {
				fmt.Fprintf(&b, "    study: %s\n", link)
			}
		}
		b.WriteString("\n")
	}

	if feedback.SoftSkills.Clarity != "" || feedback.SoftSkills.Honesty != "" || feedback.SoftSkills.Engagement != "" {
		b.WriteString("Soft skills:\n")
		fmt.Fprintf(&b, "  clarity: %s\n", feedback.SoftSkills.Clarity)
		fmt.Fprintf(&b, "  honesty: %s\n", feedback.SoftSkills.Honesty)
		fmt.Fprintf(&b, "  engagement: %s\n\n", feedback.SoftSkills.Engagement)
	}

	if len(feedback.Roadmap.NextSteps) > 0 || len(feedback.Roadmap.Resources) > 0 {
		b.WriteString("Roadmap:\n")
		for _, step := range feedback.Roadmap.NextSteps {
			fmt.Fprintf(&b, "  * %s\n", step)
		}
		for _, link := range feedback.Roadmap.Resources {
			fmt.Fprintf(&b, "  study: %s\n", link)
		}
	}

	return b.String()
}

func humanStopReason(reason string) string {
	switch reason {
	case topics.StopTurnLimit:
		return "turn limit reached"
	case topics.StopCoverageTarget:
		return "coverage target reached"
	case StopCandidateRequest:
		return "candidate ended the interview"
	case StopAnswersExhausted:
		return "no more answers"
	default:
		return reason
	}
}

func statusMark(status topics.Status) string {
	switch status {
	case topics.StatusCovered:
		return "x"
	case topics.StatusInProgress:
		return "~"
	default:
		return " "
	}
}
