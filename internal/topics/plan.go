package topics

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	languageTopicID  = "python_basics"
	frameworkTopicID = "django_framework"
)

// textPattern is one rule of an ordered classification list. The lists are
// evaluated top to bottom and the first match wins, so ordering is part of
// the contract.
type textPattern struct {
	tag  string
	name string
	re   *regexp.Regexp
}

var languagePatterns = []textPattern{
	{tag: "python", name: "Python", re: regexp.MustCompile(`\bpython\b`)},
	{tag: "go", name: "Go", re: regexp.MustCompile(`\bgo(lang)?\b`)},
	{tag: "java", name: "Java", re: regexp.MustCompile(`\bjava\b`)},
	{tag: "typescript", name: "TypeScript", re: regexp.MustCompile(`\btypescript\b|\bts\b`)},
	{tag: "javascript", name: "JavaScript", re: regexp.MustCompile(`\bjavascript\b|\bnode(\.?js)?\b`)},
	{tag: "csharp", name: "C#", re: regexp.MustCompile(`c#|\bcsharp\b|\bdotnet\b|\.net\b`)},
	{tag: "ruby", name: "Ruby", re: regexp.MustCompile(`\bruby\b`)},
	{tag: "php", name: "PHP", re: regexp.MustCompile(`\bphp\b`)},
	{tag: "rust", name: "Rust", re: regexp.MustCompile(`\brust\b`)},
	{tag: "kotlin", name: "Kotlin", re: regexp.MustCompile(`\bkotlin\b`)},
}

var frameworkPatterns = []textPattern{
	{tag: "django", name: "Django", re: regexp.MustCompile(`\bdjango\b|\bdrf\b`)},
	{tag: "flask", name: "Flask", re: regexp.MustCompile(`\bflask\b`)},
	{tag: "fastapi", name: "FastAPI", re: regexp.MustCompile(`\bfastapi\b`)},
	{tag: "spring", name: "Spring", re: regexp.MustCompile(`\bspring\b`)},
	{tag: "gin", name: "Gin", re: regexp.MustCompile(`\bgin\b`)},
	{tag: "echo", name: "Echo", re: regexp.MustCompile(`\becho\b`)},
	{tag: "fiber", name: "Fiber", re: regexp.MustCompile(`\bfiber\b`)},
	{tag: "express", name: "Express", re: regexp.MustCompile(`\bexpress\b`)},
	{tag: "nestjs", name: "NestJS", re: regexp.MustCompile(`\bnest(\.?js)?\b`)},
	{tag: "rails", name: "Rails", re: regexp.MustCompile(`\brails\b`)},
	{tag: "laravel", name: "Laravel", re: regexp.MustCompile(`\blaravel\b`)},
}

// defaultFrameworks maps an inferred language tag to a framework guess used
// when no framework pattern matched the text.
var defaultFrameworks = map[string]textPattern{
	"python":     {tag: "django", name: "Django"},
	"go":         {tag: "gin", name: "Gin"},
	"java":       {tag: "spring", name: "Spring"},
	"typescript": {tag: "express", name: "Express"},
	"javascript": {tag: "express", name: "Express"},
	"csharp":     {tag: "aspnet", name: "ASP.NET"},
	"ruby":       {tag: "rails", name: "Rails"},
	"php":        {tag: "laravel", name: "Laravel"},
}

var gradeRules = map[Grade]Rules{
	GradeJunior: {TargetMustCoverage: 0.85, MaxTotalTurns: 10, TopicCooldown: 1},
	GradeMiddle: {TargetMustCoverage: 0.90, MaxTotalTurns: 14, TopicCooldown: 2},
	GradeSenior: {TargetMustCoverage: 0.92, MaxTotalTurns: 16, TopicCooldown: 2},
}

// BuildPlan constructs a topic plan from the role, grade and free-text
// experience description. The grade picks the topic set and coverage rules;
// the experience/role text is scanned to infer the candidate's primary
// language and framework, which relabel the generic topics. Inference never
// fails: when nothing matches the topics keep their generic names.
func BuildPlan(role, grade, experience string) *Plan {
	g := ParseGrade(grade)
	plan := &Plan{
		Role:   role,
		Grade:  g,
		Topics: TopicsForGrade(g),
		Rules:  gradeRules[g],
	}
	plan.buildIndex()

	text := strings.ToLower(role + " " + experience)
	lang := matchFirst(languagePatterns, text)
	framework := matchFirst(frameworkPatterns, text)
	if framework == nil && lang != nil {
		if guess, ok := defaultFrameworks[lang.tag]; ok {
			framework = &guess
		}
	}

	var adaptations []string
	if lang != nil && lang.tag != "python" {
		if t := plan.Topic(languageTopicID); t != nil {
			t.Name = lang.name + " basics"
			t.Tags = replaceTag(t.Tags, "python", lang.tag)
		}
		adaptations = append(adaptations, "language="+lang.name)
	}
	if framework != nil && framework.tag != "django" {
		if t := plan.Topic(frameworkTopicID); t != nil {
			t.Name = framework.name + " / Framework basics"
			t.Tags = replaceTag(t.Tags, "django", framework.tag)
		}
		adaptations = append(adaptations, "framework="+framework.name)
	}

	plan.Summary = buildSummary(plan, adaptations)

	return plan
}

func matchFirst(patterns []textPattern, text string) *textPattern {
	for i := range patterns {
		if patterns[i].re.MatchString(text) {
			return &patterns[i]
		}
	}
	return nil
}

// replaceTag swaps old for replacement preserving order and dropping
// duplicates that the swap may introduce.
func replaceTag(tags []string, old, replacement string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if tag == old {
			tag = replacement
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func buildSummary(plan *Plan, adaptations []string) string {
	names := plan.MustTopicNames()
	summary := ""
	if len(names) > 0 {
		summary = fmt.Sprintf("Must topics: %s.", strings.Join(names, ", "))
	}
	if len(adaptations) > 0 {
		summary += " Adaptations: " + strings.Join(adaptations, "; ")
	}
	return summary
}
