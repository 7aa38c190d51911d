package topics

// The catalog is a set of immutable tables loaded once at process start.
// Accessors hand out copies so plans never share tag slices with the tables
// or with each other.

var baseTopics = []Topic{
	{ID: "python_basics", Name: "Python basics", Priority: PriorityMust, MinQuestions: 2, Tags: []string{"python", "basics", "syntax"}},
	{ID: "oop_principles", Name: "OOP principles", Priority: PriorityMust, MinQuestions: 2, Tags: []string{"oop", "classes", "inheritance", "polymorphism"}},
	{ID: "http_rest", Name: "HTTP & REST", Priority: PriorityMust, MinQuestions: 2, Tags: []string{"http", "rest", "requests", "responses"}},
	{ID: "db_sql_basics", Name: "DB & SQL basics", Priority: PriorityMust, MinQuestions: 2, Tags: []string{"sql", "database", "queries"}},
	{ID: "git_basics", Name: "Git basics", Priority: PriorityMust, MinQuestions: 2, Tags: []string{"git", "version control"}},
	{ID: "django_framework", Name: "Django / Framework basics", Priority: PriorityMust, MinQuestions: 2, Tags: []string{"django", "framework", "orm"}},
	{ID: "debug_testing", Name: "Debugging & testing basics", Priority: PriorityMust, MinQuestions: 2, Tags: []string{"testing", "debug", "pytest"}},
}

var middleTopics = []Topic{
	{ID: "system_design", Name: "System design fundamentals", Priority: PriorityMust, MinQuestions: 2, Tags: []string{"architecture", "design", "scalability"}},
	{ID: "concurrency", Name: "Concurrency & async", Priority: PriorityMust, MinQuestions: 2, Tags: []string{"async", "threads", "processes"}},
	{ID: "performance", Name: "Performance & profiling", Priority: PriorityNice, MinQuestions: 1, Tags: []string{"performance", "profiling", "optimization"}},
	{ID: "caching", Name: "Caching", Priority: PriorityNice, MinQuestions: 1, Tags: []string{"cache", "redis", "ttl"}},
	{ID: "security", Name: "Security basics", Priority: PriorityNice, MinQuestions: 1, Tags: []string{"security", "auth", "owasp"}},
	{ID: "ci_cd", Name: "CI/CD", Priority: PriorityNice, MinQuestions: 1, Tags: []string{"ci", "cd", "pipelines"}},
}

var seniorTopics = []Topic{
	{ID: "system_design_advanced", Name: "System design (advanced)", Priority: PriorityMust, MinQuestions: 2, Tags: []string{"architecture", "tradeoffs", "capacity"}},
	{ID: "concurrency_deep", Name: "Concurrency scaling", Priority: PriorityMust, MinQuestions: 2, Tags: []string{"locks", "queues", "backpressure"}},
	{ID: "reliability", Name: "Reliability & observability", Priority: PriorityNice, MinQuestions: 1, Tags: []string{"logging", "metrics", "tracing"}},
}

// TopicsForGrade returns the topic set for a grade: Junior gets the base set,
// Middle adds the middle tier, Senior adds both the middle and senior tiers.
func TopicsForGrade(grade Grade) []Topic {
	out := copyTopics(baseTopics)
	if grade == GradeMiddle || grade == GradeSenior {
		out = append(out, copyTopics(middleTopics)...)
	}
	if grade == GradeSenior {
		out = append(out, copyTopics(seniorTopics)...)
	}
	return out
}

func copyTopics(src []Topic) []Topic {
	out := make([]Topic, len(src))
	for i, t := range src {
		t.Tags = append([]string(nil), t.Tags...)
		t.Status = StatusPending
		out[i] = t
	}
	return out
}
