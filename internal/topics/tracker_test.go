package topics

import (
	"math"
	"testing"
)

func TestRecordMarksTopicCovered(t *testing.T) {
	plan := BuildPlan("Backend", "Junior", "")
	tracker := NewTracker(plan, 0)

	topicID := "python_basics"
	tracker.Record(topicID, 1, "Q1", 4, 2)

	topic := plan.Topic(topicID)
	if topic.Status != StatusInProgress {
		t.Fatalf("after one answer expected in_progress, got %s", topic.Status)
	}

	// min_questions is 2: the second high-quality answer covers the topic.
	tracker.Record(topicID, 2, "Q2", 4, 2)

	if topic.Status != StatusCovered {
		t.Fatalf("expected covered, got %s", topic.Status)
	}
	if topic.CoverageScore < tracker.Threshold() {
		t.Fatalf("coverage %.3f below threshold %.3f", topic.CoverageScore, tracker.Threshold())
	}
}

func TestCoveredStatusIsMonotonic(t *testing.T) {
	plan := BuildPlan("Backend", "Junior", "")
	tracker := NewTracker(plan, 0)

	topicID := "git_basics"
	tracker.Record(topicID, 1, "Q1", 4, 2)
	tracker.Record(topicID, 2, "Q2", 4, 2)

	if plan.Topic(topicID).Status != StatusCovered {
		t.Fatalf("setup: topic should be covered")
	}

	// A run of zero scores drags the average down but never reverts the status.
	for turn := 3; turn <= 8; turn++ {
		tracker.Record(topicID, turn, "Q", 0, 2)
		if got := plan.Topic(topicID).Status; got != StatusCovered {
			t.Fatalf("status reverted to %s after turn %d", got, turn)
		}
	}
}

func TestRecordClampsRawScore(t *testing.T) {
	plan := BuildPlan("Backend", "Junior", "")
	tracker := NewTracker(plan, 0)

	tracker.Record("http_rest", 1, "Q1", 99, 2)
	if avg := tracker.StatsFor("http_rest").AvgScore; avg != 1.0 {
		t.Fatalf("expected clamped average 1.0, got %v", avg)
	}

	tracker.Record("db_sql_basics", 2, "Q2", -3, 2)
	if avg := tracker.StatsFor("db_sql_basics").AvgScore; avg != 0.0 {
		t.Fatalf("expected clamped average 0.0, got %v", avg)
	}
}

func TestRunningAverage(t *testing.T) {
	plan := BuildPlan("Backend", "Junior", "")
	tracker := NewTracker(plan, 0)

	tracker.Record("oop_principles", 1, "Q1", 4, 2) // 1.0
	tracker.Record("oop_principles", 2, "Q2", 2, 2) // 0.5
	tracker.Record("oop_principles", 3, "Q3", 1, 2) // 0.25

	want := (1.0 + 0.5 + 0.25) / 3
	if got := tracker.StatsFor("oop_principles").AvgScore; math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected average %v, got %v", want, got)
	}
	if got := tracker.StatsFor("oop_principles").LastTurn; got != 3 {
		t.Fatalf("expected last turn 3, got %d", got)
	}
}

func TestCoverageBounds(t *testing.T) {
	plan := BuildPlan("Backend", "Middle", "")
	tracker := NewTracker(plan, 0)

	scores := []float64{0, 4, 2, 3, 1, 4, 4, 0, 2, 3}
	for i, score := range scores {
		topic := plan.Topics[i%len(plan.Topics)]
		tracker.Record(topic.ID, i+1, "Q", score, 2)

		lo, hi := 1.0, 0.0
		for _, tp := range plan.Topics {
			if tp.CoverageScore < 0 || tp.CoverageScore > 1 {
				t.Fatalf("coverage score out of bounds: %v", tp.CoverageScore)
			}
			if tp.CoverageScore < lo {
				lo = tp.CoverageScore
			}
			if tp.CoverageScore > hi {
				hi = tp.CoverageScore
			}
		}
		overall := tracker.OverallCoverage()
		if overall < lo-1e-9 || overall > hi+1e-9 {
			t.Fatalf("overall coverage %v outside [%v, %v]", overall, lo, hi)
		}
	}
}

func TestCoverageIsUnweightedMean(t *testing.T) {
	plan := BuildPlan("Backend", "Junior", "")
	tracker := NewTracker(plan, 0)

	tracker.Record("python_basics", 1, "Q1", 4, 2)
	tracker.Record("python_basics", 2, "Q2", 4, 2)

	// One fully covered must topic out of seven.
	want := 1.0 / 7.0
	if got := tracker.MustCoverage(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected must coverage %v, got %v", want, got)
	}
	if got := tracker.OverallCoverage(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected overall coverage %v, got %v", want, got)
	}
}

func TestClassRatiosStayConsistentOnMixedPlan(t *testing.T) {
	// Middle plans carry both priority classes; must, nice, and overall must
	// each be the unweighted mean over their own class after every record.
	plan := BuildPlan("Backend", "Middle", "")
	tracker := NewTracker(plan, 0)

	tracker.Record("python_basics", 1, "Q1", 4, 2)
	tracker.Record("python_basics", 2, "Q2", 4, 2)
	tracker.Record("caching", 3, "Q3", 4, 2)

	var mustCount, niceCount int
	for _, topic := range plan.Topics {
		if topic.Priority == PriorityMust {
			mustCount++
		} else {
			niceCount++
		}
	}

	wantMust := 1.0 / float64(mustCount)
	wantNice := 1.0 / float64(niceCount)
	wantOverall := 2.0 / float64(mustCount+niceCount)
	if got := tracker.MustCoverage(); math.Abs(got-wantMust) > 1e-9 {
		t.Fatalf("expected must coverage %v, got %v", wantMust, got)
	}
	if got := tracker.NiceCoverage(); math.Abs(got-wantNice) > 1e-9 {
		t.Fatalf("expected nice coverage %v, got %v", wantNice, got)
	}
	if got := tracker.OverallCoverage(); math.Abs(got-wantOverall) > 1e-9 {
		t.Fatalf("expected overall coverage %v, got %v", wantOverall, got)
	}
}

func TestNiceCoverageKeepsPreviousValueWhenClassEmpty(t *testing.T) {
	// Junior plans carry only must topics, so nice coverage must stay at its
	// initial value instead of dividing by zero.
	plan := BuildPlan("Backend", "Junior", "")
	tracker := NewTracker(plan, 0)

	tracker.Record("python_basics", 1, "Q1", 4, 2)

	if got := tracker.NiceCoverage(); got != 0 {
		t.Fatalf("expected nice coverage to stay 0, got %v", got)
	}
}

func TestSnapshotReflectsTopics(t *testing.T) {
	plan := BuildPlan("Backend", "Junior", "")
	tracker := NewTracker(plan, 0)

	tracker.Record("python_basics", 1, "Q1", 4, 2)
	tracker.Record("python_basics", 2, "Q2", 4, 2)

	snap := tracker.Snapshot()
	if len(snap.Topics) != len(plan.Topics) {
		t.Fatalf("expected %d topics in snapshot, got %d", len(plan.Topics), len(snap.Topics))
	}
	if snap.Topics["python_basics"] != 1.0 {
		t.Fatalf("expected full coverage for python_basics, got %v", snap.Topics["python_basics"])
	}
	if snap.Must != tracker.MustCoverage() || snap.Overall != tracker.OverallCoverage() {
		t.Fatalf("snapshot ratios diverge from tracker")
	}
}

func TestAskedLogIsAppendOnly(t *testing.T) {
	plan := BuildPlan("Backend", "Junior", "")
	tracker := NewTracker(plan, 0)

	tracker.Record("git_basics", 1, "first", 3, 2)
	tracker.Record("http_rest", 2, "second", 2, 3)

	log := tracker.Asked()
	if len(log) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(log))
	}
	if log[0].Question != "first" || log[1].Question != "second" {
		t.Fatalf("log order broken: %+v", log)
	}
	if log[1].Difficulty != 3 {
		t.Fatalf("expected difficulty 3, got %d", log[1].Difficulty)
	}

	// Mutating the returned slice must not touch the tracker's log.
	log[0].Question = "tampered"
	if tracker.Asked()[0].Question != "first" {
		t.Fatalf("asked log is not isolated from callers")
	}
}
