package services

import (
	"testing"

	"github.com/lib/pq"

	"github.com/grindboard/practice-service/internal/models"
)

func TestComputeQuestionStats(t *testing.T) {
	tests := []struct {
		name     string
		attempts []*models.Attempt
		want     models.QuestionStats
	}{
		{
			name: "empty",
			want: models.QuestionStats{},
		},
		{
			name: "mixed results",
			attempts: []*models.Attempt{
				{Result: models.ResultSolved, TimeSpent: 10},
				{Result: models.ResultUnsolved, TimeSpent: 20},
				{Result: models.ResultPartial, TimeSpent: 15},
			},
			want: models.QuestionStats{TotalAttempts: 3, Solved: 1, Unsolved: 1, Partial: 1, AvgTime: 15},
		},
		{
			name: "rounds to one decimal",
			attempts: []*models.Attempt{
				{Result: models.ResultSolved, TimeSpent: 10},
				{Result: models.ResultSolved, TimeSpent: 10},
				{Result: models.ResultSolved, TimeSpent: 11},
			},
			want: models.QuestionStats{TotalAttempts: 3, Solved: 3, AvgTime: 10.3},
		},
		{
			name: "half rounds up",
			attempts: []*models.Attempt{
				{Result: models.ResultUnsolved, TimeSpent: 1},
				{Result: models.ResultUnsolved, TimeSpent: 2},
				{Result: models.ResultUnsolved, TimeSpent: 2},
				{Result: models.ResultUnsolved, TimeSpent: 2},
			},
			want: models.QuestionStats{TotalAttempts: 4, Unsolved: 4, AvgTime: 1.8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeQuestionStats(tt.attempts); got != tt.want {
				t.Errorf("ComputeQuestionStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeGlobalStatsTopicBreakdown(t *testing.T) {
	q := &models.Question{ID: "q", Topic: pq.StringArray{"Array", "Hash Table"}}
	lookup := QuestionLookup{"q": q}
	attempts := []*models.Attempt{
		{QuestionID: "q", Result: models.ResultSolved, TimeSpent: 10},
		{QuestionID: "q", Result: models.ResultUnsolved, TimeSpent: 20},
	}

	got := ComputeGlobalStats(attempts, lookup)

	if got.TotalSessions != 2 || got.Solved != 1 || got.Unsolved != 1 || got.AvgTime != 15 {
		t.Errorf("totals = %+v", got)
	}
	want := []models.TopicStats{
		{Topic: "Array", Total: 2, Solved: 1, SolveRate: 50, AvgTime: 15},
		{Topic: "Hash Table", Total: 2, Solved: 1, SolveRate: 50, AvgTime: 15},
	}
	if len(got.ByTopic) != len(want) {
		t.Fatalf("ByTopic = %+v, want %+v", got.ByTopic, want)
	}
	for i := range want {
		if got.ByTopic[i] != want[i] {
			t.Errorf("ByTopic[%d] = %+v, want %+v", i, got.ByTopic[i], want[i])
		}
	}
}

func TestComputeGlobalStatsDanglingAndEdgeCases(t *testing.T) {
	lookup := QuestionLookup{
		"graph":  {ID: "graph", Topic: pq.StringArray{"Graph", "Graph", "DFS"}},
		"notags": {ID: "notags"},
	}
	attempts := []*models.Attempt{
		{QuestionID: "X", Result: models.ResultSolved, TimeSpent: 30},
		{QuestionID: "graph", Result: models.ResultPartial, TimeSpent: 12},
		{QuestionID: "graph", Result: models.ResultSolved, TimeSpent: 8},
		{QuestionID: "graph", Result: models.ResultSolved, TimeSpent: 7},
		{QuestionID: "notags", Result: models.ResultUnsolved, TimeSpent: 3},
	}

	got := ComputeGlobalStats(attempts, lookup)

	if got.TotalSessions != 5 || got.Solved != 3 || got.Unsolved != 1 || got.Partial != 1 {
		t.Errorf("totals = %+v", got)
	}
	if got.AvgTime != 12 {
		t.Errorf("AvgTime = %v, want 12", got.AvgTime)
	}
	if len(got.ByTopic) != 2 {
		t.Fatalf("ByTopic = %+v, want DFS and Graph only", got.ByTopic)
	}
	for _, bucket := range got.ByTopic {
		if bucket.Total != 3 || bucket.Solved != 2 || bucket.SolveRate != 67 || bucket.AvgTime != 9 {
			t.Errorf("bucket %+v", bucket)
		}
		if bucket.SolveRate < 0 || bucket.SolveRate > 100 {
			t.Errorf("solve rate out of range: %d", bucket.SolveRate)
		}
	}
	if got.ByTopic[0].Topic != "DFS" || got.ByTopic[1].Topic != "Graph" {
		t.Errorf("ByTopic order = %s, %s", got.ByTopic[0].Topic, got.ByTopic[1].Topic)
	}
}

func TestComputeGlobalStatsEmpty(t *testing.T) {
	got := ComputeGlobalStats(nil, nil)
	if got.TotalSessions != 0 || got.AvgTime != 0 || got.ByTopic == nil || len(got.ByTopic) != 0 {
		t.Errorf("ComputeGlobalStats(nil) = %+v", got)
	}
}

func TestSolveRateRange(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for solved := 0; solved <= total; solved++ {
			rate := solveRate(solved, total)
			if rate < 0 || rate > 100 {
				t.Fatalf("solveRate(%d, %d) = %d", solved, total, rate)
			}
		}
	}
	if solveRate(0, 0) != 0 {
		t.Errorf("solveRate(0, 0) != 0")
	}
}
