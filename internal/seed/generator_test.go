package seed

import (
	"context"
	"testing"

	"github.com/grindboard/practice-service/internal/repositories"
	"github.com/grindboard/practice-service/internal/repositories/memory"
)

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Two Sum":                      "two-sum",
		"Implement Trie (Prefix Tree)": "implement-trie-prefix-tree",
		"3Sum":                         "3sum",
		"  Pow(x, n) ":                 "powx-n",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	a := NewGenerator(42).Questions(5)
	b := NewGenerator(42).Questions(5)
	for i := range a {
		if a[i].Title != b[i].Title || a[i].Difficulty != b[i].Difficulty || !a[i].CreatedAt.Equal(b[i].CreatedAt) {
			t.Fatalf("question %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGeneratorShapes(t *testing.T) {
	gen := NewGenerator(7)
	questions := gen.Questions(len(questionTitles) + 3)

	if got := questions[len(questionTitles)].Title; got != questionTitles[0]+" 2" {
		t.Errorf("wrapped title = %q", got)
	}
	for _, q := range questions {
		if len(q.Company) < 1 || len(q.Company) > 4 || len(q.Topic) < 1 || len(q.Topic) > 3 {
			t.Errorf("question tags out of range: %+v", q)
		}
		if q.CreatedAt.Before(questionsFrom) || !q.CreatedAt.Before(questionsTo) {
			t.Errorf("created_at out of range: %v", q.CreatedAt)
		}
	}

	for i, q := range questions {
		q.ID = Slug(q.Title) + "-" + string(rune('a'+i%26))
	}
	for _, a := range gen.Attempts(200, questions) {
		if a.TimeSpent < 5 || a.TimeSpent > 60 {
			t.Errorf("time_spent out of range: %d", a.TimeSpent)
		}
		if a.QuestionID == "" {
			t.Errorf("attempt without question")
		}
	}

	if got := gen.Attempts(3, nil); len(got) != 0 {
		t.Errorf("Attempts() without questions = %d", len(got))
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	result, err := Run(ctx, repo, NewGenerator(1), 20, 150)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Questions != 20 || result.Attempts != 150 || result.Topics == 0 {
		t.Errorf("Run() = %+v", result)
	}

	questions, err := repo.Question().Count(ctx, repositories.QuestionFilters{})
	if err != nil || questions != 20 {
		t.Errorf("questions = %d, %v", questions, err)
	}
	attempts, _, err := repo.Attempt().List(ctx, repositories.AttemptFilters{})
	if err != nil || len(attempts) != 150 {
		t.Fatalf("attempts = %d, %v", len(attempts), err)
	}

	ids, err := repo.Question().ListIDs(ctx, repositories.QuestionFilters{})
	if err != nil {
		t.Fatalf("ListIDs() error = %v", err)
	}
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	for _, a := range attempts {
		if !known[a.QuestionID] {
			t.Fatalf("attempt references unknown question %s", a.QuestionID)
		}
	}
}
