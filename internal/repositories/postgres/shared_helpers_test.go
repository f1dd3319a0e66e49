package postgres

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=practice dbname=practice sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	return db
}

func TestApplyQuestionFiltersSQL(t *testing.T) {
	db := dryRunDB(t)
	helpers := NewSharedHelpers(db)
	hard := models.DifficultyHard

	tests := []struct {
		name    string
		filters repositories.QuestionFilters
		want    []string
		notWant []string
	}{
		{
			name:    "no filters",
			want:    []string{`ORDER BY created_at DESC, seq ASC`},
			notWant: []string{"&&", "WHERE"},
		},
		{
			name:    "overlap on arrays",
			filters: repositories.QuestionFilters{Companies: []string{"Google"}, Topics: []string{"Graph", "Tree"}},
			want:    []string{"company && $1", "topic && $2"},
		},
		{
			name:    "difficulty and window",
			filters: repositories.QuestionFilters{Difficulty: &hard, Limit: 10, Offset: 20},
			want:    []string{"difficulty = $1", "LIMIT 10", "OFFSET 20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := helpers.ApplyQuestionFilters(db.Model(&models.Question{}), tt.filters)
			query = helpers.ApplyPagination(query, questionOrder, tt.filters.Limit, tt.filters.Offset)
			sql := query.Find(&[]*models.Question{}).Statement.SQL.String()

			for _, want := range tt.want {
				if !strings.Contains(sql, want) {
					t.Errorf("SQL %q missing %q", sql, want)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(sql, notWant) {
					t.Errorf("SQL %q should not contain %q", sql, notWant)
				}
			}
		})
	}
}

func TestApplyAttemptFiltersSQL(t *testing.T) {
	db := dryRunDB(t)
	helpers := NewSharedHelpers(db)
	qid := "6a1f9d0c-2b3e-4f5a-8c7d-9e0f1a2b3c4d"
	solved := models.ResultSolved

	tests := []struct {
		name    string
		filters repositories.AttemptFilters
		want    []string
	}{
		{name: "by question", filters: repositories.AttemptFilters{QuestionID: &qid, Result: &solved}, want: []string{"question_id = $1", "result = $2"}},
		{name: "id set", filters: repositories.AttemptFilters{QuestionIDs: []string{qid, qid}}, want: []string{"question_id IN ($1,$2)"}},
		{name: "empty id set matches nothing", filters: repositories.AttemptFilters{QuestionIDs: []string{}}, want: []string{"1 = 0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := helpers.ApplyAttemptFilters(db.Model(&models.Attempt{}), tt.filters)
			query = helpers.ApplyPagination(query, attemptOrder, 0, 0)
			sql := query.Find(&[]*models.Attempt{}).Statement.SQL.String()

			for _, want := range append(tt.want, "ORDER BY date DESC, seq ASC") {
				if !strings.Contains(sql, want) {
					t.Errorf("SQL %q missing %q", sql, want)
				}
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	if err := wrapError("get question", gorm.ErrRecordNotFound); !errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrStorage) {
		t.Errorf("wrapError(not found) = %v", err)
	}

	cause := errors.New("connection reset")
	err := wrapError("list attempts", cause)
	if !errors.Is(err, repositories.ErrStorage) || !errors.Is(err, cause) {
		t.Errorf("wrapError(cause) = %v", err)
	}
	if !strings.HasPrefix(err.Error(), "list attempts: ") {
		t.Errorf("wrapError() message = %q", err.Error())
	}
}
