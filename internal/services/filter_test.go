package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/grindboard/practice-service/internal/models"
)

func TestCompileQuery(t *testing.T) {
	validID := "0b7c6c1e-5f7a-4c1e-9a55-0f6f2f1d2a11"

	tests := []struct {
		name           string
		query          ListQuery
		wantCompanies  []string
		wantTopics     []string
		wantDifficulty *models.DifficultyLevel
		wantResult     *models.AttemptResult
		wantQuestionID string
		wantPage       Page
		wantErr        bool
	}{
		{
			name:     "empty query uses defaults",
			query:    ListQuery{},
			wantPage: Page{Number: 1, Size: 50},
		},
		{
			name:          "comma lists trimmed and deduped",
			query:         ListQuery{Company: " Google,Meta,,Google ", Topic: "Array, Hash Table"},
			wantCompanies: []string{"Google", "Meta"},
			wantTopics:    []string{"Array", "Hash Table"},
			wantPage:      Page{Number: 1, Size: 50},
		},
		{
			name:           "difficulty case-insensitive",
			query:          ListQuery{Difficulty: "medium", Page: "3", PageSize: "10"},
			wantDifficulty: ptr(models.DifficultyMedium),
			wantPage:       Page{Number: 3, Size: 10},
		},
		{
			name:           "question id and result",
			query:          ListQuery{QuestionID: validID, Result: "PARTIAL"},
			wantQuestionID: validID,
			wantResult:     ptr(models.ResultPartial),
			wantPage:       Page{Number: 1, Size: 50},
		},
		{
			name:     "bad paging falls back",
			query:    ListQuery{Page: "-2", PageSize: "abc"},
			wantPage: Page{Number: 1, Size: 50},
		},
		{name: "unknown difficulty", query: ListQuery{Difficulty: "Impossible"}, wantErr: true},
		{name: "malformed question id", query: ListQuery{QuestionID: "not-a-uuid"}, wantErr: true},
		{name: "unknown result", query: ListQuery{Result: "Skipped"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompileQuery(tt.query)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("CompileQuery() error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CompileQuery() error = %v", err)
			}

			if len(got.Question.Companies) != len(tt.wantCompanies) || (len(tt.wantCompanies) > 0 && !reflect.DeepEqual(got.Question.Companies, tt.wantCompanies)) {
				t.Errorf("Companies = %v, want %v", got.Question.Companies, tt.wantCompanies)
			}
			if len(got.Question.Topics) != len(tt.wantTopics) || (len(tt.wantTopics) > 0 && !reflect.DeepEqual(got.Question.Topics, tt.wantTopics)) {
				t.Errorf("Topics = %v, want %v", got.Question.Topics, tt.wantTopics)
			}
			if !reflect.DeepEqual(got.Question.Difficulty, tt.wantDifficulty) {
				t.Errorf("Difficulty = %v, want %v", got.Question.Difficulty, tt.wantDifficulty)
			}
			if !reflect.DeepEqual(got.Attempt.Result, tt.wantResult) {
				t.Errorf("Result = %v, want %v", got.Attempt.Result, tt.wantResult)
			}
			if tt.wantQuestionID == "" && got.Attempt.QuestionID != nil {
				t.Errorf("QuestionID = %v, want nil", *got.Attempt.QuestionID)
			}
			if tt.wantQuestionID != "" && (got.Attempt.QuestionID == nil || *got.Attempt.QuestionID != tt.wantQuestionID) {
				t.Errorf("QuestionID = %v, want %s", got.Attempt.QuestionID, tt.wantQuestionID)
			}
			if got.Page != tt.wantPage {
				t.Errorf("Page = %+v, want %+v", got.Page, tt.wantPage)
			}
		})
	}
}

func TestCompiledQueryWindows(t *testing.T) {
	compiled, err := CompileQuery(ListQuery{Topic: "Graph", Page: "3", PageSize: "20"})
	if err != nil {
		t.Fatalf("CompileQuery() error = %v", err)
	}

	qp := compiled.QuestionPage()
	if qp.Limit != 20 || qp.Offset != 40 || len(qp.Topics) != 1 {
		t.Errorf("QuestionPage() = %+v", qp)
	}
	ap := compiled.AttemptPage()
	if ap.Limit != 20 || ap.Offset != 40 {
		t.Errorf("AttemptPage() = %+v", ap)
	}
	if compiled.Question.Limit != 0 || compiled.Question.Offset != 0 {
		t.Errorf("compiled predicate must stay unwindowed: %+v", compiled.Question)
	}
}

func ptr[T any](v T) *T { return &v }
