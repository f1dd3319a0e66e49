package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories"
	"github.com/grindboard/practice-service/internal/validator"
)

// ListQuery is a listing request as it arrives from the query string
type ListQuery struct {
	Company    string `form:"company"`
	Topic      string `form:"topic"`
	Difficulty string `form:"difficulty"`
	QuestionID string `form:"questionId"`
	Result     string `form:"result"`
	Page       string `form:"page"`
	PageSize   string `form:"pageSize"`
}

// CompiledQuery holds the normalized predicates for both stores and the page
type CompiledQuery struct {
	Question repositories.QuestionFilters
	Attempt  repositories.AttemptFilters
	Page     Page
}

// CompileQuery turns a loosely-typed ListQuery into store predicates. It has
// no side effects; only enum and id values can make it fail.
func CompileQuery(q ListQuery) (*CompiledQuery, error) {
	compiled := &CompiledQuery{
		Page: ParsePage(q.Page, q.PageSize),
		Question: repositories.QuestionFilters{
			Companies: splitList(q.Company),
			Topics:    splitList(q.Topic),
		},
	}

	if raw := strings.TrimSpace(q.Difficulty); raw != "" {
		difficulty, ok := models.ParseDifficulty(raw)
		if !ok {
			return nil, invalidInput("difficulty", raw)
		}
		compiled.Question.Difficulty = &difficulty
	}

	if raw := strings.TrimSpace(q.QuestionID); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			return nil, invalidInput("questionId", raw)
		}
		compiled.Attempt.QuestionID = &raw
	}

	if raw := strings.TrimSpace(q.Result); raw != "" {
		result, ok := models.ParseAttemptResult(raw)
		if !ok {
			return nil, invalidInput("result", raw)
		}
		compiled.Attempt.Result = &result
	}

	return compiled, nil
}

// QuestionPage returns the question predicate windowed to the page
func (c *CompiledQuery) QuestionPage() repositories.QuestionFilters {
	filters := c.Question
	filters.Limit = c.Page.Size
	filters.Offset = c.Page.Offset()
	return filters
}

// AttemptPage returns the attempt predicate windowed to the page
func (c *CompiledQuery) AttemptPage() repositories.AttemptFilters {
	filters := c.Attempt
	filters.Limit = c.Page.Size
	filters.Offset = c.Page.Offset()
	return filters
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return validator.NormalizeList(strings.Split(raw, ","))
}
