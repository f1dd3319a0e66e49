package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories"
)

// QuestionLookup maps question id to question
type QuestionLookup map[string]*models.Question

// Get returns the question for id, or nil
func (l QuestionLookup) Get(id string) *models.Question {
	if l == nil {
		return nil
	}
	return l[id]
}

// ResolveQuestions fetches every question referenced by attempts in a single
// bulk call. Ids that are not UUIDs cannot exist and are never sent to the store.
func ResolveQuestions(ctx context.Context, questions repositories.QuestionRepository, attempts []*models.Attempt) (QuestionLookup, error) {
	ids := lo.Uniq(lo.FilterMap(attempts, func(a *models.Attempt, _ int) (string, bool) {
		if a == nil {
			return "", false
		}
		_, err := uuid.Parse(a.QuestionID)
		return a.QuestionID, err == nil
	}))
	if len(ids) == 0 {
		return QuestionLookup{}, nil
	}

	found, err := questions.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve questions: %w", err)
	}

	return lo.KeyBy(found, func(q *models.Question) string { return q.ID }), nil
}

// EnrichAttempts attaches each attempt's question. Attempts whose question is
// missing are kept and flagged as unknown.
func EnrichAttempts(attempts []*models.Attempt, lookup QuestionLookup) []models.EnrichedAttempt {
	out := make([]models.EnrichedAttempt, 0, len(attempts))
	for _, a := range attempts {
		if a == nil {
			continue
		}
		question := lookup.Get(a.QuestionID)
		out = append(out, models.EnrichedAttempt{
			Attempt:         *a,
			Question:        question,
			UnknownQuestion: question == nil,
		})
	}
	return out
}
