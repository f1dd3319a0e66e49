package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories"
)

func buildAttempt(req *LogAttemptRequest, now time.Time) *models.Attempt {
	result, _ := models.ParseAttemptResult(req.Result)
	attempt := &models.Attempt{
		QuestionID: strings.TrimSpace(req.QuestionID),
		TimeSpent:  *req.TimeSpent,
		Result:     result,
		Notes:      req.Notes,
		Date:       now,
		CreatedAt:  now,
	}
	if req.Date != nil && !req.Date.IsZero() {
		attempt.Date = *req.Date
	}
	return attempt
}

func (s *attemptService) getAttempt(ctx context.Context, id string) (*models.Attempt, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}

	attempt, err := s.repo.Attempt().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return attempt, nil
}

func (s *attemptService) enrichOne(ctx context.Context, attempt *models.Attempt) (*models.EnrichedAttempt, error) {
	lookup, err := ResolveQuestions(ctx, s.repo.Question(), []*models.Attempt{attempt})
	if err != nil {
		return nil, err
	}
	enriched := EnrichAttempts([]*models.Attempt{attempt}, lookup)
	return &enriched[0], nil
}

// restrictToQuestions turns question-side conditions into an id set on the
// attempt filters. empty is true when no question can match.
func (s *attemptService) restrictToQuestions(ctx context.Context, compiled *CompiledQuery) (repositories.AttemptFilters, bool, error) {
	filters := compiled.AttemptPage()
	if !compiled.Question.HasConditions() {
		return filters, false, nil
	}

	ids, err := s.repo.Question().ListIDs(ctx, compiled.Question)
	if err != nil {
		return filters, false, fmt.Errorf("failed to resolve question filters: %w", err)
	}
	if len(ids) == 0 {
		return filters, true, nil
	}

	filters.QuestionIDs = ids
	return filters, false, nil
}
