package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/grindboard/practice-service/internal/cache"
	"github.com/grindboard/practice-service/internal/events"
	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories"
	"github.com/grindboard/practice-service/internal/validator"
)

type attemptService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	publisher    events.Publisher
	cacheManager *cache.CacheManager
}

func NewAttemptService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.Publisher, cacheManager *cache.CacheManager) AttemptService {
	return &attemptService{
		repo:         repo,
		logger:       logger,
		validator:    validator,
		publisher:    publisher,
		cacheManager: cacheManager,
	}
}

// Log records a practice session. The referenced question is not required
// to exist.
func (s *attemptService) Log(ctx context.Context, req *LogAttemptRequest) (*models.EnrichedAttempt, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	s.logger.Info("Logging attempt", "question_id", req.QuestionID, "result", req.Result)

	if errs := s.validator.GetBusinessValidator().ValidateAttemptCreate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, errs)
	}

	attempt := buildAttempt(req, time.Now())
	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to log attempt: %w", err)
	}
	cache.InvalidateStatsCache(ctx, s.cacheManager)

	publishEvent(ctx, s.publisher, s.logger, events.TopicAttemptLogged, events.AttemptLogged{
		AttemptID:  attempt.ID,
		QuestionID: attempt.QuestionID,
		Result:     string(attempt.Result),
		TimeSpent:  attempt.TimeSpent,
		OccurredAt: attempt.CreatedAt.UTC(),
	})

	return s.enrichOne(ctx, attempt)
}

func (s *attemptService) GetByID(ctx context.Context, id string) (*models.EnrichedAttempt, error) {
	attempt, err := s.getAttempt(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrichOne(ctx, attempt)
}

// Update changes time_spent, result and notes
func (s *attemptService) Update(ctx context.Context, id string, req *UpdateAttemptRequest) (*models.EnrichedAttempt, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	s.logger.Info("Updating attempt", "attempt_id", id)

	if err := validateID("id", id); err != nil {
		return nil, err
	}
	if errs := s.validator.GetBusinessValidator().ValidateAttemptUpdate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, errs)
	}

	result, _ := models.ParseAttemptResult(req.Result)
	update := &models.Attempt{
		ID:        id,
		TimeSpent: *req.TimeSpent,
		Result:    result,
		Notes:     req.Notes,
	}
	if err := s.repo.Attempt().Replace(ctx, update); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to update attempt: %w", err)
	}
	cache.InvalidateStatsCache(ctx, s.cacheManager)

	return s.GetByID(ctx, id)
}

func (s *attemptService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting attempt", "attempt_id", id)

	if err := validateID("id", id); err != nil {
		return err
	}

	if err := s.repo.Attempt().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAttemptNotFound
		}
		return fmt.Errorf("failed to delete attempt: %w", err)
	}
	cache.InvalidateStatsCache(ctx, s.cacheManager)

	return nil
}

// List pages through the log, joining each attempt with its question.
// Question-side filters are resolved to an id set first.
func (s *attemptService) List(ctx context.Context, query ListQuery) (*Paginated[models.EnrichedAttempt], error) {
	compiled, err := CompileQuery(query)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Listing attempts", "page", compiled.Page.Number, "page_size", compiled.Page.Size)

	filters, empty, err := s.restrictToQuestions(ctx, compiled)
	if err != nil {
		return nil, err
	}
	if empty {
		return NewPaginated([]models.EnrichedAttempt{}, 0, compiled.Page), nil
	}

	attempts, total, err := s.repo.Attempt().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	lookup, err := ResolveQuestions(ctx, s.repo.Question(), attempts)
	if err != nil {
		return nil, err
	}

	return NewPaginated(EnrichAttempts(attempts, lookup), total, compiled.Page), nil
}
