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

type questionService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	publisher    events.Publisher
	cacheManager *cache.CacheManager
}

func NewQuestionService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.Publisher, cacheManager *cache.CacheManager) QuestionService {
	return &questionService{
		repo:         repo,
		logger:       logger,
		validator:    validator,
		publisher:    publisher,
		cacheManager: cacheManager,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *questionService) Create(ctx context.Context, req *QuestionRequest) (*models.Question, error) {
	s.logger.Info("Creating question", "title", req.Title)

	question, err := s.buildQuestion(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Question().Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.Info("Question created", "question_id", question.ID)
	return question, nil
}

func (s *questionService) GetByID(ctx context.Context, id string) (*models.Question, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}

	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return question, nil
}

// Update replaces every field of the question with the request
func (s *questionService) Update(ctx context.Context, id string, req *QuestionRequest) (*models.Question, error) {
	s.logger.Info("Updating question", "question_id", id)

	if err := validateID("id", id); err != nil {
		return nil, err
	}

	question, err := s.buildQuestion(req)
	if err != nil {
		return nil, err
	}
	question.ID = id

	if err := s.repo.Question().Replace(ctx, question); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	cache.InvalidateStatsCache(ctx, s.cacheManager)

	return s.GetByID(ctx, id)
}

// Delete removes the question, then its attempts. The two steps are not
// atomic: a failed cascade leaves the question deleted and is reported.
func (s *questionService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting question", "question_id", id)

	if err := validateID("id", id); err != nil {
		return err
	}

	if err := s.repo.Question().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to delete question: %w", err)
	}

	removed, err := s.repo.Attempt().DeleteByQuestion(ctx, id)
	cache.InvalidateStatsCache(ctx, s.cacheManager)
	if err != nil {
		s.logger.Error("Failed to delete attempts of deleted question", "question_id", id, "error", err)
		return fmt.Errorf("failed to delete attempts of question %s: %w", id, err)
	}

	s.logger.Info("Question deleted", "question_id", id, "attempts_removed", removed)
	publishEvent(ctx, s.publisher, s.logger, events.TopicQuestionDeleted, events.QuestionDeleted{
		QuestionID:      id,
		AttemptsRemoved: removed,
		OccurredAt:      time.Now().UTC(),
	})

	return nil
}

// ===== LIST AND HISTORY =====

func (s *questionService) List(ctx context.Context, query ListQuery) (*Paginated[*models.Question], error) {
	compiled, err := CompileQuery(query)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Listing questions", "page", compiled.Page.Number, "page_size", compiled.Page.Size)

	questions, total, err := s.repo.Question().List(ctx, compiled.QuestionPage())
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	return NewPaginated(questions, total, compiled.Page), nil
}

// History returns the question with all of its attempts, newest first
func (s *questionService) History(ctx context.Context, id string) (*models.QuestionHistory, error) {
	s.logger.Info("Getting question history", "question_id", id)

	question, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sessions, _, err := s.repo.Attempt().List(ctx, repositories.AttemptFilters{QuestionID: &id})
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts of question: %w", err)
	}
	if sessions == nil {
		sessions = []*models.Attempt{}
	}

	return &models.QuestionHistory{
		Question: question,
		Sessions: sessions,
		Stats:    ComputeQuestionStats(sessions),
	}, nil
}
