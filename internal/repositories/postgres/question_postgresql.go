package postgres

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/grindboard/practice-service/internal/cache"
	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories"
)

type QuestionPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewQuestionPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// ===== BASIC CRUD OPERATIONS =====

// Create inserts a new question
func (q *QuestionPostgreSQL) Create(ctx context.Context, question *models.Question) error {
	question.Normalize(time.Now())
	if err := q.db.WithContext(ctx).Create(question).Error; err != nil {
		return wrapError("failed to create question", err)
	}
	return nil
}

// GetByID retrieves a question by ID with caching
func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question

	err := q.cacheManager.Question.CacheOrExecute(ctx, "id:"+id, &question, cache.QuestionCacheConfig.TTL, func() (interface{}, error) {
		var dbQuestion models.Question
		if err := q.db.WithContext(ctx).Where("id = ?", id).First(&dbQuestion).Error; err != nil {
			return nil, wrapError("failed to get question", err)
		}
		return &dbQuestion, nil
	})
	if err != nil {
		return nil, err
	}

	return &question, nil
}

// Replace overwrites every mutable field of an existing question
func (q *QuestionPostgreSQL) Replace(ctx context.Context, question *models.Question) error {
	question.Normalize(time.Now())

	result := q.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ?", question.ID).
		Select("title", "link", "company", "topic", "difficulty", "updated_at").
		Updates(question)
	if result.Error != nil {
		return wrapError("failed to replace question", result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapError("failed to replace question", gorm.ErrRecordNotFound)
	}

	cache.InvalidateQuestionCache(ctx, q.cacheManager, question.ID)
	return nil
}

// Delete removes a question. Attempts referencing it are left to the caller.
func (q *QuestionPostgreSQL) Delete(ctx context.Context, id string) error {
	result := q.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Question{})
	if result.Error != nil {
		return wrapError("failed to delete question", result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapError("failed to delete question", gorm.ErrRecordNotFound)
	}

	cache.InvalidateQuestionCache(ctx, q.cacheManager, id)
	return nil
}

// ===== BULK OPERATIONS =====

// CreateBatch creates multiple questions in a batch
func (q *QuestionPostgreSQL) CreateBatch(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	now := time.Now()
	for _, question := range questions {
		question.Normalize(now)
	}
	if err := q.db.WithContext(ctx).CreateInBatches(questions, 100).Error; err != nil {
		return wrapError("failed to create questions batch", err)
	}
	return nil
}

// GetByIDs retrieves multiple questions by their IDs
func (q *QuestionPostgreSQL) GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error) {
	if len(ids) == 0 {
		return []*models.Question{}, nil
	}

	var questions []*models.Question
	if err := q.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&questions).Error; err != nil {
		return nil, wrapError("failed to get questions by IDs", err)
	}

	return questions, nil
}

// ===== QUERY OPERATIONS =====

// List returns one page of matching questions and the total match count
func (q *QuestionPostgreSQL) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	total, err := q.Count(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	query := q.helpers.ApplyQuestionFilters(q.db.WithContext(ctx).Model(&models.Question{}), filters)
	query = q.helpers.ApplyPagination(query, questionOrder, filters.Limit, filters.Offset)

	var questions []*models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, 0, wrapError("failed to list questions", err)
	}

	return questions, total, nil
}

// Count returns the number of matching questions
func (q *QuestionPostgreSQL) Count(ctx context.Context, filters repositories.QuestionFilters) (int64, error) {
	var total int64
	query := q.helpers.ApplyQuestionFilters(q.db.WithContext(ctx).Model(&models.Question{}), filters)
	if err := query.Count(&total).Error; err != nil {
		return 0, wrapError("failed to count questions", err)
	}
	return total, nil
}

// ListIDs returns the ids of every matching question
func (q *QuestionPostgreSQL) ListIDs(ctx context.Context, filters repositories.QuestionFilters) ([]string, error) {
	var ids []string
	query := q.helpers.ApplyQuestionFilters(q.db.WithContext(ctx).Model(&models.Question{}), filters)
	if err := query.Order(questionOrder).Pluck("id", &ids).Error; err != nil {
		return nil, wrapError("failed to list question ids", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
