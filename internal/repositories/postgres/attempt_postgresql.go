package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories"
)

type AttemptPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// Create records a new attempt
func (a *AttemptPostgreSQL) Create(ctx context.Context, attempt *models.Attempt) error {
	attempt.Normalize(time.Now())
	if err := a.db.WithContext(ctx).Create(attempt).Error; err != nil {
		return wrapError("failed to create attempt", err)
	}
	return nil
}

// GetByID retrieves an attempt by ID
func (a *AttemptPostgreSQL) GetByID(ctx context.Context, id string) (*models.Attempt, error) {
	var attempt models.Attempt
	if err := a.db.WithContext(ctx).Where("id = ?", id).First(&attempt).Error; err != nil {
		return nil, wrapError("failed to get attempt", err)
	}
	return &attempt, nil
}

// Replace overwrites the mutable fields of an attempt. question_id and date
// never change after creation.
func (a *AttemptPostgreSQL) Replace(ctx context.Context, attempt *models.Attempt) error {
	attempt.UpdatedAt = time.Now()

	result := a.db.WithContext(ctx).
		Model(&models.Attempt{}).
		Where("id = ?", attempt.ID).
		Select("time_spent", "result", "notes", "updated_at").
		Updates(attempt)
	if result.Error != nil {
		return wrapError("failed to replace attempt", result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapError("failed to replace attempt", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a single attempt
func (a *AttemptPostgreSQL) Delete(ctx context.Context, id string) error {
	result := a.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Attempt{})
	if result.Error != nil {
		return wrapError("failed to delete attempt", result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapError("failed to delete attempt", gorm.ErrRecordNotFound)
	}
	return nil
}

// CreateBatch creates multiple attempts in a batch
func (a *AttemptPostgreSQL) CreateBatch(ctx context.Context, attempts []*models.Attempt) error {
	if len(attempts) == 0 {
		return nil
	}

	now := time.Now()
	for _, attempt := range attempts {
		attempt.Normalize(now)
	}
	if err := a.db.WithContext(ctx).CreateInBatches(attempts, 100).Error; err != nil {
		return wrapError("failed to create attempts batch", err)
	}
	return nil
}

// DeleteByQuestion removes all attempts for a question and reports how many went
func (a *AttemptPostgreSQL) DeleteByQuestion(ctx context.Context, questionID string) (int64, error) {
	result := a.db.WithContext(ctx).Where("question_id = ?", questionID).Delete(&models.Attempt{})
	if result.Error != nil {
		return 0, wrapError("failed to delete attempts by question", result.Error)
	}
	return result.RowsAffected, nil
}

// List returns one page of matching attempts and the total match count
func (a *AttemptPostgreSQL) List(ctx context.Context, filters repositories.AttemptFilters) ([]*models.Attempt, int64, error) {
	total, err := a.Count(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	query := a.helpers.ApplyAttemptFilters(a.db.WithContext(ctx).Model(&models.Attempt{}), filters)
	query = a.helpers.ApplyPagination(query, attemptOrder, filters.Limit, filters.Offset)

	var attempts []*models.Attempt
	if err := query.Find(&attempts).Error; err != nil {
		return nil, 0, wrapError("failed to list attempts", err)
	}

	return attempts, total, nil
}

// Count returns the number of matching attempts
func (a *AttemptPostgreSQL) Count(ctx context.Context, filters repositories.AttemptFilters) (int64, error) {
	var total int64
	query := a.helpers.ApplyAttemptFilters(a.db.WithContext(ctx).Model(&models.Attempt{}), filters)
	if err := query.Count(&total).Error; err != nil {
		return 0, wrapError("failed to count attempts", err)
	}
	return total, nil
}
