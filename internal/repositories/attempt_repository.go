package repositories

import (
	"context"

	"github.com/grindboard/practice-service/internal/models"
)

// AttemptRepository interface for the practice log
type AttemptRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, attempt *models.Attempt) error
	GetByID(ctx context.Context, id string) (*models.Attempt, error)
	Replace(ctx context.Context, attempt *models.Attempt) error
	Delete(ctx context.Context, id string) error

	// Bulk operations
	CreateBatch(ctx context.Context, attempts []*models.Attempt) error
	// DeleteByQuestion removes every attempt referencing questionID
	DeleteByQuestion(ctx context.Context, questionID string) (int64, error)

	// Query operations, ordered by date DESC
	List(ctx context.Context, filters AttemptFilters) ([]*models.Attempt, int64, error)
	Count(ctx context.Context, filters AttemptFilters) (int64, error)
}
