package repositories

import (
	"context"

	"github.com/grindboard/practice-service/internal/models"
)

// QuestionRepository interface for question catalog operations
type QuestionRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id string) (*models.Question, error)
	Replace(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id string) error

	// Bulk operations
	CreateBatch(ctx context.Context, questions []*models.Question) error
	// GetByIDs returns the questions that exist among ids, in no particular order
	GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error)

	// Query operations, ordered by created_at DESC
	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, int64, error)
	Count(ctx context.Context, filters QuestionFilters) (int64, error)
	ListIDs(ctx context.Context, filters QuestionFilters) ([]string, error)
}
