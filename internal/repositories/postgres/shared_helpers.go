package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories"
)

const (
	questionOrder = "created_at DESC, seq ASC"
	attemptOrder  = "date DESC, seq ASC"
)

// SharedHelpers contains common query building used by both stores
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyQuestionFilters applies set-membership and equality predicates.
// Array columns match on overlap with the requested set.
func (h *SharedHelpers) ApplyQuestionFilters(query *gorm.DB, filters repositories.QuestionFilters) *gorm.DB {
	if len(filters.Companies) > 0 {
		query = query.Where("company && ?", pq.StringArray(filters.Companies))
	}
	if len(filters.Topics) > 0 {
		query = query.Where("topic && ?", pq.StringArray(filters.Topics))
	}
	if filters.Difficulty != nil {
		query = query.Where("difficulty = ?", *filters.Difficulty)
	}
	return query
}

// ApplyAttemptFilters applies equality and id-set predicates
func (h *SharedHelpers) ApplyAttemptFilters(query *gorm.DB, filters repositories.AttemptFilters) *gorm.DB {
	if filters.QuestionID != nil {
		query = query.Where("question_id = ?", *filters.QuestionID)
	}
	if filters.QuestionIDs != nil {
		if len(filters.QuestionIDs) == 0 {
			return query.Where("1 = 0")
		}
		query = query.Where("question_id IN ?", filters.QuestionIDs)
	}
	if filters.Result != nil {
		query = query.Where("result = ?", *filters.Result)
	}
	return query
}

// ApplyPagination applies the fixed order and the page window
func (h *SharedHelpers) ApplyPagination(query *gorm.DB, order string, limit, offset int) *gorm.DB {
	query = query.Order(order)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

// wrapError maps gorm errors onto the repository error set
func wrapError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, repositories.ErrStorage, err)
}

// Models lists the tables owned by this package, in migration order
func Models() []interface{} {
	return []interface{}{&models.Question{}, &models.Attempt{}}
}
