package repositories

import (
	"github.com/grindboard/practice-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// QuestionFilters is the compiled predicate over the question catalog.
// Companies and Topics match when the question carries at least one of the
// given values. Empty sets impose no condition.
type QuestionFilters struct {
	Companies  []string                `json:"companies"`
	Topics     []string                `json:"topics"`
	Difficulty *models.DifficultyLevel `json:"difficulty"`
	Limit      int                     `json:"limit"` // 0 means no limit
	Offset     int                     `json:"offset"`
}

// HasConditions reports whether any predicate is set
func (f QuestionFilters) HasConditions() bool {
	return len(f.Companies) > 0 || len(f.Topics) > 0 || f.Difficulty != nil
}

// AttemptFilters is the compiled predicate over the attempt log.
// A nil QuestionIDs imposes no condition; a non-nil empty slice matches nothing.
type AttemptFilters struct {
	QuestionID  *string               `json:"question_id"`
	QuestionIDs []string              `json:"question_ids"`
	Result      *models.AttemptResult `json:"result"`
	Limit       int                   `json:"limit"` // 0 means no limit
	Offset      int                   `json:"offset"`
}
