package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttemptResult string

const (
	ResultSolved   AttemptResult = "Solved"
	ResultUnsolved AttemptResult = "Unsolved"
	ResultPartial  AttemptResult = "Partial"
)

// ParseAttemptResult accepts the canonical values case-insensitively.
func ParseAttemptResult(s string) (AttemptResult, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solved":
		return ResultSolved, true
	case "unsolved":
		return ResultUnsolved, true
	case "partial":
		return ResultPartial, true
	default:
		return "", false
	}
}

// Attempt is one practice session against a question. QuestionID is a plain
// reference: the question may have been deleted or never existed.
type Attempt struct {
	ID  string `json:"id" gorm:"type:uuid;primaryKey"`
	Seq int64  `json:"-" gorm:"autoIncrement;uniqueIndex"`

	QuestionID string        `json:"question_id" gorm:"type:text;not null;index"`
	TimeSpent  int           `json:"time_spent" gorm:"not null;check:time_spent >= 0"` // minutes
	Result     AttemptResult `json:"result" gorm:"not null;index"`
	Notes      string        `json:"notes" gorm:"type:text"`

	// Date is when the practice happened, CreatedAt is when it was recorded.
	Date      time.Time `json:"date" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the identifier when the caller did not.
func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Normalize fills defaults ahead of persistence.
func (a *Attempt) Normalize(now time.Time) {
	a.QuestionID = strings.TrimSpace(a.QuestionID)
	a.Notes = strings.TrimSpace(a.Notes)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.Date.IsZero() {
		a.Date = a.CreatedAt
	}
	a.UpdatedAt = now
}

// EnrichedAttempt is an attempt joined with its question. UnknownQuestion is
// set when the reference did not resolve.
type EnrichedAttempt struct {
	Attempt
	Question        *Question `json:"question"`
	UnknownQuestion bool      `json:"unknown_question"`
}
