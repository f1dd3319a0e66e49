package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "Easy"
	DifficultyMedium DifficultyLevel = "Med"
	DifficultyHard   DifficultyLevel = "Hard"
)

// ParseDifficulty accepts the canonical values case-insensitively plus "medium".
func ParseDifficulty(s string) (DifficultyLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, true
	case "med", "medium":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	default:
		return "", false
	}
}

type Question struct {
	ID  string `json:"id" gorm:"type:uuid;primaryKey"`
	Seq int64  `json:"-" gorm:"autoIncrement;uniqueIndex"`

	Title string `json:"title" gorm:"not null"`
	Link  string `json:"link" gorm:"not null"`

	// Categorization
	Company    pq.StringArray  `json:"company" gorm:"type:text[]"`
	Topic      pq.StringArray  `json:"topic" gorm:"type:text[]"`
	Difficulty DifficultyLevel `json:"difficulty" gorm:"default:Med;index"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the identifier when the caller did not.
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// Normalize fills defaults ahead of persistence.
func (q *Question) Normalize(now time.Time) {
	q.Title = strings.TrimSpace(q.Title)
	q.Link = strings.TrimSpace(q.Link)
	if q.Difficulty == "" {
		q.Difficulty = DifficultyMedium
	}
	if q.Company == nil {
		q.Company = pq.StringArray{}
	}
	if q.Topic == nil {
		q.Topic = pq.StringArray{}
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now
}
