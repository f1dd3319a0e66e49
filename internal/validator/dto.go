package validator

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/samber/lo"
)

// StringList accepts either a JSON array or a single comma-separated string.
// Entries are trimmed, blanks dropped and duplicates removed.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		raw = strings.Split(single, ",")
	}
	*l = NormalizeList(raw)
	return nil
}

// NormalizeList trims, drops blanks and dedupes while keeping first-seen order
func NormalizeList(values []string) []string {
	trimmed := lo.Map(values, func(v string, _ int) string { return strings.TrimSpace(v) })
	return lo.Uniq(lo.Filter(trimmed, func(v string, _ int) bool { return v != "" }))
}

// QuestionRequest is the body of question create and full replace
type QuestionRequest struct {
	Title      string     `json:"title" validate:"required,not_blank,max=300"`
	Link       string     `json:"link" validate:"required,not_blank,max=2048"`
	Company    StringList `json:"company"`
	Topic      StringList `json:"topic"`
	Difficulty string     `json:"difficulty" validate:"omitempty,difficulty_level"`
}

// AttemptCreateRequest logs one practice session
type AttemptCreateRequest struct {
	QuestionID string     `json:"question_id" validate:"required,uuid"`
	TimeSpent  *int       `json:"time_spent" validate:"required,min=0,max=1440"`
	Result     string     `json:"result" validate:"required,attempt_result"`
	Notes      string     `json:"notes" validate:"max=5000"`
	Date       *time.Time `json:"date"`
}

// AttemptUpdateRequest changes the mutable fields of a session
type AttemptUpdateRequest struct {
	TimeSpent *int   `json:"time_spent" validate:"required,min=0,max=1440"`
	Result    string `json:"result" validate:"required,attempt_result"`
	Notes     string `json:"notes" validate:"max=5000"`
}
