package services

import (
	"errors"
	"fmt"

	"github.com/grindboard/practice-service/internal/repositories"
)

var (
	ErrQuestionNotFound = fmt.Errorf("question %w", repositories.ErrNotFound)
	ErrAttemptNotFound  = fmt.Errorf("attempt %w", repositories.ErrNotFound)
	ErrInvalidInput     = errors.New("invalid input")
	ErrValidationFailed = fmt.Errorf("validation failed: %w", ErrInvalidInput)
)

// invalidInput builds an ErrInvalidInput carrying the offending field
func invalidInput(field, value string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidInput, field, value)
}
