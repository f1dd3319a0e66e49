package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/grindboard/practice-service/internal/events"
	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/validator"
)

// buildQuestion validates req and maps it onto a question document
func (s *questionService) buildQuestion(req *QuestionRequest) (*models.Question, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	if errs := s.validator.GetBusinessValidator().ValidateQuestion(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, errs)
	}

	difficulty := models.DifficultyMedium
	if req.Difficulty != "" {
		difficulty, _ = models.ParseDifficulty(req.Difficulty)
	}

	return &models.Question{
		Title:      strings.TrimSpace(req.Title),
		Link:       strings.TrimSpace(req.Link),
		Company:    pq.StringArray(validator.NormalizeList(req.Company)),
		Topic:      pq.StringArray(validator.NormalizeList(req.Topic)),
		Difficulty: difficulty,
	}, nil
}

// validateID rejects ids that cannot name any record
func validateID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return invalidInput(field, id)
	}
	return nil
}

// publishEvent emits an event; failures are logged and never returned
func publishEvent(ctx context.Context, publisher events.Publisher, logger *slog.Logger, topic string, payload interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, topic, payload); err != nil {
		logger.Error("Failed to publish event", "topic", topic, "error", err)
	}
}
