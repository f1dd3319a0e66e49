package services

import (
	"context"
	"io"

	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use business validator types
type QuestionRequest = validator.QuestionRequest
type LogAttemptRequest = validator.AttemptCreateRequest
type UpdateAttemptRequest = validator.AttemptUpdateRequest

// ===== SERVICE INTERFACES =====

type QuestionService interface {
	// Core CRUD operations
	Create(ctx context.Context, req *QuestionRequest) (*models.Question, error)
	GetByID(ctx context.Context, id string) (*models.Question, error)
	Update(ctx context.Context, id string, req *QuestionRequest) (*models.Question, error)
	// Delete removes the question and every attempt referencing it
	Delete(ctx context.Context, id string) error

	// List and history
	List(ctx context.Context, query ListQuery) (*Paginated[*models.Question], error)
	History(ctx context.Context, id string) (*models.QuestionHistory, error)
}

type AttemptService interface {
	Log(ctx context.Context, req *LogAttemptRequest) (*models.EnrichedAttempt, error)
	GetByID(ctx context.Context, id string) (*models.EnrichedAttempt, error)
	Update(ctx context.Context, id string, req *UpdateAttemptRequest) (*models.EnrichedAttempt, error)
	Delete(ctx context.Context, id string) error

	// List returns enriched attempts, newest first
	List(ctx context.Context, query ListQuery) (*Paginated[models.EnrichedAttempt], error)
}

type StatsService interface {
	Global(ctx context.Context) (*models.GlobalStats, error)
}

type ExportService interface {
	// WriteWorkbook writes every attempt matching query plus the topic breakdown as xlsx
	WriteWorkbook(ctx context.Context, w io.Writer, query ListQuery) error
}

// ServiceManager owns the service instances
type ServiceManager interface {
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error

	Question() QuestionService
	Attempt() AttemptService
	Stats() StatsService
	Export() ExportService
}
