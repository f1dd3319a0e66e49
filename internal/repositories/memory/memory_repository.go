// Package memory provides an in-process implementation of the repositories.
// It backs the "memory" database driver and the service tests.
package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/grindboard/practice-service/internal/repositories"
)

var errDuplicateID = errors.New("duplicate id")

// Repository holds both stores in memory
type Repository struct {
	question *QuestionStore
	attempt  *AttemptStore
}

// NewRepository creates an empty in-memory repository
func NewRepository() *Repository {
	return &Repository{
		question: NewQuestionStore(),
		attempt:  NewAttemptStore(),
	}
}

// Question returns the question store
func (r *Repository) Question() repositories.QuestionRepository {
	return r.question
}

// Attempt returns the attempt store
func (r *Repository) Attempt() repositories.AttemptRepository {
	return r.attempt
}

// WithTransaction runs fn against the same stores. Writes inside fn are not
// rolled back when it fails.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r)
}

// Ping always succeeds unless the context is done
func (r *Repository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op
func (r *Repository) Close() error {
	return nil
}

// Manager implements repositories.RepositoryManager for the memory driver
type Manager struct {
	repo *Repository
}

// NewManager creates a manager around a fresh in-memory repository
func NewManager() repositories.RepositoryManager {
	return &Manager{}
}

// Initialize creates the stores
func (m *Manager) Initialize() error {
	m.repo = NewRepository()
	return nil
}

// GetRepository returns the repository instance
func (m *Manager) GetRepository() repositories.Repository {
	return m.repo
}

// HealthCheck reports whether Initialize ran
func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return m.repo.Ping(ctx)
}

// Shutdown releases the stores
func (m *Manager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}

// window slices items to the [offset, offset+limit) range. limit 0 keeps the tail.
func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	if offset > 0 {
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// overlaps reports whether have and want share at least one value
func overlaps(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
