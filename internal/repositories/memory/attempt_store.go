package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories"
)

// AttemptStore is a concurrency-safe practice log
type AttemptStore struct {
	mu    sync.RWMutex
	seq   int64
	items map[string]*models.Attempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{items: make(map[string]*models.Attempt)}
}

func (s *AttemptStore) Create(ctx context.Context, attempt *models.Attempt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(attempt, time.Now())
}

func (s *AttemptStore) CreateBatch(ctx context.Context, attempts []*models.Attempt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, attempt := range attempts {
		if err := s.insertLocked(attempt, now); err != nil {
			return err
		}
	}
	return nil
}

func (s *AttemptStore) insertLocked(attempt *models.Attempt, now time.Time) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	if _, ok := s.items[attempt.ID]; ok {
		return fmt.Errorf("failed to create attempt: %w: %w", repositories.ErrStorage, errDuplicateID)
	}
	attempt.Normalize(now)
	s.seq++
	attempt.Seq = s.seq
	clone := *attempt
	s.items[attempt.ID] = &clone
	return nil
}

func (s *AttemptStore) GetByID(ctx context.Context, id string) (*models.Attempt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("failed to get attempt: %w", repositories.ErrNotFound)
	}
	clone := *item
	return &clone, nil
}

// Replace updates time_spent, result and notes only
func (s *AttemptStore) Replace(ctx context.Context, attempt *models.Attempt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[attempt.ID]
	if !ok {
		return fmt.Errorf("failed to replace attempt: %w", repositories.ErrNotFound)
	}
	updated := *existing
	updated.TimeSpent = attempt.TimeSpent
	updated.Result = attempt.Result
	updated.Notes = attempt.Notes
	updated.UpdatedAt = time.Now()
	s.items[attempt.ID] = &updated
	*attempt = updated
	return nil
}

func (s *AttemptStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("failed to delete attempt: %w", repositories.ErrNotFound)
	}
	delete(s.items, id)
	return nil
}

func (s *AttemptStore) DeleteByQuestion(ctx context.Context, questionID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for id, item := range s.items {
		if item.QuestionID == questionID {
			delete(s.items, id)
			removed++
		}
	}
	return removed, nil
}

func (s *AttemptStore) List(ctx context.Context, filters repositories.AttemptFilters) ([]*models.Attempt, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	filtered := s.matchLocked(filters)
	total := int64(len(filtered))
	page := window(filtered, filters.Limit, filters.Offset)
	out := make([]*models.Attempt, len(page))
	for i, item := range page {
		clone := *item
		out[i] = &clone
	}
	return out, total, nil
}

func (s *AttemptStore) Count(ctx context.Context, filters repositories.AttemptFilters) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.matchLocked(filters))), nil
}

// matchLocked returns matching items ordered by date DESC, seq ASC
func (s *AttemptStore) matchLocked(filters repositories.AttemptFilters) []*models.Attempt {
	var allowed map[string]struct{}
	if filters.QuestionIDs != nil {
		allowed = make(map[string]struct{}, len(filters.QuestionIDs))
		for _, id := range filters.QuestionIDs {
			allowed[id] = struct{}{}
		}
	}

	var filtered []*models.Attempt
	for _, item := range s.items {
		if filters.QuestionID != nil && item.QuestionID != *filters.QuestionID {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[item.QuestionID]; !ok {
				continue
			}
		}
		if filters.Result != nil && item.Result != *filters.Result {
			continue
		}
		filtered = append(filtered, item)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Date.Equal(filtered[j].Date) {
			return filtered[i].Seq < filtered[j].Seq
		}
		return filtered[i].Date.After(filtered[j].Date)
	})
	return filtered
}
