package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories"
)

// QuestionStore is a concurrency-safe question catalog
type QuestionStore struct {
	mu    sync.RWMutex
	seq   int64
	items map[string]*models.Question
}

func NewQuestionStore() *QuestionStore {
	return &QuestionStore{items: make(map[string]*models.Question)}
}

func (s *QuestionStore) Create(ctx context.Context, question *models.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(question, time.Now())
}

func (s *QuestionStore) CreateBatch(ctx context.Context, questions []*models.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, question := range questions {
		if err := s.insertLocked(question, now); err != nil {
			return err
		}
	}
	return nil
}

func (s *QuestionStore) insertLocked(question *models.Question, now time.Time) error {
	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	if _, ok := s.items[question.ID]; ok {
		return fmt.Errorf("failed to create question: %w: %w", repositories.ErrStorage, errDuplicateID)
	}
	question.Normalize(now)
	s.seq++
	question.Seq = s.seq
	s.items[question.ID] = cloneQuestion(question)
	return nil
}

func (s *QuestionStore) GetByID(ctx context.Context, id string) (*models.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("failed to get question: %w", repositories.ErrNotFound)
	}
	return cloneQuestion(item), nil
}

func (s *QuestionStore) GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{}, len(ids))
	out := make([]*models.Question, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := s.items[id]; ok {
			out = append(out, cloneQuestion(item))
		}
	}
	return out, nil
}

func (s *QuestionStore) Replace(ctx context.Context, question *models.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[question.ID]
	if !ok {
		return fmt.Errorf("failed to replace question: %w", repositories.ErrNotFound)
	}
	question.CreatedAt = existing.CreatedAt
	question.Seq = existing.Seq
	question.Normalize(time.Now())
	s.items[question.ID] = cloneQuestion(question)
	return nil
}

func (s *QuestionStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("failed to delete question: %w", repositories.ErrNotFound)
	}
	delete(s.items, id)
	return nil
}

func (s *QuestionStore) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	filtered := s.matchLocked(filters)
	total := int64(len(filtered))
	page := window(filtered, filters.Limit, filters.Offset)
	out := make([]*models.Question, len(page))
	for i, item := range page {
		out[i] = cloneQuestion(item)
	}
	return out, total, nil
}

func (s *QuestionStore) Count(ctx context.Context, filters repositories.QuestionFilters) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.matchLocked(filters))), nil
}

func (s *QuestionStore) ListIDs(ctx context.Context, filters repositories.QuestionFilters) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := s.matchLocked(filters)
	ids := make([]string, len(matched))
	for i, item := range matched {
		ids[i] = item.ID
	}
	return ids, nil
}

// matchLocked returns matching items ordered by created_at DESC, seq ASC
func (s *QuestionStore) matchLocked(filters repositories.QuestionFilters) []*models.Question {
	var filtered []*models.Question
	for _, item := range s.items {
		if len(filters.Companies) > 0 && !overlaps(item.Company, filters.Companies) {
			continue
		}
		if len(filters.Topics) > 0 && !overlaps(item.Topic, filters.Topics) {
			continue
		}
		if filters.Difficulty != nil && item.Difficulty != *filters.Difficulty {
			continue
		}
		filtered = append(filtered, item)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].Seq < filtered[j].Seq
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered
}

func cloneQuestion(q *models.Question) *models.Question {
	if q == nil {
		return nil
	}
	clone := *q
	clone.Company = append(pq.StringArray{}, q.Company...)
	clone.Topic = append(pq.StringArray{}, q.Topic...)
	return &clone
}
