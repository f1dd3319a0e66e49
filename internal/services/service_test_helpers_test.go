package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/grindboard/practice-service/internal/cache"
	"github.com/grindboard/practice-service/internal/events"
	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories/memory"
	"github.com/grindboard/practice-service/internal/validator"
)

type testEnv struct {
	repo      *memory.Repository
	manager   ServiceManager
	publisher *events.WatermillPublisher
	redis     *miniredis.Miniredis
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEnv wires every service over the memory store, an in-process
// publisher and, when withCache is set, a miniredis-backed cache.
func newTestEnv(t *testing.T, withCache bool) *testEnv {
	t.Helper()

	env := &testEnv{
		repo:      memory.NewRepository(),
		publisher: events.NewInProcessPublisher(discardLogger()),
	}

	cacheManager := cache.NewCacheManager(nil)
	if withCache {
		env.redis = miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: env.redis.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		cacheManager = cache.NewCacheManager(client)
	}

	env.manager = NewServiceManager(env.repo, discardLogger(), validator.New(), env.publisher, cacheManager)
	if err := env.manager.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { _ = env.manager.Shutdown(context.Background()) })

	return env
}

func (e *testEnv) addQuestion(t *testing.T, title string, topics ...string) *models.Question {
	t.Helper()
	q := &models.Question{Title: title, Link: "https://example.com/" + title, Topic: pq.StringArray(topics)}
	if err := e.repo.Question().Create(context.Background(), q); err != nil {
		t.Fatalf("Create question error = %v", err)
	}
	return q
}

func (e *testEnv) addAttempt(t *testing.T, questionID string, result models.AttemptResult, minutes int, date time.Time) *models.Attempt {
	t.Helper()
	a := &models.Attempt{QuestionID: questionID, Result: result, TimeSpent: minutes, Date: date}
	if err := e.repo.Attempt().Create(context.Background(), a); err != nil {
		t.Fatalf("Create attempt error = %v", err)
	}
	return a
}

func intPtr(v int) *int { return &v }
