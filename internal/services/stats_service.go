package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/grindboard/practice-service/internal/cache"
	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories"
)

type statsService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	cacheManager *cache.CacheManager
}

func NewStatsService(repo repositories.Repository, logger *slog.Logger, cacheManager *cache.CacheManager) StatsService {
	return &statsService{
		repo:         repo,
		logger:       logger,
		cacheManager: cacheManager,
	}
}

// Global aggregates the whole practice log. Writes invalidate the cached
// result; an aggregate computed concurrently with a write may stay cached
// until StatsCacheConfig.TTL expires.
func (s *statsService) Global(ctx context.Context) (*models.GlobalStats, error) {
	s.logger.Info("Getting global stats")

	var stats models.GlobalStats
	err := s.cacheManager.Stats.CacheOrExecute(ctx, cache.StatsGlobalKey, &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		return s.computeGlobal(ctx)
	})
	if err != nil {
		return nil, err
	}
	if stats.ByTopic == nil {
		stats.ByTopic = []models.TopicStats{}
	}

	return &stats, nil
}

func (s *statsService) computeGlobal(ctx context.Context) (*models.GlobalStats, error) {
	attempts, _, err := s.repo.Attempt().List(ctx, repositories.AttemptFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts for stats: %w", err)
	}

	lookup, err := ResolveQuestions(ctx, s.repo.Question(), attempts)
	if err != nil {
		return nil, err
	}

	stats := ComputeGlobalStats(attempts, lookup)
	s.logger.Info("Global stats computed", "total_sessions", stats.TotalSessions, "topics", len(stats.ByTopic))
	return &stats, nil
}
