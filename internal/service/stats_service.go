package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mentorhub/mentorhub-api/internal/dto"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

// StatsService exposes the batch dashboard counters.
type StatsService interface {
	BatchStats(ctx context.Context, actor Actor, batchID uint) (dto.BatchStatsResponse, error)
}

type statsService struct {
	repo        repository.StatsRepository
	batches     repository.BatchRepository
	authz       AuthzService
	cache       *redis.Client
	cacheTTL    time.Duration
	staleWindow time.Duration
	now         func() time.Time
	tracer      trace.Tracer
	logger      zerolog.Logger
}

// NewStatsService builds a new stats service. cache may be nil, in which case
// every call hits the database.
func NewStatsService(repo repository.StatsRepository, batches repository.BatchRepository, authz AuthzService, cache *redis.Client, cacheTTL, staleWindow time.Duration, logger zerolog.Logger) StatsService {
	return &statsService{
		repo:        repo,
		batches:     batches,
		authz:       authz,
		cache:       cache,
		cacheTTL:    cacheTTL,
		staleWindow: staleWindow,
		now:         time.Now,
		tracer:      otel.Tracer("stats-service"),
		logger:      logger.With().Str("component", "stats_service").Logger(),
	}
}

// BatchStats computes the dashboard counters for one batch. Pending
// observations are relative to the acting mentor, so the cache key carries
// both the batch and the mentor.
func (s *statsService) BatchStats(ctx context.Context, actor Actor, batchID uint) (dto.BatchStatsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "stats.batch", trace.WithAttributes(
		attribute.Int("batch.id", int(batchID)),
	))
	defer span.End()

	permissions, err := s.authz.Resolve(ctx, actor, batchID)
	if err != nil {
		return dto.BatchStatsResponse{}, err
	}
	if !canViewBatch(permissions) {
		return dto.BatchStatsResponse{}, ErrPermissionDenied
	}

	exists, err := s.batches.Exists(ctx, batchID)
	if err != nil {
		return dto.BatchStatsResponse{}, err
	}
	if !exists {
		return dto.BatchStatsResponse{}, ErrBatchNotFound
	}

	cacheKey := fmt.Sprintf("stats:batch:%d:mentor:%d", batchID, actor.MentorID)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.BatchStatsResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		}
	}

	observedSince := s.now().Add(-s.staleWindow)
	stats, err := s.repo.BatchStats(ctx, batchID, actor.MentorID, observedSince)
	if err != nil {
		return dto.BatchStatsResponse{}, err
	}

	response := dto.NewBatchStatsResponse(stats)

	if s.cache != nil {
		if encoded, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, encoded, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("stats cache write failed")
			}
		}
	}

	return response, nil
}
