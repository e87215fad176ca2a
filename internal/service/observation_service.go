package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/dto"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

// ErrInternNotInBatch indicates a payload referenced an intern outside the
// target batch.
var ErrInternNotInBatch = errors.New("intern does not belong to batch")

// ObservationService exposes observation recording and listing use cases.
type ObservationService interface {
	Record(ctx context.Context, actor Actor, batchID uint, payload dto.ObservationsCreateRequest) (int, error)
	ListByIntern(ctx context.Context, actor Actor, internID uint) ([]dto.ObservationResponse, error)
	ListByBatch(ctx context.Context, actor Actor, batchID uint) ([]dto.ObservationResponse, error)
}

type observationService struct {
	repo      repository.ObservationRepository
	interns   repository.InternRepository
	batches   repository.BatchRepository
	authz     AuthzService
	activity  ActivityRecorder
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewObservationService builds a new observation service.
func NewObservationService(repo repository.ObservationRepository, interns repository.InternRepository, batches repository.BatchRepository, authz AuthzService, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) ObservationService {
	return &observationService{
		repo:      repo,
		interns:   interns,
		batches:   batches,
		authz:     authz,
		activity:  activity,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "observation_service").Logger(),
	}
}

// Record inserts all observations of the payload in one transaction. The
// acting mentor is stamped on every row regardless of what the payload says.
func (s *observationService) Record(ctx context.Context, actor Actor, batchID uint, payload dto.ObservationsCreateRequest) (int, error) {
	permissions, err := s.authz.Resolve(ctx, actor, batchID)
	if err != nil {
		return 0, err
	}
	if !permissions.RecordObservation {
		return 0, ErrPermissionDenied
	}

	if err := s.validator.Struct(payload); err != nil {
		return 0, err
	}

	exists, err := s.batches.Exists(ctx, batchID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrBatchNotFound
	}

	internIDs := make([]uint, 0, len(payload.Observations))
	for _, item := range payload.Observations {
		internIDs = append(internIDs, item.InternID)
	}

	count, err := s.interns.CountInBatch(ctx, batchID, internIDs)
	if err != nil {
		return 0, err
	}
	if count != int64(uniqueCount(internIDs)) {
		return 0, ErrInternNotInBatch
	}

	observations := make([]models.Observation, 0, len(payload.Observations))
	for _, item := range payload.Observations {
		date, err := dto.ParseDate(item.Date)
		if err != nil {
			return 0, err
		}

		observations = append(observations, models.Observation{
			MentorID: actor.MentorID,
			InternID: item.InternID,
			BatchID:  batchID,
			Date:     date,
			Watchout: item.WatchOut,
			Content:  s.sanitizer.Sanitize(item.Content),
		})
	}

	if err := s.repo.CreateAll(ctx, observations); err != nil {
		return 0, err
	}

	s.activity.Record(ctx, ActivityEntry{
		BatchID:  batchID,
		MentorID: actor.MentorID,
		Action:   models.ActivityObservationRecorded,
		Metadata: map[string]interface{}{"count": len(observations)},
	})

	s.logger.Info().Uint("batch_id", batchID).Int("count", len(observations)).Msg("observations recorded")

	return len(observations), nil
}

// ListByIntern resolves the intern's batch first so permissions can be
// checked against it.
func (s *observationService) ListByIntern(ctx context.Context, actor Actor, internID uint) ([]dto.ObservationResponse, error) {
	intern, err := s.interns.GetByID(ctx, internID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternNotFound
		}

		return nil, err
	}

	permissions, err := s.authz.Resolve(ctx, actor, intern.BatchID)
	if err != nil {
		return nil, err
	}
	if !canViewBatch(permissions) {
		return nil, ErrPermissionDenied
	}

	observations, err := s.repo.ListByIntern(ctx, internID)
	if err != nil {
		return nil, err
	}

	return dto.NewObservationResponseSlice(observations), nil
}

func (s *observationService) ListByBatch(ctx context.Context, actor Actor, batchID uint) ([]dto.ObservationResponse, error) {
	permissions, err := s.authz.Resolve(ctx, actor, batchID)
	if err != nil {
		return nil, err
	}
	if !canViewBatch(permissions) {
		return nil, ErrPermissionDenied
	}

	observations, err := s.repo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	return dto.NewObservationResponseSlice(observations), nil
}

func uniqueCount(ids []uint) int {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}

	return len(seen)
}
