package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/dto"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

// ErrBatchNotFound indicates the requested batch does not exist.
var ErrBatchNotFound = errors.New("batch not found")

// BatchService exposes batch domain use cases.
type BatchService interface {
	Create(ctx context.Context, actor Actor, payload dto.BatchCreateRequest) (dto.BatchResponse, error)
	Get(ctx context.Context, actor Actor, id uint) (dto.BatchResponse, error)
	List(ctx context.Context, actor Actor) ([]dto.BatchResponse, error)
	Permissions(ctx context.Context, actor Actor, batchID uint) (dto.PermissionsResponse, error)
}

type batchService struct {
	repo      repository.BatchRepository
	authz     AuthzService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewBatchService builds a new batch service.
func NewBatchService(repo repository.BatchRepository, authz AuthzService, validate *validator.Validate, logger zerolog.Logger) BatchService {
	return &batchService{
		repo:      repo,
		authz:     authz,
		validator: validate,
		logger:    logger.With().Str("component", "batch_service").Logger(),
	}
}

func (s *batchService) Create(ctx context.Context, actor Actor, payload dto.BatchCreateRequest) (dto.BatchResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BatchResponse{}, err
	}

	startDate, err := dto.ParseDate(payload.StartDate)
	if err != nil {
		return dto.BatchResponse{}, err
	}

	batch := models.Batch{
		Name:      payload.Name,
		StartDate: startDate,
	}

	if payload.EndDate != nil {
		endDate, err := dto.ParseDate(*payload.EndDate)
		if err != nil {
			return dto.BatchResponse{}, err
		}
		batch.EndDate = &endDate
	}

	if err := s.repo.Create(ctx, &batch); err != nil {
		return dto.BatchResponse{}, err
	}

	s.logger.Info().Uint("batch_id", batch.ID).Uint("mentor_id", actor.MentorID).Msg("batch created")

	return dto.NewBatchResponse(batch), nil
}

func (s *batchService) Get(ctx context.Context, actor Actor, id uint) (dto.BatchResponse, error) {
	permissions, err := s.authz.Resolve(ctx, actor, id)
	if err != nil {
		return dto.BatchResponse{}, err
	}
	if !canViewBatch(permissions) {
		return dto.BatchResponse{}, ErrPermissionDenied
	}

	batch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BatchResponse{}, ErrBatchNotFound
		}

		return dto.BatchResponse{}, err
	}

	return dto.NewBatchResponse(batch), nil
}

// List returns every batch for root mentors and only assigned batches for
// everyone else.
func (s *batchService) List(ctx context.Context, actor Actor) ([]dto.BatchResponse, error) {
	var (
		batches []models.Batch
		err     error
	)

	if actor.Root {
		batches, err = s.repo.List(ctx)
	} else {
		batches, err = s.repo.ListAssigned(ctx, actor.MentorID)
	}
	if err != nil {
		return nil, err
	}

	return dto.NewBatchResponseSlice(batches), nil
}

func (s *batchService) Permissions(ctx context.Context, actor Actor, batchID uint) (dto.PermissionsResponse, error) {
	exists, err := s.repo.Exists(ctx, batchID)
	if err != nil {
		return dto.PermissionsResponse{}, err
	}
	if !exists {
		return dto.PermissionsResponse{}, ErrBatchNotFound
	}

	permissions, err := s.authz.Resolve(ctx, actor, batchID)
	if err != nil {
		return dto.PermissionsResponse{}, err
	}

	return dto.NewPermissionsResponse(permissions), nil
}
