package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/dto"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

// ErrMentorNotFound indicates the session references a mentor that no longer exists.
var ErrMentorNotFound = errors.New("mentor not found")

// MentorService exposes mentor profile reads.
type MentorService interface {
	Profile(ctx context.Context, actor Actor) (dto.MentorResponse, error)
}

type mentorService struct {
	repo   repository.MentorRepository
	logger zerolog.Logger
}

// NewMentorService builds a new mentor service.
func NewMentorService(repo repository.MentorRepository, logger zerolog.Logger) MentorService {
	return &mentorService{
		repo:   repo,
		logger: logger.With().Str("component", "mentor_service").Logger(),
	}
}

func (s *mentorService) Profile(ctx context.Context, actor Actor) (dto.MentorResponse, error) {
	mentor, err := s.repo.GetByID(ctx, actor.MentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MentorResponse{}, ErrMentorNotFound
		}

		return dto.MentorResponse{}, err
	}

	return dto.NewMentorResponse(mentor), nil
}
