package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

// ErrPermissionDenied indicates the calling mentor lacks the permission flag
// required by the operation.
var ErrPermissionDenied = errors.New("permission denied")

// Actor is the authenticated mentor identity bound to a request. It always
// comes from the session middleware, never from a request body.
type Actor struct {
	MentorID uint
	Root     bool
}

// AuthzService resolves the effective permission set of a mentor on a batch.
type AuthzService interface {
	Resolve(ctx context.Context, actor Actor, batchID uint) (models.Permissions, error)
}

type authzService struct {
	assignments repository.AssignmentRepository
	logger      zerolog.Logger
}

// NewAuthzService builds the permission resolver.
func NewAuthzService(assignments repository.AssignmentRepository, logger zerolog.Logger) AuthzService {
	return &authzService{
		assignments: assignments,
		logger:      logger.With().Str("component", "authz_service").Logger(),
	}
}

// Resolve returns the full set for root mentors without touching storage.
// For everyone else the stored assignment is returned verbatim; a missing
// assignment resolves to all-false, and callers deny from there. Permissions
// are resolved freshly per request, never cached.
func (s *authzService) Resolve(ctx context.Context, actor Actor, batchID uint) (models.Permissions, error) {
	if actor.Root {
		return models.FullPermissions(), nil
	}

	assignment, err := s.assignments.GetByMentorAndBatch(ctx, actor.MentorID, batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Permissions{}, nil
		}

		return models.Permissions{}, err
	}

	return assignment.Permissions(), nil
}

// canViewBatch reports whether the permission set grants read access to batch
// data. Any assignment flag is enough; program-manager is not required for
// reads.
func canViewBatch(p models.Permissions) bool {
	return p.RecordObservation || p.RecordFeedback || p.ProgramManager
}
