package service

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorhub-api/internal/dto"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

const activitySubject = "mentorhub.activity"

// ActivityEntry captures the details of a batch event worth surfacing in the
// recent-activity feed.
type ActivityEntry struct {
	BatchID  uint
	MentorID uint
	Action   string
	InternID *uint
	Metadata map[string]interface{}
}

// ActivityRecorder is the write side of the activity feed, consumed by the
// domain services.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry)
}

// ActivityService records and lists batch activity events.
type ActivityService interface {
	ActivityRecorder
	List(ctx context.Context, actor Actor, batchID uint, limit int) ([]dto.ActivityResponse, error)
}

type activityService struct {
	repo   repository.ActivityRepository
	authz  AuthzService
	nats   *nats.Conn
	logger zerolog.Logger
}

// NewActivityService constructs the activity feed service. The NATS
// connection may be nil, which disables event fan-out.
func NewActivityService(repo repository.ActivityRepository, authz AuthzService, natsConn *nats.Conn, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		authz:  authz,
		nats:   natsConn,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

// Record persists the event and publishes it to NATS when configured. The
/// feed is best-effort: a failure here never fails the domain operation that
// triggered it.
func (s *activityService) Record(ctx context.Context, entry ActivityEntry) {
	event := models.ActivityEvent{
		BatchID:  entry.BatchID,
		MentorID: entry.MentorID,
		Action:   entry.Action,
		InternID: entry.InternID,
		Metadata: entry.Metadata,
	}

	if err := s.repo.Create(ctx, &event); err != nil {
		s.logger.Warn().Err(err).Str("action", entry.Action).Msg("failed to persist activity event")
		return
	}

	if s.nats == nil {
		return
	}

	payload, err := json.Marshal(dto.NewActivityResponse(event))
	if err != nil {
		return
	}
	if err := s.nats.Publish(activitySubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish activity event")
	}
}

func (s *activityService) List(ctx context.Context, actor Actor, batchID uint, limit int) ([]dto.ActivityResponse, error) {
	permissions, err := s.authz.Resolve(ctx, actor, batchID)
	if err != nil {
		return nil, err
	}
	if !canViewBatch(permissions) {
		return nil, ErrPermissionDenied
	}

	events, err := s.repo.ListByBatch(ctx, batchID, limit)
	if err != nil {
		return nil, err
	}

	return dto.NewActivityResponseSlice(events), nil
}
