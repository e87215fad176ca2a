package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/mentorhub/mentorhub-api/internal/dto"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

var (
	// ErrFeedbackNotFound indicates the referenced feedback entry does not exist.
	ErrFeedbackNotFound = errors.New("feedback not found")
	// ErrAlreadyDelivered indicates a second delivery attempt on the same entry.
	ErrAlreadyDelivered = errors.New("feedback already delivered")
	// ErrConversationNotFound indicates the feedback entry has not been
	// delivered yet, so no conversation record exists.
	ErrConversationNotFound = errors.New("conversation not found")
)

// FeedbackService exposes feedback recording, delivery and listing use cases.
type FeedbackService interface {
	Record(ctx context.Context, actor Actor, batchID uint, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error)
	Deliver(ctx context.Context, actor Actor, feedbackID uint, payload dto.FeedbackDeliverRequest) (dto.ConversationResponse, error)
	Conversation(ctx context.Context, actor Actor, feedbackID uint) (dto.ConversationResponse, error)
	ListByIntern(ctx context.Context, actor Actor, internID uint) ([]dto.FeedbackResponse, error)
	ListByBatch(ctx context.Context, actor Actor, batchID uint) ([]dto.FeedbackResponse, error)
}

type feedbackService struct {
	repo      repository.FeedbackRepository
	interns   repository.InternRepository
	authz     AuthzService
	activity  ActivityRecorder
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewFeedbackService builds a new feedback service.
func NewFeedbackService(repo repository.FeedbackRepository, interns repository.InternRepository, authz AuthzService, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		repo:      repo,
		interns:   interns,
		authz:     authz,
		activity:  activity,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		tracer:    otel.Tracer("feedback-service"),
		logger:    logger.With().Str("component", "feedback_service").Logger(),
	}
}

// Record creates the feedback entry and applies the optional intern status
// update in a single transaction.
func (s *feedbackService) Record(ctx context.Context, actor Actor, batchID uint, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error) {
	ctx, span := s.tracer.Start(ctx, "feedback.record", trace.WithAttributes(
		attribute.Int("batch.id", int(batchID)),
	))
	defer span.End()

	permissions, err := s.authz.Resolve(ctx, actor, batchID)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}
	if !permissions.RecordFeedback {
		return dto.FeedbackResponse{}, ErrPermissionDenied
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	if _, err := s.interns.GetByBatchAndID(ctx, batchID, payload.InternID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrInternNotInBatch
		}

		return dto.FeedbackResponse{}, err
	}

	date, err := dto.ParseDate(payload.Date)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}

	feedback := models.Feedback{
		MentorID: actor.MentorID,
		InternID: payload.InternID,
		BatchID:  batchID,
		Date:     date,
		Content:  s.sanitizer.Sanitize(payload.Content),
	}
	if payload.Notice != nil {
		feedback.Notice = *payload.Notice
	}
	if payload.ColorCode != nil {
		feedback.ColorCode = *payload.ColorCode
	}

	if err := s.repo.CreateWithInternUpdate(ctx, &feedback, payload.Notice, payload.ColorCode); err != nil {
		return dto.FeedbackResponse{}, err
	}

	internID := payload.InternID
	s.activity.Record(ctx, ActivityEntry{
		BatchID:  batchID,
		MentorID: actor.MentorID,
		Action:   models.ActivityFeedbackRecorded,
		InternID: &internID,
	})

	s.logger.Info().Uint("batch_id", batchID).Uint("feedback_id", feedback.ID).Msg("feedback recorded")

	return dto.NewFeedbackResponse(feedback), nil
}

// Deliver marks the entry delivered and records the conversation. The flag
// flip and conversation insert share one transaction; a second delivery
// attempt surfaces ErrAlreadyDelivered instead of a duplicate conversation.
func (s *feedbackService) Deliver(ctx context.Context, actor Actor, feedbackID uint, payload dto.FeedbackDeliverRequest) (dto.ConversationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "feedback.deliver", trace.WithAttributes(
		attribute.Int("feedback.id", int(feedbackID)),
	))
	defer span.End()

	feedback, err := s.repo.GetByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ConversationResponse{}, ErrFeedbackNotFound
		}

		return dto.ConversationResponse{}, err
	}

	permissions, err := s.authz.Resolve(ctx, actor, feedback.BatchID)
	if err != nil {
		return dto.ConversationResponse{}, err
	}
	if !permissions.RecordFeedback {
		return dto.ConversationResponse{}, ErrPermissionDenied
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.ConversationResponse{}, err
	}

	conversation, err := s.repo.Deliver(ctx, feedbackID, actor.MentorID, s.sanitizer.Sanitize(payload.Conversation))
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackDelivered) {
			return dto.ConversationResponse{}, ErrAlreadyDelivered
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ConversationResponse{}, ErrFeedbackNotFound
		}

		return dto.ConversationResponse{}, err
	}

	internID := feedback.InternID
	s.activity.Record(ctx, ActivityEntry{
		BatchID:  feedback.BatchID,
		MentorID: actor.MentorID,
		Action:   models.ActivityFeedbackDelivered,
		InternID: &internID,
	})

	s.logger.Info().Uint("feedback_id", feedbackID).Msg("feedback delivered")

	return dto.NewConversationResponse(conversation), nil
}

// Conversation returns the delivery record of a delivered feedback entry. A
// delivered entry without a conversation row is a data integrity fault, not a
// not-found condition.
func (s *feedbackService) Conversation(ctx context.Context, actor Actor, feedbackID uint) (dto.ConversationResponse, error) {
	feedback, err := s.repo.GetByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ConversationResponse{}, ErrFeedbackNotFound
		}

		return dto.ConversationResponse{}, err
	}

	permissions, err := s.authz.Resolve(ctx, actor, feedback.BatchID)
	if err != nil {
		return dto.ConversationResponse{}, err
	}
	if !canViewBatch(permissions) {
		return dto.ConversationResponse{}, ErrPermissionDenied
	}

	if !feedback.Delivered {
		return dto.ConversationResponse{}, ErrConversationNotFound
	}

	conversation, err := s.repo.GetConversation(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ConversationResponse{}, fmt.Errorf("feedback %d marked delivered but has no conversation record", feedbackID)
		}

		return dto.ConversationResponse{}, err
	}

	return dto.NewConversationResponse(conversation), nil
}

func (s *feedbackService) ListByIntern(ctx context.Context, actor Actor, internID uint) ([]dto.FeedbackResponse, error) {
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

	feedbacks, err := s.repo.ListByIntern(ctx, internID)
	if err != nil {
		return nil, err
	}

	return dto.NewFeedbackResponseSlice(feedbacks), nil
}

func (s *feedbackService) ListByBatch(ctx context.Context, actor Actor, batchID uint) ([]dto.FeedbackResponse, error) {
	permissions, err := s.authz.Resolve(ctx, actor, batchID)
	if err != nil {
		return nil, err
	}
	if !canViewBatch(permissions) {
		return nil, ErrPermissionDenied
	}

	feedbacks, err := s.repo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	return dto.NewFeedbackResponseSlice(feedbacks), nil
}
