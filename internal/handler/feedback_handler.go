package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorhub-api/internal/dto"
	"github.com/mentorhub/mentorhub-api/internal/filter"
	"github.com/mentorhub/mentorhub-api/internal/service"
	"github.com/mentorhub/mentorhub-api/internal/utils"
)

// FeedbackHandler handles feedback recording, delivery and listing endpoints.
type FeedbackHandler struct {
	service service.FeedbackService
	logger  zerolog.Logger
}

// NewFeedbackHandler constructs the handler.
func NewFeedbackHandler(service service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		logger:  logger.With().Str("component", "feedback_handler").Logger(),
	}
}

// RegisterBatchRoutes wires feedback routes onto the batch-scoped router.
func (h *FeedbackHandler) RegisterBatchRoutes(router fiber.Router) {
	router.Post("/:batchId/feedbacks", h.record)
	router.Get("/:batchId/feedbacks", h.listByBatch)
}

// RegisterInternRoutes wires feedback routes onto the intern-scoped router.
func (h *FeedbackHandler) RegisterInternRoutes(router fiber.Router) {
	router.Get("/:internId/feedbacks", h.listByIntern)
}

// RegisterFeedbackRoutes wires routes addressed by feedback id.
func (h *FeedbackHandler) RegisterFeedbackRoutes(router fiber.Router) {
	router.Post("/:feedbackId/deliver", h.deliver)
	router.Get("/:feedbackId/conversation", h.conversation)
}

func (h *FeedbackHandler) record(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "batchId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid batch id")
	}

	var payload dto.FeedbackCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	feedback, err := h.service.Record(c.Context(), actorFromContext(c), batchID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", validationDetails(err))
		case errors.Is(err, dto.ErrInvalidDate):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
		case errors.Is(err, service.ErrInternNotInBatch):
			return utils.SendError(c, fiber.StatusBadRequest, "intern does not belong to batch")
		case errors.Is(err, service.ErrPermissionDenied):
			return utils.SendError(c, fiber.StatusForbidden, "permission denied")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record feedback")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record feedback")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "feedback recorded", feedback)
}

func (h *FeedbackHandler) deliver(c *fiber.Ctx) error {
	feedbackID, err := parseUintParam(c, "feedbackId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid feedback id")
	}

	var payload dto.FeedbackDeliverRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	conversation, err := h.service.Deliver(c.Context(), actorFromContext(c), feedbackID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", validationDetails(err))
		case errors.Is(err, service.ErrPermissionDenied):
			return utils.SendError(c, fiber.StatusForbidden, "permission denied")
		case errors.Is(err, service.ErrFeedbackNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "feedback not found")
		case errors.Is(err, service.ErrAlreadyDelivered):
			return utils.SendError(c, fiber.StatusConflict, "feedback already delivered")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to deliver feedback")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to deliver feedback")
		}
	}

	return utils.SendSuccess(c, "feedback delivered", conversation)
}

func (h *FeedbackHandler) conversation(c *fiber.Ctx) error {
	feedbackID, err := parseUintParam(c, "feedbackId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid feedback id")
	}

	conversation, err := h.service.Conversation(c.Context(), actorFromContext(c), feedbackID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			return utils.SendError(c, fiber.StatusForbidden, "permission denied")
		case errors.Is(err, service.ErrFeedbackNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "feedback not found")
		case errors.Is(err, service.ErrConversationNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "conversation not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to get conversation")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to get conversation")
		}
	}

	return utils.SendSuccess(c, "conversation retrieved", conversation)
}

func (h *FeedbackHandler) listByBatch(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "batchId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid batch id")
	}

	delivered, err := parseBoolQuery(c, "delivered")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid delivered filter")
	}
	notice, err := parseBoolQuery(c, "notice")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notice filter")
	}

	feedbacks, err := h.service.ListByBatch(c.Context(), actorFromContext(c), batchID)
	if err != nil {
		return h.mapListError(c, err, "failed to list feedback")
	}

	filtered := filter.FeedbackFilter{
		InternName: c.Query("internName"),
		Delivered:  delivered,
		Notice:     notice,
	}.Apply(feedbacks)

	return utils.SendSuccess(c, "feedback retrieved", filtered)
}

func (h *FeedbackHandler) listByIntern(c *fiber.Ctx) error {
	internID, err := parseUintParam(c, "internId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid intern id")
	}

	feedbacks, err := h.service.ListByIntern(c.Context(), actorFromContext(c), internID)
	if err != nil {
		return h.mapListError(c, err, "failed to list feedback")
	}

	return utils.SendSuccess(c, "feedback retrieved", feedbacks)
}

func (h *FeedbackHandler) mapListError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		return utils.SendError(c, fiber.StatusForbidden, "permission denied")
	case errors.Is(err, service.ErrInternNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "intern not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
