package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorhub-api/internal/dto"
	"github.com/mentorhub/mentorhub-api/internal/service"
	"github.com/mentorhub/mentorhub-api/internal/utils"
)

// BatchHandler handles mentorship batch endpoints.
type BatchHandler struct {
	service service.BatchService
	logger  zerolog.Logger
}

// NewBatchHandler constructs the handler.
func NewBatchHandler(service service.BatchService, logger zerolog.Logger) *BatchHandler {
	return &BatchHandler{
		service: service,
		logger:  logger.With().Str("component", "batch_handler").Logger(),
	}
}

// Register wires batch routes.
func (h *BatchHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:batchId", h.get)
	router.Get("/:batchId/permissions", h.permissions)
}

func (h *BatchHandler) list(c *fiber.Ctx) error {
	batches, err := h.service.List(c.Context(), actorFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list batches")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list batches")
	}

	return utils.SendSuccess(c, "batches retrieved", batches)
}

func (h *BatchHandler) create(c *fiber.Ctx) error {
	var payload dto.BatchCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	batch, err := h.service.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", validationDetails(err))
		}
		if errors.Is(err, dto.ErrInvalidDate) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
		}

		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create batch")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create batch")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "batch created", batch)
}

func (h *BatchHandler) get(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "batchId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid batch id")
	}

	batch, err := h.service.Get(c.Context(), actorFromContext(c), batchID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			return utils.SendError(c, fiber.StatusForbidden, "permission denied")
		case errors.Is(err, service.ErrBatchNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "batch not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to get batch")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to get batch")
		}
	}

	return utils.SendSuccess(c, "batch retrieved", batch)
}

func (h *BatchHandler) permissions(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "batchId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid batch id")
	}

	permissions, err := h.service.Permissions(c.Context(), actorFromContext(c), batchID)
	if err != nil {
		if errors.Is(err, service.ErrBatchNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "batch not found")
		}

		requestLogger(h.logger, c).Error().Err(err).Msg("failed to resolve permissions")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve permissions")
	}

	return utils.SendSuccess(c, "permissions resolved", permissions)
}
