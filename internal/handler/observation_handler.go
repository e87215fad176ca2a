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

// ObservationHandler handles observation recording and listing endpoints.
type ObservationHandler struct {
	service service.ObservationService
	logger  zerolog.Logger
}

// NewObservationHandler constructs the handler.
func NewObservationHandler(service service.ObservationService, logger zerolog.Logger) *ObservationHandler {
	return &ObservationHandler{
		service: service,
		logger:  logger.With().Str("component", "observation_handler").Logger(),
	}
}

// RegisterBatchRoutes wires observation routes onto the batch-scoped router.
func (h *ObservationHandler) RegisterBatchRoutes(router fiber.Router) {
	router.Post("/:batchId/observations", h.record)
	router.Get("/:batchId/observations", h.listByBatch)
}

// RegisterInternRoutes wires observation routes onto the intern-scoped router.
func (h *ObservationHandler) RegisterInternRoutes(router fiber.Router) {
	router.Get("/:internId/observations", h.listByIntern)
}

func (h *ObservationHandler) record(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "batchId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid batch id")
	}

	var payload dto.ObservationsCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	count, err := h.service.Record(c.Context(), actorFromContext(c), batchID, payload)
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
		case errors.Is(err, service.ErrBatchNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "batch not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record observations")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record observations")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "observations recorded", dto.RecordResult{Count: count})
}

func (h *ObservationHandler) listByBatch(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "batchId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid batch id")
	}

	watchout, err := parseBoolQuery(c, "watchout")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid watchout filter")
	}

	observations, err := h.service.ListByBatch(c.Context(), actorFromContext(c), batchID)
	if err != nil {
		return h.mapListError(c, err, "failed to list observations")
	}

	filtered := filter.ObservationFilter{
		InternName: c.Query("internName"),
		Watchout:   watchout,
	}.Apply(observations)

	return utils.SendSuccess(c, "observations retrieved", filtered)
}

func (h *ObservationHandler) listByIntern(c *fiber.Ctx) error {
	internID, err := parseUintParam(c, "internId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid intern id")
	}

	observations, err := h.service.ListByIntern(c.Context(), actorFromContext(c), internID)
	if err != nil {
		return h.mapListError(c, err, "failed to list observations")
	}

	return utils.SendSuccess(c, "observations retrieved", observations)
}

func (h *ObservationHandler) mapListError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		return utils.SendError(c, fiber.StatusForbidden, "permission denied")
	case errors.Is(err, service.ErrInternNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "intern not found")
	case errors.Is(err, service.ErrBatchNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "batch not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
