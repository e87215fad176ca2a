package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorhub-api/internal/service"
	"github.com/mentorhub/mentorhub-api/internal/utils"
)

// ActivityHandler handles the batch activity feed endpoint.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires the activity route onto the batch-scoped router.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("/:batchId/activity", h.list)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "batchId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid batch id")
	}

	limit, err := parseQueryInt(c, "limit")
	if err != nil || limit < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	events, err := h.service.List(c.Context(), actorFromContext(c), batchID, limit)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			return utils.SendError(c, fiber.StatusForbidden, "permission denied")
		}

		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity")
	}

	return utils.SendSuccess(c, "activity retrieved", events)
}
