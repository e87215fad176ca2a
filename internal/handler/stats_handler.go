package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorhub-api/internal/service"
	"github.com/mentorhub/mentorhub-api/internal/utils"
)

// StatsHandler handles the batch dashboard counter endpoint.
type StatsHandler struct {
	service service.StatsService
	logger  zerolog.Logger
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(service service.StatsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger.With().Str("component", "stats_handler").Logger(),
	}
}

// Register wires the stats route onto the batch-scoped router.
func (h *StatsHandler) Register(router fiber.Router) {
	router.Get("/:batchId/stats", h.batchStats)
}

func (h *StatsHandler) batchStats(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "batchId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid batch id")
	}

	stats, err := h.service.BatchStats(c.Context(), actorFromContext(c), batchID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			return utils.SendError(c, fiber.StatusForbidden, "permission denied")
		case errors.Is(err, service.ErrBatchNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "batch not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute batch stats")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute batch stats")
		}
	}

	return utils.SendSuccess(c, "stats computed", stats)
}
