package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorhub-api/internal/service"
	"github.com/mentorhub/mentorhub-api/internal/utils"
)

// MentorHandler handles mentor profile endpoints.
type MentorHandler struct {
	service service.MentorService
	logger  zerolog.Logger
}

// NewMentorHandler constructs the handler.
func NewMentorHandler(service service.MentorService, logger zerolog.Logger) *MentorHandler {
	return &MentorHandler{
		service: service,
		logger:  logger.With().Str("component", "mentor_handler").Logger(),
	}
}

// Register wires mentor routes.
func (h *MentorHandler) Register(router fiber.Router) {
	router.Get("/me", h.profile)
}

func (h *MentorHandler) profile(c *fiber.Ctx) error {
	profile, err := h.service.Profile(c.Context(), actorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrMentorNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "mentor not found")
		}

		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load mentor profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load mentor profile")
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}
