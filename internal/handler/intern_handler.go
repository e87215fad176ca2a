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

// InternHandler handles intern roster endpoints under a batch.
type InternHandler struct {
	service service.InternService
	logger  zerolog.Logger
}

// NewInternHandler constructs the handler.
func NewInternHandler(service service.InternService, logger zerolog.Logger) *InternHandler {
	return &InternHandler{
		service: service,
		logger:  logger.With().Str("component", "intern_handler").Logger(),
	}
}

// Register wires intern routes onto the batch-scoped router. importRoute is
// registered separately so the router can rate-limit file imports.
func (h *InternHandler) Register(router fiber.Router) {
	router.Get("/:batchId/interns", h.list)
	router.Post("/:batchId/interns", h.onboard)
	router.Get("/:batchId/interns/:internId", h.get)
	router.Patch("/:batchId/interns/:internId", h.update)
	router.Delete("/:batchId/interns/:internId", h.terminate)
	router.Post("/:batchId/interns/:internId/avatar", h.uploadAvatar)
}

// RegisterImport wires the CSV roster import route.
func (h *InternHandler) RegisterImport(router fiber.Router) {
	router.Post("/:batchId/interns/import", h.importRoster)
}

func (h *InternHandler) list(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "batchId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid batch id")
	}

	notice, err := parseBoolQuery(c, "notice")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notice filter")
	}

	interns, err := h.service.List(c.Context(), actorFromContext(c), batchID)
	if err != nil {
		return h.mapError(c, err, "failed to list interns")
	}

	filtered := filter.InternFilter{
		Name:      c.Query("name"),
		ColorCode: c.Query("colorCode"),
		Notice:    notice,
	}.Apply(interns)

	return utils.SendSuccess(c, "interns retrieved", filtered)
}

func (h *InternHandler) onboard(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "batchId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid batch id")
	}

	var payload dto.InternOnboardRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	count, err := h.service.Onboard(c.Context(), actorFromContext(c), batchID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", validationDetails(err))
		}

		return h.mapError(c, err, "failed to onboard interns")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "interns onboarded", dto.OnboardResult{Count: count})
}

func (h *InternHandler) importRoster(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "batchId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid batch id")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "roster file missing")
	}

	count, err := h.service.ImportRoster(c.Context(), actorFromContext(c), batchID, file)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.Fail(c, fiber.StatusBadRequest, "invalid roster contents", validationDetails(err))
		case errors.Is(err, service.ErrEmptyRoster):
			return utils.SendError(c, fiber.StatusBadRequest, "roster file contains no interns")
		case errors.Is(err, service.ErrUnsupportedFileType):
			return utils.SendError(c, fiber.StatusBadRequest, "unsupported file type")
		default:
			return h.mapError(c, err, "failed to import roster")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "interns onboarded", dto.OnboardResult{Count: count})
}

func (h *InternHandler) get(c *fiber.Ctx) error {
	batchID, internID, err := internParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	intern, err := h.service.Get(c.Context(), actorFromContext(c), batchID, internID)
	if err != nil {
		return h.mapError(c, err, "failed to get intern")
	}

	return utils.SendSuccess(c, "intern retrieved", intern)
}

func (h *InternHandler) update(c *fiber.Ctx) error {
	batchID, internID, err := internParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.InternUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Update(c.Context(), actorFromContext(c), batchID, internID, payload); err != nil {
		if errors.Is(err, service.ErrNoFieldsToUpdate) {
			return utils.SendError(c, fiber.StatusBadRequest, "no fields to update")
		}

		return h.mapError(c, err, "failed to update intern")
	}

	return utils.SendSuccess(c, "intern updated", nil)
}

func (h *InternHandler) terminate(c *fiber.Ctx) error {
	batchID, internID, err := internParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Terminate(c.Context(), actorFromContext(c), batchID, internID); err != nil {
		return h.mapError(c, err, "failed to terminate intern")
	}

	return utils.SendSuccess(c, "intern terminated", nil)
}

func (h *InternHandler) uploadAvatar(c *fiber.Ctx) error {
	batchID, internID, err := internParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "avatar file missing")
	}

	url, err := h.service.UploadAvatar(c.Context(), actorFromContext(c), batchID, internID, file)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			return utils.SendError(c, fiber.StatusBadRequest, "unsupported file type")
		}

		return h.mapError(c, err, "failed to upload avatar")
	}

	return utils.SendSuccess(c, "avatar uploaded", fiber.Map{"img_url": url})
}

func internParams(c *fiber.Ctx) (uint, uint, error) {
	batchID, err := parseUintParam(c, "batchId")
	if err != nil {
		return 0, 0, errors.New("invalid batch id")
	}
	internID, err := parseUintParam(c, "internId")
	if err != nil {
		return 0, 0, errors.New("invalid intern id")
	}
	return batchID, internID, nil
}

func (h *InternHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		return utils.SendError(c, fiber.StatusForbidden, "permission denied")
	case errors.Is(err, service.ErrBatchNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "batch not found")
	case errors.Is(err, service.ErrInternNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "intern not found")
	case errors.Is(err, dto.ErrInvalidDate):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
