package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/dto"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/service"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/utils"
)

// InternshipHandler handles internship posting and browsing.
type InternshipHandler struct {
	service service.InternshipService
	logger  zerolog.Logger
}

// NewInternshipHandler constructs an internship handler.
func NewInternshipHandler(service service.InternshipService, logger zerolog.Logger) *InternshipHandler {
	return &InternshipHandler{
		service: service,
		logger:  logger.With().Str("component", "internship_handler").Logger(),
	}
}

// RegisterRepresentative wires the routes used by company representatives to
// manage their own postings.
func (h *InternshipHandler) RegisterRepresentative(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.listMine)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/visibility", h.setVisibility)
}

// RegisterStudent wires the student-facing browse routes.
func (h *InternshipHandler) RegisterStudent(router fiber.Router) {
	router.Get("", h.listOpen)
	router.Get("/:id", h.get)
}

func (h *InternshipHandler) create(c *fiber.Ctx) error {
	var payload dto.InternshipCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendCreated(c, "internship created, pending review", response)
}

func (h *InternshipHandler) update(c *fiber.Ctx) error {
	var payload dto.InternshipUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(c.Context(), userIDFromContext(c), c.Params("id"), payload)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "internship updated", response)
}

func (h *InternshipHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), userIDFromContext(c), c.Params("id")); err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "internship deleted", nil)
}

func (h *InternshipHandler) setVisibility(c *fiber.Ctx) error {
	var payload dto.VisibilityRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.SetVisibility(c.Context(), userIDFromContext(c), c.Params("id"), payload.Visible)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "internship visibility updated", response)
}

func (h *InternshipHandler) get(c *fiber.Ctx) error {
	response, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "internship retrieved", response)
}

func (h *InternshipHandler) listMine(c *fiber.Ctx) error {
	response, err := h.service.ListByRepresentative(c.Context(), userIDFromContext(c))
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "internships retrieved", response)
}

func (h *InternshipHandler) listOpen(c *fiber.Ctx) error {
	response, err := h.service.ListOpenFor(c.Context(), userIDFromContext(c))
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "open internships retrieved", response)
}
