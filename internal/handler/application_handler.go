package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/dto"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/service"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/utils"
)

// ApplicationHandler handles application submission, review, and acceptance.
type ApplicationHandler struct {
	service service.ApplicationService
	logger  zerolog.Logger
}

// NewApplicationHandler constructs an application handler.
func NewApplicationHandler(service service.ApplicationService, logger zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		logger:  logger.With().Str("component", "application_handler").Logger(),
	}
}

// RegisterStudent wires the student-facing application routes.
func (h *ApplicationHandler) RegisterStudent(router fiber.Router) {
	router.Post("", h.apply)
	router.Get("", h.listMine)
	router.Get("/:id", h.get)
	router.Post("/:id/accept", h.acceptPlacement)
}

// RegisterRepresentative wires the representative review routes.
func (h *ApplicationHandler) RegisterRepresentative(router fiber.Router) {
	router.Get("/internships/:id/applications", h.listForInternship)
	router.Post("/applications/:id/review", h.review)
}

func (h *ApplicationHandler) apply(c *fiber.Ctx) error {
	var payload dto.ApplyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Apply(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendCreated(c, "application submitted", response)
}

func (h *ApplicationHandler) review(c *fiber.Ctx) error {
	var payload dto.ReviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Review(c.Context(), userIDFromContext(c), c.Params("id"), payload)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "application reviewed", response)
}

func (h *ApplicationHandler) acceptPlacement(c *fiber.Ctx) error {
	response, err := h.service.AcceptPlacement(c.Context(), userIDFromContext(c), c.Params("id"))
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "placement accepted", response)
}

func (h *ApplicationHandler) get(c *fiber.Ctx) error {
	response, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "application retrieved", response)
}

func (h *ApplicationHandler) listMine(c *fiber.Ctx) error {
	response, err := h.service.ListByStudent(c.Context(), userIDFromContext(c))
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "applications retrieved", response)
}

func (h *ApplicationHandler) listForInternship(c *fiber.Ctx) error {
	response, err := h.service.ListForInternship(c.Context(), userIDFromContext(c), c.Params("id"))
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "applications retrieved", response)
}
