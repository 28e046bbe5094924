package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/service"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/utils"
)

// StaffHandler handles the career centre review queues: representative
// account approval and internship vetting.
type StaffHandler struct {
	accounts    service.AccountService
	internships service.InternshipService
	logger      zerolog.Logger
}

// NewStaffHandler constructs a staff handler.
func NewStaffHandler(accounts service.AccountService, internships service.InternshipService, logger zerolog.Logger) *StaffHandler {
	return &StaffHandler{
		accounts:    accounts,
		internships: internships,
		logger:      logger.With().Str("component", "staff_handler").Logger(),
	}
}

type reviewDecision struct {
	Approve bool `json:"approve"`
}

// Register wires the staff review routes.
func (h *StaffHandler) Register(router fiber.Router) {
	router.Get("/representatives", h.listRepresentatives)
	router.Post("/representatives/:id/review", h.reviewRepresentative)
	router.Get("/internships", h.listInternships)
	router.Post("/internships/:id/review", h.reviewInternship)
}

func (h *StaffHandler) listRepresentatives(c *fiber.Ctx) error {
	status, ok := models.ParseApprovalStatus(c.Query("status", string(models.ApprovalPending)))
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "unknown approval status")
	}

	response, err := h.accounts.ListRepresentativesByStatus(c.Context(), status)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "representatives retrieved", response)
}

func (h *StaffHandler) reviewRepresentative(c *fiber.Ctx) error {
	var payload reviewDecision
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.accounts.ReviewRepresentative(c.Context(), userIDFromContext(c), c.Params("id"), payload.Approve)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "representative reviewed", response)
}

func (h *StaffHandler) listInternships(c *fiber.Ctx) error {
	status, ok := models.ParseInternshipStatus(c.Query("status", string(models.InternshipPending)))
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "unknown internship status")
	}

	response, err := h.internships.ListByStatus(c.Context(), status)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "internships retrieved", response)
}

func (h *StaffHandler) reviewInternship(c *fiber.Ctx) error {
	var payload reviewDecision
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.internships.Review(c.Context(), userIDFromContext(c), c.Params("id"), payload.Approve)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "internship reviewed", response)
}
