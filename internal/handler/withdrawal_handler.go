package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/dto"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/service"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/utils"
)

// WithdrawalHandler handles withdrawal request submission and staff processing.
type WithdrawalHandler struct {
	service service.WithdrawalService
	logger  zerolog.Logger
}

// NewWithdrawalHandler constructs a withdrawal handler.
func NewWithdrawalHandler(service service.WithdrawalService, logger zerolog.Logger) *WithdrawalHandler {
	return &WithdrawalHandler{
		service: service,
		logger:  logger.With().Str("component", "withdrawal_handler").Logger(),
	}
}

// RegisterStudent wires the student-facing withdrawal routes.
func (h *WithdrawalHandler) RegisterStudent(router fiber.Router) {
	router.Post("", h.request)
	router.Get("", h.listMine)
	router.Patch("/:id", h.updateReason)
	router.Delete("/:id", h.cancel)
}

// RegisterStaff wires the staff processing routes.
func (h *WithdrawalHandler) RegisterStaff(router fiber.Router) {
	router.Get("/pending", h.listPending)
	router.Post("/:id/process", h.process)
}

func (h *WithdrawalHandler) request(c *fiber.Ctx) error {
	var payload dto.WithdrawalCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Request(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendCreated(c, "withdrawal requested", response)
}

func (h *WithdrawalHandler) updateReason(c *fiber.Ctx) error {
	var payload dto.WithdrawalUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.UpdateReason(c.Context(), userIDFromContext(c), c.Params("id"), payload)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "withdrawal reason updated", response)
}

func (h *WithdrawalHandler) cancel(c *fiber.Ctx) error {
	response, err := h.service.Cancel(c.Context(), userIDFromContext(c), c.Params("id"))
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "withdrawal cancelled", response)
}

func (h *WithdrawalHandler) process(c *fiber.Ctx) error {
	var payload dto.WithdrawalProcessRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Process(c.Context(), userIDFromContext(c), c.Params("id"), payload)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "withdrawal processed", response)
}

func (h *WithdrawalHandler) listMine(c *fiber.Ctx) error {
	response, err := h.service.ListByStudent(c.Context(), userIDFromContext(c))
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "withdrawal requests retrieved", response)
}

func (h *WithdrawalHandler) listPending(c *fiber.Ctx) error {
	response, err := h.service.ListPending(c.Context())
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "pending withdrawal requests retrieved", response)
}
