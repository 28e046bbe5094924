package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/dto"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/service"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/utils"
)

// AuthHandler handles registration, login, and password changes.
type AuthHandler struct {
	service service.AccountService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AccountService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the public auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register/student", h.registerStudent)
	router.Post("/register/representative", h.registerRepresentative)
	router.Post("/login", h.login)
}

// RegisterProtected wires the auth routes that require a valid token.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Get("/me", h.me)
	router.Post("/password", h.changePassword)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	role, ok := models.ParseRole(userRoleFromContext(c))
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "unknown account role")
	}

	var (
		profile any
		err     error
	)
	switch role {
	case models.RoleStudent:
		profile, err = h.service.GetStudent(c.Context(), userID)
	case models.RoleRepresentative:
		profile, err = h.service.GetRepresentative(c.Context(), userID)
	case models.RoleStaff:
		profile, err = h.service.GetStaff(c.Context(), userID)
	}
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "profile", profile)
}

func (h *AuthHandler) registerStudent(c *fiber.Ctx) error {
	var payload dto.StudentRegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.RegisterStudent(c.Context(), payload)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendCreated(c, "student registered", response)
}

func (h *AuthHandler) registerRepresentative(c *fiber.Ctx) error {
	var payload dto.RepresentativeRegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.RegisterRepresentative(c.Context(), payload)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendCreated(c, "representative registered, pending approval", response)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Login(c.Context(), payload)
	if err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) changePassword(c *fiber.Ctx) error {
	var payload dto.ChangePasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	role, _ := models.ParseRole(userRoleFromContext(c))
	if err := h.service.ChangePassword(c.Context(), role, userIDFromContext(c), payload); err != nil {
		return handleError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "password changed", nil)
}
