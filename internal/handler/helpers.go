package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/apperr"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/middleware"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/utils"
)

func userIDFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(string); ok {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

func userRoleFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// handleError maps domain errors onto HTTP responses. Validation failures and
// invalid input surface as 400, missing entities as 404, credential problems
// as 401, business rule breaches as 409, and storage failures as 500.
func handleError(c *fiber.Ctx, logger *zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return utils.SendError(c, fiber.StatusBadRequest, validationMessage(validationErrors))
	}

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case apperr.KindInvalidInput:
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case apperr.KindUnauthorized:
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case apperr.KindRuleViolation:
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case apperr.KindPersistence:
		logger.Error().Err(err).Msg("persistence failure")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal storage error")
	default:
		logger.Error().Err(err).Msg("unhandled error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func validationMessage(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "invalid payload"
	}
	fields := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		fields = append(fields, strings.ToLower(fieldErr.Field()))
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}
