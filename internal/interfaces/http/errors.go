package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finanzas-api/internal/application/budgeting"
	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/domain"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// domainErrors orden importa: se devuelve la primera coincidencia con errors.Is.
var domainErrors = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnknownCategory, fiber.StatusBadRequest, "UNKNOWN_CATEGORY"},
	{domain.ErrProfileIncomplete, fiber.StatusUnprocessableEntity, "PROFILE_INCOMPLETE"},
	{domain.ErrBudgetNotFound, fiber.StatusNotFound, "BUDGET_NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrOTPCooldown, fiber.StatusTooManyRequests, "OTP_COOLDOWN"},
	{domain.ErrOTPRateLimited, fiber.StatusTooManyRequests, "OTP_RATE_LIMITED"},
	{domain.ErrOTPTooManyAttempts, fiber.StatusTooManyRequests, "OTP_TOO_MANY_ATTEMPTS"},
	{domain.ErrOTPExpired, fiber.StatusBadRequest, "OTP_EXPIRED"},
	{domain.ErrOTPInvalid, fiber.StatusBadRequest, "OTP_INVALID"},
}

// writeError traduce errores de dominio a status HTTP + ErrorResponse.
// Lo no reconocido es 500 INTERNAL.
func writeError(c *fiber.Ctx, err error) error {
	if budgeting.IsConfigError(err) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "BUDGET_CONFIG", Message: err.Error()})
	}
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}
