package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/infrastructure/ratelimit"
)

// RateLimit limita por IP con el token-bucket del store. 429 + Retry-After al agotarse.
func RateLimit(store *ratelimit.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store.Allow(c.IP()) {
			return c.Next()
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(store.RetryAfter().Seconds())))
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Code: "RATE_LIMITED", Message: "demasiadas solicitudes, intenta más tarde",
		})
	}
}
