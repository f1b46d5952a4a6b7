package middleware

import (
	"errors"
	"log"

	"jobboard/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LoginThrottle counts every request from the client address and rejects it
// with 429 once the limit is exceeded, before the login handler runs. With
// resetOnSuccess the count is cleared after a 200 response.
func LoginThrottle(limiter *services.LoginThrottle, resetOnSuccess bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		address := c.IP()
		if err := limiter.Attempt(c.UserContext(), address); err != nil {
			status := fiber.StatusInternalServerError
			if errors.Is(err, services.ErrTooManyAttempts) {
				status = fiber.StatusTooManyRequests
				log.Printf("login throttled for %s", address)
			}
			return c.Status(status).JSON(fiber.Map{
				"message": err.Error(),
			})
		}

		if err := c.Next(); err != nil {
			return err
		}

		if resetOnSuccess && c.Response().StatusCode() == fiber.StatusOK {
			if err := limiter.Reset(c.UserContext(), address); err != nil {
				log.Printf("failed to reset login attempts for %s: %v", address, err)
			}
		}
		return nil
	}
}
