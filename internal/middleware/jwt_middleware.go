package middleware

import (
	"errors"
	"log"
	"strings"

	"jobboard/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LocalClaims is the locals key under which AuthRequired stores the claims.
const LocalClaims = "claims"

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, services.ErrConfigurationMissing) {
				log.Printf("JWT validation is misconfigured: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": services.MsgUnexpected,
				})
			}
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(LocalClaims, claims)

		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthRequired, or nil.
func ClaimsFrom(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(LocalClaims).(*services.Claims)
	return claims
}

// RequireRoles admits requests whose token carries at least one of roles.
// It must run after AuthRequired.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFrom(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		for _, role := range roles {
			if claims.HasRole(role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not have permission to access this resource",
		})
	}
}
