package handlers

import (
	"log"

	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService    *services.AuthService
	limiter        *services.LoginThrottle
	resetOnSuccess bool
	validate       *validator.Validate
}

// NewAuthHandler creates a new AuthHandler. Logins are throttled by limiter.
func NewAuthHandler(authService *services.AuthService, limiter *services.LoginThrottle, resetOnSuccess bool) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		limiter:        limiter,
		resetOnSuccess: resetOnSuccess,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", middleware.LoginThrottle(h.limiter, h.resetOnSuccess), h.HandleLogin)
	authRoutes.Delete("/attempts/:address",
		middleware.AuthRequired(h.authService),
		middleware.RequireRoles(models.RoleAdmin),
		h.HandleResetAttempts,
	)
}

// HandleRegister handles new account registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var reg models.Registration
	if err := c.BodyParser(&reg); err != nil {
		return invalidBody(c, err)
	}

	if err := h.validate.Struct(reg); err != nil {
		return validationFailed(c, err)
	}

	account, err := h.authService.Register(c.UserContext(), reg)
	if err != nil {
		log.Printf("Error registering %s: %v", reg.Email, err)
		return respondError(c, err)
	}

	account.Base().Sanitize()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    account,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	token, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "Success",
		"token":  token,
	})
}

// HandleResetAttempts clears the login attempts recorded for an address.
func (h *AuthHandler) HandleResetAttempts(c *fiber.Ctx) error {
	if err := h.limiter.Reset(c.UserContext(), c.Params("address")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
