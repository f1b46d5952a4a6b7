package handlers

import (
	"errors"
	"fmt"
	"log"

	"jobboard/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a service error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrDuplicateKey):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrIDMismatch),
		errors.Is(err, services.ErrForeignKeyNotFound),
		errors.Is(err, services.ErrJobNotEligible),
		errors.Is(err, services.ErrDeadlinePassed),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidRole):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrTooManyAttempts):
		return fiber.StatusTooManyRequests
	case errors.Is(err, services.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// respondError writes a service error as {"message": ...}. Errors that are
// not classified never leak their text.
func respondError(c *fiber.Ctx, err error) error {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		log.Printf("Unclassified error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": services.MsgUnexpected,
		})
	}
	return c.Status(StatusFor(svcErr)).JSON(fiber.Map{
		"message": svcErr.Message,
	})
}

// ErrorHandler renders errors returned from handlers and recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"message": fiberErr.Message,
		})
	}
	return respondError(c, err)
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

func paramID(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid ID %q", c.Params("id")))
	}
	return id, nil
}
