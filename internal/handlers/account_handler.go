package handlers

import (
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles the admin-only management of one account table.
type AccountHandler[T any] struct {
	*ResourceHandler[T]
	path string
}

// NewJobSeekerHandler creates the handler for /jobseekers.
func NewJobSeekerHandler(service *services.JobSeekerService) *AccountHandler[models.JobSeeker] {
	return &AccountHandler[models.JobSeeker]{
		ResourceHandler: newResourceHandler[models.JobSeeker](service, validator.New(), func(s *models.JobSeeker) {
			s.Sanitize()
		}),
		path: "/jobseekers",
	}
}

// NewEmployerHandler creates the handler for /employers.
func NewEmployerHandler(service *services.EmployerService) *AccountHandler[models.Employer] {
	return &AccountHandler[models.Employer]{
		ResourceHandler: newResourceHandler[models.Employer](service, validator.New(), func(e *models.Employer) {
			e.Sanitize()
		}),
		path: "/employers",
	}
}

// RegisterRoutes registers the account routes for admins.
func (h *AccountHandler[T]) RegisterRoutes(router fiber.Router) {
	accountRoutes := router.Group(h.path, middleware.RequireRoles(models.RoleAdmin))
	accountRoutes.Get("/", h.HandleList)
	accountRoutes.Get("/:id", h.HandleGet)
	accountRoutes.Post("/", h.HandleCreate)
	accountRoutes.Put("/:id", h.HandleUpdate)
	accountRoutes.Delete("/:id", h.HandleDelete)
}
