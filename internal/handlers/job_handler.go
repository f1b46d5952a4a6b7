package handlers

import (
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	*ResourceHandler[models.Job]
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service *services.JobService) *JobHandler {
	return &JobHandler{
		ResourceHandler: newResourceHandler[models.Job](service, validator.New(), nil),
	}
}

// RegisterRoutes registers the job routes. Both account kinds may read;
// only employers may write. The router must already authenticate.
func (h *JobHandler) RegisterRoutes(router fiber.Router) {
	readers := middleware.RequireRoles(models.RoleJobSeeker, models.RoleEmployer)
	writers := middleware.RequireRoles(models.RoleEmployer)

	jobRoutes := router.Group("/jobs")
	jobRoutes.Get("/", readers, h.HandleList)
	jobRoutes.Get("/:id", readers, h.HandleGet)
	jobRoutes.Post("/", writers, h.HandleCreate)
	jobRoutes.Put("/:id", writers, h.HandleUpdate)
	jobRoutes.Delete("/:id", writers, h.HandleDelete)
}
