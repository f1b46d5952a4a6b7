package handlers

import (
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ApplicationHandler handles HTTP requests for job applications.
type ApplicationHandler struct {
	*ResourceHandler[models.Application]
	service *services.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		ResourceHandler: newResourceHandler[models.Application](service, validator.New(), nil),
		service:         service,
	}
}

// RegisterRoutes registers the application routes. Both account kinds may
// read; only job seekers may submit or change applications.
func (h *ApplicationHandler) RegisterRoutes(router fiber.Router) {
	readers := middleware.RequireRoles(models.RoleJobSeeker, models.RoleEmployer)
	applicants := middleware.RequireRoles(models.RoleJobSeeker)

	applicationRoutes := router.Group("/applications")
	applicationRoutes.Get("/", readers, h.HandleList)
	applicationRoutes.Get("/:id", readers, h.HandleGet)
	applicationRoutes.Post("/", applicants, h.HandleCreate)
	applicationRoutes.Post("/apply", applicants, h.HandleApply)
	applicationRoutes.Put("/:id", applicants, h.HandleUpdate)
	applicationRoutes.Delete("/:id", applicants, h.HandleDelete)
	applicationRoutes.Put("/:id/cv", applicants, h.HandleUploadCV)
	applicationRoutes.Get("/:id/cv", readers, h.HandleGetCV)
}

// HandleApply submits an application after checking the job accepts it.
func (h *ApplicationHandler) HandleApply(c *fiber.Ctx) error {
	var application models.Application
	if err := c.BodyParser(&application); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(application); err != nil {
		return validationFailed(c, err)
	}
	if err := h.service.Apply(c.UserContext(), &application); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(application)
}

// HandleUploadCV stores the multipart "cv" file and points the application
// at it.
func (h *ApplicationHandler) HandleUploadCV(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	header, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A 'cv' file is required",
			"error":   err.Error(),
		})
	}
	file, err := header.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	contentType := header.Header.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	application, err := h.service.AttachCV(c.UserContext(), id, header.Filename, file, header.Size, contentType)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(application)
}

// HandleGetCV returns a time-limited download link for the CV.
func (h *ApplicationHandler) HandleGetCV(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	url, err := h.service.CVURL(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}
