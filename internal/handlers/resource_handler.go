package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Service is the CRUD surface a ResourceHandler exposes over HTTP.
type Service[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id int, entity *T) error
	Delete(ctx context.Context, id int) error
}

// ResourceHandler handles the list, get, create, replace and delete
// requests of one entity type.
type ResourceHandler[T any] struct {
	service  Service[T]
	validate *validator.Validate
	// present prepares an entity for the response body.
	present func(*T)
}

func newResourceHandler[T any](service Service[T], validate *validator.Validate, present func(*T)) *ResourceHandler[T] {
	if present == nil {
		present = func(*T) {}
	}
	return &ResourceHandler[T]{service: service, validate: validate, present: present}
}

// HandleList returns every entity.
func (h *ResourceHandler[T]) HandleList(c *fiber.Ctx) error {
	entities, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	if entities == nil {
		entities = []T{}
	}
	for i := range entities {
		h.present(&entities[i])
	}
	return c.JSON(entities)
}

// HandleGet returns one entity with its owned collections.
func (h *ResourceHandler[T]) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	entity, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	h.present(entity)
	return c.JSON(entity)
}

// HandleCreate creates an entity under its submitted key.
func (h *ResourceHandler[T]) HandleCreate(c *fiber.Ctx) error {
	entity := new(T)
	if err := c.BodyParser(entity); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(entity); err != nil {
		return validationFailed(c, err)
	}
	if err := h.service.Create(c.UserContext(), entity); err != nil {
		return respondError(c, err)
	}
	h.present(entity)
	return c.Status(fiber.StatusCreated).JSON(entity)
}

// HandleUpdate replaces the entity at the path id with the request body.
func (h *ResourceHandler[T]) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	entity := new(T)
	if err := c.BodyParser(entity); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(entity); err != nil {
		return validationFailed(c, err)
	}
	if err := h.service.Update(c.UserContext(), id, entity); err != nil {
		return respondError(c, err)
	}
	h.present(entity)
	return c.JSON(entity)
}

// HandleDelete removes the entity and its dependents.
func (h *ResourceHandler[T]) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
