package services

import (
	"context"
	"errors"
	"fmt"

	"jobboard/internal/models"
	"jobboard/internal/repositories"
)

// reference is a foreign key that must resolve before a write.
type reference struct {
	id      int
	exists  func(ctx context.Context, id int) (bool, error)
	message string
}

func checkReferences(ctx context.Context, refs []reference) error {
	for _, ref := range refs {
		ok, err := ref.exists(ctx, ref.id)
		if err != nil {
			return internalError("failed to check reference", err)
		}
		if !ok {
			return newError(ErrForeignKeyNotFound, ref.message)
		}
	}
	return nil
}

// CRUDService holds the create, replace and delete rules shared by every
// entity type. Entity services embed it and supply their hooks.
type CRUDService[T any, P models.EntityPtr[T]] struct {
	repo   repositories.Repository[T]
	msgs   entityMessages
	entity string
	events EventPublisher

	references   func(entity *T) []reference
	beforeCreate func(ctx context.Context, entity *T) error
	beforeUpdate func(ctx context.Context, entity *T) error
}

// GetAll returns every stored entity ordered by id.
func (s *CRUDService[T, P]) GetAll(ctx context.Context) ([]T, error) {
	entities, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internalError("failed to list "+s.entity, err)
	}
	return entities, nil
}

// GetByID returns the entity with its owned collections.
func (s *CRUDService[T, P]) GetByID(ctx context.Context, id int) (*T, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(ErrNotFound, fmt.Sprintf(s.msgs.getNotFound, id))
		}
		return nil, internalError("failed to get "+s.entity, err)
	}
	return entity, nil
}

// Create inserts entity under its submitted key after checking that the key
// is free and its references resolve.
func (s *CRUDService[T, P]) Create(ctx context.Context, entity *T) error {
	id := P(entity).GetID()
	if s.beforeCreate != nil {
		if err := s.beforeCreate(ctx, entity); err != nil {
			return err
		}
	}
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return internalError("failed to check "+s.entity, err)
	}
	if exists {
		return newError(ErrDuplicateKey, s.msgs.duplicate)
	}
	if err := s.checkReferences(ctx, entity); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, entity); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return newError(ErrDuplicateKey, s.msgs.duplicate)
		}
		return internalError("failed to create "+s.entity, err)
	}
	publishEvent(s.events, s.entity, "created", id)
	return nil
}

// Update replaces the entity stored under id with entity. The body id must
// match the path id and the submitted version must still be current.
func (s *CRUDService[T, P]) Update(ctx context.Context, id int, entity *T) error {
	if P(entity).GetID() != id {
		return newError(ErrIDMismatch, s.msgs.mismatch)
	}
	if err := s.checkReferences(ctx, entity); err != nil {
		return err
	}
	if s.beforeUpdate != nil {
		if err := s.beforeUpdate(ctx, entity); err != nil {
			return err
		}
	}
	if err := s.resolveReplace(ctx, entity); err != nil {
		return err
	}
	publishEvent(s.events, s.entity, "updated", id)
	return nil
}

// resolveReplace runs the version-guarded replace and classifies a failure.
// A stale write is NotFound when the row is gone and Conflict otherwise.
func (s *CRUDService[T, P]) resolveReplace(ctx context.Context, entity *T) error {
	err := s.repo.Update(ctx, entity)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrStaleEntity) {
		return internalError("failed to update "+s.entity, err)
	}
	exists, existsErr := s.repo.Exists(ctx, P(entity).GetID())
	if existsErr != nil {
		return internalError("failed to check "+s.entity, existsErr)
	}
	if !exists {
		return newError(ErrNotFound, s.msgs.notFound)
	}
	return newError(ErrConflict, MsgConcurrencyConflict)
}

// Delete removes the entity and its dependents.
func (s *CRUDService[T, P]) Delete(ctx context.Context, id int) error {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(ErrNotFound, s.msgs.notFound)
		}
		return internalError("failed to get "+s.entity, err)
	}
	if err := s.repo.Delete(ctx, entity); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(ErrNotFound, s.msgs.notFound)
		}
		return internalError("failed to delete "+s.entity, err)
	}
	publishEvent(s.events, s.entity, "deleted", id)
	return nil
}

func (s *CRUDService[T, P]) checkReferences(ctx context.Context, entity *T) error {
	if s.references == nil {
		return nil
	}
	return checkReferences(ctx, s.references(entity))
}
