package repositories

import (
	"context"
	"errors"
	"fmt"

	"jobboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cascadeFunc removes the dependents of the row with the given id inside tx.
type cascadeFunc func(tx *gorm.DB, id int) error

// GORMRepository is a GORM implementation of Repository.
type GORMRepository[T any, P models.EntityPtr[T]] struct {
	db       *gorm.DB
	name     string
	preloads []string
	cascade  cascadeFunc
}

func newGORMRepository[T any, P models.EntityPtr[T]](db *gorm.DB, name string, cascade cascadeFunc, preloads ...string) *GORMRepository[T, P] {
	return &GORMRepository[T, P]{
		db:       db,
		name:     name,
		preloads: preloads,
		cascade:  cascade,
	}
}

// GetAll retrieves all rows ordered by id.
func (r *GORMRepository[T, P]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Order("id").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to get all %ss: %w", r.name, err)
	}
	return entities, nil
}

// GetByID retrieves a single row and its owned collections.
func (r *GORMRepository[T, P]) GetByID(ctx context.Context, id int) (*T, error) {
	query := r.db.WithContext(ctx)
	for _, preload := range r.preloads {
		query = query.Preload(preload, func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		})
	}
	var entity T
	if err := query.First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s with ID %d: %w", r.name, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s by ID %d: %w", r.name, id, err)
	}
	return &entity, nil
}

// Create inserts the row with its submitted key at version 1. Owned
// collections are not written.
func (r *GORMRepository[T, P]) Create(ctx context.Context, entity *T) error {
	p := P(entity)
	p.SetVersion(1)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%s with ID %d: %w", r.name, p.GetID(), ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create %s: %w", r.name, err)
	}
	return nil
}

// Update writes every column of entity guarded by its loaded version.
func (r *GORMRepository[T, P]) Update(ctx context.Context, entity *T) error {
	p := P(entity)
	loaded := p.GetVersion()
	p.SetVersion(loaded + 1)

	res := r.db.WithContext(ctx).
		Model(entity).
		Where("id = ? AND version = ?", p.GetID(), loaded).
		Select("*").
		Omit("created_at", clause.Associations).
		Updates(entity)
	if res.Error != nil {
		p.SetVersion(loaded)
		return fmt.Errorf("failed to update %s: %w", r.name, res.Error)
	}
	if res.RowsAffected == 0 {
		p.SetVersion(loaded)
		return fmt.Errorf("%s with ID %d at version %d: %w", r.name, p.GetID(), loaded, ErrStaleEntity)
	}
	return nil
}

// Delete removes the row and its dependents in one transaction.
func (r *GORMRepository[T, P]) Delete(ctx context.Context, entity *T) error {
	id := P(entity).GetID()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.cascade != nil {
			if err := r.cascade(tx, id); err != nil {
				return fmt.Errorf("failed to delete dependents of %s %d: %w", r.name, id, err)
			}
		}
		res := tx.Delete(new(T), "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete %s: %w", r.name, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%s with ID %d: %w", r.name, id, ErrNotFound)
		}
		return nil
	})
}

// Exists reports whether a row with id is stored.
func (r *GORMRepository[T, P]) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check %s %d: %w", r.name, id, err)
	}
	return count > 0, nil
}

// GetByEmail retrieves an account row by its email.
func (r *GORMRepository[T, P]) GetByEmail(ctx context.Context, email string) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s with email %s: %w", r.name, email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s by email %s: %w", r.name, email, err)
	}
	return &entity, nil
}
