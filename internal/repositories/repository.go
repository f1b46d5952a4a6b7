package repositories

import (
	"context"
	"errors"

	"jobboard/internal/models"
)

var (
	// ErrNotFound is returned when no row has the requested key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert collides with an existing key.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrStaleEntity is returned when a version-guarded replace matched no row:
	// the row was deleted or its version moved on since it was loaded.
	ErrStaleEntity = errors.New("stale entity")
)

// Repository defines data access for one entity type.
type Repository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int) (*T, error)
	Create(ctx context.Context, entity *T) error
	// Update replaces the stored row if its version still equals the
	// entity's version, and advances the version on success.
	Update(ctx context.Context, entity *T) error
	// Delete removes the row together with its dependents.
	Delete(ctx context.Context, entity *T) error
	Exists(ctx context.Context, id int) (bool, error)
}

// AccountRepository adds credential lookups for account tables.
type AccountRepository[T any] interface {
	Repository[T]
	GetByEmail(ctx context.Context, email string) (*T, error)
}

type (
	JobRepository         = Repository[models.Job]
	ApplicationRepository = Repository[models.Application]
	JobSeekerRepository   = AccountRepository[models.JobSeeker]
	EmployerRepository    = AccountRepository[models.Employer]
)
