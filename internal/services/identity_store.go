package services

import (
	"context"
	"errors"
	"fmt"

	"jobboard/internal/models"
	"jobboard/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// IdentityStore verifies credentials against the stored accounts.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	CheckPassword(account models.Account, password string) bool
	Roles(account models.Account) []string
}

// AccountDirectory is the IdentityStore backed by the employer and job
// seeker tables. Employers are searched first.
type AccountDirectory struct {
	employers repositories.EmployerRepository
	seekers   repositories.JobSeekerRepository
}

// NewAccountDirectory creates an AccountDirectory.
func NewAccountDirectory(employers repositories.EmployerRepository, seekers repositories.JobSeekerRepository) *AccountDirectory {
	return &AccountDirectory{employers: employers, seekers: seekers}
}

// FindByEmail returns the account registered under email, or an error
// wrapping repositories.ErrNotFound.
func (d *AccountDirectory) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	employer, err := d.employers.GetByEmail(ctx, email)
	if err == nil {
		return employer, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	seeker, err := d.seekers.GetByEmail(ctx, email)
	if err == nil {
		return seeker, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	return nil, fmt.Errorf("account with email %s: %w", email, repositories.ErrNotFound)
}

// CheckPassword compares password with the account's stored hash.
func (d *AccountDirectory) CheckPassword(account models.Account, password string) bool {
	hash := account.Base().PasswordHash
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Roles returns the role labels attached to the account.
func (d *AccountDirectory) Roles(account models.Account) []string {
	return append([]string{}, account.Base().Roles...)
}
