package services

import (
	"context"
	"errors"

	"jobboard/internal/models"
	"jobboard/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// AccountPtr is the pointer constraint for stored account variants.
type AccountPtr[T any] interface {
	models.EntityPtr[T]
	models.Account
}

// AccountService handles business logic for one account table. Passwords
// are hashed on create and kept on update unless a new one is supplied.
type AccountService[T any, P AccountPtr[T]] struct {
	*CRUDService[T, P]
	accounts    repositories.AccountRepository[T]
	directory   EmailDirectory
	defaultRole string
}

// EmailDirectory finds the account owning an email across account tables.
// AccountDirectory satisfies it.
type EmailDirectory interface {
	FindByEmail(ctx context.Context, email string) (models.Account, error)
}

// AccountOption configures an account service.
type AccountOption func(*accountOptions)

type accountOptions struct {
	directory EmailDirectory
}

// WithEmailDirectory makes email ownership checks span every account table.
// Without it only the service's own table is consulted.
func WithEmailDirectory(directory EmailDirectory) AccountOption {
	return func(o *accountOptions) {
		o.directory = directory
	}
}

type (
	JobSeekerService = AccountService[models.JobSeeker, *models.JobSeeker]
	EmployerService  = AccountService[models.Employer, *models.Employer]
)

// NewJobSeekerService creates the service managing job seeker accounts.
func NewJobSeekerService(repo repositories.JobSeekerRepository, events EventPublisher, opts ...AccountOption) *JobSeekerService {
	return newAccountService[models.JobSeeker, *models.JobSeeker](repo, jobSeekerMessages, "jobseeker", models.RoleJobSeeker, events, opts)
}

// NewEmployerService creates the service managing employer accounts.
func NewEmployerService(repo repositories.EmployerRepository, events EventPublisher, opts ...AccountOption) *EmployerService {
	return newAccountService[models.Employer, *models.Employer](repo, employerMessages, "employer", models.RoleEmployer, events, opts)
}

func newAccountService[T any, P AccountPtr[T]](repo repositories.AccountRepository[T], msgs entityMessages, entity, defaultRole string, events EventPublisher, opts []AccountOption) *AccountService[T, P] {
	var o accountOptions
	for _, opt := range opts {
		opt(&o)
	}
	s := &AccountService[T, P]{accounts: repo, directory: o.directory, defaultRole: defaultRole}
	s.CRUDService = &CRUDService[T, P]{
		repo:         repo,
		msgs:         msgs,
		entity:       entity,
		events:       events,
		beforeCreate: s.prepareCreate,
		beforeUpdate: s.prepareUpdate,
	}
	return s
}

// GetByEmail returns the account registered under email.
func (s *AccountService[T, P]) GetByEmail(ctx context.Context, email string) (*T, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(ErrNotFound, MsgInvalidUsername)
		}
		return nil, internalError("failed to get account by email", err)
	}
	return account, nil
}

func (s *AccountService[T, P]) prepareCreate(ctx context.Context, entity *T) error {
	user := P(entity).Base()
	if user.Password == "" {
		return newError(ErrInvalidInput, MsgPasswordRequired)
	}
	if err := s.checkEmail(ctx, entity); err != nil {
		return err
	}
	if err := setPassword(user); err != nil {
		return err
	}
	if len(user.Roles) == 0 {
		user.Roles = []string{s.defaultRole}
	}
	return nil
}

// prepareUpdate carries the stored credentials and roles over to a replace
// that did not supply a new password.
func (s *AccountService[T, P]) prepareUpdate(ctx context.Context, entity *T) error {
	user := P(entity).Base()
	stored, err := s.repo.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(ErrNotFound, s.msgs.notFound)
		}
		return internalError("failed to get "+s.entity, err)
	}
	if err := s.checkEmail(ctx, entity); err != nil {
		return err
	}
	current := P(stored).Base()
	user.Roles = current.Roles
	user.CreatedAt = current.CreatedAt
	if user.Password == "" {
		user.PasswordHash = current.PasswordHash
		return nil
	}
	return setPassword(user)
}

// checkEmail rejects an email already owned by a different account. An
// email identifies one account across all account tables.
func (s *AccountService[T, P]) checkEmail(ctx context.Context, entity *T) error {
	account := P(entity)
	owner, err := s.findByEmail(ctx, account.Base().Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return internalError("failed to look up account email", err)
	}
	if owner.Kind() == account.Kind() && owner.Base().ID == account.Base().ID {
		return nil
	}
	return newError(ErrDuplicateKey, MsgEmailTaken)
}

func (s *AccountService[T, P]) findByEmail(ctx context.Context, email string) (models.Account, error) {
	if s.directory != nil {
		return s.directory.FindByEmail(ctx, email)
	}
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return P(account), nil
}

func setPassword(user *models.User) error {
	if err := models.ValidatePassword(user.Password); err != nil {
		return newError(ErrInvalidInput, err.Error())
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return internalError("failed to hash password", err)
	}
	user.PasswordHash = string(hash)
	user.Password = ""
	return nil
}
