package services

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/repositories"
)

// AuthService handles registration, login and token validation.
type AuthService struct {
	identity  IdentityStore
	tokens    *TokenIssuer
	seekers   *JobSeekerService
	employers *EmployerService
}

// NewAuthService creates a new AuthService.
func NewAuthService(identity IdentityStore, tokens *TokenIssuer, seekers *JobSeekerService, employers *EmployerService) *AuthService {
	return &AuthService{
		identity:  identity,
		tokens:    tokens,
		seekers:   seekers,
		employers: employers,
	}
}

// Register creates the account variant matching the requested role. The
// password is hashed by the account service before it is saved.
func (s *AuthService) Register(ctx context.Context, reg models.Registration) (models.Account, error) {
	if reg.Password == "" {
		return nil, newError(ErrInvalidInput, MsgPasswordRequired)
	}
	if strings.TrimSpace(reg.Role) == "" {
		return nil, newError(ErrInvalidInput, MsgRoleRequired)
	}
	account, err := models.NewAccount(reg)
	if err != nil {
		return nil, newError(ErrInvalidRole, MsgRoleInvalid)
	}

	if holder, ok := account.(models.CompanyHolder); ok && strings.TrimSpace(holder.Company()) == "" {
		return nil, newError(ErrInvalidInput, MsgCompanyRequired)
	}

	// The account services reject an email owned by any other account.
	switch a := account.(type) {
	case *models.Employer:
		err = s.employers.Create(ctx, a)
	case *models.JobSeeker:
		err = s.seekers.Create(ctx, a)
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Login verifies the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", newError(ErrInvalidInput, MsgEmailRequired)
	}
	account, err := s.identity.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", newError(ErrInvalidCredentials, MsgInvalidUsername)
		}
		return "", internalError("failed to look up account", err)
	}
	if password == "" {
		return "", newError(ErrInvalidInput, MsgPasswordEmpty)
	}
	if !s.identity.CheckPassword(account, password) {
		return "", newError(ErrInvalidCredentials, MsgInvalidPassword)
	}
	return s.tokens.Issue(account.Base().Email, s.identity.Roles(account))
}

// ValidateToken parses and validates a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokens.Validate(tokenString)
}
