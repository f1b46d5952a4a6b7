package services

import (
	"errors"
	"log"
)

// Error kinds. Every error returned by a service is an *Error whose Kind is
// one of these, so callers match with errors.Is.
var (
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrIDMismatch           = errors.New("id mismatch")
	ErrForeignKeyNotFound   = errors.New("foreign key not found")
	ErrJobNotEligible       = errors.New("job not eligible")
	ErrDeadlinePassed       = errors.New("deadline passed")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrTooManyAttempts      = errors.New("too many attempts")
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrInternal             = errors.New("internal error")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidRole          = errors.New("invalid role")
	ErrUnavailable          = errors.New("unavailable")
)

// Error is a classified failure carrying the message shown to clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// internalError logs cause and hides it behind the generic message.
func internalError(op string, cause error) *Error {
	log.Printf("%s: %v", op, cause)
	return newError(ErrInternal, MsgUnexpected)
}
