package services

import (
	"context"

	"jobboard/internal/throttle"
)

// DefaultMaxLoginAttempts is the number of logins allowed per client address.
const DefaultMaxLoginAttempts = 3

// LoginThrottle limits login attempts per client address. Counts never
// decay; only Reset clears them.
type LoginThrottle struct {
	counter throttle.Counter
	limit   int64
}

// NewLoginThrottle creates a LoginThrottle over counter. A non-positive
// limit falls back to DefaultMaxLoginAttempts.
func NewLoginThrottle(counter throttle.Counter, limit int) *LoginThrottle {
	if limit <= 0 {
		limit = DefaultMaxLoginAttempts
	}
	return &LoginThrottle{counter: counter, limit: int64(limit)}
}

// Attempt records one attempt from address and rejects it once the count
// exceeds the limit.
func (t *LoginThrottle) Attempt(ctx context.Context, address string) error {
	count, err := t.counter.Increment(ctx, address)
	if err != nil {
		return internalError("failed to count login attempt", err)
	}
	if count > t.limit {
		return newError(ErrTooManyAttempts, MsgTooManyAttempts)
	}
	return nil
}

// Reset clears the attempts recorded for address.
func (t *LoginThrottle) Reset(ctx context.Context, address string) error {
	if err := t.counter.Reset(ctx, address); err != nil {
		return internalError("failed to reset login attempts", err)
	}
	return nil
}
