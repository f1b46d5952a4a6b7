package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"jobboard/internal/services"
	"jobboard/internal/throttle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCounter struct{}

func (failingCounter) Increment(context.Context, string) (int64, error) {
	return 0, errors.New("redis: connection refused")
}

func (failingCounter) Reset(context.Context, string) error {
	return errors.New("redis: connection refused")
}

func TestLoginThrottle_Attempt(t *testing.T) {
	limiter := services.NewLoginThrottle(throttle.NewMemoryCounter(), 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Attempt(ctx, "10.0.0.1"), "attempt %d", i+1)
	}
	assertServiceError(t, limiter.Attempt(ctx, "10.0.0.1"), services.ErrTooManyAttempts, services.MsgTooManyAttempts)
	assert.NoError(t, limiter.Attempt(ctx, "10.0.0.2"), "addresses are counted separately")
}

func TestLoginThrottle_Reset(t *testing.T) {
	limiter := services.NewLoginThrottle(throttle.NewMemoryCounter(), 3)
	for i := 0; i < 4; i++ {
		_ = limiter.Attempt(ctx, "10.0.0.1")
	}

	require.NoError(t, limiter.Reset(ctx, "10.0.0.1"))
	assert.NoError(t, limiter.Attempt(ctx, "10.0.0.1"))
	assert.NoError(t, limiter.Reset(ctx, "never-seen"))
}

func TestLoginThrottle_DefaultLimit(t *testing.T) {
	limiter := services.NewLoginThrottle(throttle.NewMemoryCounter(), 0)
	for i := 0; i < services.DefaultMaxLoginAttempts; i++ {
		require.NoError(t, limiter.Attempt(ctx, "10.0.0.1"))
	}
	assert.ErrorIs(t, limiter.Attempt(ctx, "10.0.0.1"), services.ErrTooManyAttempts)
}

func TestLoginThrottle_Concurrent(t *testing.T) {
	limiter := services.NewLoginThrottle(throttle.NewMemoryCounter(), 3)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		rejected int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Attempt(ctx, "10.0.0.1"); err != nil {
				mu.Lock()
				rejected++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 17, rejected)
}

func TestLoginThrottle_CounterFailureIsInternal(t *testing.T) {
	limiter := services.NewLoginThrottle(failingCounter{}, 3)

	assertServiceError(t, limiter.Attempt(ctx, "10.0.0.1"), services.ErrInternal, services.MsgUnexpected)
	assertServiceError(t, limiter.Reset(ctx, "10.0.0.1"), services.ErrInternal, services.MsgUnexpected)
}
