package throttle_test

import (
	"context"
	"sync"
	"testing"

	"jobboard/internal/throttle"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseCounter(t *testing.T, counter throttle.Counter) {
	t.Helper()
	ctx := context.Background()

	for want := int64(1); want <= 4; want++ {
		got, err := counter.Increment(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := counter.Increment(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	require.NoError(t, counter.Reset(ctx, "10.0.0.1"))
	got, err = counter.Increment(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	require.NoError(t, counter.Reset(ctx, "unknown"))
}

func TestMemoryCounter(t *testing.T) {
	exerciseCounter(t, throttle.NewMemoryCounter())
}

func TestMemoryCounter_ResetOfUnknownKeyDoesNotTrackIt(t *testing.T) {
	counter := throttle.NewMemoryCounter()

	require.NoError(t, counter.Reset(context.Background(), "10.0.0.9"))
	assert.Equal(t, int64(0), counter.Count("10.0.0.9"))
}

func TestMemoryCounter_Concurrent(t *testing.T) {
	counter := throttle.NewMemoryCounter()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = counter.Increment(context.Background(), "10.0.0.1")
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), counter.Count("10.0.0.1"))
}

func TestRedisCounter(t *testing.T) {
	srv := miniredis.RunT(t)
	counter, err := throttle.NewRedisCounter(srv.Addr(), "", "")
	require.NoError(t, err)
	defer counter.Close()

	exerciseCounter(t, counter)

	assert.True(t, srv.Exists("jobboard:login-attempts:10.0.0.1"))
	assert.False(t, srv.Exists("jobboard:login-attempts:unknown"))
}

func TestRedisCounter_SharedAcrossClients(t *testing.T) {
	srv := miniredis.RunT(t)
	first, err := throttle.NewRedisCounter(srv.Addr(), "", "test")
	require.NoError(t, err)
	defer first.Close()
	second, err := throttle.NewRedisCounter(srv.Addr(), "", "test")
	require.NoError(t, err)
	defer second.Close()

	ctx := context.Background()
	_, err = first.Increment(ctx, "10.0.0.1")
	require.NoError(t, err)
	got, err := second.Increment(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestRedisCounter_FailsWhenUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	counter, err := throttle.NewRedisCounter(srv.Addr(), "", "")
	require.NoError(t, err)
	defer counter.Close()
	srv.Close()

	_, err = counter.Increment(context.Background(), "10.0.0.1")
	assert.Error(t, err)
}

func TestNewRedisCounter_RequiresAddress(t *testing.T) {
	_, err := throttle.NewRedisCounter("  ", "", "")
	assert.Error(t, err)
}
