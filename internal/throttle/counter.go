package throttle

import (
	"context"
	"sync"
)

// Counter tracks attempts per key. Increment is atomic per key.
type Counter interface {
	Increment(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// MemoryCounter is a process-local Counter. Counts never expire.
type MemoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewMemoryCounter creates an empty MemoryCounter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{counts: make(map[string]int64)}
}

// Increment adds one attempt for key and returns the new count.
func (c *MemoryCounter) Increment(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

// Reset zeroes the count for key if it is tracked.
func (c *MemoryCounter) Reset(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.counts[key]; ok {
		c.counts[key] = 0
	}
	return nil
}

// Count returns the current count for key.
func (c *MemoryCounter) Count(key string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[key]
}
