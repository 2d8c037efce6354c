package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_Allow(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	limiter := NewLimiter(NewMemoryStore(), 3, time.Hour, clock)

	assert.True(t, limiter.Allow("generations:user-1"))
	assert.True(t, limiter.Allow("generations:user-1"))
	assert.True(t, limiter.Allow("generations:user-1"))
	assert.False(t, limiter.Allow("generations:user-1"), "fourth event exceeds the window budget")

	// Other keys have their own budget.
	assert.True(t, limiter.Allow("generations:user-2"))

	// A new window opens once the old one expires.
	current = current.Add(time.Hour + time.Second)
	assert.True(t, limiter.Allow("generations:user-1"))
}

func TestLimiter_Info(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	limiter := NewLimiter(NewMemoryStore(), 2, time.Hour, clock)

	info := limiter.Info("key")
	assert.Equal(t, 2, info.Remaining)
	assert.False(t, info.Limited)

	limiter.Allow("key")
	info = limiter.Info("key")
	assert.Equal(t, 1, info.Remaining)
	assert.False(t, info.Limited)
	assert.Equal(t, current.Add(time.Hour), info.ResetAt)

	limiter.Allow("key")
	info = limiter.Info("key")
	assert.Equal(t, 0, info.Remaining)
	assert.True(t, info.Limited)

	// Info never consumes budget.
	assert.Equal(t, limiter.Info("key"), limiter.Info("key"))
}

func TestLimiter_Sweep(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	store := NewMemoryStore()
	limiter := NewLimiter(store, 5, time.Hour, clock)

	limiter.Allow("stale")
	current = current.Add(2 * time.Hour)
	limiter.Allow("fresh")

	limiter.Sweep()

	_, ok := store.Get("stale")
	assert.False(t, ok, "expired window should be dropped")
	_, ok = store.Get("fresh")
	assert.True(t, ok)
}
