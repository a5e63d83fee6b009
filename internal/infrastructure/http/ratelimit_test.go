package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUpToThreshold(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"), "request beyond the threshold must be denied")
}

func TestRateLimiterDenialDoesNotExtendWindow(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.SetClock(func() time.Time { return now })

	assert.True(t, rl.Allow("k"))
	assert.False(t, rl.Allow("k"))

	// A denied request must not reset or extend the window. Just past the
	// original reset instant the client is admitted again.
	now = now.Add(time.Minute + time.Second)
	assert.True(t, rl.Allow("k"))
}

func TestRateLimiterWindowReset(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.SetClock(func() time.Time { return now })

	assert.True(t, rl.Allow("k"))
	assert.True(t, rl.Allow("k"))
	assert.False(t, rl.Allow("k"))

	now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow("k"), "expired window starts a fresh count")
	assert.True(t, rl.Allow("k"))
	assert.False(t, rl.Allow("k"))
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "a second client has its own window")
}

func TestRateLimiterDefaults(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	assert.Equal(t, 20, rl.threshold)
	assert.Equal(t, time.Minute, rl.window)
}
