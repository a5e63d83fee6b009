package http

import (
	"sync"
	"time"
)

// rateRecord is one client's window state.
type rateRecord struct {
	count         int
	windowResetAt time.Time
}

// RateLimiter is a fixed-window request throttle keyed by client address.
// State is process-local; correctness is best effort per server instance.
// Stale records are never evicted - the keyspace is bounded by distinct
// client addresses and records are overwritten in place.
type RateLimiter struct {
	mu        sync.Mutex
	records   map[string]*rateRecord
	threshold int
	window    time.Duration
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing threshold requests per window.
func NewRateLimiter(threshold int, window time.Duration) *RateLimiter {
	if threshold <= 0 {
		threshold = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		records:   make(map[string]*rateRecord),
		threshold: threshold,
		window:    window,
		now:       time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (rl *RateLimiter) SetClock(now func() time.Time) {
	rl.now = now
}

// Allow reports whether the client may proceed, mutating its window state.
// The increment-or-reset is atomic per key so concurrent bursts from the same
// client cannot undercount.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rec, ok := rl.records[key]
	if !ok || now.After(rec.windowResetAt) {
		rl.records[key] = &rateRecord{count: 1, windowResetAt: now.Add(rl.window)}
		return true
	}

	if rec.count >= rl.threshold {
		return false
	}

	rec.count++
	return true
}
