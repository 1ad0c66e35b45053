package cache

import (
	"sync"
	"time"
)

// RateLimiter is a sliding-window admission counter for one named upstream
// API. It is advisory: it never blocks or rejects, it only tells callers
// whether the window has room and how long to back off. Callers are expected
// to sleep WaitTime() themselves and then RecordCall() once per real request.
type RateLimiter struct {
	mu       sync.Mutex
	maxCalls int
	period   time.Duration
	calls    []time.Time
	now      func() time.Time
}

// NewRateLimiter allows maxCalls per rolling period.
func NewRateLimiter(maxCalls int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		maxCalls: maxCalls,
		period:   period,
		now:      time.Now,
	}
}

// CanCall reports whether the window has capacity. It prunes expired
// timestamps as a side effect, so it is not a pure query.
func (rl *RateLimiter) CanCall() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.pruneLocked(rl.now())
	return len(rl.calls) < rl.maxCalls
}

// RecordCall appends the current time to the window. Invoke exactly once
// per actual outbound request.
func (rl *RateLimiter) RecordCall() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.calls = append(rl.calls, rl.now())
}

// WaitTime returns 0 when the window has capacity, otherwise the time until
// the oldest recorded call leaves the window.
func (rl *RateLimiter) WaitTime() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.pruneLocked(now)
	if len(rl.calls) < rl.maxCalls {
		return 0
	}

	oldest := rl.calls[0]
	for _, t := range rl.calls[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}

	wait := rl.period - now.Sub(oldest)
	if wait < 0 {
		return 0
	}
	return wait
}

func (rl *RateLimiter) pruneLocked(now time.Time) {
	kept := rl.calls[:0]
	for _, t := range rl.calls {
		if now.Sub(t) < rl.period {
			kept = append(kept, t)
		}
	}
	rl.calls = kept
}
