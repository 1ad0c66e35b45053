package cache

import (
	"testing"
	"time"
)

func TestRateLimiterWindowFills(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.CanCall() {
		t.Fatal("CanCall() = false on empty window")
	}
	rl.RecordCall()

	if !rl.CanCall() {
		t.Fatal("CanCall() = false with one slot left")
	}
	rl.RecordCall()

	if rl.CanCall() {
		t.Fatal("CanCall() = true on full window")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	rl.RecordCall()
	if rl.CanCall() {
		t.Fatal("CanCall() = true on full window")
	}

	// Advance just short of the window edge
	now = now.Add(59 * time.Second)
	if rl.CanCall() {
		t.Fatal("CanCall() = true before the call left the window")
	}

	now = now.Add(2 * time.Second)
	if !rl.CanCall() {
		t.Fatal("CanCall() = false after the call left the window")
	}
}

func TestRateLimiterWaitTime(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	if got := rl.WaitTime(); got != 0 {
		t.Fatalf("WaitTime() = %v on empty window, want 0", got)
	}

	rl.RecordCall()
	now = now.Add(20 * time.Second)

	if got := rl.WaitTime(); got != 40*time.Second {
		t.Fatalf("WaitTime() = %v, want 40s", got)
	}

	now = now.Add(41 * time.Second)
	if got := rl.WaitTime(); got != 0 {
		t.Fatalf("WaitTime() = %v after window passed, want 0", got)
	}
}
