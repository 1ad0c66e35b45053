package mw

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/roberta039/flight-search-3/internal/cache"
	"github.com/roberta039/flight-search-3/internal/utils"
)

type RateLimitConfig struct {
	MaxCallsPerMin int // per-IP requests per minute; <1 disables the middleware
	MaxEntries     int // cap on tracked IPs before a forced sweep
	SweepInterval  time.Duration
	IdleTTL        time.Duration
	TrustProxy     bool // resolve IP from proxy headers when true
}

type ipEntry struct {
	limiter  *cache.RateLimiter
	lastSeen time.Time
}

// ipLimiter tracks one sliding-window rate limiter per client IP. The same
// window mechanics used toward upstream providers protect the inbound side.
type ipLimiter struct {
	cfg       RateLimitConfig
	mu        sync.Mutex
	entries   map[string]*ipEntry
	lastSweep time.Time
}

func newIPLimiter(cfg RateLimitConfig) *ipLimiter {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	return &ipLimiter{
		cfg:       cfg,
		entries:   make(map[string]*ipEntry, 1024),
		lastSweep: time.Now(),
	}
}

func (l *ipLimiter) allow(key string, now time.Time) (ok bool, retryAfter time.Duration) {
	l.mu.Lock()
	if l.cfg.MaxEntries > 0 && len(l.entries) >= l.cfg.MaxEntries {
		l.sweepLocked(now)
	}
	e := l.entries[key]
	if e == nil {
		e = &ipEntry{limiter: cache.NewRateLimiter(l.cfg.MaxCallsPerMin, time.Minute)}
		l.entries[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	if !e.limiter.CanCall() {
		return false, e.limiter.WaitTime()
	}
	e.limiter.RecordCall()
	return true, 0
}

func (l *ipLimiter) sweepLocked(now time.Time) {
	for ip, e := range l.entries {
		if now.Sub(e.lastSeen) > l.cfg.IdleTTL {
			delete(l.entries, ip)
		}
	}
	l.lastSweep = now
}

func (l *ipLimiter) sweepMaybe(now time.Time) {
	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.cfg.SweepInterval {
		l.sweepLocked(now)
	}
	l.mu.Unlock()
}

func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.MaxCallsPerMin < 1 {
		// Disabled: pass-through middleware
		return func(next http.Handler) http.Handler { return next }
	}

	l := newIPLimiter(cfg)
	limitStr := strconv.Itoa(cfg.MaxCallsPerMin)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			l.sweepMaybe(now)

			key := utils.ClientIP(r, cfg.TrustProxy)

			ok, retry := l.allow(key, now)
			if !ok {
				sec := int(retry.Seconds())
				if sec < 1 {
					sec = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(sec))
				w.Header().Set("X-RateLimit-Limit", limitStr)
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Limit", limitStr)
			next.ServeHTTP(w, r)
		})
	}
}
