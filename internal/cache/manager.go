package cache

import (
	"sync"
	"time"

	"github.com/roberta039/flight-search-3/internal/domain"
)

// Cache categories. Each owns an independent capacity and TTL.
const (
	CategoryAirports = "airports"
	CategoryFlights  = "flights"
	CategoryPrices   = "prices"
	CategoryTokens   = "tokens"
)

// CategorySpec fixes one category's bounds.
type CategorySpec struct {
	MaxSize int
	TTL     time.Duration
}

// DefaultCategories mirrors how long each data class stays useful:
// airport lists barely change, flight results go stale in minutes, and
// OAuth tokens live just under their upstream 30-minute lifetime.
func DefaultCategories() map[string]CategorySpec {
	return map[string]CategorySpec{
		CategoryAirports: {MaxSize: 10000, TTL: 24 * time.Hour},
		CategoryFlights:  {MaxSize: 1000, TTL: 5 * time.Minute},
		CategoryPrices:   {MaxSize: 500, TTL: 3 * time.Minute},
		CategoryTokens:   {MaxSize: 10, TTL: 28 * time.Minute},
	}
}

const (
	defaultMaxCalls  = 10
	defaultPeriod    = time.Minute
	priceHistoryKeep = 100
)

// PricePoint is one observed price sample.
type PricePoint struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// PriceMonitor is one watched route. Mutated only through
// UpdatePriceHistory; owned exclusively by the Manager.
type PriceMonitor struct {
	Params      domain.SearchCriteria `json:"params"`
	TargetPrice *float64              `json:"target_price,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	LastCheck   *time.Time            `json:"last_check,omitempty"`
	LowestPrice *float64              `json:"lowest_price,omitempty"`
}

// Manager owns every category cache, every named rate limiter, and the
// price monitor/history registries. One instance is constructed at startup
// and injected wherever needed; there is no package-level singleton.
type Manager struct {
	caches map[string]*TTLCache

	mu       sync.RWMutex
	limiters map[string]*RateLimiter
	monitors map[string]*PriceMonitor
	history  map[string][]PricePoint

	now func() time.Time
}

// NewManager builds a manager with the given category specs, falling back
// to DefaultCategories when specs is nil.
func NewManager(specs map[string]CategorySpec) *Manager {
	if specs == nil {
		specs = DefaultCategories()
	}

	caches := make(map[string]*TTLCache, len(specs))
	for category, spec := range specs {
		caches[category] = NewTTLCache(spec.MaxSize, spec.TTL)
	}

	return &Manager{
		caches:   caches,
		limiters: make(map[string]*RateLimiter),
		monitors: make(map[string]*PriceMonitor),
		history:  make(map[string][]PricePoint),
		now:      time.Now,
	}
}

// Get looks a value up under the hash of keyParts. Unknown categories and
// expired entries are plain misses, never errors.
func (m *Manager) Get(category string, keyParts ...any) (any, bool) {
	c, ok := m.caches[category]
	if !ok {
		return nil, false
	}
	return c.Get(Key(keyParts...))
}

// Set stores a value under the hash of keyParts. Unknown categories are
// ignored.
func (m *Manager) Set(category string, value any, keyParts ...any) {
	c, ok := m.caches[category]
	if !ok {
		return
	}
	c.Set(Key(keyParts...), value)
}

// ClearCache clears one named category, or every category when the name is
// empty. Rate limiters and price monitors are unaffected.
func (m *Manager) ClearCache(category string) {
	if category != "" {
		if c, ok := m.caches[category]; ok {
			c.Clear()
		}
		return
	}
	for _, c := range m.caches {
		c.Clear()
	}
}

// RateLimiterFor returns the limiter registered under name, lazily creating
// one with the default quota for unknown names.
func (m *Manager) RateLimiterFor(name string) *RateLimiter {
	m.mu.RLock()
	rl, ok := m.limiters[name]
	m.mu.RUnlock()
	if ok {
		return rl
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if rl, ok = m.limiters[name]; ok {
		return rl
	}
	rl = NewRateLimiter(defaultMaxCalls, defaultPeriod)
	m.limiters[name] = rl
	return rl
}

// SetRateLimit installs a specific quota for one named API, replacing any
// lazily created default.
func (m *Manager) SetRateLimit(name string, maxCalls int, period time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.limiters[name] = NewRateLimiter(maxCalls, period)
}

// CanCallAPI delegates to the named limiter.
func (m *Manager) CanCallAPI(name string) bool {
	return m.RateLimiterFor(name).CanCall()
}

// RecordAPICall delegates to the named limiter.
func (m *Manager) RecordAPICall(name string) {
	m.RateLimiterFor(name).RecordCall()
}

// AddPriceMonitor creates or replaces the monitor for routeKey. Re-adding
// an existing route overwrites the parameters but keeps the original
// CreatedAt, so a tweaked monitor keeps its age and accumulated history.
func (m *Manager) AddPriceMonitor(routeKey string, params domain.SearchCriteria, targetPrice *float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	createdAt := m.now()
	if existing, ok := m.monitors[routeKey]; ok {
		createdAt = existing.CreatedAt
	}
	m.monitors[routeKey] = &PriceMonitor{
		Params:      params,
		TargetPrice: targetPrice,
		CreatedAt:   createdAt,
	}
}

// RemovePriceMonitor deletes the monitor for routeKey; no-op when absent.
func (m *Manager) RemovePriceMonitor(routeKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.monitors, routeKey)
}

// UpdatePriceHistory appends a timestamped sample for routeKey, trimming to
// the most recent 100, and refreshes the route's monitor if one exists.
// The monitor's lowest price only ever decreases, so concurrent same-route
// updates merge benignly.
func (m *Manager) UpdatePriceHistory(routeKey string, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	samples := append(m.history[routeKey], PricePoint{Price: price, Timestamp: now})
	if len(samples) > priceHistoryKeep {
		samples = samples[len(samples)-priceHistoryKeep:]
	}
	m.history[routeKey] = samples

	if monitor, ok := m.monitors[routeKey]; ok {
		checked := now
		monitor.LastCheck = &checked
		if monitor.LowestPrice == nil || price < *monitor.LowestPrice {
			lowest := price
			monitor.LowestPrice = &lowest
		}
	}
}

// PriceMonitors returns a snapshot copy of every monitor; callers may
// mutate the result freely.
func (m *Manager) PriceMonitors() map[string]PriceMonitor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]PriceMonitor, len(m.monitors))
	for key, monitor := range m.monitors {
		snap := *monitor
		snap.TargetPrice = copyFloat(monitor.TargetPrice)
		snap.LowestPrice = copyFloat(monitor.LowestPrice)
		snap.LastCheck = copyTime(monitor.LastCheck)
		out[key] = snap
	}
	return out
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// PriceHistory returns the stored samples for routeKey, oldest first, or an
// empty slice when the route was never searched.
func (m *Manager) PriceHistory(routeKey string) []PricePoint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	samples := m.history[routeKey]
	out := make([]PricePoint, len(samples))
	copy(out, samples)
	return out
}

// RestoreMonitor reinstalls a persisted monitor, keeping its original
// timestamps. Used when hydrating from the durable store at startup.
func (m *Manager) RestoreMonitor(routeKey string, monitor PriceMonitor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.monitors[routeKey] = &monitor
}

// RestoreHistory reinstalls persisted samples for routeKey, trimmed to the
// retention cap.
func (m *Manager) RestoreHistory(routeKey string, samples []PricePoint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(samples) > priceHistoryKeep {
		samples = samples[len(samples)-priceHistoryKeep:]
	}
	m.history[routeKey] = append([]PricePoint(nil), samples...)
}
