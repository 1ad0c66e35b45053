package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roberta039/flight-search-3/internal/airports"
	"github.com/roberta039/flight-search-3/internal/cache"
	"github.com/roberta039/flight-search-3/internal/domain"
	"github.com/roberta039/flight-search-3/internal/logger"
	"github.com/roberta039/flight-search-3/internal/provider"
)

// MonitorStore is the optional durable backend for monitors and history.
// All writes are best effort; the in-memory cache manager stays
// authoritative.
type MonitorStore interface {
	SaveMonitor(ctx context.Context, routeKey string, monitor cache.PriceMonitor) error
	DeleteMonitor(ctx context.Context, routeKey string) error
	AppendHistory(ctx context.Context, routeKey string, sample cache.PricePoint) error
}

// Options wires a FlightSearchService.
type Options struct {
	Providers     []provider.Client
	AirportSource provider.AirportSource
	Caches        *cache.Manager
	Store         MonitorStore // nil = memory only
	Logger        logger.Logger
	SearchTimeout time.Duration // overall deadline across all providers
}

// FlightSearchService orchestrates one logical search across every
// configured provider and owns the route-key format for monitors.
type FlightSearchService struct {
	providers     []provider.Client
	airportSource provider.AirportSource
	caches        *cache.Manager
	store         MonitorStore
	log           logger.Logger
	searchTimeout time.Duration

	mu        sync.Mutex
	directory airports.Directory // built lazily, kept for the service lifetime
}

func New(opts Options) *FlightSearchService {
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = 45 * time.Second
	}
	return &FlightSearchService{
		providers:     opts.Providers,
		airportSource: opts.AirportSource,
		caches:        opts.Caches,
		store:         opts.Store,
		log:           opts.Logger,
		searchTimeout: opts.SearchTimeout,
	}
}

// SearchFlights fans the criteria out to every provider, merges the
// normalized offers, and records the cheapest price for the route. The only
// error it returns is malformed criteria; provider failures degrade to that
// provider contributing zero offers, and an all-failed search comes back
// empty rather than failed.
func (s *FlightSearchService) SearchFlights(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	var mu sync.Mutex
	var merged []domain.FlightOffer

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range s.providers {
		p := p
		g.Go(func() error {
			offers, err := p.Search(gctx, criteria)
			if err != nil {
				// Partial failure: log and move on with what the others found.
				s.log.Warn("provider search failed",
					logger.String("provider", p.Name()),
					logger.Error(err))
				return nil
			}
			s.log.Info("provider returned offers",
				logger.String("provider", p.Name()),
				logger.Int("count", len(offers)))
			mu.Lock()
			merged = append(merged, offers...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	if criteria.NonStop {
		merged = domain.FilterNonStop(merged)
	}
	merged = domain.Deduplicate(merged)
	domain.SortOffers(merged, criteria.SortBy)
	merged = domain.Truncate(merged, criteria.MaxResults)

	if cheapest, ok := domain.MinPrice(merged); ok {
		s.recordPrice(ctx, criteria.RouteKey(), cheapest)
	}

	return merged, nil
}

// AddPriceMonitor registers a watch on one route; the stored criteria are
// reused by the background refresher.
func (s *FlightSearchService) AddPriceMonitor(ctx context.Context, criteria domain.SearchCriteria, targetPrice *float64) string {
	routeKey := criteria.RouteKey()
	s.caches.AddPriceMonitor(routeKey, criteria, targetPrice)

	if s.store != nil {
		if monitor, ok := s.caches.PriceMonitors()[routeKey]; ok {
			if err := s.store.SaveMonitor(ctx, routeKey, monitor); err != nil {
				s.log.Warn("failed to persist monitor",
					logger.String("route", routeKey),
					logger.Error(err))
			}
		}
	}
	return routeKey
}

// RemovePriceMonitor drops a watch; no-op when absent.
func (s *FlightSearchService) RemovePriceMonitor(ctx context.Context, routeKey string) {
	s.caches.RemovePriceMonitor(routeKey)

	if s.store != nil {
		if err := s.store.DeleteMonitor(ctx, routeKey); err != nil {
			s.log.Warn("failed to delete persisted monitor",
				logger.String("route", routeKey),
				logger.Error(err))
		}
	}
}

// MonitoredRoutes returns a snapshot of every active watch.
func (s *FlightSearchService) MonitoredRoutes() map[string]cache.PriceMonitor {
	return s.caches.PriceMonitors()
}

// PriceHistory returns the recorded samples for one route, oldest first.
func (s *FlightSearchService) PriceHistory(routeKey string) []cache.PricePoint {
	return s.caches.PriceHistory(routeKey)
}

func (s *FlightSearchService) recordPrice(ctx context.Context, routeKey string, price float64) {
	s.caches.UpdatePriceHistory(routeKey, price)
	s.log.Debug("recorded route price",
		logger.String("route", routeKey),
		logger.Float64("price", price))

	if s.store == nil {
		return
	}
	sample := cache.PricePoint{Price: price, Timestamp: time.Now()}
	if err := s.store.AppendHistory(ctx, routeKey, sample); err != nil {
		s.log.Warn("failed to persist price sample",
			logger.String("route", routeKey),
			logger.Error(err))
	}
	if monitor, ok := s.caches.PriceMonitors()[routeKey]; ok {
		if err := s.store.SaveMonitor(ctx, routeKey, monitor); err != nil {
			s.log.Warn("failed to persist monitor",
				logger.String("route", routeKey),
				logger.Error(err))
		}
	}
}
