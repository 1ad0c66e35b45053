package scheduler

import (
	"context"
	"time"

	"github.com/roberta039/flight-search-3/internal/domain"
	"github.com/roberta039/flight-search-3/internal/logger"
	"github.com/roberta039/flight-search-3/internal/service"
)

// MonitorRefresher periodically re-searches every monitored route so price
// history keeps accumulating and target-price alerts fire without user
// traffic.
type MonitorRefresher struct {
	svc           *service.FlightSearchService
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewMonitorRefresher creates a new monitor refresher
func NewMonitorRefresher(
	svc *service.FlightSearchService,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *MonitorRefresher {
	return &MonitorRefresher{
		svc:           svc,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic refresh process
func (mr *MonitorRefresher) Start(ctx context.Context) error {
	ticker := time.NewTicker(mr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				mr.Refresh(ctx)
			case <-mr.manualTrigger:
				mr.logger.Info("manual monitor refresh triggered")
				mr.Refresh(ctx)
			case <-mr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresher
func (mr *MonitorRefresher) Stop() {
	close(mr.stopCh)
}

// Refresh re-runs the search for every monitored route. A failing route is
// logged and skipped; one bad provider or route never blocks the others.
func (mr *MonitorRefresher) Refresh(ctx context.Context) {
	monitors := mr.svc.MonitoredRoutes()
	if len(monitors) == 0 {
		return
	}

	mr.logger.Info("refreshing monitored routes", logger.Int("count", len(monitors)))

	for route, mon := range monitors {
		offers, err := mr.svc.SearchFlights(ctx, mon.Params)
		if err != nil {
			mr.logger.Error("monitor refresh failed",
				logger.String("route", route),
				logger.Error(err))
			continue
		}
		cheapest, ok := domain.MinPrice(offers)
		if !ok {
			mr.logger.Warn("monitor refresh found no offers",
				logger.String("route", route))
			continue
		}

		if mon.TargetPrice != nil && cheapest <= *mon.TargetPrice {
			mr.logger.Info("target price reached",
				logger.String("route", route),
				logger.Float64("price", cheapest),
				logger.Float64("target", *mon.TargetPrice))
		}
	}
}
