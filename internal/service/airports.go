package service

import (
	"context"

	"github.com/roberta039/flight-search-3/internal/airports"
	"github.com/roberta039/flight-search-3/internal/logger"
)

// AllAirports returns the continent -> country -> airports directory.
// It is built from the airport source on first use and kept for the
// service lifetime; an unreachable source yields an empty directory, not
// an error.
func (s *FlightSearchService) AllAirports(ctx context.Context) airports.Directory {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.directory != nil {
		return s.directory
	}
	if s.airportSource == nil {
		return airports.Directory{}
	}

	raw, err := s.airportSource.ListAirports(ctx)
	if err != nil {
		s.log.Warn("airport directory unavailable",
			logger.String("provider", s.airportSource.Name()),
			logger.Error(err))
		return airports.Directory{}
	}

	s.directory = airports.Build(raw)
	s.log.Info("airport directory built",
		logger.Int("airports", s.directory.Count()))
	return s.directory
}

// InvalidateAirports drops the built directory so the next request
// rebuilds it. Wired to the explicit cache-clear endpoint.
func (s *FlightSearchService) InvalidateAirports() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.directory = nil
}
