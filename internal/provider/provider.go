package provider

import (
	"context"
	"strings"
	"time"

	"github.com/roberta039/flight-search-3/internal/airports"
	"github.com/roberta039/flight-search-3/internal/domain"
)

// Client is a flight-data provider. Search maps the common criteria to the
// provider's wire parameters and normalizes the response into FlightOffers.
// Implementations absorb per-offer parse failures; a returned error means
// the whole call failed.
type Client interface {
	Name() string
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error)
}

// AirportSource is an airport-directory provider.
type AirportSource interface {
	Name() string
	ListAirports(ctx context.Context) ([]airports.Raw, error)
}

// parseLocalTime reads a provider timestamp as airport-local wall-clock.
// Offsets and "Z" suffixes some providers attach are stripped rather than
// converted; the stored time carries a UTC location marker and is only ever
// compared as a wall time.
func parseLocalTime(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "Z")
	if idx := strings.LastIndexAny(s, "+"); idx > 10 {
		s = s[:idx]
	} else if idx := strings.LastIndex(s, "-"); idx > 10 {
		s = s[:idx]
	}

	layouts := []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
