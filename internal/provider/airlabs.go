package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/roberta039/flight-search-3/internal/airports"
	"github.com/roberta039/flight-search-3/internal/cache"
	"github.com/roberta039/flight-search-3/internal/domain"
	"github.com/roberta039/flight-search-3/internal/logger"
)

const airLabsName = "airlabs"

// AirLabsConfig carries the static API key and transport bounds.
type AirLabsConfig struct {
	BaseURL string
	Key     string
	Timeout time.Duration
	Retry   RetryPolicy
}

// AirLabs wraps the AirLabs data API. It is the airport-directory source
// and also contributes schedule-based offers: published timetable entries
// with an indicative fare but no per-leg segment detail.
type AirLabs struct {
	cfg       AirLabsConfig
	caches    *cache.Manager
	transport *transport
	log       logger.Logger
}

func NewAirLabs(cfg AirLabsConfig, caches *cache.Manager, log logger.Logger) *AirLabs {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://airlabs.co/api/v9"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryPolicy()
	}

	client := &AirLabs{
		cfg:    cfg,
		caches: caches,
		log:    log.With(logger.String("provider", airLabsName)),
	}
	client.transport = newTransport(cfg.Timeout, caches.RateLimiterFor(airLabsName), cfg.Retry, client.log)
	return client
}

func (a *AirLabs) Name() string { return airLabsName }

type airLabsSchedulesResponse struct {
	Response []struct {
		AirlineIata string  `json:"airline_iata"`
		AirlineName string  `json:"airline_name"`
		FlightIata  string  `json:"flight_iata"`
		DepTime     string  `json:"dep_time"` // "2006-01-02 15:04"
		ArrTime     string  `json:"arr_time"`
		Duration    int     `json:"duration"` // seconds
		Stops       int     `json:"stops"`
		Price       float64 `json:"price"`
	} `json:"response"`
}

// Search queries the published schedules for the route. The endpoint
// returns every upcoming departure, so entries outside the requested day
// are filtered out here.
func (a *AirLabs) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	if cached, ok := a.caches.Get(cache.CategoryFlights, airLabsName, criteria); ok {
		if offers, ok := cached.([]domain.FlightOffer); ok {
			a.log.Debug("search cache hit")
			return offers, nil
		}
	}

	var resp airLabsSchedulesResponse
	err := a.transport.getJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"/schedules", http.NoBody)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("dep_iata", criteria.Origin)
		q.Set("arr_iata", criteria.Destination)
		q.Set("api_key", a.cfg.Key)
		req.URL.RawQuery = q.Encode()
		return req, nil
	}, &resp)
	if err != nil {
		return nil, err
	}

	offers := a.parseOffers(resp, criteria)
	a.caches.Set(cache.CategoryFlights, offers, airLabsName, criteria)
	return offers, nil
}

func (a *AirLabs) parseOffers(resp airLabsSchedulesResponse, criteria domain.SearchCriteria) []domain.FlightOffer {
	cabin := domain.NormalizeCabinClass(criteria.CabinClass)
	if cabin == "" {
		cabin = domain.CabinEconomy
	}
	day := criteria.DepartureDate.Format("2006-01-02")

	offers := make([]domain.FlightOffer, 0, len(resp.Response))
	for i, raw := range resp.Response {
		dep, err := parseLocalTime(raw.DepTime)
		if err != nil {
			a.log.Debug("dropping schedule with bad departure", logger.String("flight", raw.FlightIata))
			continue
		}
		arr, err := parseLocalTime(raw.ArrTime)
		if err != nil {
			a.log.Debug("dropping schedule with bad arrival", logger.String("flight", raw.FlightIata))
			continue
		}
		if dep.Format("2006-01-02") != day {
			continue
		}
		if raw.Price <= 0 {
			a.log.Debug("dropping schedule without fare", logger.String("flight", raw.FlightIata))
			continue
		}

		duration := domain.DurationFromSeconds(raw.Duration)
		if raw.Duration <= 0 {
			duration = domain.DurationBetween(dep, arr)
		}

		airline := raw.AirlineName
		if airline == "" {
			airline = raw.AirlineIata
		}

		offers = append(offers, domain.FlightOffer{
			ID:            fmt.Sprintf("ALB-%d", i+1),
			Source:        airLabsName,
			Airline:       airline,
			AirlineCode:   raw.AirlineIata,
			Origin:        criteria.Origin,
			Destination:   criteria.Destination,
			DepartureTime: dep,
			ArrivalTime:   arr,
			Duration:      duration,
			Price:         raw.Price,
			Currency:      criteria.Currency,
			CabinClass:    cabin,
			Stops:         raw.Stops,
		})
	}
	return offers
}

type airLabsAirportsResponse struct {
	Response []struct {
		IataCode    string  `json:"iata_code"`
		Name        string  `json:"name"`
		City        string  `json:"city"`
		CountryCode string  `json:"country_code"`
		Lat         float64 `json:"lat"`
		Lng         float64 `json:"lng"`
	} `json:"response"`
}

// ListAirports fetches the flat worldwide airport list. Entries without an
// IATA code are heliports and rail stations; they are skipped.
func (a *AirLabs) ListAirports(ctx context.Context) ([]airports.Raw, error) {
	if cached, ok := a.caches.Get(cache.CategoryAirports, airLabsName, "list"); ok {
		if list, ok := cached.([]airports.Raw); ok {
			a.log.Debug("airport list cache hit")
			return list, nil
		}
	}

	var resp airLabsAirportsResponse
	err := a.transport.getJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"/airports", http.NoBody)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("api_key", a.cfg.Key)
		req.URL.RawQuery = q.Encode()
		return req, nil
	}, &resp)
	if err != nil {
		return nil, err
	}

	list := make([]airports.Raw, 0, len(resp.Response))
	for _, raw := range resp.Response {
		if raw.IataCode == "" {
			continue
		}
		list = append(list, airports.Raw{
			Code:        raw.IataCode,
			Name:        raw.Name,
			City:        raw.City,
			CountryCode: raw.CountryCode,
			Latitude:    raw.Lat,
			Longitude:   raw.Lng,
		})
	}

	a.log.Info("fetched airport list", logger.Int("count", len(list)))
	a.caches.Set(cache.CategoryAirports, list, airLabsName, "list")
	return list, nil
}
