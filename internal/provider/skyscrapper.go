package provider

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/roberta039/flight-search-3/internal/cache"
	"github.com/roberta039/flight-search-3/internal/domain"
	"github.com/roberta039/flight-search-3/internal/logger"
)

const skyScrapperName = "skyscrapper"

// SkyScrapperConfig carries the RapidAPI key and transport bounds.
type SkyScrapperConfig struct {
	BaseURL string
	Key     string
	Timeout time.Duration
	Retry   RetryPolicy
}

// SkyScrapper wraps the Sky-Scrapper (Skyscanner via RapidAPI) flight
// search. The API keys airports by internal entity ids, so every IATA code
// is resolved once and remembered for the life of the client.
type SkyScrapper struct {
	cfg       SkyScrapperConfig
	caches    *cache.Manager
	transport *transport
	log       logger.Logger

	mu       sync.Mutex
	entities map[string]skyEntity // IATA -> resolved ids
}

type skyEntity struct {
	SkyID    string
	EntityID string
}

func NewSkyScrapper(cfg SkyScrapperConfig, caches *cache.Manager, log logger.Logger) *SkyScrapper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://sky-scrapper.p.rapidapi.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryPolicy()
	}

	client := &SkyScrapper{
		cfg:      cfg,
		caches:   caches,
		log:      log.With(logger.String("provider", skyScrapperName)),
		entities: make(map[string]skyEntity),
	}
	client.transport = newTransport(cfg.Timeout, caches.RateLimiterFor(skyScrapperName), cfg.Retry, client.log)
	return client
}

func (s *SkyScrapper) Name() string { return skyScrapperName }

type skyAirportResponse struct {
	Data []struct {
		SkyID    string `json:"skyId"`
		EntityID string `json:"entityId"`
	} `json:"data"`
}

type skySearchResponse struct {
	Data struct {
		Itineraries []struct {
			ID    string `json:"id"`
			Price struct {
				Raw float64 `json:"raw"`
			} `json:"price"`
			Legs []struct {
				Origin struct {
					ID string `json:"id"`
				} `json:"origin"`
				Destination struct {
					ID string `json:"id"`
				} `json:"destination"`
				DurationInMinutes int    `json:"durationInMinutes"`
				StopCount         int    `json:"stopCount"`
				Departure         string `json:"departure"`
				Arrival           string `json:"arrival"`
				Carriers          struct {
					Marketing []struct {
						Name        string `json:"name"`
						AlternateID string `json:"alternateId"`
					} `json:"marketing"`
				} `json:"carriers"`
				Segments []struct {
					Origin struct {
						FlightPlaceID string `json:"flightPlaceId"`
					} `json:"origin"`
					Destination struct {
						FlightPlaceID string `json:"flightPlaceId"`
					} `json:"destination"`
					Departure        string `json:"departure"`
					Arrival          string `json:"arrival"`
					FlightNumber     string `json:"flightNumber"`
					MarketingCarrier struct {
						Name        string `json:"name"`
						AlternateID string `json:"alternateId"`
					} `json:"marketingCarrier"`
				} `json:"segments"`
			} `json:"legs"`
		} `json:"itineraries"`
	} `json:"data"`
}

// resolveEntity maps an IATA code to Sky-Scrapper's internal ids. The
// result is cached for the client lifetime; the codes never change.
func (s *SkyScrapper) resolveEntity(ctx context.Context, iata string) (skyEntity, error) {
	iata = strings.ToUpper(iata)

	s.mu.Lock()
	if entity, ok := s.entities[iata]; ok {
		s.mu.Unlock()
		return entity, nil
	}
	s.mu.Unlock()

	var resp skyAirportResponse
	err := s.transport.getJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := s.newRequest(ctx, "/api/v1/flights/searchAirport")
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("query", iata)
		req.URL.RawQuery = q.Encode()
		return req, nil
	}, &resp)
	if err != nil {
		return skyEntity{}, err
	}

	for _, candidate := range resp.Data {
		if strings.EqualFold(candidate.SkyID, iata) {
			entity := skyEntity{SkyID: candidate.SkyID, EntityID: candidate.EntityID}
			s.mu.Lock()
			s.entities[iata] = entity
			s.mu.Unlock()
			return entity, nil
		}
	}
	return skyEntity{}, fmt.Errorf("no entity found for airport %s", iata)
}

func (s *SkyScrapper) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	if cached, ok := s.caches.Get(cache.CategoryFlights, skyScrapperName, criteria); ok {
		if offers, ok := cached.([]domain.FlightOffer); ok {
			s.log.Debug("search cache hit")
			return offers, nil
		}
	}

	origin, err := s.resolveEntity(ctx, criteria.Origin)
	if err != nil {
		return nil, fmt.Errorf("resolve origin: %w", err)
	}
	destination, err := s.resolveEntity(ctx, criteria.Destination)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}

	var resp skySearchResponse
	err = s.transport.getJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := s.newRequest(ctx, "/api/v1/flights/searchFlights")
		if err != nil {
			return nil, err
		}

		q := req.URL.Query()
		q.Set("originSkyId", origin.SkyID)
		q.Set("destinationSkyId", destination.SkyID)
		q.Set("originEntityId", origin.EntityID)
		q.Set("destinationEntityId", destination.EntityID)
		q.Set("date", criteria.DepartureDate.Format("2006-01-02"))
		if criteria.ReturnDate != nil {
			q.Set("returnDate", criteria.ReturnDate.Format("2006-01-02"))
		}
		q.Set("adults", strconv.Itoa(criteria.Adults))
		if criteria.Children > 0 {
			q.Set("childrens", strconv.Itoa(criteria.Children))
		}
		if criteria.Infants > 0 {
			q.Set("infants", strconv.Itoa(criteria.Infants))
		}
		q.Set("cabinClass", skyCabin(criteria.CabinClass))
		if criteria.Currency != "" {
			q.Set("currency", criteria.Currency)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	}, &resp)
	if err != nil {
		return nil, err
	}

	offers := s.parseOffers(resp, criteria)
	s.caches.Set(cache.CategoryFlights, offers, skyScrapperName, criteria)
	return offers, nil
}

func (s *SkyScrapper) parseOffers(resp skySearchResponse, criteria domain.SearchCriteria) []domain.FlightOffer {
	cabin := domain.NormalizeCabinClass(criteria.CabinClass)
	if cabin == "" {
		cabin = domain.CabinEconomy
	}
	offers := make([]domain.FlightOffer, 0, len(resp.Data.Itineraries))

	for idx, raw := range resp.Data.Itineraries {
		if len(raw.Legs) == 0 || raw.Price.Raw < 0 {
			continue
		}
		leg := raw.Legs[0]

		dep, err := parseLocalTime(leg.Departure)
		if err != nil {
			s.log.Debug("dropping itinerary with bad departure", logger.String("id", raw.ID))
			continue
		}
		arr, err := parseLocalTime(leg.Arrival)
		if err != nil {
			s.log.Debug("dropping itinerary with bad arrival", logger.String("id", raw.ID))
			continue
		}

		airline, airlineCode := "", ""
		if len(leg.Carriers.Marketing) > 0 {
			airline = leg.Carriers.Marketing[0].Name
			airlineCode = leg.Carriers.Marketing[0].AlternateID
		}

		segments := make([]domain.Segment, 0, len(leg.Segments))
		for _, seg := range leg.Segments {
			segDep, err := parseLocalTime(seg.Departure)
			if err != nil {
				continue
			}
			segArr, err := parseLocalTime(seg.Arrival)
			if err != nil {
				continue
			}
			segments = append(segments, domain.Segment{
				From:          seg.Origin.FlightPlaceID,
				To:            seg.Destination.FlightPlaceID,
				Carrier:       seg.MarketingCarrier.AlternateID,
				FlightNumber:  seg.MarketingCarrier.AlternateID + seg.FlightNumber,
				DepartureTime: segDep,
				ArrivalTime:   segArr,
			})
		}

		stops := leg.StopCount
		if len(segments) > 0 {
			// Keep the invariant even when the leg's own count disagrees
			// with its segment list.
			stops = len(segments) - 1
		}

		offers = append(offers, domain.FlightOffer{
			ID:            fmt.Sprintf("SKY-%d", idx+1),
			Source:        skyScrapperName,
			Airline:       airline,
			AirlineCode:   airlineCode,
			Origin:        leg.Origin.ID,
			Destination:   leg.Destination.ID,
			DepartureTime: dep,
			ArrivalTime:   arr,
			Duration:      domain.DurationFromMinutes(leg.DurationInMinutes),
			Price:         raw.Price.Raw,
			Currency:      criteria.Currency,
			CabinClass:    cabin,
			Stops:         stops,
			Segments:      segments,
		})
	}

	return offers
}

func (s *SkyScrapper) newRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+path, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", s.cfg.Key)
	req.Header.Set("X-RapidAPI-Host", strings.TrimPrefix(s.cfg.BaseURL, "https://"))
	return req, nil
}

func skyCabin(cabin string) string {
	switch domain.NormalizeCabinClass(cabin) {
	case domain.CabinPremiumEconomy:
		return "premium_economy"
	case domain.CabinBusiness:
		return "business"
	case domain.CabinFirst:
		return "first"
	default:
		return "economy"
	}
}
