package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/roberta039/flight-search-3/internal/cache"
	"github.com/roberta039/flight-search-3/internal/domain"
	"github.com/roberta039/flight-search-3/internal/logger"
)

const amadeusName = "amadeus"

// AmadeusConfig carries the client-credentials pair and transport bounds.
type AmadeusConfig struct {
	BaseURL string
	Key     string
	Secret  string
	Timeout time.Duration
	Retry   RetryPolicy
}

// Amadeus wraps the Amadeus self-service flight-offers API. Tokens come
// from the OAuth2 client-credentials flow and live in the token cache
// category just under their upstream lifetime.
type Amadeus struct {
	cfg       AmadeusConfig
	caches    *cache.Manager
	transport *transport
	log       logger.Logger
}

func NewAmadeus(cfg AmadeusConfig, caches *cache.Manager, log logger.Logger) *Amadeus {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://test.api.amadeus.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryPolicy()
	}

	client := &Amadeus{
		cfg:    cfg,
		caches: caches,
		log:    log.With(logger.String("provider", amadeusName)),
	}
	client.transport = newTransport(cfg.Timeout, caches.RateLimiterFor(amadeusName), cfg.Retry, client.log)
	return client
}

func (a *Amadeus) Name() string { return amadeusName }

// Wire shapes. Only the fields the normalization needs.

type amadeusTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type amadeusOffersResponse struct {
	Data []struct {
		ID          string `json:"id"`
		Itineraries []struct {
			Duration string `json:"duration"` // ISO-8601, ex "PT2H30M"
			Segments []struct {
				Departure struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
			} `json:"segments"`
		} `json:"itineraries"`
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		TravelerPricings []struct {
			FareDetailsBySegment []struct {
				Cabin string `json:"cabin"`
			} `json:"fareDetailsBySegment"`
		} `json:"travelerPricings"`
		NumberOfBookableSeats int `json:"numberOfBookableSeats"`
	} `json:"data"`
	Dictionaries struct {
		Carriers map[string]string `json:"carriers"`
	} `json:"dictionaries"`
}

// token returns a cached bearer token, fetching a fresh one on miss.
func (a *Amadeus) token(ctx context.Context) (string, error) {
	if cached, ok := a.caches.Get(cache.CategoryTokens, amadeusName); ok {
		if token, ok := cached.(string); ok && token != "" {
			return token, nil
		}
	}

	var resp amadeusTokenResponse
	err := a.transport.getJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		form := url.Values{}
		form.Set("grant_type", "client_credentials")
		form.Set("client_id", a.cfg.Key)
		form.Set("client_secret", a.cfg.Secret)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			a.cfg.BaseURL+"/v1/security/oauth2/token",
			strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	if resp.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}

	a.caches.Set(cache.CategoryTokens, resp.AccessToken, amadeusName)
	return resp.AccessToken, nil
}

// Search queries flight offers, refreshing the token once on an
// authorization failure before treating the call as failed.
func (a *Amadeus) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	if cached, ok := a.caches.Get(cache.CategoryFlights, amadeusName, criteria); ok {
		if offers, ok := cached.([]domain.FlightOffer); ok {
			a.log.Debug("search cache hit")
			return offers, nil
		}
	}

	offers, err := a.search(ctx, criteria)
	if errors.Is(err, ErrUnauthorized) {
		// Expired token: drop it, refresh, retry exactly once.
		a.log.Info("token rejected, refreshing")
		a.caches.ClearCache(cache.CategoryTokens)
		offers, err = a.search(ctx, criteria)
	}
	if err != nil {
		return nil, err
	}

	a.caches.Set(cache.CategoryFlights, offers, amadeusName, criteria)
	return offers, nil
}

func (a *Amadeus) search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}

	var resp amadeusOffersResponse
	err = a.transport.getJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			a.cfg.BaseURL+"/v2/shopping/flight-offers", http.NoBody)
		if err != nil {
			return nil, err
		}

		q := req.URL.Query()
		q.Set("originLocationCode", criteria.Origin)
		q.Set("destinationLocationCode", criteria.Destination)
		q.Set("departureDate", criteria.DepartureDate.Format("2006-01-02"))
		if criteria.ReturnDate != nil {
			q.Set("returnDate", criteria.ReturnDate.Format("2006-01-02"))
		}
		q.Set("adults", strconv.Itoa(criteria.Adults))
		if criteria.Children > 0 {
			q.Set("children", strconv.Itoa(criteria.Children))
		}
		if criteria.Infants > 0 {
			q.Set("infants", strconv.Itoa(criteria.Infants))
		}
		if cabin := amadeusCabin(criteria.CabinClass); cabin != "" {
			q.Set("travelClass", cabin)
		}
		if criteria.NonStop {
			q.Set("nonStop", "true")
		}
		if criteria.Currency != "" {
			q.Set("currencyCode", criteria.Currency)
		}
		if criteria.MaxResults > 0 {
			q.Set("max", strconv.Itoa(criteria.MaxResults))
		}
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Authorization", "Bearer "+token)
		return req, nil
	}, &resp)
	if err != nil {
		return nil, err
	}

	return a.parseOffers(resp), nil
}

// parseOffers normalizes the response, skipping individually malformed
// offers instead of failing the batch.
func (a *Amadeus) parseOffers(resp amadeusOffersResponse) []domain.FlightOffer {
	offers := make([]domain.FlightOffer, 0, len(resp.Data))

	for _, raw := range resp.Data {
		if len(raw.Itineraries) == 0 || len(raw.Itineraries[0].Segments) == 0 {
			continue
		}
		itinerary := raw.Itineraries[0]

		price, err := strconv.ParseFloat(raw.Price.Total, 64)
		if err != nil || price < 0 {
			a.log.Debug("dropping offer with bad price", logger.String("id", raw.ID))
			continue
		}

		segments := make([]domain.Segment, 0, len(itinerary.Segments))
		bad := false
		for _, s := range itinerary.Segments {
			dep, err := parseLocalTime(s.Departure.At)
			if err != nil {
				bad = true
				break
			}
			arr, err := parseLocalTime(s.Arrival.At)
			if err != nil {
				bad = true
				break
			}
			segments = append(segments, domain.Segment{
				From:          s.Departure.IataCode,
				To:            s.Arrival.IataCode,
				Carrier:       s.CarrierCode,
				FlightNumber:  s.CarrierCode + s.Number,
				DepartureTime: dep,
				ArrivalTime:   arr,
			})
		}
		if bad {
			a.log.Debug("dropping offer with bad timestamps", logger.String("id", raw.ID))
			continue
		}

		first := segments[0]
		last := segments[len(segments)-1]
		carrierCode := first.Carrier
		carrierName := resp.Dictionaries.Carriers[carrierCode]
		if carrierName == "" {
			carrierName = carrierCode
		}

		cabin := ""
		if len(raw.TravelerPricings) > 0 && len(raw.TravelerPricings[0].FareDetailsBySegment) > 0 {
			cabin = domain.NormalizeCabinClass(raw.TravelerPricings[0].FareDetailsBySegment[0].Cabin)
		}

		offers = append(offers, domain.FlightOffer{
			ID:             "AMA-" + raw.ID,
			Source:         amadeusName,
			Airline:        carrierName,
			AirlineCode:    carrierCode,
			Origin:         first.From,
			Destination:    last.To,
			DepartureTime:  first.DepartureTime,
			ArrivalTime:    last.ArrivalTime,
			Duration:       domain.FormatDuration(itinerary.Duration),
			Price:          price,
			Currency:       raw.Price.Currency,
			CabinClass:     cabin,
			Stops:          len(segments) - 1,
			Segments:       segments,
			SeatsAvailable: raw.NumberOfBookableSeats,
		})
	}

	return offers
}

func amadeusCabin(cabin string) string {
	switch domain.NormalizeCabinClass(cabin) {
	case domain.CabinEconomy:
		return "ECONOMY"
	case domain.CabinPremiumEconomy:
		return "PREMIUM_ECONOMY"
	case domain.CabinBusiness:
		return "BUSINESS"
	case domain.CabinFirst:
		return "FIRST"
	default:
		return ""
	}
}
