package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/roberta039/flight-search-3/internal/domain"
	"github.com/roberta039/flight-search-3/internal/httpserver/deps"
	"github.com/roberta039/flight-search-3/internal/logger"
)

type searchRequest struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departure_date"`        // "2006-01-02"
	ReturnDate    string   `json:"return_date,omitempty"` // optional
	Adults        int      `json:"adults"`
	Children      int      `json:"children"`
	Infants       int      `json:"infants"`
	CabinClass    string   `json:"cabin_class,omitempty"`
	NonStop       bool     `json:"non_stop"`
	Currency      string   `json:"currency,omitempty"`
	MaxResults    int      `json:"max_results,omitempty"`
	SortBy        string   `json:"sort_by,omitempty"`
	TargetPrice   *float64 `json:"target_price,omitempty"` // only used by the monitors endpoint
}

// offerView decorates a normalized offer with the display fields clients
// render directly. Infants travel on a lap, so the per-person split counts
// seated passengers only.
type offerView struct {
	domain.FlightOffer
	StopsLabel     string  `json:"stops_label"`
	PricePerPerson float64 `json:"price_per_person"`
}

type searchResponse struct {
	Route    string      `json:"route"`
	Count    int         `json:"count"`
	MinPrice *float64    `json:"min_price,omitempty"`
	Offers   []offerView `json:"offers"`
}

func offerViews(offers []domain.FlightOffer, criteria domain.SearchCriteria) []offerView {
	seated := criteria.Adults + criteria.Children
	views := make([]offerView, 0, len(offers))
	for _, offer := range offers {
		views = append(views, offerView{
			FlightOffer:    offer,
			StopsLabel:     domain.StopsDescription(offer.Stops),
			PricePerPerson: domain.PricePerPerson(offer.Price, seated),
		})
	}
	return views
}

// criteria converts the request body into validated-ready search criteria,
// filling service-level defaults for the optional fields.
func (req searchRequest) criteria(d deps.Deps) (domain.SearchCriteria, error) {
	departure, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		return domain.SearchCriteria{}, errors.New("departure_date must be YYYY-MM-DD")
	}

	var returnDate *time.Time
	if req.ReturnDate != "" {
		rd, err := time.Parse("2006-01-02", req.ReturnDate)
		if err != nil {
			return domain.SearchCriteria{}, errors.New("return_date must be YYYY-MM-DD")
		}
		returnDate = &rd
	}

	adults := req.Adults
	if adults == 0 {
		adults = 1
	}
	currency := req.Currency
	if currency == "" {
		currency = d.DefaultCurrency
	}
	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = d.MaxResults
	}
	sortBy := domain.SortKey(req.SortBy)
	if sortBy == "" {
		sortBy = domain.SortByPrice
	}

	return domain.SearchCriteria{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: departure,
		ReturnDate:    returnDate,
		Adults:        adults,
		Children:      req.Children,
		Infants:       req.Infants,
		CabinClass:    domain.NormalizeCabinClass(req.CabinClass),
		NonStop:       req.NonStop,
		Currency:      currency,
		MaxResults:    maxResults,
		SortBy:        sortBy,
	}, nil
}

func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		criteria, err := req.criteria(d)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		offers, err := d.Search.SearchFlights(r.Context(), criteria)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCriteria) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			d.Logger.Error("search failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "search failed")
			return
		}

		resp := searchResponse{
			Route:  criteria.RouteKey(),
			Count:  len(offers),
			Offers: offerViews(offers, criteria),
		}
		if cheapest, ok := domain.MinPrice(offers); ok {
			resp.MinPrice = &cheapest
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
