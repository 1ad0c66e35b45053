package domain

import "time"

// SortKey selects the result ordering of a search.
type SortKey string

const (
	SortByPrice     SortKey = "price"     // ascending, the default
	SortByDuration  SortKey = "duration"  // by departure timestamp ascending
	SortByDeparture SortKey = "departure" // by departure timestamp ascending
	SortByStops     SortKey = "stops"     // ascending, ties broken by price
)

// Cabin class canonical labels. Provider clients normalize their own
// naming through NormalizeCabinClass before building offers.
const (
	CabinEconomy        = "Economy"
	CabinPremiumEconomy = "Premium Economy"
	CabinBusiness       = "Business"
	CabinFirst          = "First Class"
)

var cabinClasses = map[string]string{
	"economy":         CabinEconomy,
	"coach":           CabinEconomy,
	"premium_economy": CabinPremiumEconomy,
	"premium economy": CabinPremiumEconomy,
	"premiumeconomy":  CabinPremiumEconomy,
	"business":        CabinBusiness,
	"first":           CabinFirst,
	"first class":     CabinFirst,
}

// SearchCriteria is the common request shape every provider client maps
// into its own wire parameters.
type SearchCriteria struct {
	Origin        string     `json:"origin"`      // 3-letter IATA
	Destination   string     `json:"destination"` // 3-letter IATA
	DepartureDate time.Time  `json:"departure_date"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`

	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`

	CabinClass string  `json:"cabin_class"`
	NonStop    bool    `json:"non_stop"`
	Currency   string  `json:"currency"`
	MaxResults int     `json:"max_results"`
	SortBy     SortKey `json:"sort_by"`
}

// Passengers returns the total passenger count.
func (c SearchCriteria) Passengers() int {
	return c.Adults + c.Children + c.Infants
}

// RouteKey derives the monitor/history key for this search.
func (c SearchCriteria) RouteKey() string {
	return RouteKey(c.Origin, c.Destination, c.DepartureDate)
}

// NormalizeCabinClass maps a provider cabin label to the canonical form.
// Unknown labels pass through unchanged.
func NormalizeCabinClass(label string) string {
	if canonical, ok := cabinClasses[lowerTrim(label)]; ok {
		return canonical
	}
	return label
}
