package domain

import (
	"fmt"
	"time"
)

// Segment is one flown leg of an itinerary.
type Segment struct {
	From          string    `json:"from"`
	To            string    `json:"to"`
	Carrier       string    `json:"carrier"`
	FlightNumber  string    `json:"flight_number"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

// FlightOffer is the normalized offer produced by every provider client.
// Immutable once constructed; Stops == len(Segments)-1 whenever Segments
// is populated.
type FlightOffer struct {
	// ID is unique within one search response, prefixed by the provider
	// (ex: "SKY-12"). Not stable across searches for all providers.
	ID     string `json:"id"`
	Source string `json:"source"`

	Airline     string `json:"airline"`
	AirlineCode string `json:"airline_code"`

	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	// Departure/arrival are airport-local wall-clock times stored with a
	// UTC location marker; they are compared as wall times only.
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`

	// Duration is the display form ("2h 30m"); each provider converts its
	// own encoding (ISO-8601, minutes, seconds) before building the offer.
	Duration string `json:"duration"`

	Price    float64 `json:"price"`
	Currency string  `json:"currency"`

	CabinClass string    `json:"cabin_class"`
	Stops      int       `json:"stops"`
	Segments   []Segment `json:"segments,omitempty"`

	BookingLink    string `json:"booking_link,omitempty"`
	SeatsAvailable int    `json:"seats_available,omitempty"`
}

// RouteKey identifies one monitored origin-destination-date triple.
// Format: "OTP-FCO-2025-08-15".
func RouteKey(origin, destination string, departureDate time.Time) string {
	return fmt.Sprintf("%s-%s-%s", origin, destination, departureDate.Format("2006-01-02"))
}

// StopsDescription renders a stop count for display.
func StopsDescription(stops int) string {
	switch {
	case stops == 0:
		return "Direct"
	case stops == 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

// PricePerPerson splits a total price across passengers, rounded to cents.
func PricePerPerson(total float64, passengers int) float64 {
	if passengers <= 0 {
		return total
	}
	per := total / float64(passengers)
	return float64(int(per*100+0.5)) / 100
}
