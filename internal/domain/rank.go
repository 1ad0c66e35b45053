package domain

import (
	"fmt"
	"sort"
)

// FilterNonStop keeps only direct offers.
func FilterNonStop(offers []FlightOffer) []FlightOffer {
	direct := make([]FlightOffer, 0, len(offers))
	for _, offer := range offers {
		if offer.Stops == 0 {
			direct = append(direct, offer)
		}
	}
	return direct
}

// Deduplicate collapses offers sharing (price, departure minute, stops),
// keeping the first occurrence. A heuristic identity: distinct cheap offers
// can coincide and true duplicates can differ by sub-minute timestamps.
func Deduplicate(offers []FlightOffer) []FlightOffer {
	seen := make(map[string]bool, len(offers))
	unique := make([]FlightOffer, 0, len(offers))

	for _, offer := range offers {
		// Formatting to the minute is the truncation.
		key := fmt.Sprintf("%.2f|%s|%d",
			offer.Price,
			offer.DepartureTime.Format("2006-01-02T15:04"),
			offer.Stops,
		)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, offer)
	}

	return unique
}

// SortOffers orders offers in place by the requested key.
// Price ascending is the default for unknown keys.
func SortOffers(offers []FlightOffer, key SortKey) {
	switch key {
	case SortByDeparture, SortByDuration:
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].DepartureTime.Before(offers[j].DepartureTime)
		})
	case SortByStops:
		sort.SliceStable(offers, func(i, j int) bool {
			if offers[i].Stops != offers[j].Stops {
				return offers[i].Stops < offers[j].Stops
			}
			return offers[i].Price < offers[j].Price
		})
	default:
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].Price < offers[j].Price
		})
	}
}

// Truncate bounds the result list. max <= 0 means no limit.
func Truncate(offers []FlightOffer, max int) []FlightOffer {
	if max > 0 && len(offers) > max {
		return offers[:max]
	}
	return offers
}

// MinPrice returns the lowest price in the list; ok is false for an empty list.
func MinPrice(offers []FlightOffer) (float64, bool) {
	if len(offers) == 0 {
		return 0, false
	}
	min := offers[0].Price
	for _, offer := range offers[1:] {
		if offer.Price < min {
			min = offer.Price
		}
	}
	return min, true
}
