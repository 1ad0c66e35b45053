package domain

import (
	"testing"
	"time"
)

func offer(id string, price float64, departure time.Time, duration string, stops int) FlightOffer {
	return FlightOffer{
		ID:            id,
		Source:        "test",
		Origin:        "OTP",
		Destination:   "FCO",
		Price:         price,
		Currency:      "EUR",
		DepartureTime: departure,
		ArrivalTime:   departure.Add(2 * time.Hour),
		Duration:      duration,
		Stops:         stops,
	}
}

func TestDeduplicateCollapsesEquivalentOffers(t *testing.T) {
	dep := time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)

	offers := []FlightOffer{
		offer("a", 120.00, dep, "2h 30m", 0),
		offer("b", 120.00, dep.Add(20*time.Second), "2h 30m", 0), // same minute
		offer("c", 120.00, dep, "2h 30m", 1),                     // different stops
		offer("d", 120.01, dep, "2h 30m", 0),                     // different price
	}

	got := Deduplicate(offers)
	if len(got) != 3 {
		t.Fatalf("Deduplicate() returned %d offers, want 3", len(got))
	}
	// Keep-first: the survivor of the duplicate pair is "a"
	if got[0].ID != "a" {
		t.Errorf("Deduplicate() first survivor = %q, want %q", got[0].ID, "a")
	}
}

func TestSortOffersByPrice(t *testing.T) {
	dep := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	offers := []FlightOffer{
		offer("a", 300, dep, "2h", 0),
		offer("b", 100, dep.Add(time.Hour), "2h", 0),
		offer("c", 200, dep.Add(2*time.Hour), "2h", 1),
	}

	SortOffers(offers, SortByPrice)

	want := []string{"b", "c", "a"}
	for i, id := range want {
		if offers[i].ID != id {
			t.Errorf("offers[%d].ID = %q, want %q", i, offers[i].ID, id)
		}
	}
}

func TestSortOffersByStopsBreaksTiesByPrice(t *testing.T) {
	dep := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	offers := []FlightOffer{
		offer("a", 300, dep, "2h", 1),
		offer("b", 100, dep, "2h", 1),
		offer("c", 500, dep, "2h", 0),
	}

	SortOffers(offers, SortByStops)

	want := []string{"c", "b", "a"}
	for i, id := range want {
		if offers[i].ID != id {
			t.Errorf("offers[%d].ID = %q, want %q", i, offers[i].ID, id)
		}
	}
}

func TestSortOffersByDeparture(t *testing.T) {
	dep := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	offers := []FlightOffer{
		offer("late", 100, dep.Add(5*time.Hour), "2h", 0),
		offer("early", 300, dep, "2h", 0),
	}

	SortOffers(offers, SortByDeparture)

	if offers[0].ID != "early" {
		t.Errorf("first offer = %q, want %q", offers[0].ID, "early")
	}
}

func TestFilterNonStop(t *testing.T) {
	dep := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	offers := []FlightOffer{
		offer("direct", 100, dep, "2h", 0),
		offer("onestop", 80, dep, "4h", 1),
	}

	got := FilterNonStop(offers)
	if len(got) != 1 || got[0].ID != "direct" {
		t.Fatalf("FilterNonStop() = %+v, want only the direct offer", got)
	}
}

func TestTruncate(t *testing.T) {
	dep := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	offers := []FlightOffer{
		offer("a", 1, dep, "2h", 0),
		offer("b", 2, dep, "2h", 0),
		offer("c", 3, dep, "2h", 0),
	}

	if got := Truncate(offers, 2); len(got) != 2 {
		t.Errorf("Truncate(2) returned %d offers, want 2", len(got))
	}
	if got := Truncate(offers, 0); len(got) != 3 {
		t.Errorf("Truncate(0) returned %d offers, want all 3", len(got))
	}
	if got := Truncate(offers, 10); len(got) != 3 {
		t.Errorf("Truncate(10) returned %d offers, want all 3", len(got))
	}
}

func TestMinPrice(t *testing.T) {
	dep := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)

	if _, ok := MinPrice(nil); ok {
		t.Error("MinPrice(nil) ok = true, want false")
	}

	offers := []FlightOffer{
		offer("a", 250, dep, "2h", 0),
		offer("b", 99.99, dep, "2h", 0),
	}
	min, ok := MinPrice(offers)
	if !ok || min != 99.99 {
		t.Errorf("MinPrice() = %v, %v, want 99.99, true", min, ok)
	}
}
