package domain

import "testing"

func TestStopsDescription(t *testing.T) {
	tests := []struct {
		stops int
		want  string
	}{
		{0, "Direct"},
		{1, "1 stop"},
		{2, "2 stops"},
	}

	for _, tt := range tests {
		if got := StopsDescription(tt.stops); got != tt.want {
			t.Errorf("StopsDescription(%d) = %q, want %q", tt.stops, got, tt.want)
		}
	}
}

func TestPricePerPerson(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		passengers int
		want       float64
	}{
		{"splits evenly", 300, 3, 100},
		{"rounds to cents", 100, 3, 33.33},
		{"zero passengers returns total", 250.50, 0, 250.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PricePerPerson(tt.total, tt.passengers); got != tt.want {
				t.Errorf("PricePerPerson(%v, %d) = %v, want %v", tt.total, tt.passengers, got, tt.want)
			}
		})
	}
}
