package domain

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"iso hours and minutes", "PT2H30M", "2h 30m"},
		{"iso hours only", "PT3H", "3h"},
		{"iso minutes only", "PT45M", "45m"},
		{"already formatted", "2h 30m", "2h 30m"},
		{"empty", "", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.raw); got != tt.want {
				t.Errorf("FormatDuration(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDurationFromMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{150, "2h 30m"},
		{180, "3h"},
		{45, "45m"},
		{0, "N/A"},
		{-5, "N/A"},
	}

	for _, tt := range tests {
		if got := DurationFromMinutes(tt.minutes); got != tt.want {
			t.Errorf("DurationFromMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestDurationFromSeconds(t *testing.T) {
	if got := DurationFromSeconds(9000); got != "2h 30m" {
		t.Errorf("DurationFromSeconds(9000) = %q, want %q", got, "2h 30m")
	}
	if got := DurationFromSeconds(59); got != "N/A" {
		t.Errorf("DurationFromSeconds(59) = %q, want %q", got, "N/A")
	}
}

func TestDurationBetween(t *testing.T) {
	dep := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	arr := dep.Add(2*time.Hour + 30*time.Minute)

	if got := DurationBetween(dep, arr); got != "2h 30m" {
		t.Errorf("DurationBetween() = %q, want %q", got, "2h 30m")
	}
	if got := DurationBetween(arr, dep); got != "N/A" {
		t.Errorf("DurationBetween() reversed = %q, want %q", got, "N/A")
	}
}
