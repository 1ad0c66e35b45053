package domain

import (
	"regexp"
	"strings"
	"time"
)

var (
	isoHours   = regexp.MustCompile(`(\d+)H`)
	isoMinutes = regexp.MustCompile(`(\d+)M`)
)

// FormatDuration converts a provider duration encoding to the display form
// "2h 30m". It accepts ISO-8601 durations ("PT2H30M") and already-formatted
// strings; anything else passes through unchanged.
func FormatDuration(raw string) string {
	if raw == "" {
		return "N/A"
	}

	// Already formatted ("3h", "2h 30m")
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "h") && !strings.HasPrefix(strings.ToUpper(raw), "PT") {
		return raw
	}

	if strings.HasPrefix(raw, "PT") {
		hours, minutes := 0, 0
		if m := isoHours.FindStringSubmatch(raw); m != nil {
			hours = atoiSafe(m[1])
		}
		if m := isoMinutes.FindStringSubmatch(raw); m != nil {
			minutes = atoiSafe(m[1])
		}
		return formatHoursMinutes(hours, minutes)
	}

	return raw
}

// DurationFromMinutes renders a minute count as "2h 30m".
func DurationFromMinutes(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	return formatHoursMinutes(minutes/60, minutes%60)
}

// DurationFromSeconds renders a second count as "2h 30m".
func DurationFromSeconds(seconds int) string {
	return DurationFromMinutes(seconds / 60)
}

// DurationBetween derives the display duration from the scheduled times.
func DurationBetween(departure, arrival time.Time) string {
	d := arrival.Sub(departure)
	if d <= 0 {
		return "N/A"
	}
	return DurationFromMinutes(int(d.Minutes()))
}

func formatHoursMinutes(hours, minutes int) string {
	switch {
	case hours > 0 && minutes > 0:
		return itoa(hours) + "h " + itoa(minutes) + "m"
	case hours > 0:
		return itoa(hours) + "h"
	case minutes > 0:
		return itoa(minutes) + "m"
	default:
		return "N/A"
	}
}
