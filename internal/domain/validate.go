package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidCriteria wraps every validation failure so callers can
// distinguish malformed input from provider trouble with errors.Is.
var ErrInvalidCriteria = errors.New("invalid search criteria")

const maxPassengers = 9

// ValidateIATACode checks the 3-letter airport code shape.
func ValidateIATACode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("airport code is required")
	}
	if len(code) != 3 {
		return errors.New("IATA code must be exactly 3 characters")
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return errors.New("IATA code must contain only letters")
		}
	}
	return nil
}

// ValidatePassengers checks passenger counts against booking rules.
func ValidatePassengers(adults, children, infants int) error {
	switch {
	case adults < 1:
		return errors.New("at least 1 adult is required")
	case adults > maxPassengers:
		return fmt.Errorf("maximum %d adults allowed", maxPassengers)
	case children < 0:
		return errors.New("number of children cannot be negative")
	case infants < 0:
		return errors.New("number of infants cannot be negative")
	case infants > adults:
		return errors.New("number of infants cannot exceed number of adults")
	case adults+children+infants > maxPassengers:
		return fmt.Errorf("maximum %d passengers allowed per booking", maxPassengers)
	}
	return nil
}

// Validate checks the whole criteria shape before any network call is made.
// It collects all failures into a single ErrInvalidCriteria-wrapped error.
func (c SearchCriteria) Validate() error {
	var errs []string

	if err := ValidateIATACode(c.Origin); err != nil {
		errs = append(errs, "origin: "+err.Error())
	}
	if err := ValidateIATACode(c.Destination); err != nil {
		errs = append(errs, "destination: "+err.Error())
	}
	if c.Origin != "" && strings.EqualFold(c.Origin, c.Destination) {
		errs = append(errs, "origin and destination must be different")
	}

	if c.DepartureDate.IsZero() {
		errs = append(errs, "departure date is required")
	}
	if c.ReturnDate != nil && !c.DepartureDate.IsZero() {
		if dateOnly(*c.ReturnDate).Before(dateOnly(c.DepartureDate)) {
			errs = append(errs, "return date must be after departure date")
		}
	}

	if err := ValidatePassengers(c.Adults, c.Children, c.Infants); err != nil {
		errs = append(errs, "passengers: "+err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCriteria, strings.Join(errs, "; "))
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
