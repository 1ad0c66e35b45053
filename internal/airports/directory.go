package airports

import (
	"sort"
	"strings"
)

// Raw is one airport as delivered by a directory provider, before any
// continent/country classification.
type Raw struct {
	Code        string  // 3-letter IATA
	Name        string  // display name
	City        string
	CountryCode string // ISO-3166 alpha-2, may be empty
	Latitude    float64
	Longitude   float64
}

// Airport is one classified directory entry.
type Airport struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Directory maps continent name -> country name -> airports ordered by name.
type Directory map[string]map[string][]Airport

// Build folds a flat provider airport list into the directory using the
// static country/continent tables. Airports with an unknown or missing
// country code land under the "Other" continent, keyed by the raw code.
func Build(raw []Raw) Directory {
	dir := make(Directory)

	for _, a := range raw {
		code := strings.ToUpper(strings.TrimSpace(a.Code))
		if len(code) != 3 {
			continue
		}

		countryCode := strings.ToUpper(strings.TrimSpace(a.CountryCode))
		continent := Continent(countryCode)
		country, known := CountryName(countryCode)
		if !known {
			continent = ContinentOther
			if country == "" {
				country = ContinentOther
			}
		}

		if dir[continent] == nil {
			dir[continent] = make(map[string][]Airport)
		}
		dir[continent][country] = append(dir[continent][country], Airport{
			Code:      code,
			Name:      a.Name,
			City:      a.City,
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
		})
	}

	for _, countries := range dir {
		for _, list := range countries {
			sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		}
	}

	return dir
}

// Count returns the total number of airports in the directory.
func (d Directory) Count() int {
	total := 0
	for _, countries := range d {
		for _, list := range countries {
			total += len(list)
		}
	}
	return total
}
