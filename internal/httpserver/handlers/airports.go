package handlers

import (
	"net/http"

	"github.com/roberta039/flight-search-3/internal/airports"
	"github.com/roberta039/flight-search-3/internal/httpserver/deps"
)

type airportsResponse struct {
	Count      int                `json:"count"`
	Continents airports.Directory `json:"continents"`
}

func Airports(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dir := d.Search.AllAirports(r.Context())
		writeJSON(w, http.StatusOK, airportsResponse{
			Count:      dir.Count(),
			Continents: dir,
		})
	}
}
