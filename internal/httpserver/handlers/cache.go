package handlers

import (
	"net/http"

	"github.com/roberta039/flight-search-3/internal/cache"
	"github.com/roberta039/flight-search-3/internal/httpserver/deps"
	"github.com/roberta039/flight-search-3/internal/logger"
)

var clearableCategories = map[string]bool{
	"":                     true, // everything
	cache.CategoryAirports: true,
	cache.CategoryFlights:  true,
	cache.CategoryPrices:   true,
	cache.CategoryTokens:   true,
}

// ClearCache drops cached entries for one category, or all categories when
// none is given. Price monitors and their history are never touched.
func ClearCache(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		if !clearableCategories[category] {
			writeError(w, http.StatusBadRequest, "unknown cache category")
			return
		}

		d.Caches.ClearCache(category)
		if category == "" || category == cache.CategoryAirports {
			d.Search.InvalidateAirports()
		}

		d.Logger.Info("cache cleared",
			logger.String("category", category),
			logger.String("remote_ip", r.RemoteAddr))

		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
