package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roberta039/flight-search-3/internal/cache"
	"github.com/roberta039/flight-search-3/internal/httpserver/deps"
	"github.com/roberta039/flight-search-3/internal/logger"
)

type monitorResponse struct {
	Route   string             `json:"route"`
	Monitor cache.PriceMonitor `json:"monitor"`
}

type historyResponse struct {
	Route  string             `json:"route"`
	Count  int                `json:"count"`
	Points []cache.PricePoint `json:"points"`
}

// ListMonitors returns every active price watch.
func ListMonitors(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		monitors := d.Search.MonitoredRoutes()
		out := make([]monitorResponse, 0, len(monitors))
		for route, mon := range monitors {
			out = append(out, monitorResponse{Route: route, Monitor: mon})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// CreateMonitor registers a price watch for the requested route. The body is
// the same shape as a search request plus an optional target_price.
func CreateMonitor(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		criteria, err := req.criteria(d)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := criteria.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		route := d.Search.AddPriceMonitor(r.Context(), criteria, req.TargetPrice)
		d.Logger.Info("price monitor created", logger.String("route", route))

		writeJSON(w, http.StatusCreated, map[string]string{"route": route})
	}
}

// DeleteMonitor removes a price watch; deleting an unknown route is a no-op.
func DeleteMonitor(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route := chi.URLParam(r, "route")
		if route == "" {
			writeError(w, http.StatusBadRequest, "missing route")
			return
		}
		d.Search.RemovePriceMonitor(r.Context(), route)
		w.WriteHeader(http.StatusNoContent)
	}
}

// MonitorHistory returns the recorded price samples for one route.
func MonitorHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route := chi.URLParam(r, "route")
		if route == "" {
			writeError(w, http.StatusBadRequest, "missing route")
			return
		}
		points := d.Search.PriceHistory(route)
		writeJSON(w, http.StatusOK, historyResponse{
			Route:  route,
			Count:  len(points),
			Points: points,
		})
	}
}

// RefreshMonitors triggers an immediate refresh of all monitored routes.
func RefreshMonitors(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.RefreshTrigger <- struct{}{}:
			d.Logger.Info("manual monitor refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh triggered"})
		default:
			d.Logger.Warn("monitor refresh already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeError(w, http.StatusTooManyRequests, "refresh already in progress")
		}
	}
}
