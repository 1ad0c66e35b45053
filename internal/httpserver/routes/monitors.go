package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/roberta039/flight-search-3/internal/httpserver/deps"
	"github.com/roberta039/flight-search-3/internal/httpserver/handlers"
)

func init() { Register(registerMonitors) }

func registerMonitors(r chi.Router, d deps.Deps) {
	r.Get("/api/monitors", handlers.ListMonitors(d))
	r.Post("/api/monitors", handlers.CreateMonitor(d))
	r.Post("/api/monitors/refresh", handlers.RefreshMonitors(d))
	r.Delete("/api/monitors/{route}", handlers.DeleteMonitor(d))
	r.Get("/api/monitors/{route}/history", handlers.MonitorHistory(d))
}
