package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/roberta039/flight-search-3/internal/httpserver/deps"
	"github.com/roberta039/flight-search-3/internal/httpserver/handlers"
)

func init() { Register(registerCache) }

func registerCache(r chi.Router, d deps.Deps) {
	r.Post("/api/cache/clear", handlers.ClearCache(d))
}
