package api

import (
	"net/http"

	"github.com/dom/poe-uniques-server/internal/api/handlers"
	"github.com/dom/poe-uniques-server/internal/api/middleware"
	"github.com/dom/poe-uniques-server/internal/config"
	"github.com/dom/poe-uniques-server/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	uniqueHandler := handlers.NewUniqueHandler(services.Catalog, services.Ninja, cfg)
	itemTypeHandler := handlers.NewItemTypeHandler(services.Catalog)
	leagueHandler := handlers.NewLeagueHandler(services.Catalog)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/uniques", func(r chi.Router) {
			r.Get("/", uniqueHandler.List)
			r.Get("/{id}", uniqueHandler.Get)
			r.Post("/sync", uniqueHandler.Sync) // Should be admin-only in production
		})

		r.Get("/item-types", itemTypeHandler.List)
		r.Get("/leagues", leagueHandler.List)
	})

	return r
}
