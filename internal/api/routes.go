package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RealLeviticus/dahextractor/internal/config"
	"github.com/RealLeviticus/dahextractor/internal/conversion"
	"github.com/RealLeviticus/dahextractor/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(service *conversion.Service, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(service, cfg, log),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Conversion pipeline
		router.Post("/convert", r.handler.Convert)
		router.Post("/detect", r.handler.Detect)
		router.Post("/validate", r.handler.Validate)

		// Conversion history
		router.Get("/conversions", r.handler.ListConversions)
		router.Get("/conversions/{id}", r.handler.GetConversion)
		router.Get("/conversions/{id}/result", r.handler.GetConversionResult)

		// Health check
		router.Get("/health", r.handler.GetHealth)

		// Configuration
		router.Get("/config", r.handler.GetConfig)
	})

	return router
}
