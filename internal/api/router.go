package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"phishguard-lab/internal/api/handlers"
	apimiddleware "phishguard-lab/internal/api/middleware"
	"phishguard-lab/internal/config"
	"phishguard-lab/internal/infrastructure/cache"
	"phishguard-lab/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg config.Config, h *handlers.Handlers, c *cache.RedisCache, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Rate limiting
	if r.config.RateLimit.Enabled && r.cache != nil {
		router.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit))
	}

	// Public routes
	router.Group(func(pub chi.Router) {
		pub.Get("/health", r.handlers.Health.Check)
		pub.Get("/ready", r.handlers.Health.Ready)

		pub.Get("/api/v1/stats", r.handlers.Stats.Get)
	})

	// API v1 routes (authenticated)
	router.Route("/api/v1", func(api chi.Router) {
		api.Use(apimiddleware.APIKeyAuth(r.config.Auth))

		// Message analysis endpoints
		api.Route("/messages", func(msg chi.Router) {
			msg.Post("/analyze", r.handlers.Messages.Analyze)
			msg.Post("/analyze/batch", r.handlers.Messages.AnalyzeBatch)
			msg.Post("/mask", r.handlers.Messages.Mask)
			msg.Post("/reply", r.handlers.Messages.Reply)
		})

		// Domain risk endpoints
		api.Route("/domains", func(dom chi.Router) {
			dom.Post("/analyze", r.handlers.Domains.Analyze)
			dom.Post("/risk", r.handlers.Domains.Risk)
		})

		// Detection reference data
		api.Get("/patterns", r.handlers.Patterns.Get)

		// Threat history
		api.Route("/history", func(hist chi.Router) {
			hist.Get("/", r.handlers.History.List)
			hist.Delete("/", r.handlers.History.Clear)
		})

		// User profiles
		api.Route("/profiles", func(prof chi.Router) {
			prof.Get("/{user_id}", r.handlers.Profiles.Get)
			prof.Put("/{user_id}", r.handlers.Profiles.Update)
		})
	})

	// WebSocket streaming endpoint (real-time phishing alerts)
	router.Get("/ws/alerts", r.handlers.Streaming.HandleWebSocket)
	router.Get("/api/v1/streaming/stats", r.handlers.Streaming.GetStats)

	return router
}
