package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"phishguard-lab/internal/api"
	"phishguard-lab/internal/api/handlers"
	"phishguard-lab/internal/config"
	"phishguard-lab/internal/domain/services"
	"phishguard-lab/internal/domain/services/ai"
	"phishguard-lab/internal/infrastructure/cache"
	"phishguard-lab/internal/infrastructure/database"
	"phishguard-lab/internal/infrastructure/database/repository"
	"phishguard-lab/internal/streaming"
	"phishguard-lab/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting PhishGuard Lab")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize infrastructure
	db, redisCache := initInfrastructure(ctx, cfg, log)
	defer func() {
		if db != nil {
			db.Close()
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Initialize repositories
	var profileRepo *repository.ProfileRepository
	var historyRepo *repository.HistoryRepository
	if db != nil {
		profileRepo = repository.NewProfileRepository(db.Pool())
		historyRepo = repository.NewHistoryRepository(db.Pool())
		log.Info().Msg("repositories initialized with database")
	} else {
		log.Warn().Msg("running without database - profiles and durable history unavailable")
	}

	// Initialize streaming infrastructure
	var natsPublisher *streaming.NATSPublisher
	if cfg.NATS.Enabled {
		var err error
		natsPublisher, err = streaming.NewNATSPublisher(ctx, cfg.NATS, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to NATS, continuing without distributed alerts")
		} else {
			log.Info().Str("url", cfg.NATS.URL).Msg("connected to NATS")
		}
	}

	eventBus := streaming.NewEventBus(natsPublisher, log)
	log.Info().Bool("nats_enabled", natsPublisher != nil).Msg("event bus initialized")

	wsHub := streaming.NewWebSocketHub(log)
	go wsHub.Run(ctx)

	publisher := streaming.NewAlertPublisher(eventBus, wsHub)

	// Initialize analysis services
	analyzer := services.NewMessageAnalyzer(log)
	log.Info().Msg("message analyzer initialized")

	var assessor *ai.Assessor
	if cfg.Assessor.Enabled {
		assessor = ai.NewAssessor(ai.AssessorConfig{
			Provider:     cfg.Assessor.Provider,
			GeminiAPIKey: cfg.Assessor.GeminiAPIKey,
			OpenAIAPIKey: cfg.Assessor.OpenAIAPIKey,
			Model:        cfg.Assessor.Model,
			Temperature:  cfg.Assessor.Temperature,
			MaxTokens:    cfg.Assessor.MaxTokens,
			Timeout:      cfg.Assessor.Timeout,
		}, log)
		log.Info().Str("provider", cfg.Assessor.Provider).Msg("remote assessor initialized")
	} else {
		log.Info().Msg("remote assessor disabled, analysis is local-only")
	}

	// Initialize handlers
	deps := handlers.Dependencies{
		Analyzer:    analyzer,
		Assessor:    assessor,
		Publisher:   publisher,
		WSHub:       wsHub,
		EventBus:    eventBus,
		Cache:       redisCache,
		DB:          db,
		Profiles:    profileRepo,
		HistoryRepo: historyRepo,
		Logger:      log,
	}
	h := handlers.NewHandlers(deps)

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, log)
	httpHandler := router.Setup()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	eventBus.Close()

	log.Info().Msg("shutdown complete")
}

// initInfrastructure initializes database and cache connections. Both
// are optional; the analyzer runs fully in memory without them.
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.PostgresDB, *cache.RedisCache) {
	var db *database.PostgresDB
	if cfg.Database.Enabled {
		var err error
		db, err = database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without database")
			db = nil
		}
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		var err error
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
			redisCache = nil
		}
	}

	return db, redisCache
}
