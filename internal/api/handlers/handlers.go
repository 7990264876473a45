package handlers

import (
	"phishguard-lab/internal/domain/services"
	"phishguard-lab/internal/domain/services/ai"
	"phishguard-lab/internal/infrastructure/cache"
	"phishguard-lab/internal/infrastructure/database"
	"phishguard-lab/internal/infrastructure/database/repository"
	"phishguard-lab/internal/streaming"
	"phishguard-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health    *HealthHandler
	Messages  *MessagesHandler
	Domains   *DomainsHandler
	History   *HistoryHandler
	Profiles  *ProfilesHandler
	Patterns  *PatternsHandler
	Stats     *StatsHandler
	Streaming *StreamingHandler
}

// Dependencies holds dependencies for handlers. Assessor, Cache, DB and
// the repositories may be nil when the corresponding backends are
// disabled; handlers degrade to in-memory behavior.
type Dependencies struct {
	Analyzer    *services.MessageAnalyzer
	Assessor    *ai.Assessor
	Publisher   *streaming.AlertPublisher
	WSHub       *streaming.WebSocketHub
	EventBus    *streaming.EventBus
	Cache       *cache.RedisCache
	DB          *database.PostgresDB
	Profiles    *repository.ProfileRepository
	HistoryRepo *repository.HistoryRepository
	Logger      *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Cache, deps.DB, deps.Logger),
		Messages:  NewMessagesHandler(deps),
		Domains:   NewDomainsHandler(deps.Analyzer, deps.Logger),
		History:   NewHistoryHandler(deps.Analyzer, deps.Cache, deps.HistoryRepo, deps.Logger),
		Profiles:  NewProfilesHandler(deps.Profiles, deps.Logger),
		Patterns:  NewPatternsHandler(deps.Analyzer, deps.Logger),
		Stats:     NewStatsHandler(deps.Analyzer, deps.WSHub, deps.EventBus, deps.Logger),
		Streaming: NewStreamingHandler(deps.WSHub, deps.EventBus, deps.Logger),
	}
}
