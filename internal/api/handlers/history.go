package handlers

import (
	"encoding/json"
	"net/http"

	"phishguard-lab/internal/domain/models"
	"phishguard-lab/internal/domain/services"
	"phishguard-lab/internal/infrastructure/cache"
	"phishguard-lab/internal/infrastructure/database/repository"
	"phishguard-lab/pkg/logger"
)

// HistoryHandler handles threat history endpoints
type HistoryHandler struct {
	analyzer *services.MessageAnalyzer
	cache    *cache.RedisCache
	repo     *repository.HistoryRepository
	logger   *logger.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(analyzer *services.MessageAnalyzer, c *cache.RedisCache, repo *repository.HistoryRepository, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{
		analyzer: analyzer,
		cache:    c,
		repo:     repo,
		logger:   log.WithComponent("history-handler"),
	}
}

// List handles GET /api/v1/history - returns the capped in-memory log,
// newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	events := h.analyzer.History().Recent()

	response := struct {
		Events   []models.ThreatEvent `json:"events"`
		Count    int                  `json:"count"`
		Capacity int                  `json:"capacity"`
	}{
		Events:   events,
		Count:    len(events),
		Capacity: services.HistoryCapacity,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Clear handles DELETE /api/v1/history - clears the in-memory log and
// any configured backing stores.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.analyzer.History().Clear()

	if h.cache != nil {
		if err := h.cache.ClearThreatEvents(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("failed to clear Redis history")
		}
	}
	if h.repo != nil {
		if err := h.repo.Clear(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("failed to clear persisted history")
		}
	}

	h.logger.Info().Msg("threat history cleared")
	w.WriteHeader(http.StatusNoContent)
}
