package handlers

import (
	"encoding/json"
	"net/http"

	"phishguard-lab/internal/domain/models"
	"phishguard-lab/internal/domain/services"
	"phishguard-lab/internal/streaming"
	"phishguard-lab/pkg/logger"
)

// StatsHandler serves analyzer statistics
type StatsHandler struct {
	analyzer *services.MessageAnalyzer
	wsHub    *streaming.WebSocketHub
	eventBus *streaming.EventBus
	logger   *logger.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(analyzer *services.MessageAnalyzer, wsHub *streaming.WebSocketHub, eventBus *streaming.EventBus, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		analyzer: analyzer,
		wsHub:    wsHub,
		eventBus: eventBus,
		logger:   log.WithComponent("stats-handler"),
	}
}

// StatsResponse is the aggregate service statistics payload
type StatsResponse struct {
	Analyzer    models.AnalyzerStats `json:"analyzer"`
	History     int                  `json:"history_size"`
	WSClients   int                  `json:"ws_clients"`
	Subscribers int                  `json:"subscribers"`
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	response := StatsResponse{
		Analyzer: h.analyzer.Stats(),
		History:  h.analyzer.History().Len(),
	}
	if h.wsHub != nil {
		response.WSClients = h.wsHub.ClientCount()
	}
	if h.eventBus != nil {
		response.Subscribers = h.eventBus.SubscriberCount()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
