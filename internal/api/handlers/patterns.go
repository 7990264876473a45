package handlers

import (
	"encoding/json"
	"net/http"

	"phishguard-lab/internal/domain/services"
	"phishguard-lab/pkg/logger"
)

// PatternsHandler serves detection reference data
type PatternsHandler struct {
	analyzer *services.MessageAnalyzer
	logger   *logger.Logger
}

// NewPatternsHandler creates a new patterns handler
func NewPatternsHandler(analyzer *services.MessageAnalyzer, log *logger.Logger) *PatternsHandler {
	return &PatternsHandler{
		analyzer: analyzer,
		logger:   log.WithComponent("patterns-handler"),
	}
}

// Get handles GET /api/v1/patterns - returns word lists and brand
// reference data for clients that pre-filter locally.
func (h *PatternsHandler) Get(w http.ResponseWriter, r *http.Request) {
	catalog := services.BuildPatternCatalog(h.analyzer.Registry())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(catalog)
}
