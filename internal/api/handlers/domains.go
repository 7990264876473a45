package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"phishguard-lab/internal/domain/models"
	"phishguard-lab/internal/domain/services"
	"phishguard-lab/pkg/logger"
)

// DomainsHandler handles domain risk endpoints
type DomainsHandler struct {
	analyzer *services.MessageAnalyzer
	logger   *logger.Logger
}

// NewDomainsHandler creates a new domains handler
func NewDomainsHandler(analyzer *services.MessageAnalyzer, log *logger.Logger) *DomainsHandler {
	return &DomainsHandler{
		analyzer: analyzer,
		logger:   log.WithComponent("domains-handler"),
	}
}

// Risk handles POST /api/v1/domains/risk - link analysis plus brand
// variation detection over the URLs in the request.
func (h *DomainsHandler) Risk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string   `json:"text,omitempty"`
		URLs []string `json:"urls,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var candidates []models.URLCandidate
	if req.Text != "" {
		candidates = h.analyzer.ExtractURLs(req.Text)
	} else if len(req.URLs) > 0 {
		candidates = h.analyzer.ExtractURLs(strings.Join(req.URLs, " "))
	} else {
		http.Error(w, "Either text or urls is required", http.StatusBadRequest)
		return
	}

	result := h.analyzer.AnalyzeDomainRisk(candidates)

	h.logger.Debug().
		Int("candidates", len(candidates)).
		Int("findings", len(result.LinkFindings)).
		Int("variation_score", result.BrandVariation.Score).
		Msg("domain risk analyzed")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Analyze handles POST /api/v1/domains/analyze - homograph and punycode
// analysis of a single domain.
func (h *DomainsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Domain string `json:"domain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	domain := strings.TrimSpace(strings.ToLower(req.Domain))
	if domain == "" {
		http.Error(w, "Domain is required", http.StatusBadRequest)
		return
	}

	report := h.analyzer.DetectHomograph(domain)

	h.logger.Debug().
		Str("domain", domain).
		Bool("homograph", report.IsHomograph).
		Bool("punycode", report.PunycodeDetected).
		Msg("domain analyzed")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
