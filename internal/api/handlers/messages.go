package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"phishguard-lab/internal/domain/models"
	"phishguard-lab/internal/domain/services"
	"phishguard-lab/internal/domain/services/ai"
	"phishguard-lab/internal/infrastructure/cache"
	"phishguard-lab/internal/infrastructure/database/repository"
	"phishguard-lab/internal/streaming"
	"phishguard-lab/pkg/logger"
)

const (
	maxBatchMessages = 100
	analysisCacheTTL = 5 * time.Minute
)

// MessagesHandler handles message analysis endpoints
type MessagesHandler struct {
	analyzer    *services.MessageAnalyzer
	assessor    *ai.Assessor
	publisher   *streaming.AlertPublisher
	cache       *cache.RedisCache
	profiles    *repository.ProfileRepository
	historyRepo *repository.HistoryRepository
	logger      *logger.Logger
}

// NewMessagesHandler creates a new messages handler
func NewMessagesHandler(deps Dependencies) *MessagesHandler {
	return &MessagesHandler{
		analyzer:    deps.Analyzer,
		assessor:    deps.Assessor,
		publisher:   deps.Publisher,
		cache:       deps.Cache,
		profiles:    deps.Profiles,
		historyRepo: deps.HistoryRepo,
		logger:      deps.Logger.WithComponent("messages-handler"),
	}
}

// AnalyzeRequest is the request body for message analysis
type AnalyzeRequest struct {
	Text      string              `json:"text"`
	UserID    string              `json:"user_id,omitempty"`
	Profile   *models.UserProfile `json:"profile,omitempty"`
	UseRemote bool                `json:"use_remote,omitempty"`
}

// AnalyzeResponse is the full analysis result for one message
type AnalyzeResponse struct {
	Result     models.ScoreResult        `json:"result"`
	Assessment models.CombinedAssessment `json:"assessment"`
	Remote     *models.RemoteAssessment  `json:"remote,omitempty"`
	Alert      services.PersonalizedAlert `json:"alert"`
	Redaction  models.RedactionReport    `json:"redaction"`
}

// AnalyzeBatchRequest is the request body for batch analysis
type AnalyzeBatchRequest struct {
	Messages []string            `json:"messages"`
	UserID   string              `json:"user_id,omitempty"`
	Profile  *models.UserProfile `json:"profile,omitempty"`
}

// Analyze handles POST /api/v1/messages/analyze
func (h *MessagesHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Text == "" {
		http.Error(w, "Message text is required", http.StatusBadRequest)
		return
	}

	profile := h.resolveProfile(r, req.Profile, req.UserID)

	// Remote calls only ever see masked text
	masked, redaction := h.analyzer.MaskMessage(req.Text)

	cacheKey := cache.AnalysisCacheKey(req.Text, profile)
	if h.cache != nil && !req.UseRemote {
		var cached AnalyzeResponse
		err := h.cache.GetCachedAnalysis(r.Context(), cacheKey, &cached)
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "hit")
			json.NewEncoder(w).Encode(cached)
			return
		}
		if !errors.Is(err, redis.Nil) {
			h.logger.Warn().Err(err).Msg("analysis cache lookup failed")
		}
	}

	local := h.analyzer.ScoreMessage(req.Text, profile)

	var remote *models.RemoteAssessment
	if req.UseRemote && h.assessor != nil {
		assessment, err := h.assessor.Assess(r.Context(), masked)
		if err != nil {
			h.logger.Warn().Err(err).Msg("remote assessment unavailable, using local result")
		} else {
			remote = assessment
		}
	}

	combined := services.MergeAssessments(local, remote)
	alert := h.analyzer.Alert(req.Text, local, profile)

	response := AnalyzeResponse{
		Result:     local,
		Assessment: combined,
		Remote:     remote,
		Alert:      alert,
		Redaction:  redaction,
	}

	h.recordThreat(r, req.Text, local, alert.Alert, profile)

	if h.cache != nil && !req.UseRemote {
		if err := h.cache.CacheAnalysis(r.Context(), cacheKey, response, analysisCacheTTL); err != nil {
			h.logger.Warn().Err(err).Msg("failed to cache analysis")
		}
	}

	h.logger.Info().
		Int("score", combined.Score).
		Str("level", string(combined.Level)).
		Bool("remote_used", combined.RemoteUsed).
		Msg("message analyzed")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// AnalyzeBatch handles POST /api/v1/messages/analyze/batch
func (h *MessagesHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Messages) == 0 {
		http.Error(w, "At least one message is required", http.StatusBadRequest)
		return
	}
	if len(req.Messages) > maxBatchMessages {
		http.Error(w, "Maximum 100 messages per batch", http.StatusBadRequest)
		return
	}

	profile := h.resolveProfile(r, req.Profile, req.UserID)
	results := h.analyzer.ScoreBatch(r.Context(), req.Messages, profile)

	threats := 0
	for i, result := range results {
		if result.Level != models.RiskLevelLow {
			threats++
			alert := h.analyzer.Alert(req.Messages[i], result, profile)
			h.recordThreat(r, req.Messages[i], result, alert.Alert, profile)
		}
	}

	h.logger.Info().
		Int("total", len(results)).
		Int("threats", threats).
		Msg("message batch analyzed")

	response := struct {
		Results     []models.ScoreResult `json:"results"`
		TotalCount  int                  `json:"total_count"`
		ThreatCount int                  `json:"threat_count"`
	}{
		Results:     results,
		TotalCount:  len(results),
		ThreatCount: threats,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Mask handles POST /api/v1/messages/mask
func (h *MessagesHandler) Mask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "Message text is required", http.StatusBadRequest)
		return
	}

	masked, report := h.analyzer.MaskMessage(req.Text)

	response := struct {
		Masked    string                 `json:"masked"`
		Redaction models.RedactionReport `json:"redaction"`
	}{
		Masked:    masked,
		Redaction: report,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Reply handles POST /api/v1/messages/reply - suggests a safe response
// the user can send without exposing personal data.
func (h *MessagesHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "Message text is required", http.StatusBadRequest)
		return
	}

	masked, _ := h.analyzer.MaskMessage(req.Text)

	reply := ai.FallbackSafeReply
	if h.assessor != nil {
		reply = h.assessor.SafeReply(r.Context(), masked)
	}

	response := struct {
		Reply string `json:"reply"`
	}{Reply: reply}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// resolveProfile picks the inline profile when given, falls back to the
// stored profile for the user, then to the defaults.
func (h *MessagesHandler) resolveProfile(r *http.Request, inline *models.UserProfile, userID string) models.UserProfile {
	if inline != nil {
		profile := *inline
		if profile.RiskTolerance == "" {
			profile.RiskTolerance = models.ToleranceModerate
		}
		if profile.Industry == "" {
			profile.Industry = models.IndustryGeneral
		}
		profile.UserID = userID
		return profile
	}

	if userID != "" && h.profiles != nil {
		profile, err := h.profiles.Get(r.Context(), userID)
		if err == nil {
			return profile
		}
		h.logger.Warn().Err(err).Str("user_id", userID).Msg("profile lookup failed, using defaults")
	}

	profile := models.DefaultProfile()
	profile.UserID = userID
	return profile
}

// recordThreat fans a non-Low result out to the alert publisher and,
// when the profile opts into learning, the shared Redis history and the
// durable event table. The in-memory ring is already updated by the
// scoring path.
func (h *MessagesHandler) recordThreat(r *http.Request, text string, result models.ScoreResult, alert string, profile models.UserProfile) {
	if result.Level == models.RiskLevelLow {
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishThreat(r.Context(), profile.UserID, result, alert); err != nil {
			h.logger.Warn().Err(err).Msg("failed to publish threat alert")
		}
	}

	if !profile.LearningEnabled {
		return
	}

	event := services.EventFromResult(text, result)

	if h.cache != nil {
		if err := h.cache.PushThreatEvent(r.Context(), event, services.HistoryCapacity); err != nil {
			h.logger.Warn().Err(err).Msg("failed to push threat event to Redis")
		}
	}

	if h.historyRepo != nil {
		if err := h.historyRepo.Record(r.Context(), event); err != nil {
			h.logger.Warn().Err(err).Msg("failed to persist threat event")
		}
	}
}
