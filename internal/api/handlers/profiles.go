package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"phishguard-lab/internal/domain/models"
	"phishguard-lab/internal/infrastructure/database/repository"
	"phishguard-lab/pkg/logger"
)

// ProfilesHandler handles user profile endpoints
type ProfilesHandler struct {
	repo   *repository.ProfileRepository
	logger *logger.Logger
}

// NewProfilesHandler creates a new profiles handler
func NewProfilesHandler(repo *repository.ProfileRepository, log *logger.Logger) *ProfilesHandler {
	return &ProfilesHandler{
		repo:   repo,
		logger: log.WithComponent("profiles-handler"),
	}
}

// Get handles GET /api/v1/profiles/{user_id}
func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}

	profile := models.DefaultProfile()
	profile.UserID = userID

	if h.repo != nil {
		stored, err := h.repo.Get(r.Context(), userID)
		if err != nil {
			h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load profile")
			http.Error(w, "Failed to load profile", http.StatusInternalServerError)
			return
		}
		profile = stored
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// Update handles PUT /api/v1/profiles/{user_id}
func (h *ProfilesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	profile.UserID = userID

	switch profile.RiskTolerance {
	case models.ToleranceConservative, models.ToleranceModerate, models.ToleranceAggressive:
	case "":
		profile.RiskTolerance = models.ToleranceModerate
	default:
		http.Error(w, "Invalid risk tolerance", http.StatusBadRequest)
		return
	}

	switch profile.Industry {
	case models.IndustryGeneral, models.IndustryBanking, models.IndustryHealthcare,
		models.IndustryTech, models.IndustryEducation:
	case "":
		profile.Industry = models.IndustryGeneral
	default:
		http.Error(w, "Invalid industry", http.StatusBadRequest)
		return
	}

	if h.repo == nil {
		http.Error(w, "Profile storage not configured", http.StatusServiceUnavailable)
		return
	}

	updated, err := h.repo.Upsert(r.Context(), profile)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to save profile")
		http.Error(w, "Failed to save profile", http.StatusInternalServerError)
		return
	}

	h.logger.Info().
		Str("user_id", userID).
		Str("risk_tolerance", string(updated.RiskTolerance)).
		Str("industry", string(updated.Industry)).
		Msg("profile updated")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}
