// main.go - Standalone phishing analysis API server.
// Single-binary deployment without Postgres, Redis, or NATS; the full
// service lives in cmd/api.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"phishguard-lab/internal/domain/models"
	"phishguard-lab/internal/domain/services"
	"phishguard-lab/internal/domain/services/ai"
	"phishguard-lab/pkg/logger"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

var (
	analyzer *services.MessageAnalyzer
	assessor *ai.Assessor
	apiKey   string
)

func init() {
	analyzer = services.NewMessageAnalyzer(logger.NewDefault())

	apiKey = os.Getenv("API_KEY")
	if apiKey == "" {
		apiKey = "default-dev-key" // For development only
		log.Println("WARNING: Using default API key. Set API_KEY environment variable for production.")
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		assessor = ai.NewAssessor(ai.AssessorConfig{
			Provider:     "gemini",
			GeminiAPIKey: key,
		}, logger.NewDefault())
	}
}

// Middleware for API key authentication
func authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Allow OPTIONS for CORS preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		providedKey := r.Header.Get("Authorization")
		if providedKey == "" || providedKey != "Bearer "+apiKey {
			respondWithError(w, http.StatusUnauthorized, "Invalid or missing API key")
			return
		}

		next(w, r)
	}
}

// CORS middleware
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
	})
}

// Analyze a message: local heuristics plus optional remote assessment
func handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text    string              `json:"text"`
		Profile *models.UserProfile `json:"profile,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		respondWithError(w, http.StatusBadRequest, "Message text is required")
		return
	}

	profile := models.DefaultProfile()
	if req.Profile != nil {
		profile = *req.Profile
		if profile.RiskTolerance == "" {
			profile.RiskTolerance = models.ToleranceModerate
		}
		if profile.Industry == "" {
			profile.Industry = models.IndustryGeneral
		}
	}

	result := analyzer.ScoreMessage(req.Text, profile)

	var remote *models.RemoteAssessment
	if assessor != nil {
		masked, _ := analyzer.MaskMessage(req.Text)
		if assessment, err := assessor.Assess(r.Context(), masked); err == nil {
			remote = assessment
		} else {
			log.Printf("[Analyze] Remote assessment unavailable: %v", err)
		}
	}

	combined := services.MergeAssessments(result, remote)
	alert := analyzer.Alert(req.Text, result, profile)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"result":     result,
		"assessment": combined,
		"remote":     remote,
		"alert":      alert,
	})
}

// Mask PII in a message
func handleMask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		respondWithError(w, http.StatusBadRequest, "Message text is required")
		return
	}

	masked, report := analyzer.MaskMessage(req.Text)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"masked":    masked,
		"redaction": report,
	})
}

// Homograph/punycode analysis of a domain
func handlePunycode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Domain string `json:"domain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Domain == "" {
		respondWithError(w, http.StatusBadRequest, "Domain is required")
		return
	}

	report := analyzer.DetectHomograph(req.Domain)
	respondWithJSON(w, http.StatusOK, report)
}

// Suggest a safe reply to a suspicious message
func handleReply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		respondWithError(w, http.StatusBadRequest, "Message text is required")
		return
	}

	reply := ai.FallbackSafeReply
	if assessor != nil {
		masked, _ := analyzer.MaskMessage(req.Text)
		reply = assessor.SafeReply(r.Context(), masked)
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reply": reply,
	})
}

func handleStats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"analyzer": analyzer.Stats(),
		"history":  analyzer.History().Len(),
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, APIResponse{
		Success: false,
		Error:   message,
	})
}

func main() {
	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/health", handleHealth).Methods("GET")
	r.HandleFunc("/api/v1/stats", handleStats).Methods("GET")

	// Protected endpoints
	r.HandleFunc("/api/v1/analyze", authMiddleware(handleAnalyze)).Methods("POST")
	r.HandleFunc("/api/v1/mask", authMiddleware(handleMask)).Methods("POST")
	r.HandleFunc("/api/v1/punycode", authMiddleware(handlePunycode)).Methods("POST")
	r.HandleFunc("/api/v1/reply", authMiddleware(handleReply)).Methods("POST")

	handler := corsMiddleware(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Phishing analysis API server starting on port %s", port)
	log.Fatal(server.ListenAndServe())
}
