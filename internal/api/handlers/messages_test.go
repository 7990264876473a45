package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"phishguard-lab/internal/domain/models"
	"phishguard-lab/internal/domain/services"
	"phishguard-lab/internal/domain/services/ai"
	"phishguard-lab/pkg/logger"
)

func newTestMessagesHandler() *MessagesHandler {
	log := logger.NewDefault()
	return NewMessagesHandler(Dependencies{
		Analyzer: services.NewMessageAnalyzer(log),
		Logger:   log,
	})
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newTestMessagesHandler()

	rec := postJSON(t, h.Analyze, "/api/v1/messages/analyze", AnalyzeRequest{
		Text: "URGENT: verify your password now at http://secure-paypl.com or your account will be suspended!!!",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.Level != models.RiskLevelHigh {
		t.Errorf("level = %s (score %d), want High", resp.Result.Level, resp.Result.Score)
	}
	if resp.Assessment.Score != resp.Result.Score {
		t.Errorf("assessment score %d should equal local score %d without a remote pass", resp.Assessment.Score, resp.Result.Score)
	}
	if resp.Remote != nil {
		t.Error("remote assessment must be nil when not requested")
	}
	if resp.Alert.Alert == "" {
		t.Error("expected a personalized alert")
	}
}

func TestAnalyzeEndpointValidation(t *testing.T) {
	h := newTestMessagesHandler()

	rec := postJSON(t, h.Analyze, "/api/v1/messages/analyze", AnalyzeRequest{Text: ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty text status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages/analyze", strings.NewReader("{not json"))
	rec = httptest.NewRecorder()
	h.Analyze(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeEndpointInlineProfile(t *testing.T) {
	h := newTestMessagesHandler()

	rec := postJSON(t, h.Analyze, "/api/v1/messages/analyze", AnalyzeRequest{
		Text: "your wire transfer failed, verify immediately",
		Profile: &models.UserProfile{
			RiskTolerance: models.ToleranceConservative,
			Industry:      models.IndustryBanking,
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.Industry != models.IndustryBanking {
		t.Errorf("industry = %s, want banking", resp.Result.Industry)
	}
}

func TestAnalyzeBatchEndpoint(t *testing.T) {
	h := newTestMessagesHandler()

	rec := postJSON(t, h.AnalyzeBatch, "/api/v1/messages/analyze/batch", AnalyzeBatchRequest{
		Messages: []string{
			"lunch tomorrow?",
			"URGENT: verify your password now at http://secure-paypl.com or your account will be suspended!!!",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Results     []models.ScoreResult `json:"results"`
		TotalCount  int                  `json:"total_count"`
		ThreatCount int                  `json:"threat_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", resp.TotalCount)
	}
	if resp.ThreatCount != 1 {
		t.Errorf("ThreatCount = %d, want 1", resp.ThreatCount)
	}
	if resp.Results[1].Level != models.RiskLevelHigh {
		t.Errorf("second result level = %s, want High", resp.Results[1].Level)
	}
}

func TestAnalyzeBatchEndpointLimits(t *testing.T) {
	h := newTestMessagesHandler()

	rec := postJSON(t, h.AnalyzeBatch, "/api/v1/messages/analyze/batch", AnalyzeBatchRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty batch status = %d, want 400", rec.Code)
	}

	tooMany := make([]string, maxBatchMessages+1)
	for i := range tooMany {
		tooMany[i] = "hello"
	}
	rec = postJSON(t, h.AnalyzeBatch, "/api/v1/messages/analyze/batch", AnalyzeBatchRequest{Messages: tooMany})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized batch status = %d, want 400", rec.Code)
	}
}

func TestMaskEndpoint(t *testing.T) {
	h := newTestMessagesHandler()

	rec := postJSON(t, h.Mask, "/api/v1/messages/mask", map[string]string{
		"text": "Contact john.doe@example.com, PIN: 4921",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Masked    string                 `json:"masked"`
		Redaction models.RedactionReport `json:"redaction"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if strings.Contains(resp.Masked, "john.doe@example.com") || strings.Contains(resp.Masked, "4921") {
		t.Errorf("PII leaked: %q", resp.Masked)
	}
	if resp.Redaction.Total() != 2 {
		t.Errorf("Redaction.Total() = %d, want 2", resp.Redaction.Total())
	}
}

func TestReplyEndpointFallback(t *testing.T) {
	h := newTestMessagesHandler()

	rec := postJSON(t, h.Reply, "/api/v1/messages/reply", map[string]string{
		"text": "send me your account number right now",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Reply != ai.FallbackSafeReply {
		t.Errorf("reply = %q, want the fallback safe reply without an assessor", resp.Reply)
	}
}
