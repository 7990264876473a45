package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"phishguard-lab/internal/domain/models"
	"phishguard-lab/pkg/logger"
)

// FallbackSafeReply is returned when the reply endpoint cannot be reached
const FallbackSafeReply = "Thanks for reaching out. I can't verify this request or the link provided, " +
	"so I won't be sharing any personal information. Please contact me through an official channel " +
	"I can independently verify."

// Assessor calls a hosted LLM for a second opinion on a masked message.
// It supplements the local heuristics and never replaces them; every
// failure degrades to a local-only result.
type Assessor struct {
	httpClient *http.Client
	logger     *logger.Logger
	config     AssessorConfig
}

// AssessorConfig holds remote assessor configuration
type AssessorConfig struct {
	Provider     string // gemini, openai
	GeminiAPIKey string
	OpenAIAPIKey string
	Model        string
	Temperature  float64
	MaxTokens    int
	Timeout      time.Duration
}

// NewAssessor creates a remote assessor client
func NewAssessor(cfg AssessorConfig, log *logger.Logger) *Assessor {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.2
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.Model == "" {
		if cfg.Provider == "gemini" {
			cfg.Model = "gemini-1.5-flash"
		} else {
			cfg.Model = "gpt-4o-mini"
		}
	}

	return &Assessor{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log.WithComponent("remote-assessor"),
		config:     cfg,
	}
}

const assessmentPrompt = `You are a phishing detection assistant. Analyze the following message ` +
	`(personal data already redacted) and respond with JSON only, using this structure:
{
  "riskLevel": "Low|Medium|High",
  "reasoning": "one short paragraph explaining the assessment",
  "officialWebsite": "https://... (only when a specific brand is being impersonated, otherwise omit)"
}

Message:
`

const safeReplyPrompt = `You are helping a user respond to a suspicious message without exposing ` +
	`themselves. Write one short, polite reply that declines to share any personal information and ` +
	`asks the sender to use an official, independently verifiable channel. Respond with JSON only: ` +
	`{"safe reply": "..."}

Message:
`

// Assess sends masked message text for a coarse remote risk assessment.
// Returns nil (no error) when the response cannot be interpreted, so
// callers always fall back to the local result.
func (a *Assessor) Assess(ctx context.Context, maskedText string) (*models.RemoteAssessment, error) {
	content, err := a.complete(ctx, assessmentPrompt+maskedText)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		RiskLevel       string `json:"riskLevel"`
		Reasoning       string `json:"reasoning"`
		OfficialWebsite string `json:"officialWebsite"`
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &parsed); err != nil {
		a.logger.Warn().Err(err).Msg("Unparseable assessment response")
		return nil, fmt.Errorf("parse assessment: %w", err)
	}

	level := models.RiskLevel(parsed.RiskLevel)
	switch level {
	case models.RiskLevelLow, models.RiskLevelMedium, models.RiskLevelHigh:
	default:
		return nil, fmt.Errorf("unexpected risk level %q", parsed.RiskLevel)
	}

	return &models.RemoteAssessment{
		RiskLevel:       level,
		Reasoning:       parsed.Reasoning,
		OfficialWebsite: parsed.OfficialWebsite,
	}, nil
}

// SafeReply asks the remote model for a reply the user can send without
// exposing personal data. Any failure yields the fixed fallback text.
func (a *Assessor) SafeReply(ctx context.Context, maskedText string) string {
	content, err := a.complete(ctx, safeReplyPrompt+maskedText)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Safe reply generation failed, using fallback")
		return FallbackSafeReply
	}

	var parsed map[string]string
	if err := json.Unmarshal([]byte(extractJSON(content)), &parsed); err != nil {
		return FallbackSafeReply
	}
	if reply := strings.TrimSpace(parsed["safe reply"]); reply != "" {
		return reply
	}
	return FallbackSafeReply
}

func (a *Assessor) complete(ctx context.Context, prompt string) (string, error) {
	switch a.config.Provider {
	case "gemini":
		return a.callGemini(ctx, prompt)
	case "openai":
		return a.callOpenAI(ctx, prompt)
	default:
		return "", fmt.Errorf("unsupported assessor provider: %s", a.config.Provider)
	}
}

func (a *Assessor) callGemini(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		a.config.Model, a.config.GeminiAPIKey)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     a.config.Temperature,
			"maxOutputTokens": a.config.MaxTokens,
		},
	}

	body, err := a.post(ctx, url, reqBody, nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty Gemini response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

func (a *Assessor) callOpenAI(ctx context.Context, prompt string) (string, error) {
	url := "https://api.openai.com/v1/chat/completions"

	reqBody := map[string]interface{}{
		"model":       a.config.Model,
		"max_tokens":  a.config.MaxTokens,
		"temperature": a.config.Temperature,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	headers := map[string]string{"Authorization": "Bearer " + a.config.OpenAIAPIKey}
	body, err := a.post(ctx, url, reqBody, headers)
	if err != nil {
		return "", err
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// post sends a JSON request through the backoff wrapper and returns the
// response body.
func (a *Assessor) post(ctx context.Context, url string, reqBody interface{}, headers map[string]string) ([]byte, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	resp, err := doWithBackoff(ctx, a.httpClient, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assessor API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// extractJSON strips markdown fences and returns the outermost JSON
// object in a model response.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end != -1 && end > start {
		return content[start : end+1]
	}
	return content
}
