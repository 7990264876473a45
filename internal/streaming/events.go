package streaming

import (
	"time"

	"github.com/google/uuid"

	"phishguard-lab/internal/domain/models"
)

// EventType represents the type of alert event
type EventType string

const (
	EventTypeThreatDetected EventType = "threat_detected"
	EventTypeHighRiskAlert  EventType = "high_risk_alert"
)

// AlertEvent represents a real-time phishing alert
type AlertEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	UserID  string           `json:"user_id,omitempty"`
	Level   models.RiskLevel `json:"level"`
	Score   int              `json:"score"`
	Signals []string         `json:"signals,omitempty"`
	Domains []string         `json:"domains,omitempty"`
	Alert   string           `json:"alert,omitempty"`
}

// NewAlertEvent creates an alert event from a scoring result
func NewAlertEvent(userID string, result models.ScoreResult, alert string) *AlertEvent {
	eventType := EventTypeThreatDetected
	if result.Level == models.RiskLevelHigh {
		eventType = EventTypeHighRiskAlert
	}

	signals := make([]string, len(result.Signals))
	for i, s := range result.Signals {
		signals[i] = s.Type
	}

	domains := make([]string, 0, len(result.LinkFindings))
	for _, f := range result.LinkFindings {
		if f.Host != "-" {
			domains = append(domains, f.Host)
		}
	}

	return &AlertEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		UserID:    userID,
		Level:     result.Level,
		Score:     result.Score,
		Signals:   signals,
		Domains:   domains,
		Alert:     alert,
	}
}

// Subscription represents a client's subscription preferences
type Subscription struct {
	// Minimum risk level to receive (empty = all)
	MinLevel models.RiskLevel `json:"min_level,omitempty"`

	// Filter by user (empty = all)
	UserID string `json:"user_id,omitempty"`

	// Filter by signal types (empty = all)
	Signals []string `json:"signals,omitempty"`
}

// Matches checks if an event matches the subscription filters
func (s *Subscription) Matches(event *AlertEvent) bool {
	if s.MinLevel != "" && event.Level.Rank() < s.MinLevel.Rank() {
		return false
	}

	if s.UserID != "" && s.UserID != event.UserID {
		return false
	}

	if len(s.Signals) > 0 {
		found := false
		for _, want := range s.Signals {
			for _, have := range event.Signals {
				if want == have {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}

	return true
}
