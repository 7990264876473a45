package streaming

import (
	"testing"

	"phishguard-lab/internal/domain/models"
)

func sampleResult(level models.RiskLevel, score int) models.ScoreResult {
	return models.ScoreResult{
		Score: score,
		Level: level,
		Signals: []models.Signal{
			{Type: "Urgency", Weight: 24},
			{Type: "Links Present", Weight: 5},
		},
		LinkFindings: []models.LinkFinding{
			{Host: "paypel.com"},
			{Host: "-"},
		},
	}
}

func TestNewAlertEventTypeMapping(t *testing.T) {
	high := NewAlertEvent("user-1", sampleResult(models.RiskLevelHigh, 80), "watch out")
	if high.Type != EventTypeHighRiskAlert {
		t.Errorf("high result event type = %s, want %s", high.Type, EventTypeHighRiskAlert)
	}

	medium := NewAlertEvent("user-1", sampleResult(models.RiskLevelMedium, 45), "careful")
	if medium.Type != EventTypeThreatDetected {
		t.Errorf("medium result event type = %s, want %s", medium.Type, EventTypeThreatDetected)
	}
}

func TestNewAlertEventFields(t *testing.T) {
	event := NewAlertEvent("user-7", sampleResult(models.RiskLevelHigh, 80), "alert text")

	if event.ID == "" {
		t.Error("event ID not assigned")
	}
	if event.UserID != "user-7" || event.Score != 80 {
		t.Errorf("event = %+v", event)
	}
	if len(event.Signals) != 2 || event.Signals[0] != "Urgency" {
		t.Errorf("Signals = %v", event.Signals)
	}
	if len(event.Domains) != 1 || event.Domains[0] != "paypel.com" {
		t.Errorf("Domains = %v, placeholder hosts must be excluded", event.Domains)
	}
	if event.Alert != "alert text" {
		t.Errorf("Alert = %q", event.Alert)
	}
}

func TestSubscriptionMatches(t *testing.T) {
	high := NewAlertEvent("user-1", sampleResult(models.RiskLevelHigh, 80), "")
	medium := NewAlertEvent("user-2", sampleResult(models.RiskLevelMedium, 45), "")

	tests := []struct {
		name string
		sub  Subscription
		ev   *AlertEvent
		want bool
	}{
		{"empty subscription matches all", Subscription{}, medium, true},
		{"min level passes equal", Subscription{MinLevel: models.RiskLevelMedium}, medium, true},
		{"min level passes higher", Subscription{MinLevel: models.RiskLevelMedium}, high, true},
		{"min level blocks lower", Subscription{MinLevel: models.RiskLevelHigh}, medium, false},
		{"user filter matches", Subscription{UserID: "user-1"}, high, true},
		{"user filter blocks others", Subscription{UserID: "user-1"}, medium, false},
		{"signal filter matches", Subscription{Signals: []string{"Urgency"}}, high, true},
		{"signal filter blocks", Subscription{Signals: []string{"PII Detection"}}, high, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.Matches(tt.ev); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
