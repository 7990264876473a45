package streaming

import (
	"context"

	"phishguard-lab/internal/domain/models"
)

// AlertPublisher fans out detected threats to the event bus and the
// WebSocket hub. It implements the publisher the analysis handlers use.
type AlertPublisher struct {
	eventBus *EventBus
	wsHub    *WebSocketHub
}

// NewAlertPublisher creates a new publisher adapter
func NewAlertPublisher(eventBus *EventBus, wsHub *WebSocketHub) *AlertPublisher {
	return &AlertPublisher{
		eventBus: eventBus,
		wsHub:    wsHub,
	}
}

// PublishThreat publishes an alert for a scored message. Low-risk
// results are not broadcast.
func (p *AlertPublisher) PublishThreat(ctx context.Context, userID string, result models.ScoreResult, alert string) error {
	if result.Level == models.RiskLevelLow {
		return nil
	}

	event := NewAlertEvent(userID, result, alert)

	if p.eventBus != nil {
		if err := p.eventBus.Publish(ctx, event); err != nil {
			return err
		}
	}

	if p.wsHub != nil {
		p.wsHub.BroadcastEvent(event)
	}

	return nil
}
