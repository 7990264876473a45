package streaming

import (
	"context"
	"testing"
	"time"

	"phishguard-lab/internal/domain/models"
	"phishguard-lab/pkg/logger"
)

func TestEventBusPublishSubscribe(t *testing.T) {
	eb := NewEventBus(nil, logger.NewDefault())
	defer eb.Close()

	ctx := context.Background()
	ch, unsubscribe := eb.Subscribe(ctx, &Subscription{})
	defer unsubscribe()

	event := NewAlertEvent("user-1", sampleResult(models.RiskLevelHigh, 80), "alert")
	if err := eb.Publish(ctx, event); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case got := <-ch:
		if got.ID != event.ID {
			t.Errorf("received event %s, want %s", got.ID, event.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestEventBusSubscriptionFilter(t *testing.T) {
	eb := NewEventBus(nil, logger.NewDefault())
	defer eb.Close()

	ctx := context.Background()
	ch, unsubscribe := eb.Subscribe(ctx, &Subscription{MinLevel: models.RiskLevelHigh})
	defer unsubscribe()

	medium := NewAlertEvent("user-1", sampleResult(models.RiskLevelMedium, 45), "")
	high := NewAlertEvent("user-1", sampleResult(models.RiskLevelHigh, 80), "")

	if err := eb.Publish(ctx, medium); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := eb.Publish(ctx, high); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case got := <-ch:
		if got.Level != models.RiskLevelHigh {
			t.Errorf("filtered subscription received %s event", got.Level)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for high event")
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	eb := NewEventBus(nil, logger.NewDefault())
	defer eb.Close()

	_, unsubscribe := eb.Subscribe(context.Background(), &Subscription{})
	if eb.SubscriberCount() != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", eb.SubscriberCount())
	}

	unsubscribe()
	if eb.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount after unsubscribe = %d, want 0", eb.SubscriberCount())
	}
}

func TestEventBusDeliverAfterUnsubscribe(t *testing.T) {
	eb := NewEventBus(nil, logger.NewDefault())
	defer eb.Close()

	ch, unsubscribe := eb.Subscribe(context.Background(), &Subscription{})
	event := NewAlertEvent("user-1", sampleResult(models.RiskLevelHigh, 80), "")

	eb.mu.RLock()
	id := ""
	for k := range eb.subscribers {
		id = k
	}
	eb.mu.RUnlock()

	if !eb.deliver(id, event) {
		t.Fatal("deliver to live subscriber returned false")
	}
	<-ch

	// Once the subscriber is removed its channel is closed; deliver must
	// notice instead of sending on the closed channel.
	unsubscribe()
	if eb.deliver(id, event) {
		t.Error("deliver after unsubscribe returned true")
	}
}
