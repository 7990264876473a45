package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"phishguard-lab/internal/domain/models"
)

// HistoryCapacity is the number of threat events retained
const HistoryCapacity = 50

// historyTextLimit caps how much message text an event keeps
const historyTextLimit = 100

// ThreatHistory is a capped most-recent-first log of non-Low analysis
// outcomes. New events are inserted at the head; the tail is evicted
// when capacity is exceeded. The scoring pipeline never reads it back.
type ThreatHistory struct {
	mu     sync.RWMutex
	events []models.ThreatEvent
}

// NewThreatHistory creates an empty history log
func NewThreatHistory() *ThreatHistory {
	return &ThreatHistory{}
}

// Record inserts an event at the head, evicting the oldest entry past
// capacity.
func (h *ThreatHistory) Record(event models.ThreatEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.events = append([]models.ThreatEvent{event}, h.events...)
	if len(h.events) > HistoryCapacity {
		h.events = h.events[:HistoryCapacity]
	}
}

// EventFromResult converts a score result into a threat event
func EventFromResult(text string, result models.ScoreResult) models.ThreatEvent {
	signals := make([]string, len(result.Signals))
	for i, s := range result.Signals {
		signals[i] = s.Type
	}

	domains := make([]string, 0, len(result.LinkFindings))
	for _, f := range result.LinkFindings {
		if f.Host != "" && f.Host != "-" {
			domains = append(domains, f.Host)
		}
	}

	snippet := text
	if len(snippet) > historyTextLimit {
		snippet = snippet[:historyTextLimit] + "..."
	}

	return models.ThreatEvent{
		ID:        uuid.New(),
		Level:     result.Level,
		Score:     result.Score,
		Signals:   signals,
		Domains:   domains,
		Text:      snippet,
		Timestamp: time.Now().UTC(),
	}
}

// RecordResult converts a score result into a threat event and records it
func (h *ThreatHistory) RecordResult(text string, result models.ScoreResult) models.ThreatEvent {
	event := EventFromResult(text, result)
	h.Record(event)
	return event
}

// Recent returns a copy of the log, newest first
func (h *ThreatHistory) Recent() []models.ThreatEvent {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]models.ThreatEvent, len(h.events))
	copy(out, h.events)
	return out
}

// Len returns the number of recorded events
func (h *ThreatHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.events)
}

// Clear drops all recorded events
func (h *ThreatHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = nil
}
