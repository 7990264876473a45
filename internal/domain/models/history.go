package models

import (
	"time"

	"github.com/google/uuid"
)

// ThreatEvent is one recorded non-Low analysis outcome. Only the first
// 100 characters of the message text are kept.
type ThreatEvent struct {
	ID        uuid.UUID `json:"id"`
	Level     RiskLevel `json:"level"`
	Score     int       `json:"score"`
	Signals   []string  `json:"signals"`
	Domains   []string  `json:"domains"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
