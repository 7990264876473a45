package services

import (
	"math"

	"phishguard-lab/internal/domain/models"
)

// remoteLevelScore maps a remote assessment tier onto the numeric scale
func remoteLevelScore(level models.RiskLevel) int {
	switch level {
	case models.RiskLevelHigh:
		return 85
	case models.RiskLevelMedium:
		return 50
	default:
		return 15
	}
}

// MergeAssessments combines a local heuristic result with an optional
// remote one. With no remote assessment the local result passes through.
// Otherwise the combined score is round(mean(local, mapped remote)) and
// the tier is re-derived from that score, so the textual tier and the
// numeric score never disagree.
func MergeAssessments(local models.ScoreResult, remote *models.RemoteAssessment) models.CombinedAssessment {
	if remote == nil {
		return models.CombinedAssessment{
			Score:      local.Score,
			Level:      local.Level,
			Confidence: CalculateConfidence(local, nil),
		}
	}

	combined := int(math.Round(float64(local.Score+remoteLevelScore(remote.RiskLevel)) / 2))

	return models.CombinedAssessment{
		Score:      combined,
		Level:      LevelForScore(combined),
		Confidence: CalculateConfidence(local, remote),
		Reasoning:  remote.Reasoning,
		RemoteUsed: true,
	}
}

// CalculateConfidence is the presentational confidence heuristic: 0.5
// base, +0.3 for a brand-typo signal, +0.2 for more than three signals,
// +0.2 when the remote tier agrees, +0.1 for a local score above 70,
// capped at 1.0.
func CalculateConfidence(local models.ScoreResult, remote *models.RemoteAssessment) float64 {
	confidence := 0.5

	for _, s := range local.Signals {
		if s.Type == "Brand Typo Detection" {
			confidence += 0.3
			break
		}
	}
	if len(local.Signals) > 3 {
		confidence += 0.2
	}
	if remote != nil && remote.RiskLevel == local.Level {
		confidence += 0.2
	}
	if local.Score > 70 {
		confidence += 0.1
	}

	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}
