package services

import (
	"math"
	"testing"

	"phishguard-lab/internal/domain/models"
)

func TestMergeAssessmentsLocalOnly(t *testing.T) {
	local := models.ScoreResult{Score: 72, Level: models.RiskLevelHigh}
	combined := MergeAssessments(local, nil)

	if combined.Score != 72 {
		t.Errorf("Score = %d, want local score passed through", combined.Score)
	}
	if combined.Level != models.RiskLevelHigh {
		t.Errorf("Level = %s, want High", combined.Level)
	}
	if combined.RemoteUsed {
		t.Error("RemoteUsed must be false without a remote assessment")
	}
}

func TestMergeAssessmentsAveraging(t *testing.T) {
	tests := []struct {
		name        string
		localScore  int
		remoteLevel models.RiskLevel
		wantScore   int
		wantLevel   models.RiskLevel
	}{
		{"high local, high remote", 90, models.RiskLevelHigh, 88, models.RiskLevelHigh},
		{"low local, high remote", 10, models.RiskLevelHigh, 48, models.RiskLevelMedium},
		{"high local, low remote", 90, models.RiskLevelLow, 53, models.RiskLevelMedium},
		{"medium local, medium remote", 40, models.RiskLevelMedium, 45, models.RiskLevelMedium},
		{"low local, low remote", 10, models.RiskLevelLow, 13, models.RiskLevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := models.ScoreResult{Score: tt.localScore, Level: LevelForScore(tt.localScore)}
			remote := &models.RemoteAssessment{RiskLevel: tt.remoteLevel, Reasoning: "model output"}

			combined := MergeAssessments(local, remote)
			if combined.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", combined.Score, tt.wantScore)
			}
			if combined.Level != tt.wantLevel {
				t.Errorf("Level = %s, want %s", combined.Level, tt.wantLevel)
			}
			if combined.Level != LevelForScore(combined.Score) {
				t.Errorf("Level %s disagrees with score %d", combined.Level, combined.Score)
			}
			if !combined.RemoteUsed {
				t.Error("RemoteUsed must be true")
			}
			if combined.Reasoning != "model output" {
				t.Errorf("Reasoning = %q, want remote reasoning", combined.Reasoning)
			}
		})
	}
}

func TestCalculateConfidence(t *testing.T) {
	base := models.ScoreResult{Score: 40, Level: models.RiskLevelMedium}
	if got := CalculateConfidence(base, nil); got != 0.5 {
		t.Errorf("baseline confidence = %v, want 0.5", got)
	}

	withTypo := models.ScoreResult{
		Score:   40,
		Level:   models.RiskLevelMedium,
		Signals: []models.Signal{{Type: "Brand Typo Detection"}},
	}
	if got := CalculateConfidence(withTypo, nil); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("brand typo confidence = %v, want 0.8", got)
	}

	manySignals := models.ScoreResult{
		Score: 40,
		Level: models.RiskLevelMedium,
		Signals: []models.Signal{
			{Type: "Urgency"}, {Type: "Credentials Request"},
			{Type: "Links Present"}, {Type: "Shouting"},
		},
	}
	if got := CalculateConfidence(manySignals, nil); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("many-signal confidence = %v, want 0.7", got)
	}

	agreeing := &models.RemoteAssessment{RiskLevel: models.RiskLevelMedium}
	if got := CalculateConfidence(base, agreeing); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("remote-agreement confidence = %v, want 0.7", got)
	}

	disagreeing := &models.RemoteAssessment{RiskLevel: models.RiskLevelHigh}
	if got := CalculateConfidence(base, disagreeing); got != 0.5 {
		t.Errorf("remote-disagreement confidence = %v, want 0.5", got)
	}

	strong := models.ScoreResult{Score: 80, Level: models.RiskLevelHigh}
	if got := CalculateConfidence(strong, nil); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("high-score confidence = %v, want 0.6", got)
	}
}

func TestCalculateConfidenceCapped(t *testing.T) {
	result := models.ScoreResult{
		Score: 95,
		Level: models.RiskLevelHigh,
		Signals: []models.Signal{
			{Type: "Brand Typo Detection"}, {Type: "Urgency"},
			{Type: "Credentials Request"}, {Type: "Links Present"},
		},
	}
	remote := &models.RemoteAssessment{RiskLevel: models.RiskLevelHigh}

	if got := CalculateConfidence(result, remote); got != 1.0 {
		t.Errorf("confidence = %v, want capped at 1.0", got)
	}
}
