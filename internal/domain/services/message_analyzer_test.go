package services

import (
	"context"
	"testing"

	"phishguard-lab/internal/domain/models"
	"phishguard-lab/pkg/logger"
)

func newTestAnalyzer() *MessageAnalyzer {
	return NewMessageAnalyzer(logger.NewDefault())
}

func TestScoreMessageRecordsHistory(t *testing.T) {
	a := newTestAnalyzer()
	profile := models.DefaultProfile()
	profile.LearningEnabled = true

	text := "URGENT: verify your password now at http://secure-paypl.com or your account will be suspended!!!"
	result := a.ScoreMessage(text, profile)
	if result.Level != models.RiskLevelHigh {
		t.Fatalf("level = %s (score %d), want High", result.Level, result.Score)
	}

	if a.History().Len() != 1 {
		t.Errorf("History().Len() = %d, want 1", a.History().Len())
	}
}

func TestScoreMessageSkipsHistoryWhenLearningDisabled(t *testing.T) {
	a := newTestAnalyzer()
	profile := models.DefaultProfile()
	profile.LearningEnabled = false

	a.ScoreMessage("URGENT: verify your password now at http://secure-paypl.com!!!", profile)
	if a.History().Len() != 0 {
		t.Errorf("History().Len() = %d, want 0 with learning disabled", a.History().Len())
	}
}

func TestScoreMessageSkipsHistoryForLowRisk(t *testing.T) {
	a := newTestAnalyzer()
	profile := models.DefaultProfile()
	profile.LearningEnabled = true

	a.ScoreMessage("see you at the park", profile)
	if a.History().Len() != 0 {
		t.Errorf("History().Len() = %d, want 0 for Low results", a.History().Len())
	}
}

func TestScoreBatchPreservesOrder(t *testing.T) {
	a := newTestAnalyzer()
	texts := []string{
		"lunch tomorrow?",
		"URGENT: verify your password now at http://secure-paypl.com or your account will be suspended!!!",
		"meeting notes attached",
	}

	results := a.ScoreBatch(context.Background(), texts, models.DefaultProfile())
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Level == models.RiskLevelHigh {
		t.Errorf("benign message scored High: %+v", results[0])
	}
	if results[1].Level != models.RiskLevelHigh {
		t.Errorf("phishing message at index 1 scored %s", results[1].Level)
	}
}

func TestAnalyzerStats(t *testing.T) {
	a := newTestAnalyzer()
	profile := models.DefaultProfile()

	a.ScoreMessage("hello", profile)
	a.ScoreMessage("URGENT: verify your password now at http://secure-paypl.com or your account will be suspended!!!", profile)

	stats := a.Stats()
	if stats.TotalAnalyzed != 2 {
		t.Errorf("TotalAnalyzed = %d, want 2", stats.TotalAnalyzed)
	}
	if stats.HighCount != 1 {
		t.Errorf("HighCount = %d, want 1", stats.HighCount)
	}
	if stats.AverageScore <= 0 {
		t.Errorf("AverageScore = %v, want positive", stats.AverageScore)
	}
	if stats.LastAnalysis.IsZero() {
		t.Error("LastAnalysis not set")
	}
}

func TestBuildPatternCatalog(t *testing.T) {
	catalog := BuildPatternCatalog(NewBrandRegistry())

	if catalog.Version == "" {
		t.Error("catalog version missing")
	}
	if len(catalog.UrgencyWords) == 0 || len(catalog.CredentialWords) == 0 || len(catalog.MoneyWords) == 0 {
		t.Error("keyword lists must not be empty")
	}
	if len(catalog.LegitimateDomains) == 0 {
		t.Error("legitimate domain list must not be empty")
	}
	if len(catalog.BrandVariations["paypal"]) == 0 {
		t.Error("expected paypal typo variations in catalog")
	}
	if len(catalog.SuspiciousTLDs) == 0 {
		t.Error("suspicious TLD list must not be empty")
	}
}
