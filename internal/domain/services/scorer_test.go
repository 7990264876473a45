package services

import (
	"reflect"
	"strings"
	"testing"

	"phishguard-lab/internal/domain/models"
)

func newTestScorer() *HeuristicScorer {
	return NewHeuristicScorer(NewBrandRegistry())
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  models.RiskLevel
	}{
		{0, models.RiskLevelLow},
		{29, models.RiskLevelLow},
		{30, models.RiskLevelMedium},
		{64, models.RiskLevelMedium},
		{65, models.RiskLevelHigh},
		{100, models.RiskLevelHigh},
	}
	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.want {
			t.Errorf("LevelForScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScoreBenignMessage(t *testing.T) {
	scorer := newTestScorer()
	result := scorer.Score("Lunch at noon tomorrow? Let me know.", models.DefaultProfile())

	if result.Level != models.RiskLevelLow {
		t.Errorf("benign message level = %s, want Low (score %d)", result.Level, result.Score)
	}
	if len(result.URLs) != 0 {
		t.Errorf("benign message URLs = %v, want none", result.URLs)
	}
}

func TestScoreHighRiskScenario(t *testing.T) {
	scorer := newTestScorer()
	text := "URGENT: verify your password now at http://secure-paypl.com or your account will be suspended!!!"
	result := scorer.Score(text, models.DefaultProfile())

	if result.Level != models.RiskLevelHigh {
		t.Errorf("level = %s (score %d), want High", result.Level, result.Score)
	}
	if len(result.URLs) != 1 || result.URLs[0] != "http://secure-paypl.com" {
		t.Errorf("URLs = %v, want the phishing link", result.URLs)
	}

	types := signalTypes(result)
	for _, want := range []string{"Urgency", "Credentials Request", "Links Present"} {
		if !types[want] {
			t.Errorf("missing signal %q in %v", want, result.Signals)
		}
	}
}

func TestScoreResultTierConsistency(t *testing.T) {
	scorer := newTestScorer()
	texts := []string{
		"hello there",
		"urgent payment needed",
		"URGENT: verify your password now at http://secure-paypl.com or your account will be suspended!!!",
		"click http://free-prize.tk to claim your lottery prize now!!!",
	}
	for _, text := range texts {
		result := scorer.Score(text, models.DefaultProfile())
		if result.Level != LevelForScore(result.Score) {
			t.Errorf("level %s disagrees with score %d for %q", result.Level, result.Score, text)
		}
	}
}

func TestScoreIdempotent(t *testing.T) {
	scorer := newTestScorer()
	text := "urgent: confirm your login at http://paypel.com/verify or pay the invoice now!!!"
	profile := models.DefaultProfile()

	first := scorer.Score(text, profile)
	second := scorer.Score(text, profile)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scoring diverged:\n%+v\n%+v", first, second)
	}
}

func TestScoreClampedUnderStress(t *testing.T) {
	scorer := newTestScorer()

	// Thousands of trigger words and links must still land in [0, 100].
	unit := "URGENT!!! password otp gift card wire transfer prize lottery http://paypel.com http://scam.tk "
	text := strings.Repeat(unit, 900)

	result := scorer.Score(text, models.DefaultProfile())
	if result.Score < 0 || result.Score > 100 {
		t.Fatalf("score = %d, want within [0, 100]", result.Score)
	}
	if result.Level != models.RiskLevelHigh {
		t.Errorf("level = %s, want High", result.Level)
	}
}

func TestScoreRiskToleranceScaling(t *testing.T) {
	scorer := newTestScorer()
	text := "urgent payment required"

	conservative := scorer.Score(text, models.UserProfile{RiskTolerance: models.ToleranceConservative, Industry: models.IndustryGeneral})
	aggressive := scorer.Score(text, models.UserProfile{RiskTolerance: models.ToleranceAggressive, Industry: models.IndustryGeneral})

	if conservative.Score <= aggressive.Score {
		t.Errorf("conservative score %d should exceed aggressive score %d", conservative.Score, aggressive.Score)
	}
}

func TestScoreIndustryContext(t *testing.T) {
	scorer := newTestScorer()
	text := "Your wire transfer failed, verify immediately"

	banking := scorer.Score(text, models.UserProfile{RiskTolerance: models.ToleranceModerate, Industry: models.IndustryBanking})

	if !signalTypes(banking)["Industry Context"] {
		t.Errorf("expected an industry context signal, got %+v", banking.Signals)
	}
	if banking.Industry != models.IndustryBanking {
		t.Errorf("result industry = %s, want banking", banking.Industry)
	}
}

func signalTypes(result models.ScoreResult) map[string]bool {
	types := make(map[string]bool, len(result.Signals))
	for _, s := range result.Signals {
		types[s.Type] = true
	}
	return types
}
