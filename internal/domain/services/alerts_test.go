package services

import (
	"strings"
	"testing"

	"phishguard-lab/internal/domain/models"
)

func TestClassifyThreat(t *testing.T) {
	tests := []struct {
		text string
		want AlertType
	}{
		{"share your otp to unlock the account", AlertBankScam},
		{"the invoice is overdue, wire transfer today", AlertPaymentFraud},
		{"reset your password at this link", AlertCredentialHarvest},
		{"your insurance claim was rejected", AlertInsuranceScam},
		{"your subscription renewal failed", AlertSubscriptionScam},
		{"tuition deadline is tomorrow", AlertFinancialAidScam},
		{"hello, how are you", AlertGeneric},
	}
	for _, tt := range tests {
		if got := classifyThreat(tt.text); got != tt.want {
			t.Errorf("classifyThreat(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestGeneratePersonalizedAlertIndustryOverride(t *testing.T) {
	text := "share your otp to verify the account"
	result := models.ScoreResult{Score: 70, Level: models.RiskLevelHigh}

	banking := GeneratePersonalizedAlert(text, result, models.UserProfile{
		RiskTolerance: models.ToleranceModerate,
		Industry:      models.IndustryBanking,
	})
	general := GeneratePersonalizedAlert(text, result, models.UserProfile{
		RiskTolerance: models.ToleranceModerate,
		Industry:      models.IndustryGeneral,
	})

	if banking.ThreatType != AlertBankScam {
		t.Errorf("ThreatType = %s, want bank_scam", banking.ThreatType)
	}
	if banking.Alert == general.Alert {
		t.Error("banking industry should override the generic bank scam alert")
	}
	if !strings.Contains(banking.Alert, "Industry context") {
		t.Errorf("expected industry context suffix, got %q", banking.Alert)
	}
}

func TestGeneratePersonalizedAlertLanguage(t *testing.T) {
	// Spanish accents drive detection; the alert text follows the language.
	text := "urgente: comparte tu código de verificación (otp) ahora"
	result := models.ScoreResult{Score: 70, Level: models.RiskLevelHigh}

	alert := GeneratePersonalizedAlert(text, result, models.DefaultProfile())
	if alert.Language != models.LanguageSpanish {
		t.Errorf("Language = %s, want Spanish", alert.Language)
	}
	if !strings.Contains(alert.Alert, "OTP") && !strings.Contains(alert.Alert, "phishing") {
		t.Errorf("unexpected alert text: %q", alert.Alert)
	}
	if !strings.Contains(alert.Alert, "Detected language") {
		t.Errorf("expected language context suffix, got %q", alert.Alert)
	}
}

func TestGeneratePersonalizedAlertCarriesScore(t *testing.T) {
	result := models.ScoreResult{Score: 82, Level: models.RiskLevelHigh}
	alert := GeneratePersonalizedAlert("verify your password", result, models.DefaultProfile())

	if alert.Score != 82 || alert.Level != models.RiskLevelHigh {
		t.Errorf("alert carries score %d level %s", alert.Score, alert.Level)
	}
}
