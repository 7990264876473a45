package services

import (
	"fmt"
	"strings"

	"phishguard-lab/internal/domain/models"
)

// PersonalizedAlert is an alert message tailored to the detected threat
// type, message language, and the user's industry.
type PersonalizedAlert struct {
	Alert      string           `json:"alert"`
	ThreatType AlertType        `json:"threat_type"`
	Language   models.Language  `json:"language"`
	Industry   models.Industry  `json:"industry"`
	Score      int              `json:"score"`
	Level      models.RiskLevel `json:"level"`
}

// classifyThreat picks the alert category from message content
func classifyThreat(lc string) AlertType {
	switch {
	case strings.Contains(lc, "otp") || strings.Contains(lc, "verification code") || strings.Contains(lc, "2fa"):
		return AlertBankScam
	case strings.Contains(lc, "payment") || strings.Contains(lc, "invoice") || strings.Contains(lc, "wire transfer"):
		return AlertPaymentFraud
	case strings.Contains(lc, "login") || strings.Contains(lc, "password") || strings.Contains(lc, "credentials"):
		return AlertCredentialHarvest
	case strings.Contains(lc, "insurance") || strings.Contains(lc, "claim") || strings.Contains(lc, "medical"):
		return AlertInsuranceScam
	case strings.Contains(lc, "subscription") || strings.Contains(lc, "license") || strings.Contains(lc, "renewal"):
		return AlertSubscriptionScam
	case strings.Contains(lc, "financial aid") || strings.Contains(lc, "tuition") || strings.Contains(lc, "scholarship"):
		return AlertFinancialAidScam
	default:
		return AlertGeneric
	}
}

// GeneratePersonalizedAlert builds an alert for a scored message. The
// language catalog supplies the base text and an industry-specific alert
// for the same threat type takes precedence when one exists.
func GeneratePersonalizedAlert(text string, result models.ScoreResult, profile models.UserProfile) PersonalizedAlert {
	lang := DetectLanguage(text)
	langBundle := BundleForLanguage(lang)
	indBundle := BundleForIndustry(profile.Industry)

	threatType := classifyThreat(strings.ToLower(text))

	alert, ok := langBundle.Alerts[threatType]
	if !ok {
		alert = langBundle.Alerts[AlertGeneric]
	}
	if indAlert, ok := indBundle.Alerts[threatType]; ok {
		alert = indAlert
	}

	var context []string
	if lang != models.LanguageEnglish {
		context = append(context, fmt.Sprintf("Detected language: %s", strings.ToUpper(string(lang))))
	}
	if profile.Industry != models.IndustryGeneral && profile.Industry != "" {
		context = append(context, fmt.Sprintf("Industry context: %s", profile.Industry))
	}
	if len(context) > 0 {
		alert += "\n\nContext: " + strings.Join(context, ", ")
	}

	return PersonalizedAlert{
		Alert:      alert,
		ThreatType: threatType,
		Language:   lang,
		Industry:   profile.Industry,
		Score:      result.Score,
		Level:      result.Level,
	}
}
