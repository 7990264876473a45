package models

import "time"

// RiskTolerance scales urgency/credential/money sub-scores
type RiskTolerance string

const (
	ToleranceConservative RiskTolerance = "conservative"
	ToleranceModerate     RiskTolerance = "moderate"
	ToleranceAggressive   RiskTolerance = "aggressive"
)

// Multiplier returns the sub-score multiplier for a tolerance setting.
// Unrecognized values behave as moderate.
func (t RiskTolerance) Multiplier() float64 {
	switch t {
	case ToleranceConservative:
		return 1.3
	case ToleranceAggressive:
		return 0.7
	default:
		return 1.0
	}
}

// Language is a supported message language
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageFrench  Language = "fr"
	LanguageHindi   Language = "hi"
	LanguageGerman  Language = "de"
	LanguageRussian Language = "ru"
)

// Industry selects industry-specific keyword bundles
type Industry string

const (
	IndustryGeneral    Industry = "general"
	IndustryBanking    Industry = "banking"
	IndustryHealthcare Industry = "healthcare"
	IndustryTech       Industry = "tech"
	IndustryEducation  Industry = "education"
)

// UserProfile is read-only scoring configuration owned by the caller
type UserProfile struct {
	UserID          string        `json:"user_id,omitempty"`
	RiskTolerance   RiskTolerance `json:"risk_tolerance"`
	Industry        Industry      `json:"industry"`
	LearningEnabled bool          `json:"learning_enabled"`
	UpdatedAt       time.Time     `json:"updated_at,omitempty"`
}

// DefaultProfile returns the moderate/general baseline profile
func DefaultProfile() UserProfile {
	return UserProfile{
		RiskTolerance:   ToleranceModerate,
		Industry:        IndustryGeneral,
		LearningEnabled: true,
	}
}
