package services

import (
	"fmt"
	"math"
	"strings"

	"phishguard-lab/internal/domain/models"
)

// Base keyword lists. Language- and industry-specific lists are unioned
// in at scoring time.
var (
	wordsUrgency = []string{
		"urgent", "immediately", "now", "asap", "act now", "final notice",
		"last warning", "suspend", "suspended", "verify now", "limited time",
		"expires", "deadline",
	}
	wordsCreds = []string{
		"password", "passcode", "otp", "one-time", "one time", "2fa",
		"verification code", "login", "log in", "sign in", "credentials",
		"account details",
	}
	wordsMoney = []string{
		"gift card", "crypto", "bitcoin", "wire", "bank transfer",
		"western union", "payment", "invoice", "refund", "prize", "lottery",
		"cash", "paypal", "phonepe", "gpay", "free gift", "prize winner",
		"you've won", "exclusive offer", "new job opportunity",
		"you won't believe", "secret", "see who viewed your profile",
	}
)

// Per-category caps. No single heuristic can saturate the scale alone;
// only combinations of signals reach High.
const (
	capHTTPLinks       = 40
	capUrgency         = 36
	capCreds           = 36
	capMoney           = 30
	brandFlagScore     = 20
	capShouting        = 18
	capExclamation     = 12
	capLinkCount       = 25
	capLinkFlags       = 12
	capSuspiciousLinks = 60
)

// Tier thresholds
const (
	thresholdHigh   = 65
	thresholdMedium = 30
)

// LevelForScore maps a numeric score to its risk tier
func LevelForScore(score int) models.RiskLevel {
	switch {
	case score >= thresholdHigh:
		return models.RiskLevelHigh
	case score >= thresholdMedium:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

// HeuristicScorer turns raw message text into a scored, explained result.
// Scoring is pure over (text, profile); the scorer holds only immutable
// reference data.
type HeuristicScorer struct {
	registry  *BrandRegistry
	detectors []ContentDetector
}

// NewHeuristicScorer creates a scorer over the given brand registry
func NewHeuristicScorer(registry *BrandRegistry) *HeuristicScorer {
	return &HeuristicScorer{
		registry:  registry,
		detectors: ContentDetectors(),
	}
}

// Score runs the full heuristic pipeline: URL extraction, link and brand
// analysis, keyword tallies scaled by the profile's risk tolerance, the
// content detector registry, per-category capped sub-scores, and the
// final clamp to [0, 100].
func (s *HeuristicScorer) Score(text string, profile models.UserProfile) models.ScoreResult {
	lc := strings.ToLower(text)
	var signals []models.Signal

	lang := DetectLanguage(text)
	langBundle := BundleForLanguage(lang)
	indBundle := BundleForIndustry(profile.Industry)

	urgencyWords := combineWords(wordsUrgency, langBundle.UrgencyWords, indBundle.UrgencyWords)
	moneyWords := combineWords(wordsMoney, langBundle.MoneyWords, indBundle.MoneyWords)

	urgCount := countContained(lc, urgencyWords)
	credCount := countContained(lc, wordsCreds)
	moneyCount := countContained(lc, moneyWords)

	shouty := 0
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if len(strings.TrimSpace(line)) >= 6 && line == strings.ToUpper(line) {
			shouty++
		}
	}
	excls := strings.Count(text, "!")

	candidates := ExtractURLs(text)
	linkFindings := AnalyzeLinks(candidates, s.registry)
	brandVariation := DetectBrandVariations(candidates, s.registry)

	httpLinks := 0
	for _, c := range candidates {
		if c.HasScheme && strings.HasPrefix(c.Normalized, "http://") {
			httpLinks++
		}
	}

	mult := profile.RiskTolerance.Multiplier()

	httpLinkScore := capInt(httpLinks*20, capHTTPLinks)
	urgencyScore := capFloat(float64(urgCount)*12*mult, capUrgency)
	credsScore := capFloat(float64(credCount)*18*mult, capCreds)
	moneyScore := capFloat(float64(moneyCount)*10*mult, capMoney)

	brandScore := 0
	for _, f := range linkFindings {
		if hasFlagContaining(f.Flags, "brand") {
			brandScore = brandFlagScore
			break
		}
	}

	shoutScore := capInt(shouty*12, capShouting)
	exclScore := capInt(excls*4, capExclamation)
	linkScore := capInt(len(candidates)*5, capLinkCount)

	suspiciousLinks := 0
	linkFlagsScore := 0
	for _, f := range linkFindings {
		linkFlagsScore += len(f.Flags) * 2
		if hasFlagPrefix(f.Flags, "Suspicious TLD") {
			suspiciousLinks++
		}
	}
	linkFlagsScore = capInt(linkFlagsScore, capLinkFlags)
	susScore := capInt(suspiciousLinks*30, capSuspiciousLinks)

	detectorResults := make([]DetectorResult, len(s.detectors))
	detectorTotal := 0
	for i, d := range s.detectors {
		detectorResults[i] = d.Run(text)
		detectorTotal += detectorResults[i].Score
	}

	raw := float64(httpLinkScore) + urgencyScore + credsScore + moneyScore +
		float64(brandScore+brandVariation.Score+shoutScore+exclScore+linkScore+linkFlagsScore+susScore+detectorTotal)

	score := clampInt(int(math.Round(raw)), 0, 100)
	level := LevelForScore(score)

	if urgCount > 0 {
		signals = append(signals, models.Signal{Type: "Urgency", Weight: round(urgencyScore),
			Detail: fmt.Sprintf("Found %d urgency cue(s) (%s patterns)", urgCount, lang)})
	}
	if credCount > 0 {
		signals = append(signals, models.Signal{Type: "Credentials Request", Weight: round(credsScore),
			Detail: fmt.Sprintf("Mentions of credentials/OTP: %d", credCount)})
	}
	if moneyCount > 0 {
		signals = append(signals, models.Signal{Type: "Financial Ask", Weight: round(moneyScore),
			Detail: fmt.Sprintf("Payment-related terms: %d (%s industry)", moneyCount, profile.Industry)})
	}
	if lang != models.LanguageEnglish {
		signals = append(signals, models.Signal{Type: "Language Detection", Weight: 5,
			Detail: fmt.Sprintf("Detected language: %s", strings.ToUpper(string(lang)))})
	}
	if profile.Industry != models.IndustryGeneral && profile.Industry != "" {
		signals = append(signals, models.Signal{Type: "Industry Context", Weight: 3,
			Detail: fmt.Sprintf("Industry-specific patterns: %s", profile.Industry)})
	}
	if profile.RiskTolerance != models.ToleranceModerate && profile.RiskTolerance != "" {
		signals = append(signals, models.Signal{Type: "Risk Profile", Weight: 2,
			Detail: fmt.Sprintf("Risk tolerance: %s", profile.RiskTolerance)})
	}
	if brandScore > 0 {
		signals = append(signals, models.Signal{Type: "Brand Impersonation", Weight: brandScore,
			Detail: "Possible brand lookalike detected in links"})
	}
	if brandVariation.Score > 0 && len(brandVariation.Variations) > 0 {
		top := brandVariation.Variations[0]
		kind := "similar to"
		if top.Type == models.VariationKnownTypo {
			kind = "known typo of"
		}
		signals = append(signals, models.Signal{Type: "Brand Typo Detection", Weight: brandVariation.Score,
			Detail: fmt.Sprintf("Suspicious domain %q detected (%s %s)", top.Domain, kind, top.Brand)})
	}
	if shouty > 0 {
		signals = append(signals, models.Signal{Type: "Shouting", Weight: shoutScore,
			Detail: fmt.Sprintf("%d line(s) in ALL CAPS", shouty)})
	}
	if excls >= 3 {
		signals = append(signals, models.Signal{Type: "Excessive Punctuation", Weight: exclScore,
			Detail: fmt.Sprintf("%d exclamation marks", excls)})
	}
	if len(candidates) > 0 {
		signals = append(signals, models.Signal{Type: "Links Present", Weight: linkScore,
			Detail: fmt.Sprintf("%d link(s) detected", len(candidates))})
	}
	if linkFlagsScore > 0 {
		signals = append(signals, models.Signal{Type: "Link Flags", Weight: linkFlagsScore,
			Detail: "Suspicious link characteristics present"})
	}
	for i, d := range s.detectors {
		if detectorResults[i].Score > 0 {
			signals = append(signals, models.Signal{Type: d.Name, Weight: detectorResults[i].Score,
				Detail: detectorResults[i].Detail})
		}
	}

	urls := make([]string, len(candidates))
	for i, c := range candidates {
		urls[i] = c.Raw
	}

	return models.ScoreResult{
		Score:        score,
		Level:        level,
		Signals:      signals,
		URLs:         urls,
		LinkFindings: linkFindings,
		Language:     lang,
		Industry:     profile.Industry,
	}
}

func combineWords(lists ...[]string) []string {
	var combined []string
	for _, list := range lists {
		combined = append(combined, list...)
	}
	return combined
}

func countContained(lc string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lc, strings.ToLower(w)) {
			n++
		}
	}
	return n
}

func hasFlagContaining(flags []string, substr string) bool {
	for _, f := range flags {
		if strings.Contains(strings.ToLower(f), substr) {
			return true
		}
	}
	return false
}

func hasFlagPrefix(flags []string, prefix string) bool {
	for _, f := range flags {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

func capFloat(v, hi float64) float64 {
	if v > hi {
		return hi
	}
	return v
}

func round(v float64) int {
	return int(math.Round(v))
}
