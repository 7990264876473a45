package models

import "time"

// RiskLevel is the coarse risk tier derived from a numeric score
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// Rank orders tiers for max-severity merging (Low < Medium < High)
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLevelHigh:
		return 2
	case RiskLevelMedium:
		return 1
	default:
		return 0
	}
}

// MaxLevel returns the more severe of two tiers
func MaxLevel(a, b RiskLevel) RiskLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// URLCandidate is a URL-like token extracted from message text.
// Normalized always carries a scheme so it can be parsed; HasScheme
// records whether the original text did.
type URLCandidate struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	HasScheme  bool   `json:"has_scheme"`
}

// LinkFinding is the parsed, annotated form of a URLCandidate.
// Parse failures still produce a finding with an invalid-URL flag.
type LinkFinding struct {
	URL        string   `json:"url"`
	Normalized string   `json:"normalized"`
	Host       string   `json:"host"`
	TLD        string   `json:"tld"`
	Flags      []string `json:"flags"`
}

// BrandVariationType distinguishes registry hits from similarity hits
type BrandVariationType string

const (
	VariationKnownTypo  BrandVariationType = "known_typo"
	VariationSimilarity BrandVariationType = "similarity"
)

// BrandVariationMatch records a domain that impersonates a known brand
type BrandVariationMatch struct {
	Domain     string             `json:"domain"`
	Brand      string             `json:"brand"`
	Type       BrandVariationType `json:"type"`
	Score      int                `json:"score"`
	Similarity float64            `json:"similarity,omitempty"`
}

// BrandVariationResult aggregates variation matches for one message
type BrandVariationResult struct {
	Score      int                   `json:"score"`
	Variations []BrandVariationMatch `json:"variations"`
}

// DomainRiskResult is the combined output of link analysis and
// brand-variation detection over one set of URL candidates
type DomainRiskResult struct {
	LinkFindings   []LinkFinding        `json:"link_findings"`
	BrandVariation BrandVariationResult `json:"brand_variation"`
}

// Signal is one named, weighted contribution to the risk score
type Signal struct {
	Type   string `json:"type"`
	Weight int    `json:"weight"`
	Detail string `json:"detail"`
}

// ScoreResult is the output of a full heuristic scoring pass
type ScoreResult struct {
	Score        int           `json:"score"`
	Level        RiskLevel     `json:"level"`
	Signals      []Signal      `json:"signals"`
	URLs         []string      `json:"urls"`
	LinkFindings []LinkFinding `json:"link_findings"`
	Language     Language      `json:"language"`
	Industry     Industry      `json:"industry"`
}

// RedactionReport counts masked spans per PII category
type RedactionReport struct {
	Emails    int `json:"emails"`
	Phones    int `json:"phones"`
	PINs      int `json:"pins"`
	Accounts  int `json:"accounts"`
	Cards     int `json:"cards"`
	Addresses int `json:"addresses"`
	Names     int `json:"names"`
}

// Total returns the number of masked spans across all categories
func (r RedactionReport) Total() int {
	return r.Emails + r.Phones + r.PINs + r.Accounts + r.Cards + r.Addresses + r.Names
}

// SuspiciousChar is a homograph-confusable character found in a domain
type SuspiciousChar struct {
	Position     int      `json:"position"`
	Char         string   `json:"char"`
	Alternatives []string `json:"alternatives"`
}

// HomographMethod describes how a potential target domain was matched
type HomographMethod string

const (
	MethodKnownTypoVariation    HomographMethod = "known_typo_variation"
	MethodCharacterSubstitution HomographMethod = "character_substitution"
	MethodCharacterAddDelete    HomographMethod = "character_addition_deletion"
)

// HomographTarget is a legitimate domain the analyzed domain resembles
type HomographTarget struct {
	Domain          string          `json:"domain"`
	Similarity      float64         `json:"similarity"`
	Method          HomographMethod `json:"method"`
	OfficialWebsite string          `json:"official_website,omitempty"`
}

// HomographReport is the result of homograph/punycode analysis of one domain
type HomographReport struct {
	Domain           string            `json:"domain"`
	IsHomograph      bool              `json:"is_homograph"`
	PunycodeDetected bool              `json:"punycode_detected"`
	DecodedDomain    string            `json:"decoded_domain,omitempty"`
	SuspiciousChars  []SuspiciousChar  `json:"suspicious_chars"`
	PotentialTargets []HomographTarget `json:"potential_targets"`
	Warnings         []string          `json:"warnings"`
}

// RemoteAssessment is the parsed response of the hosted LLM assessor
type RemoteAssessment struct {
	RiskLevel       RiskLevel `json:"risk_level"`
	Reasoning       string    `json:"reasoning"`
	OfficialWebsite string    `json:"official_website,omitempty"`
}

// CombinedAssessment merges the local heuristic result with a remote one.
// Score is round(mean(local, mapped remote)) and Level is re-derived from
// Score, so the two never disagree.
type CombinedAssessment struct {
	Score      int       `json:"score"`
	Level      RiskLevel `json:"level"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning,omitempty"`
	RemoteUsed bool      `json:"remote_used"`
}

// AnalyzerStats tracks analyzer counters, copied on read
type AnalyzerStats struct {
	TotalAnalyzed int64     `json:"total_analyzed"`
	HighCount     int64     `json:"high_count"`
	MediumCount   int64     `json:"medium_count"`
	LowCount      int64     `json:"low_count"`
	AverageScore  float64   `json:"average_score"`
	LastAnalysis  time.Time `json:"last_analysis"`
}
