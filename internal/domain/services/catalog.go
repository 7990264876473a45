package services

// PatternCatalog is the detection reference data exposed to clients
// that run local pre-filtering before calling the API.
type PatternCatalog struct {
	Version           string              `json:"version"`
	UrgencyWords      []string            `json:"urgency_words"`
	CredentialWords   []string            `json:"credential_words"`
	MoneyWords        []string            `json:"money_words"`
	BrandKeywords     []string            `json:"brand_keywords"`
	LegitimateDomains []string            `json:"legitimate_domains"`
	BrandVariations   map[string][]string `json:"brand_variations"`
	SuspiciousTLDs    []string            `json:"suspicious_tlds"`
}

// BuildPatternCatalog assembles the catalog from the scorer word lists
// and the brand registry.
func BuildPatternCatalog(registry *BrandRegistry) PatternCatalog {
	return PatternCatalog{
		Version:           "1.0.0",
		UrgencyWords:      append([]string(nil), wordsUrgency...),
		CredentialWords:   append([]string(nil), wordsCreds...),
		MoneyWords:        append([]string(nil), wordsMoney...),
		BrandKeywords:     registry.Keywords(),
		LegitimateDomains: registry.LegitimateDomains(),
		BrandVariations:   registry.Variations(),
		SuspiciousTLDs:    registry.SuspiciousTLDs(),
	}
}
