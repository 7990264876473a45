package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"phishguard-lab/internal/domain/models"
)

const flagInvalidURL = "Invalid URL format"

var ipHostRegex = regexp.MustCompile(`^[0-9.]+$`)

// AnalyzeLinks parses each URL candidate and annotates it with risk flags.
// A candidate that fails to parse still produces a finding carrying an
// invalid-URL flag so the link count stays accurate.
func AnalyzeLinks(candidates []models.URLCandidate, registry *BrandRegistry) []models.LinkFinding {
	findings := make([]models.LinkFinding, 0, len(candidates))
	for _, c := range candidates {
		u, err := url.Parse(c.Normalized)
		if err != nil || u.Hostname() == "" {
			findings = append(findings, models.LinkFinding{
				URL:   c.Raw,
				Host:  "-",
				TLD:   "-",
				Flags: []string{flagInvalidURL},
			})
			continue
		}

		host := u.Hostname()
		parts := strings.Split(host, ".")
		tld := parts[len(parts)-1]

		var flags []string
		if ipHostRegex.MatchString(host) {
			flags = append(flags, "IP address host, no domain name")
		}
		if strings.Count(host, ".") >= 3 {
			flags = append(flags, "Suspicious subdomain structure")
		}
		if strings.Contains(c.Raw, "@") {
			flags = append(flags, "Malformed URL with @ symbol")
		}
		if registry.IsSuspiciousTLD(tld) {
			flags = append(flags, fmt.Sprintf("Suspicious TLD (.%s)", tld))
		}
		if lookalikes := registry.LookalikeKeywords(host); len(lookalikes) > 0 {
			flags = append(flags, fmt.Sprintf("Brand impersonation (%s)", strings.Join(lookalikes, ", ")))
		}

		findings = append(findings, models.LinkFinding{
			URL:        c.Raw,
			Normalized: c.Normalized,
			Host:       host,
			TLD:        tld,
			Flags:      flags,
		})
	}
	return findings
}

// DetectBrandVariations checks each candidate host against the known-typo
// registry (exact hit scores 50) and against the legitimate-domain list by
// similarity in the open interval (0.8, 1.0). The aggregate score is
// capped at 60; exact matches are legitimate and never flagged.
func DetectBrandVariations(candidates []models.URLCandidate, registry *BrandRegistry) models.BrandVariationResult {
	total := 0
	var variations []models.BrandVariationMatch

	for _, c := range candidates {
		u, err := url.Parse(c.Normalized)
		if err != nil || u.Hostname() == "" {
			continue
		}
		host := strings.ToLower(u.Hostname())
		hostNoTLD := stripTLD(host)

		for _, brand := range registry.KnownTypoBrands(host, hostNoTLD) {
			total += 50
			variations = append(variations, models.BrandVariationMatch{
				Domain: host,
				Brand:  brand,
				Type:   models.VariationKnownTypo,
				Score:  50,
			})
		}

		for _, legit := range registry.LegitimateDomains() {
			sim := Similarity(hostNoTLD, stripTLD(legit))
			if sim > 0.8 && sim < 1.0 {
				score := int(sim*30 + 0.5)
				total += score
				variations = append(variations, models.BrandVariationMatch{
					Domain:     host,
					Brand:      legit,
					Type:       models.VariationSimilarity,
					Score:      score,
					Similarity: sim,
				})
			}
		}
	}

	return models.BrandVariationResult{
		Score:      capInt(total, 60),
		Variations: variations,
	}
}

// AnalyzeDomainRisk combines link analysis and brand-variation detection
// over one set of URL candidates.
func AnalyzeDomainRisk(candidates []models.URLCandidate, registry *BrandRegistry) models.DomainRiskResult {
	return models.DomainRiskResult{
		LinkFindings:   AnalyzeLinks(candidates, registry),
		BrandVariation: DetectBrandVariations(candidates, registry),
	}
}

// stripTLD drops the final dot-separated label: "paypel.com" -> "paypel"
func stripTLD(domain string) string {
	idx := strings.LastIndex(domain, ".")
	if idx < 0 {
		return domain
	}
	return domain[:idx]
}
