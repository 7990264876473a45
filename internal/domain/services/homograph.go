package services

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/idna"

	"phishguard-lab/internal/domain/models"
)

// homographMap maps Latin characters to Cyrillic/Greek confusables that
// render near-identically.
var homographMap = map[rune][]rune{
	'a': {'а', 'ɑ', 'α'},
	'e': {'е', 'ε'},
	'o': {'о', 'ο', 'θ'},
	'p': {'р', 'ρ'},
	'c': {'с', 'ϲ'},
	'x': {'х', 'χ'},
	'y': {'у', 'γ'},
	'i': {'і', 'ι'},
	'j': {'ј'},
	'l': {'ι'},
	'n': {'п'},
	'm': {'м'},
	'b': {'Ь', 'в'},
	'd': {'ԁ'},
	'g': {'ɡ'},
	'h': {'һ'},
	'k': {'к'},
	'q': {'ԛ'},
	'r': {'г'},
	's': {'ѕ'},
	't': {'т'},
	'u': {'υ'},
	'v': {'ν'},
	'w': {'ω'},
	'z': {'z'},
}

// DetectHomograph analyzes a single domain for punycode encoding,
// homograph-confusable characters, and similarity to well-known
// legitimate domains.
func DetectHomograph(domain string, registry *BrandRegistry) models.HomographReport {
	report := models.HomographReport{
		Domain:           domain,
		SuspiciousChars:  []models.SuspiciousChar{},
		PotentialTargets: []models.HomographTarget{},
		Warnings:         []string{},
	}

	if strings.Contains(domain, "xn--") {
		report.PunycodeDetected = true
		report.Warnings = append(report.Warnings, "Punycode domain detected, may contain non-ASCII characters")

		decoded, err := idna.ToUnicode(domain)
		if err != nil {
			report.Warnings = append(report.Warnings, "Could not decode punycode")
		} else if decoded != domain {
			report.DecodedDomain = decoded
			report.Warnings = append(report.Warnings, fmt.Sprintf("Decoded punycode: %s", decoded))
		}
	}

	lower := strings.ToLower(domain)
	var positions []string
	for i, ch := range []rune(lower) {
		alts, ok := homographMap[ch]
		if !ok {
			continue
		}
		altStrs := make([]string, len(alts))
		for j, a := range alts {
			altStrs[j] = string(a)
		}
		report.SuspiciousChars = append(report.SuspiciousChars, models.SuspiciousChar{
			Position:     i,
			Char:         string(ch),
			Alternatives: altStrs,
		})
		positions = append(positions, fmt.Sprintf("%d", i))
	}
	if len(report.SuspiciousChars) > 0 {
		report.IsHomograph = true
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Homograph characters detected at positions: %s", strings.Join(positions, ", ")))
	}

	hostNoTLD := stripTLD(lower)

	for _, brand := range registry.KnownTypoBrands(lower, hostNoTLD) {
		report.PotentialTargets = append(report.PotentialTargets, models.HomographTarget{
			Domain:          brand + ".com",
			Similarity:      0.95,
			Method:          models.MethodKnownTypoVariation,
			OfficialWebsite: registry.OfficialWebsite(brand),
		})
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Known phishing variation detected, looks like a typo of %s.com", brand))
	}

	for _, legit := range registry.LegitimateDomains() {
		legitNoTLD := stripTLD(legit)

		if isSubstitutedDomain(hostNoTLD, legitNoTLD) {
			if sim := Similarity(hostNoTLD, legitNoTLD); sim > 0.7 {
				report.PotentialTargets = append(report.PotentialTargets, models.HomographTarget{
					Domain:          legit,
					Similarity:      sim,
					Method:          models.MethodCharacterSubstitution,
					OfficialWebsite: registry.OfficialWebsite(legitNoTLD),
				})
			}
		}

		if isCloseDomain(hostNoTLD, legitNoTLD) {
			if sim := Similarity(hostNoTLD, legitNoTLD); sim > 0.7 {
				report.PotentialTargets = append(report.PotentialTargets, models.HomographTarget{
					Domain:          legit,
					Similarity:      sim,
					Method:          models.MethodCharacterAddDelete,
					OfficialWebsite: registry.OfficialWebsite(legitNoTLD),
				})
			}
		}
	}

	if len(report.PotentialTargets) > 0 {
		sort.SliceStable(report.PotentialTargets, func(i, j int) bool {
			return report.PotentialTargets[i].Similarity > report.PotentialTargets[j].Similarity
		})
		top := report.PotentialTargets[0]
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Potential impersonation of %s (%d%% similar)", top.Domain, int(top.Similarity*100+0.5)))
	}

	return report
}

// isSubstitutedDomain reports whether the two names differ in at most two
// positions, not counting homograph-confusable swaps.
func isSubstitutedDomain(a, b string) bool {
	ar, br := []rune(a), []rune(b)
	if abs(len(ar)-len(br)) > 2 {
		return false
	}

	maxLen := len(ar)
	if len(br) > maxLen {
		maxLen = len(br)
	}

	differences := 0
	for i := 0; i < maxLen; i++ {
		var c1, c2 rune
		if i < len(ar) {
			c1 = ar[i]
		}
		if i < len(br) {
			c2 = br[i]
		}
		if c1 == c2 {
			continue
		}
		if !isConfusablePair(c1, c2) {
			differences++
		}
	}
	return differences > 0 && differences <= 2
}

// isCloseDomain reports whether one name contains the other with a
// length delta of at most two (a single added or dropped fragment).
func isCloseDomain(a, b string) bool {
	if abs(len(a)-len(b)) > 2 {
		return false
	}
	shorter, longer := a, b
	if len(a) >= len(b) {
		shorter, longer = b, a
	}
	return strings.Contains(longer, shorter)
}

func isConfusablePair(a, b rune) bool {
	for _, alt := range homographMap[a] {
		if alt == b {
			return true
		}
	}
	for _, alt := range homographMap[b] {
		if alt == a {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
