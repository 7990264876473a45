package services

import (
	"regexp"
	"strings"

	"phishguard-lab/internal/domain/models"
)

var (
	urlTokenRegex = regexp.MustCompile(`(?i)\b((?:https?://)?(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?:/[^\s]*)?|https?://[^\s]+)`)
	schemeRegex   = regexp.MustCompile(`(?i)^https?://`)

	simpleNameRegex = regexp.MustCompile(`^[a-z]+\.[a-z]+$`)
	ipLikeRegex     = regexp.MustCompile(`^\d+\.\d+`)
	bareWordRegex   = regexp.MustCompile(`(?i)^[a-z]+\.(com|org|net|edu|gov)$`)
)

// commonTLDs keeps short bare domains like paypel.com in play while
// two-label tokens such as "john.smith" are filtered out.
var commonTLDs = map[string]bool{
	"com": true, "org": true, "net": true, "edu": true, "gov": true,
	"co": true, "io": true, "me": true, "us": true,
}

// ExtractURLs pulls URL-like tokens out of free-form text. Tokens with an
// explicit scheme are always kept; bare tokens go through false-positive
// filtering so personal-name patterns don't count as links. Normalized
// always carries a scheme so it can be parsed.
func ExtractURLs(text string) []models.URLCandidate {
	matches := urlTokenRegex.FindAllString(text, -1)

	candidates := make([]models.URLCandidate, 0, len(matches))
	for _, m := range matches {
		if !keepURLToken(m) {
			continue
		}
		hasScheme := schemeRegex.MatchString(m)
		normalized := m
		if !hasScheme {
			normalized = "http://" + m
		}
		candidates = append(candidates, models.URLCandidate{
			Raw:        m,
			Normalized: normalized,
			HasScheme:  hasScheme,
		})
	}
	return candidates
}

func keepURLToken(token string) bool {
	hostname := strings.ToLower(strings.SplitN(schemeRegex.ReplaceAllString(token, ""), "/", 2)[0])
	hasScheme := schemeRegex.MatchString(token)

	// Short two-label tokens are only kept when the TLD is recognizable,
	// so brand typos like paypel.com survive while john.smith does not.
	if simpleNameRegex.MatchString(hostname) && len(hostname) < 15 && !hasScheme {
		tld := hostname[strings.LastIndex(hostname, ".")+1:]
		return commonTLDs[tld]
	}

	if hasScheme {
		return true
	}

	if simpleNameRegex.MatchString(hostname) || ipLikeRegex.MatchString(hostname) || bareWordRegex.MatchString(hostname) {
		return false
	}
	return true
}
