package services

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	grammarRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)click here`),
		regexp.MustCompile(`(?i)click below`),
		regexp.MustCompile(`(?i)click the link`),
		regexp.MustCompile(`(?i)follow this link`),
		regexp.MustCompile(`(?i)visit this link`),
		regexp.MustCompile(`(?i)access your account`),
		regexp.MustCompile(`(?i)log into your account`),
		regexp.MustCompile(`(?i)sign in to your account`),
	}

	longNumberRegex = regexp.MustCompile(`\b\d{10,}\b`)
	multiSpaceRegex = regexp.MustCompile(`  +`)
)

// DetectSuspiciousPatterns scores formatting tells: call-to-action grammar,
// excessive punctuation, ALL CAPS lines, non-ASCII density, long digit
// runs, and erratic spacing. Capped at 30.
func DetectSuspiciousPatterns(text string) DetectorResult {
	score := 0
	var details []string

	grammar := 0
	for _, re := range grammarRegexes {
		if re.MatchString(text) {
			grammar++
		}
	}
	if grammar > 0 {
		score += grammar * 6
		details = append(details, fmt.Sprintf("%d suspicious grammar pattern(s)", grammar))
	}

	if excls := strings.Count(text, "!"); excls >= 5 {
		score += 8
		details = append(details, fmt.Sprintf("%d exclamation marks", excls))
	}
	if questions := strings.Count(text, "?"); questions >= 3 {
		score += 5
		details = append(details, fmt.Sprintf("%d question marks", questions))
	}

	capsLines := 0
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if len(strings.TrimSpace(line)) >= 10 && line == strings.ToUpper(line) {
			capsLines++
		}
	}
	if capsLines > 0 {
		score += capsLines * 4
		details = append(details, fmt.Sprintf("%d ALL CAPS line(s)", capsLines))
	}

	nonASCII := 0
	for _, r := range text {
		if r > 127 {
			nonASCII++
		}
	}
	if nonASCII > 5 {
		score += 10
		details = append(details, fmt.Sprintf("%d non-ASCII characters", nonASCII))
	}

	if runs := len(longNumberRegex.FindAllString(text, -1)); runs > 0 {
		score += runs * 3
		details = append(details, fmt.Sprintf("%d suspicious number(s)", runs))
	}

	if len(multiSpaceRegex.FindAllString(text, -1)) >= 3 {
		score += 4
		details = append(details, "excessive spacing")
	}

	detail := "No suspicious patterns detected"
	if len(details) > 0 {
		detail = strings.Join(details, ", ")
	}
	return DetectorResult{Score: capInt(score, 30), Detail: detail}
}
