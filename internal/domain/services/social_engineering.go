package services

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	wordsAuthority = []string{"irs", "fbi", "police", "court", "government", "official", "authority", "agent", "officer"}
	wordsTrust     = []string{"trusted", "verified", "secure", "official", "legitimate", "certified", "guaranteed"}
	wordsFear      = []string{"urgent", "immediate", "expire", "suspend", "close", "terminate", "violation", "penalty", "fine"}
	wordsGreed     = []string{"free", "prize", "winner", "congratulations", "bonus", "reward", "cash", "money", "lottery"}

	impersonationRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)your account`),
		regexp.MustCompile(`(?i)your profile`),
		regexp.MustCompile(`(?i)your information`),
		regexp.MustCompile(`(?i)verify your`),
		regexp.MustCompile(`(?i)confirm your`),
		regexp.MustCompile(`(?i)update your`),
	}
)

// DetectSocialEngineering scores manipulation tactics: authority and trust
// cues, fear and greed hooks, and second-person impersonation phrases.
// Capped at 35.
func DetectSocialEngineering(text string) DetectorResult {
	lc := strings.ToLower(text)
	score := 0
	var details []string

	tally := func(words []string, weight int, label string) {
		n := countContained(lc, words)
		if n > 0 {
			score += n * weight
			details = append(details, fmt.Sprintf("%d %s", n, label))
		}
	}

	tally(wordsAuthority, 8, "authority reference(s)")
	tally(wordsTrust, 5, "trust-building word(s)")
	tally(wordsFear, 6, "fear-inducing word(s)")
	tally(wordsGreed, 4, "greed-inducing word(s)")

	impersonation := 0
	for _, re := range impersonationRegexes {
		if re.MatchString(text) {
			impersonation++
		}
	}
	if impersonation > 0 {
		score += impersonation * 7
		details = append(details, fmt.Sprintf("%d impersonation pattern(s)", impersonation))
	}

	detail := "No social engineering detected"
	if len(details) > 0 {
		detail = strings.Join(details, ", ")
	}
	return DetectorResult{Score: capInt(score, 35), Detail: detail}
}
