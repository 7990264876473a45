package services

import (
	"fmt"
	"regexp"
	"strings"

	"phishguard-lab/internal/domain/models"
)

var (
	emailRegex   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRegex   = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	cardRegex    = regexp.MustCompile(`\b\d{4}[-.\s]?\d{4}[-.\s]?\d{4}[-.\s]?\d{4}\b`)
	pinRegex     = regexp.MustCompile(`(?i)\b(?:PIN)\s*(?:is|:|=)?\s*\d{3,6}\b`)
	accountRegex = regexp.MustCompile(`\b[A-Za-z]{2,3}\d{4,8}\b`)
	addressRegex = regexp.MustCompile(`(?i)\b\d{1,5}\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Way|Place|Pl)\b`)
	nameRegex    = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr)\.?\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
)

// DetectPII counts personally identifiable substrings by category, each
// weighted, with the total capped at 40.
func DetectPII(text string) DetectorResult {
	score := 0
	var details []string

	count := func(re *regexp.Regexp, weight int, label string) {
		n := len(re.FindAllString(text, -1))
		if n > 0 {
			score += n * weight
			details = append(details, fmt.Sprintf("%d %s detected", n, label))
		}
	}

	count(emailRegex, 8, "email(s)")
	count(phoneRegex, 6, "phone number(s)")
	count(cardRegex, 15, "credit card number(s)")
	count(pinRegex, 12, "PIN(s)")
	count(accountRegex, 10, "account number(s)")
	count(addressRegex, 8, "address(es)")
	count(nameRegex, 5, "name(s)")

	detail := "No PII detected"
	if len(details) > 0 {
		detail = strings.Join(details, ", ")
	}
	return DetectorResult{Score: capInt(score, 40), Detail: detail}
}

var (
	maskEmailRegex   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	maskPINRegex     = regexp.MustCompile(`\b(?:pin|PIN|Pin)\s*[:\-]?\s*\d{4,6}\b`)
	maskCardRegex    = regexp.MustCompile(`(?:\d[ \-]*){13,19}`)
	maskPhoneRegex   = regexp.MustCompile(`\+?\d{1,3}[-.\s(]*\d{2,4}[-.\s)]*\d{2,4}[-.\s]*\d{2,4}`)
	maskAccountRegex = regexp.MustCompile(`\d{8,20}`)
	maskAddressRegex = regexp.MustCompile(`(?i)\b\d{1,5}[A-Za-z]?\s+(?:[A-Za-z0-9#]+\s?){1,6}(?:Street|St\.|Road|Rd\.|Avenue|Ave\.|Boulevard|Blvd\.|Lane|Ln\.|Drive|Dr\.|Way|Place|Pl\.|Circle|Cir\.|Court|Ct\.|Crescent|Cres\.|Close|Cl\.|Terrace|Tce\.|Grove|Gr\.|Gardens|Gdns\.|Square|Sq\.|Heights|Hts\.|Manor|Mews|Park|Pk\.|Rise|View|Vale|Walk|Wood|Wynd)(?:\s*,\s*(?:Suite|Ste|Apt|Apartment|Unit|Floor|Fl)\s*[A-Za-z0-9#\s]*)?(?:\s*,\s*[A-Za-z\s]+,\s*[A-Z]{2}\s*\d{5}(?:-\d{4})?)?`)
	maskNameRegex    = regexp.MustCompile(`\b(Name|Full Name|Your Name)\s*[:\-]\s*[A-Z][a-z]+(?:\s[A-Z][a-z]+)*`)
	maskGreetRegex   = regexp.MustCompile(`(^|\n)(\s*(?:Dear|Hi|Hello|Hey)\s+)[A-Z][a-z]+(?:\s[A-Z][a-z]+)?`)
)

// MaskSensitiveData replaces detected PII spans with fixed placeholders and
// reports how many spans were masked per category. Substitution order
// matters: emails and explicit PINs run before the generic digit-run
// patterns so their digits aren't re-masked as card or account numbers.
// The input is never mutated.
func MaskSensitiveData(text string) (string, models.RedactionReport) {
	masked := text
	var report models.RedactionReport

	masked = maskEmailRegex.ReplaceAllStringFunc(masked, func(string) string {
		report.Emails++
		return "[REDACTED EMAIL]"
	})

	masked = maskPINRegex.ReplaceAllStringFunc(masked, func(string) string {
		report.PINs++
		return "[REDACTED PIN]"
	})

	masked = replaceDigitRun(masked, maskCardRegex, "[REDACTED CARD]", &report.Cards)

	masked = maskPhoneRegex.ReplaceAllStringFunc(masked, func(m string) string {
		if countDigits(m) < 7 {
			return m
		}
		report.Phones++
		return "[REDACTED PHONE]"
	})

	masked = replaceDigitRun(masked, maskAccountRegex, "[REDACTED ACCOUNT]", &report.Accounts)

	masked = maskAddressRegex.ReplaceAllStringFunc(masked, func(string) string {
		report.Addresses++
		return "[REDACTED ADDRESS]"
	})

	masked = maskNameRegex.ReplaceAllStringFunc(masked, func(m string) string {
		report.Names++
		label := maskNameRegex.FindStringSubmatch(m)[1]
		return label + ": [REDACTED NAME]"
	})

	masked = maskGreetRegex.ReplaceAllStringFunc(masked, func(m string) string {
		report.Names++
		sub := maskGreetRegex.FindStringSubmatch(m)
		return sub[1] + sub[2] + "[REDACTED NAME]"
	})

	return masked, report
}

// replaceDigitRun substitutes matches that are not embedded in a longer
// digit run, standing in for the lookaround anchors the source patterns
// rely on.
func replaceDigitRun(text string, re *regexp.Regexp, placeholder string, counter *int) string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start > 0 && isDigit(text[start-1]) {
			continue
		}
		if end < len(text) && isDigit(text[end]) {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(placeholder)
		*counter++
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func countDigits(s string) int {
	n := 0
	for _, c := range s {
		if c >= '0' && c <= '9' {
			n++
		}
	}
	return n
}
