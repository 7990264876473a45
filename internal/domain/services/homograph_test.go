package services

import (
	"strings"
	"testing"

	"phishguard-lab/internal/domain/models"
)

func TestDetectHomographPunycode(t *testing.T) {
	registry := NewBrandRegistry()

	report := DetectHomograph("xn--pypal-4ve.com", registry)
	if !report.PunycodeDetected {
		t.Fatal("expected punycode detection for xn-- domain")
	}
	if len(report.Warnings) == 0 {
		t.Error("expected at least one warning for punycode domain")
	}
	if report.DecodedDomain == "" {
		t.Error("expected the punycode domain to decode")
	}

	hasPunycodeWarning := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "Punycode") {
			hasPunycodeWarning = true
		}
	}
	if !hasPunycodeWarning {
		t.Errorf("expected a punycode warning, got %v", report.Warnings)
	}
}

func TestDetectHomographPlainDomain(t *testing.T) {
	registry := NewBrandRegistry()

	report := DetectHomograph("example.org", registry)
	if report.PunycodeDetected {
		t.Error("plain ASCII domain must not report punycode")
	}
	if report.Domain != "example.org" {
		t.Errorf("Domain = %q, want example.org", report.Domain)
	}
}

func TestDetectHomographKnownTypo(t *testing.T) {
	registry := NewBrandRegistry()

	report := DetectHomograph("paypel.com", registry)

	found := false
	for _, target := range report.PotentialTargets {
		if target.Method == models.MethodKnownTypoVariation && target.Domain == "paypal.com" {
			found = true
			if target.OfficialWebsite == "" {
				t.Error("known typo target should carry the official website")
			}
		}
	}
	if !found {
		t.Errorf("expected paypal.com as a known-typo target, got %+v", report.PotentialTargets)
	}
}

func TestDetectHomographCloseDomain(t *testing.T) {
	registry := NewBrandRegistry()

	// One deletion from paypal.com: caught by positional substitution.
	report := DetectHomograph("paypl.com", registry)

	found := false
	for _, target := range report.PotentialTargets {
		if target.Domain == "paypal.com" && target.Similarity > 0.7 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected paypal.com as a potential target, got %+v", report.PotentialTargets)
	}

	hasImpersonationWarning := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "impersonation") {
			hasImpersonationWarning = true
		}
	}
	if !hasImpersonationWarning {
		t.Errorf("expected an impersonation warning, got %v", report.Warnings)
	}
}

func TestDetectHomographTargetsSortedBySimilarity(t *testing.T) {
	registry := NewBrandRegistry()

	report := DetectHomograph("paypl.com", registry)
	for i := 1; i < len(report.PotentialTargets); i++ {
		if report.PotentialTargets[i-1].Similarity < report.PotentialTargets[i].Similarity {
			t.Fatalf("potential targets not sorted by descending similarity: %+v", report.PotentialTargets)
		}
	}
}

func TestIsConfusablePair(t *testing.T) {
	// Cyrillic а vs Latin a, both directions
	if !isConfusablePair('a', 'а') {
		t.Error("expected Latin a / Cyrillic а to be confusable")
	}
	if !isConfusablePair('а', 'a') {
		t.Error("confusable check must be symmetric")
	}
	if isConfusablePair('a', 'b') {
		t.Error("a and b are not confusable")
	}
	// z carries a self-entry only: it is flagged as a suspicious char but
	// pairs with nothing beyond itself.
	if !isConfusablePair('z', 'z') {
		t.Error("z self-entry missing")
	}
	if isConfusablePair('z', 'ž') {
		t.Error("z and ž must not be confusable")
	}
}

func TestDetectHomographFlagsSelfEntryChar(t *testing.T) {
	registry := NewBrandRegistry()

	report := DetectHomograph("zurich.net", registry)
	found := false
	for _, sc := range report.SuspiciousChars {
		if sc.Char == "z" && sc.Position == 0 {
			found = true
			if len(sc.Alternatives) != 1 || sc.Alternatives[0] != "z" {
				t.Errorf("z alternatives = %v, want [z]", sc.Alternatives)
			}
		}
	}
	if !found {
		t.Errorf("expected z flagged as suspicious, got %+v", report.SuspiciousChars)
	}
}
