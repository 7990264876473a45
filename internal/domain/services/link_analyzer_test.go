package services

import (
	"strings"
	"testing"

	"phishguard-lab/internal/domain/models"
)

func TestAnalyzeLinks(t *testing.T) {
	registry := NewBrandRegistry()

	t.Run("suspicious TLD flagged", func(t *testing.T) {
		findings := AnalyzeLinks(ExtractURLs("go to http://login-update.tk/verify"), registry)
		if len(findings) != 1 {
			t.Fatalf("got %d findings, want 1", len(findings))
		}
		if !hasFlagPrefix(findings[0].Flags, "Suspicious TLD") {
			t.Errorf("expected suspicious TLD flag, got %v", findings[0].Flags)
		}
	})

	t.Run("IP address host flagged", func(t *testing.T) {
		findings := AnalyzeLinks(ExtractURLs("open http://192.168.4.12/admin"), registry)
		if len(findings) != 1 {
			t.Fatalf("got %d findings, want 1", len(findings))
		}
		if !hasFlagContaining(findings[0].Flags, "ip address") {
			t.Errorf("expected IP host flag, got %v", findings[0].Flags)
		}
	})

	t.Run("deep subdomain flagged", func(t *testing.T) {
		findings := AnalyzeLinks(ExtractURLs("see http://login.secure.account.example.com/x"), registry)
		if len(findings) != 1 {
			t.Fatalf("got %d findings, want 1", len(findings))
		}
		if !hasFlagContaining(findings[0].Flags, "subdomain") {
			t.Errorf("expected subdomain flag, got %v", findings[0].Flags)
		}
	})

	t.Run("unparsable candidate keeps link count", func(t *testing.T) {
		candidates := []models.URLCandidate{{Raw: "http://bad url", Normalized: "http://bad url"}}
		findings := AnalyzeLinks(candidates, registry)
		if len(findings) != 1 {
			t.Fatalf("got %d findings, want 1", len(findings))
		}
		if findings[0].Host != "-" || !hasFlagContaining(findings[0].Flags, "invalid") {
			t.Errorf("expected invalid-URL finding, got %+v", findings[0])
		}
	})

	t.Run("clean link has no flags", func(t *testing.T) {
		findings := AnalyzeLinks(ExtractURLs("docs at https://example.com/guide"), registry)
		if len(findings) != 1 {
			t.Fatalf("got %d findings, want 1", len(findings))
		}
		if len(findings[0].Flags) != 0 {
			t.Errorf("expected no flags, got %v", findings[0].Flags)
		}
	})
}

func TestDetectBrandVariationsKnownTypo(t *testing.T) {
	registry := NewBrandRegistry()

	result := DetectBrandVariations(ExtractURLs("login at paypel.com now"), registry)
	if result.Score == 0 {
		t.Fatal("expected a non-zero brand variation score for paypel.com")
	}

	foundTypo := false
	for _, v := range result.Variations {
		if v.Type == models.VariationKnownTypo && v.Brand == "paypal" {
			foundTypo = true
		}
	}
	if !foundTypo {
		t.Errorf("expected a known-typo match for paypal, got %+v", result.Variations)
	}
}

func TestDetectBrandVariationsSimilarity(t *testing.T) {
	registry := NewBrandRegistry()

	// paypl is one deletion away from paypal: not in the typo registry
	// but close enough for the similarity path.
	result := DetectBrandVariations(ExtractURLs("verify at paypl.com"), registry)
	found := false
	for _, v := range result.Variations {
		if v.Type == models.VariationSimilarity && strings.Contains(v.Brand, "paypal") {
			found = true
			if v.Similarity <= 0.8 || v.Similarity >= 1.0 {
				t.Errorf("similarity = %v, want in (0.8, 1.0)", v.Similarity)
			}
		}
	}
	if !found {
		t.Errorf("expected a similarity match against paypal, got %+v", result.Variations)
	}
}

func TestDetectBrandVariationsExactDomainNotFlagged(t *testing.T) {
	registry := NewBrandRegistry()

	result := DetectBrandVariations(ExtractURLs("see https://paypal.com/activity"), registry)
	for _, v := range result.Variations {
		if v.Type == models.VariationSimilarity && v.Brand == "paypal.com" {
			t.Errorf("legitimate paypal.com must not be flagged as a lookalike: %+v", v)
		}
	}
}

func TestDetectBrandVariationsScoreCap(t *testing.T) {
	registry := NewBrandRegistry()

	text := "paypel.com microsft.com goog1e.com app1e.com amaz0n.com"
	result := DetectBrandVariations(ExtractURLs(text), registry)
	if result.Score > 60 {
		t.Errorf("brand variation score = %d, want capped at 60", result.Score)
	}
	if len(result.Variations) < 5 {
		t.Errorf("expected at least 5 variation matches, got %d", len(result.Variations))
	}
}

func TestAnalyzeDomainRisk(t *testing.T) {
	registry := NewBrandRegistry()

	candidates := ExtractURLs("pay at http://paypel.com/invoice or http://update.tk/x")
	result := AnalyzeDomainRisk(candidates, registry)

	if len(result.LinkFindings) != 2 {
		t.Fatalf("got %d findings, want 2", len(result.LinkFindings))
	}
	if result.BrandVariation.Score == 0 {
		t.Error("expected a brand variation hit for paypel.com")
	}
}
