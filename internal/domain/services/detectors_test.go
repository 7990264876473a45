package services

import (
	"strings"
	"testing"
)

func TestDetectSocialEngineering(t *testing.T) {
	result := DetectSocialEngineering("This is the IRS. Verify your account immediately or face a penalty.")
	if result.Score == 0 {
		t.Error("expected a non-zero social engineering score")
	}
	if result.Score > 35 {
		t.Errorf("score = %d, want capped at 35", result.Score)
	}
	if !strings.Contains(result.Detail, "authority") {
		t.Errorf("expected authority detail, got %q", result.Detail)
	}

	clean := DetectSocialEngineering("see you at lunch")
	if clean.Score != 0 || clean.Detail != "No social engineering detected" {
		t.Errorf("clean text scored %d (%q)", clean.Score, clean.Detail)
	}
}

func TestDetectSuspiciousPatterns(t *testing.T) {
	result := DetectSuspiciousPatterns("CLICK HERE NOW!!!!! Click the link below!!! Are you sure? Really? Absolutely?")
	if result.Score == 0 {
		t.Error("expected a non-zero suspicious pattern score")
	}
	if result.Score > 30 {
		t.Errorf("score = %d, want capped at 30", result.Score)
	}

	clean := DetectSuspiciousPatterns("the report is attached")
	if clean.Score != 0 || clean.Detail != "No suspicious patterns detected" {
		t.Errorf("clean text scored %d (%q)", clean.Score, clean.Detail)
	}
}

func TestContentDetectorsRegistry(t *testing.T) {
	detectors := ContentDetectors()
	if len(detectors) != 3 {
		t.Fatalf("got %d detectors, want 3", len(detectors))
	}
	names := map[string]bool{}
	for _, d := range detectors {
		if d.Name == "" || d.Run == nil {
			t.Errorf("malformed detector entry: %+v", d)
		}
		names[d.Name] = true
	}
	for _, want := range []string{"PII Detection", "Social Engineering", "Suspicious Patterns"} {
		if !names[want] {
			t.Errorf("missing detector %q", want)
		}
	}
}
