package services

import (
	"strings"
	"testing"
)

func TestMaskSensitiveDataEmail(t *testing.T) {
	masked, report := MaskSensitiveData("Contact me at john.doe@example.com for details")
	if strings.Contains(masked, "john.doe@example.com") {
		t.Errorf("email not masked: %q", masked)
	}
	if !strings.Contains(masked, "[REDACTED EMAIL]") {
		t.Errorf("expected email placeholder, got %q", masked)
	}
	if report.Emails != 1 {
		t.Errorf("report.Emails = %d, want 1", report.Emails)
	}
}

func TestMaskSensitiveDataPIN(t *testing.T) {
	masked, report := MaskSensitiveData("Your PIN: 4921 expires today")
	if strings.Contains(masked, "4921") {
		t.Errorf("PIN not masked: %q", masked)
	}
	if !strings.Contains(masked, "[REDACTED PIN]") {
		t.Errorf("expected PIN placeholder, got %q", masked)
	}
	if report.PINs != 1 {
		t.Errorf("report.PINs = %d, want 1", report.PINs)
	}
}

func TestMaskSensitiveDataCard(t *testing.T) {
	masked, report := MaskSensitiveData("Card number 4111 1111 1111 1111 was declined")
	if strings.Contains(masked, "4111") {
		t.Errorf("card not masked: %q", masked)
	}
	if report.Cards != 1 {
		t.Errorf("report.Cards = %d, want 1", report.Cards)
	}
}

func TestMaskSensitiveDataPhone(t *testing.T) {
	masked, report := MaskSensitiveData("Call 555-123-4567 immediately")
	if strings.Contains(masked, "555-123-4567") {
		t.Errorf("phone not masked: %q", masked)
	}
	if report.Phones != 1 {
		t.Errorf("report.Phones = %d, want 1", report.Phones)
	}
}

func TestMaskSensitiveDataGreetingName(t *testing.T) {
	masked, report := MaskSensitiveData("Dear Margaret, your account needs attention")
	if strings.Contains(masked, "Margaret") {
		t.Errorf("greeting name not masked: %q", masked)
	}
	if !strings.Contains(masked, "Dear ") {
		t.Errorf("greeting word should survive masking: %q", masked)
	}
	if report.Names != 1 {
		t.Errorf("report.Names = %d, want 1", report.Names)
	}
}

func TestMaskSensitiveDataPreservesCleanText(t *testing.T) {
	text := "The quarterly report is attached. See you at the meeting."
	masked, report := MaskSensitiveData(text)
	if masked != text {
		t.Errorf("clean text altered: %q", masked)
	}
	if report.Total() != 0 {
		t.Errorf("report.Total() = %d, want 0", report.Total())
	}
}

func TestMaskSensitiveDataMultipleCategories(t *testing.T) {
	text := "Dear Alice, email bob@corp.example.com or call 555-867-5309. PIN: 112233."
	masked, report := MaskSensitiveData(text)

	for _, leaked := range []string{"bob@corp.example.com", "867-5309", "112233", "Alice"} {
		if strings.Contains(masked, leaked) {
			t.Errorf("PII leaked through mask: %q in %q", leaked, masked)
		}
	}
	if report.Total() < 4 {
		t.Errorf("report.Total() = %d, want at least 4", report.Total())
	}
}

func TestMaskSensitiveDataIdempotent(t *testing.T) {
	text := "Contact jane@example.com, PIN: 9876"
	once, _ := MaskSensitiveData(text)
	twice, report := MaskSensitiveData(once)
	if once != twice {
		t.Errorf("masking is not idempotent: %q vs %q", once, twice)
	}
	if report.Total() != 0 {
		t.Errorf("second pass found %d spans in already-masked text", report.Total())
	}
}

func TestDetectPII(t *testing.T) {
	result := DetectPII("Send your card 4111-1111-1111-1111 and PIN is 1234 to win")
	if result.Score == 0 {
		t.Error("expected a non-zero PII score")
	}
	if result.Score > 40 {
		t.Errorf("PII score = %d, want capped at 40", result.Score)
	}
	if result.Detail == "No PII detected" {
		t.Error("expected PII categories in detail")
	}

	clean := DetectPII("see you tomorrow")
	if clean.Score != 0 || clean.Detail != "No PII detected" {
		t.Errorf("clean text scored %d (%q)", clean.Score, clean.Detail)
	}
}
