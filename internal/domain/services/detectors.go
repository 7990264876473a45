package services

// DetectorResult is the uniform output of a content detector: a capped
// sub-score plus a human-readable explanation.
type DetectorResult struct {
	Score  int
	Detail string
}

// DetectorFunc is a pure content detector over message text. Detectors
// share no state and can run in any order.
type DetectorFunc func(text string) DetectorResult

// ContentDetector pairs a signal name with its detector function
type ContentDetector struct {
	Name string
	Run  DetectorFunc
}

// ContentDetectors returns the detector registry the scoring engine
// iterates over. Each entry contributes one Signal when it fires.
func ContentDetectors() []ContentDetector {
	return []ContentDetector{
		{Name: "PII Detection", Run: DetectPII},
		{Name: "Social Engineering", Run: DetectSocialEngineering},
		{Name: "Suspicious Patterns", Run: DetectSuspiciousPatterns},
	}
}
