package services

import (
	"context"
	"sync"
	"time"

	"phishguard-lab/internal/domain/models"
	"phishguard-lab/pkg/logger"
)

// defaultBatchConcurrency bounds parallel scoring in batch requests
const defaultBatchConcurrency = 5

// MessageAnalyzer is the top-level analysis service: heuristic scoring,
// PII masking, domain risk analysis, and homograph detection, with
// running counters and a capped threat history.
type MessageAnalyzer struct {
	registry *BrandRegistry
	scorer   *HeuristicScorer
	history  *ThreatHistory
	logger   *logger.Logger

	mu         sync.RWMutex
	stats      models.AnalyzerStats
	totalScore int64
}

// NewMessageAnalyzer creates an analyzer with the default brand registry
func NewMessageAnalyzer(log *logger.Logger) *MessageAnalyzer {
	registry := NewBrandRegistry()
	return &MessageAnalyzer{
		registry: registry,
		scorer:   NewHeuristicScorer(registry),
		history:  NewThreatHistory(),
		logger:   log.WithComponent("message-analyzer"),
	}
}

// ScoreMessage runs the heuristic pipeline over one message. The result
// is recomputed fresh on every call; when the profile has learning
// enabled, non-Low outcomes are recorded in the threat history.
func (a *MessageAnalyzer) ScoreMessage(text string, profile models.UserProfile) models.ScoreResult {
	result := a.scorer.Score(text, profile)
	a.updateStats(result)

	if profile.LearningEnabled && result.Level != models.RiskLevelLow {
		a.history.RecordResult(text, result)
	}

	a.logger.Debug().
		Int("score", result.Score).
		Str("level", string(result.Level)).
		Int("signals", len(result.Signals)).
		Int("links", len(result.LinkFindings)).
		Msg("Message scored")

	return result
}

// MaskMessage redacts PII from a message before it leaves the local
// environment.
func (a *MessageAnalyzer) MaskMessage(text string) (string, models.RedactionReport) {
	return MaskSensitiveData(text)
}

// ExtractURLs exposes URL extraction for callers that analyze domains
// separately from full messages.
func (a *MessageAnalyzer) ExtractURLs(text string) []models.URLCandidate {
	return ExtractURLs(text)
}

// AnalyzeDomainRisk runs link analysis and brand-variation detection
// over pre-extracted URL candidates.
func (a *MessageAnalyzer) AnalyzeDomainRisk(candidates []models.URLCandidate) models.DomainRiskResult {
	return AnalyzeDomainRisk(candidates, a.registry)
}

// DetectHomograph analyzes one domain for punycode and confusable
// character abuse.
func (a *MessageAnalyzer) DetectHomograph(domain string) models.HomographReport {
	return DetectHomograph(domain, a.registry)
}

// Alert builds the personalized alert for a scored message
func (a *MessageAnalyzer) Alert(text string, result models.ScoreResult, profile models.UserProfile) PersonalizedAlert {
	return GeneratePersonalizedAlert(text, result, profile)
}

// ScoreBatch scores multiple messages with bounded concurrency. Order of
// results matches the input order.
func (a *MessageAnalyzer) ScoreBatch(ctx context.Context, texts []string, profile models.UserProfile) []models.ScoreResult {
	results := make([]models.ScoreResult, len(texts))

	sem := make(chan struct{}, defaultBatchConcurrency)
	var wg sync.WaitGroup

	for i, text := range texts {
		select {
		case <-ctx.Done():
			return results
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int, t string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = a.ScoreMessage(t, profile)
		}(i, text)
	}

	wg.Wait()
	return results
}

// History returns the analyzer's capped threat history
func (a *MessageAnalyzer) History() *ThreatHistory {
	return a.history
}

// Registry returns the brand reference data
func (a *MessageAnalyzer) Registry() *BrandRegistry {
	return a.registry
}

// Stats returns a copy of the running counters
func (a *MessageAnalyzer) Stats() models.AnalyzerStats {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stats
}

func (a *MessageAnalyzer) updateStats(result models.ScoreResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stats.TotalAnalyzed++
	switch result.Level {
	case models.RiskLevelHigh:
		a.stats.HighCount++
	case models.RiskLevelMedium:
		a.stats.MediumCount++
	default:
		a.stats.LowCount++
	}
	a.totalScore += int64(result.Score)
	a.stats.AverageScore = float64(a.totalScore) / float64(a.stats.TotalAnalyzed)
	a.stats.LastAnalysis = time.Now().UTC()
}
