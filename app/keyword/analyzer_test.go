package keyword

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fabriziochiappini/adseo/app/ai"
)

// MockGenerator implements Generator for testing
type MockGenerator struct {
	longTailPhrases []string
	broadPhrases    []string
	estimated       []ai.KeywordMetrics
	estimatedFor    []ai.KeywordMetrics
	err             error

	longTailCalls int
	broadCalls    int
}

func (m *MockGenerator) GenerateLongTailKeywords(ctx context.Context, topic, description, language string) ([]string, error) {
	m.longTailCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.longTailPhrases, nil
}

func (m *MockGenerator) GenerateBroadVariations(ctx context.Context, phrases []string, language string) ([]string, error) {
	m.broadCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.broadPhrases, nil
}

func (m *MockGenerator) EstimateKeywordMetrics(ctx context.Context, topic, description, language string) ([]ai.KeywordMetrics, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.estimated, nil
}

func (m *MockGenerator) EstimateMetricsFor(ctx context.Context, phrases []string, language string) ([]ai.KeywordMetrics, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.estimatedFor, nil
}

// MockMetricsFetcher implements MetricsFetcher for testing
type MockMetricsFetcher struct {
	metrics map[string]ai.KeywordMetrics
	err     error
	calls   int
}

func (m *MockMetricsFetcher) GetSearchVolume(ctx context.Context, keywords []string, locationCode int, languageCode string) ([]ai.KeywordMetrics, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	result := make([]ai.KeywordMetrics, 0, len(keywords))
	for _, kw := range keywords {
		if metric, ok := m.metrics[kw]; ok {
			result = append(result, metric)
		} else {
			result = append(result, ai.KeywordMetrics{Keyword: kw})
		}
	}
	return result, nil
}

func phrasesWithVolume(n int) ([]string, map[string]ai.KeywordMetrics) {
	phrases := make([]string, 0, n)
	metrics := make(map[string]ai.KeywordMetrics, n)
	for i := 0; i < n; i++ {
		p := fmt.Sprintf("keyword phrase number %d", i)
		phrases = append(phrases, p)
		metrics[p] = ai.KeywordMetrics{Keyword: p, SearchVolume: 100 + i, Competition: 0.2}
	}
	return phrases, metrics
}

func TestAnalyzer_NoEnrichmentWhenEnoughVolume(t *testing.T) {
	phrases, metrics := phrasesWithVolume(15)
	gen := &MockGenerator{longTailPhrases: phrases}
	fetcher := &MockMetricsFetcher{metrics: metrics}

	analyzer := NewAnalyzer(gen, fetcher, 2380, "it")
	result, err := analyzer.Run(context.Background(), "traslochi", "ditta di traslochi a Roma", "it")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gen.broadCalls != 0 {
		t.Errorf("Enrichment must not trigger with 15 valid items, got %d broad calls", gen.broadCalls)
	}
	if len(result) != 15 {
		t.Errorf("Expected 15 keywords, got %d", len(result))
	}
}

func TestAnalyzer_EnrichmentTriggersBelowThreshold(t *testing.T) {
	// 14 phrases with volume plus some zero-volume ones: below the
	// round 1 acceptance threshold.
	phrases, metrics := phrasesWithVolume(14)
	phrases = append(phrases, "phrase without any volume", "another dead phrase here")

	broadPhrases, broadMetrics := []string{"broad phrase one ok", "broad phrase two ok"}, map[string]ai.KeywordMetrics{
		"broad phrase one ok": {Keyword: "broad phrase one ok", SearchVolume: 900, Competition: 0.1},
		"broad phrase two ok": {Keyword: "broad phrase two ok", SearchVolume: 800, Competition: 0.2},
	}
	for k, v := range broadMetrics {
		metrics[k] = v
	}

	gen := &MockGenerator{longTailPhrases: phrases, broadPhrases: broadPhrases}
	fetcher := &MockMetricsFetcher{metrics: metrics}

	analyzer := NewAnalyzer(gen, fetcher, 2380, "it")
	result, err := analyzer.Run(context.Background(), "traslochi", "ditta di traslochi a Roma", "it")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gen.broadCalls != 1 {
		t.Errorf("Expected exactly 1 enrichment round, got %d", gen.broadCalls)
	}
	if result[0].Keyword != "broad phrase one ok" {
		t.Errorf("Expected enriched keyword with highest volume first, got %q", result[0].Keyword)
	}
}

func TestAnalyzer_NeverAThirdRound(t *testing.T) {
	// Round 2 also yields nothing with volume; the analyzer must stop
	// after the single enrichment round.
	gen := &MockGenerator{
		longTailPhrases: []string{"dead one", "dead two"},
		broadPhrases:    []string{"still dead", "also dead"},
	}
	fetcher := &MockMetricsFetcher{metrics: map[string]ai.KeywordMetrics{}}

	analyzer := NewAnalyzer(gen, fetcher, 2380, "it")
	_, err := analyzer.Run(context.Background(), "traslochi", "ditta di traslochi a Roma", "it")

	if !errors.Is(err, ErrNoKeywords) {
		t.Errorf("Expected ErrNoKeywords, got %v", err)
	}
	if gen.broadCalls != 1 {
		t.Errorf("Expected exactly 1 enrichment round, got %d", gen.broadCalls)
	}
}

func TestAnalyzer_EmptyResultIsExplicitError(t *testing.T) {
	// 40 phrases, all zero volume, none with >= 4 words: the final set
	// must be empty and reported as an error, not an empty success.
	var phrases []string
	for i := 0; i < 40; i++ {
		phrases = append(phrases, fmt.Sprintf("dead %d", i))
	}

	gen := &MockGenerator{longTailPhrases: phrases, broadPhrases: []string{"still dead"}}
	fetcher := &MockMetricsFetcher{metrics: map[string]ai.KeywordMetrics{}}

	analyzer := NewAnalyzer(gen, fetcher, 2380, "it")
	result, err := analyzer.Run(context.Background(), "traslochi", "ditta di traslochi a Roma", "it")

	if err == nil {
		t.Fatal("Expected an explicit error for an empty result set")
	}
	if !errors.Is(err, ErrNoKeywords) {
		t.Errorf("Expected ErrNoKeywords, got %v", err)
	}
	if result != nil {
		t.Errorf("Expected nil result on failure, got %d items", len(result))
	}
}

func TestAnalyzer_GenerationFailureIsHard(t *testing.T) {
	gen := &MockGenerator{err: errors.New("model unavailable")}
	fetcher := &MockMetricsFetcher{}

	analyzer := NewAnalyzer(gen, fetcher, 2380, "it")
	_, err := analyzer.Run(context.Background(), "traslochi", "ditta di traslochi a Roma", "it")

	if err == nil {
		t.Fatal("Expected generation failure to surface")
	}
	if gen.longTailCalls != 1 {
		t.Errorf("Expected a single generation attempt (no retry), got %d", gen.longTailCalls)
	}
}

func TestAnalyzer_EstimationPathWithoutMetricsFetcher(t *testing.T) {
	estimated := []ai.KeywordMetrics{
		{Keyword: "app personal trainer palestra", SearchVolume: 500, Competition: 0.4, CPC: 1.2},
	}
	for i := 0; i < 14; i++ {
		estimated = append(estimated, ai.KeywordMetrics{
			Keyword:      fmt.Sprintf("scheda allenamento palestra %d", i),
			SearchVolume: 50 + i,
			Competition:  0.3,
		})
	}

	gen := &MockGenerator{estimated: estimated}

	analyzer := NewAnalyzer(gen, nil, 2380, "it")
	result, err := analyzer.Run(context.Background(), "personal trainer", "app di allenamento", "it")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gen.longTailCalls != 0 {
		t.Errorf("Estimation path must not call long-tail generation, got %d calls", gen.longTailCalls)
	}
	if len(result) != 15 {
		t.Errorf("Expected 15 keywords, got %d", len(result))
	}
	if result[0].CompetitionLevel != CompetitionMedium {
		t.Errorf("Expected derived competition level MEDIUM, got %s", result[0].CompetitionLevel)
	}
}
