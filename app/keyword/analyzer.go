package keyword

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/fabriziochiappini/adseo/app/ai"
)

// ErrNoKeywords is returned when the full pipeline (including the
// enrichment round) yields an empty result set. Callers must surface
// this as an explicit failure, never as an empty success.
var ErrNoKeywords = errors.New("keyword analysis produced no usable keywords")

// Generator is the text-generation collaborator surface the analyzer needs.
type Generator interface {
	GenerateLongTailKeywords(ctx context.Context, topic, description, language string) ([]string, error)
	GenerateBroadVariations(ctx context.Context, phrases []string, language string) ([]string, error)
	EstimateKeywordMetrics(ctx context.Context, topic, description, language string) ([]ai.KeywordMetrics, error)
	EstimateMetricsFor(ctx context.Context, phrases []string, language string) ([]ai.KeywordMetrics, error)
}

var _ Generator = (*ai.Client)(nil)

// MetricsFetcher is the keyword-metrics collaborator surface. A nil
// fetcher means metrics are estimated by the text-generation model.
type MetricsFetcher interface {
	GetSearchVolume(ctx context.Context, keywords []string, locationCode int, languageCode string) ([]ai.KeywordMetrics, error)
}

// Analyzer runs the two-round keyword acquisition pipeline: generate
// phrases, fetch or estimate metrics, then rank deterministically.
type Analyzer struct {
	generator       Generator
	metrics         MetricsFetcher
	ranker          *Ranker
	locationCode    int
	defaultLanguage string
	detector        lingua.LanguageDetector
}

func NewAnalyzer(generator Generator, metrics MetricsFetcher, locationCode int, defaultLanguage string) *Analyzer {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.Italian, lingua.English, lingua.Spanish,
			lingua.French, lingua.German, lingua.Portuguese,
		).
		Build()

	return &Analyzer{
		generator:       generator,
		metrics:         metrics,
		ranker:          NewRanker(),
		locationCode:    locationCode,
		defaultLanguage: defaultLanguage,
		detector:        detector,
	}
}

// Run executes the pipeline for a topic. The language parameter is
// optional; when empty the campaign language is detected from the
// business description.
func (a *Analyzer) Run(ctx context.Context, topic, description, language string) ([]Keyword, error) {
	language = a.ResolveLanguage(description, language)

	working, err := a.firstRound(ctx, topic, description, language)
	if err != nil {
		return nil, err
	}

	// Round 2: one-shot broad enrichment when too few phrases carry
	// real volume. Never a third round, regardless of yield.
	if a.ranker.CountWithVolume(working) < MinValidRound1 {
		enriched, err := a.enrich(ctx, working, language)
		if err != nil {
			slog.Warn("Broad enrichment round failed, continuing with round 1 results", "topic", topic, "error", err)
		} else {
			working = append(working, enriched...)
		}
	}

	result := a.ranker.Run(working)
	if len(result) == 0 {
		return nil, ErrNoKeywords
	}

	return result, nil
}

func (a *Analyzer) firstRound(ctx context.Context, topic, description, language string) ([]Keyword, error) {
	if a.metrics == nil {
		metrics, err := a.generator.EstimateKeywordMetrics(ctx, topic, description, language)
		if err != nil {
			return nil, fmt.Errorf("AI generation failed: %w", err)
		}
		return FromMetricsList(metrics), nil
	}

	phrases, err := a.generator.GenerateLongTailKeywords(ctx, topic, description, language)
	if err != nil {
		return nil, fmt.Errorf("AI generation failed: %w", err)
	}

	metrics, err := a.metrics.GetSearchVolume(ctx, phrases, a.locationCode, language)
	if err != nil {
		return nil, fmt.Errorf("metrics fetch failed: %w", err)
	}

	return FromMetricsList(metrics), nil
}

func (a *Analyzer) enrich(ctx context.Context, working []Keyword, language string) ([]Keyword, error) {
	seeds := a.ranker.ZeroVolumePhrases(working, MaxReseedPhrases)
	if len(seeds) == 0 {
		return nil, nil
	}

	broader, err := a.generator.GenerateBroadVariations(ctx, seeds, language)
	if err != nil {
		return nil, fmt.Errorf("broad variation generation failed: %w", err)
	}
	if len(broader) == 0 {
		return nil, nil
	}

	var metrics []ai.KeywordMetrics
	if a.metrics != nil {
		metrics, err = a.metrics.GetSearchVolume(ctx, broader, a.locationCode, language)
	} else {
		metrics, err = a.generator.EstimateMetricsFor(ctx, broader, language)
	}
	if err != nil {
		return nil, fmt.Errorf("metrics fetch for broad variations failed: %w", err)
	}

	return FromMetricsList(metrics), nil
}

// ResolveLanguage returns the explicit language when given, otherwise
// detects it from the business description, falling back to the
// configured default.
func (a *Analyzer) ResolveLanguage(description, language string) string {
	if language != "" {
		return language
	}

	if detected, ok := a.detector.DetectLanguageOf(description); ok {
		code := strings.ToLower(detected.IsoCode639_1().String())
		slog.Debug("Campaign language detected from description", "language", code)
		return code
	}

	return a.defaultLanguage
}
