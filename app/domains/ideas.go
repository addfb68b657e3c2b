package domains

import (
	"context"
	"fmt"
	"strings"
)

// IdeaGenerator is the text-generation collaborator surface for domain
// name suggestions.
type IdeaGenerator interface {
	GenerateDomainNames(ctx context.Context, topic string, keywords []string, language string) ([]string, error)
}

// Generator produces brandable/exact-match domain candidates. The model
// gives no uniqueness guarantee, so the output is normalized and
// deduplicated here.
type Generator struct {
	ai       IdeaGenerator
	language string
}

func NewGenerator(ai IdeaGenerator, language string) *Generator {
	return &Generator{ai: ai, language: language}
}

func (g *Generator) Run(ctx context.Context, topic string, keywords []string) ([]string, error) {
	ideas, err := g.ai.GenerateDomainNames(ctx, topic, keywords, g.language)
	if err != nil {
		return nil, fmt.Errorf("domain idea generation failed: %w", err)
	}

	return Normalize(ideas), nil
}

// Normalize lowercases, trims and deduplicates candidates, dropping
// anything that is not a plausible domain name.
func Normalize(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	result := make([]string, 0, len(candidates))

	for _, c := range candidates {
		domain := strings.ToLower(strings.TrimSpace(c))
		domain = strings.TrimPrefix(domain, "https://")
		domain = strings.TrimPrefix(domain, "http://")
		domain = strings.TrimPrefix(domain, "www.")

		if !validDomain(domain) {
			continue
		}
		if seen[domain] {
			continue
		}
		seen[domain] = true
		result = append(result, domain)
	}

	return result
}

func validDomain(domain string) bool {
	if domain == "" || strings.ContainsAny(domain, " /?#") {
		return false
	}

	idx := strings.Index(domain, ".")
	return idx > 0 && idx < len(domain)-1
}
