package keyword

import (
	"sort"
	"strings"
)

const (
	// MaxResults caps the final keyword list.
	MaxResults = 30

	// MinValidRound1 is the acceptance threshold for the first round:
	// fewer items with volume than this triggers the one-shot broad
	// enrichment round.
	MinValidRound1 = 15

	// MaxReseedPhrases bounds how many zero-volume phrases are fed
	// back into broad variation generation.
	MaxReseedPhrases = 20

	// minLongTailWords lets zero-volume ultra-long-tail phrases pass
	// the filter.
	minLongTailWords = 4
)

// Ranker is the deterministic half of the keyword pipeline: dedupe,
// filter, sort, truncate. The thresholds are product policy and must
// not be tuned casually.
type Ranker struct{}

func NewRanker() *Ranker {
	return &Ranker{}
}

// Run executes the full ranking pass over a merged metrics set.
func (r *Ranker) Run(items []Keyword) []Keyword {
	deduped := r.Dedupe(items)
	filtered := r.Filter(deduped)
	r.Sort(filtered)

	if len(filtered) > MaxResults {
		filtered = filtered[:MaxResults]
	}

	return filtered
}

// Dedupe removes exact keyword duplicates; the first occurrence wins
// and the original order is preserved.
func (r *Ranker) Dedupe(items []Keyword) []Keyword {
	seen := make(map[string]bool, len(items))
	result := make([]Keyword, 0, len(items))

	for _, item := range items {
		if seen[item.Keyword] {
			continue
		}
		seen[item.Keyword] = true
		result = append(result, item)
	}

	return result
}

// Filter keeps an item iff it has search volume, or the phrase is long
// enough (>= 4 words) to be a plausible ultra-long-tail keyword.
func (r *Ranker) Filter(items []Keyword) []Keyword {
	result := make([]Keyword, 0, len(items))
	for _, item := range items {
		if item.SearchVolume > 0 || wordCount(item.Keyword) >= minLongTailWords {
			result = append(result, item)
		}
	}
	return result
}

// Sort orders by search volume descending, competition ascending on ties.
func (r *Ranker) Sort(items []Keyword) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SearchVolume != items[j].SearchVolume {
			return items[i].SearchVolume > items[j].SearchVolume
		}
		return items[i].Competition < items[j].Competition
	})
}

// CountWithVolume returns how many items carry a positive search volume.
func (r *Ranker) CountWithVolume(items []Keyword) int {
	count := 0
	for _, item := range items {
		if item.SearchVolume > 0 {
			count++
		}
	}
	return count
}

// ZeroVolumePhrases collects up to limit phrases without volume, used
// to seed the broad enrichment round.
func (r *Ranker) ZeroVolumePhrases(items []Keyword, limit int) []string {
	phrases := make([]string, 0, limit)
	for _, item := range items {
		if item.SearchVolume > 0 {
			continue
		}
		phrases = append(phrases, item.Keyword)
		if len(phrases) == limit {
			break
		}
	}
	return phrases
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
