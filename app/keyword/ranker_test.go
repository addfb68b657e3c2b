package keyword

import (
	"fmt"
	"testing"
)

func TestLevelFor_Boundaries(t *testing.T) {
	cases := []struct {
		competition float64
		expected    CompetitionLevel
	}{
		{0.0, CompetitionLow},
		{0.29, CompetitionLow},
		{0.3, CompetitionMedium},
		{0.69, CompetitionMedium},
		{0.7, CompetitionHigh},
		{1.0, CompetitionHigh},
	}

	for _, tc := range cases {
		if got := LevelFor(tc.competition); got != tc.expected {
			t.Errorf("LevelFor(%v) = %s, expected %s", tc.competition, got, tc.expected)
		}
	}
}

func TestRanker_Dedupe_FirstOccurrenceWins(t *testing.T) {
	ranker := NewRanker()

	items := []Keyword{
		{Keyword: "traslochi roma prezzi bassi", SearchVolume: 100, Competition: 0.2},
		{Keyword: "sgombero cantine roma nord", SearchVolume: 50},
		{Keyword: "traslochi roma prezzi bassi", SearchVolume: 999, Competition: 0.9},
	}

	result := ranker.Dedupe(items)

	if len(result) != 2 {
		t.Fatalf("Expected 2 items after dedupe, got %d", len(result))
	}
	if result[0].SearchVolume != 100 {
		t.Errorf("Expected first occurrence to win, got volume %d", result[0].SearchVolume)
	}
	if result[1].Keyword != "sgombero cantine roma nord" {
		t.Errorf("Expected stable order, got %q second", result[1].Keyword)
	}
}

func TestRanker_Filter_VolumeOrLongTail(t *testing.T) {
	ranker := NewRanker()

	items := []Keyword{
		{Keyword: "traslochi roma", SearchVolume: 500},             // volume, short: kept
		{Keyword: "traslochi roma", SearchVolume: 0},               // no volume, 2 words: dropped
		{Keyword: "traslochi economici zona roma sud"},             // no volume, 5 words: kept
		{Keyword: "preventivo trasloco roma centro", SearchVolume: 0}, // 4 words exactly: kept
		{Keyword: "sgomberi milano", SearchVolume: 0},              // dropped
	}

	result := ranker.Filter(items)

	if len(result) != 3 {
		t.Fatalf("Expected 3 items after filter, got %d", len(result))
	}
	for _, item := range result {
		if item.SearchVolume == 0 && wordCount(item.Keyword) < 4 {
			t.Errorf("Item %q violates the volume-or-long-tail invariant", item.Keyword)
		}
	}
}

func TestRanker_Sort_VolumeDescCompetitionAsc(t *testing.T) {
	ranker := NewRanker()

	items := []Keyword{
		{Keyword: "a b c d", SearchVolume: 10, Competition: 0.5},
		{Keyword: "e f g h", SearchVolume: 100, Competition: 0.9},
		{Keyword: "i j k l", SearchVolume: 10, Competition: 0.1},
		{Keyword: "m n o p", SearchVolume: 50, Competition: 0.3},
	}

	ranker.Sort(items)

	for i := 0; i < len(items)-1; i++ {
		a, b := items[i], items[i+1]
		if a.SearchVolume < b.SearchVolume {
			t.Errorf("Not sorted by volume desc at %d: %d < %d", i, a.SearchVolume, b.SearchVolume)
		}
		if a.SearchVolume == b.SearchVolume && a.Competition > b.Competition {
			t.Errorf("Tie not broken by competition asc at %d: %v > %v", i, a.Competition, b.Competition)
		}
	}
}

func TestRanker_Run_TruncatesToMax(t *testing.T) {
	ranker := NewRanker()

	var items []Keyword
	for i := 0; i < 50; i++ {
		items = append(items, Keyword{
			Keyword:      fmt.Sprintf("keyword number %d variant long", i),
			SearchVolume: 1000 - i,
			Competition:  0.5,
		})
	}

	result := ranker.Run(items)

	if len(result) != MaxResults {
		t.Errorf("Expected %d items after truncation, got %d", MaxResults, len(result))
	}
	if result[0].SearchVolume != 1000 {
		t.Errorf("Expected highest volume first, got %d", result[0].SearchVolume)
	}
}

func TestRanker_Run_NoDuplicatesInOutput(t *testing.T) {
	ranker := NewRanker()

	items := []Keyword{
		{Keyword: "noleggio furgone trasloco roma", SearchVolume: 10},
		{Keyword: "noleggio furgone trasloco roma", SearchVolume: 20},
		{Keyword: "sgombero gratuito appartamenti roma", SearchVolume: 5},
	}

	result := ranker.Run(items)

	seen := make(map[string]bool)
	for _, item := range result {
		if seen[item.Keyword] {
			t.Errorf("Duplicate keyword in output: %q", item.Keyword)
		}
		seen[item.Keyword] = true
	}
}

func TestRanker_ZeroVolumePhrases_Limit(t *testing.T) {
	ranker := NewRanker()

	var items []Keyword
	for i := 0; i < 30; i++ {
		items = append(items, Keyword{Keyword: fmt.Sprintf("phrase %d", i)})
	}
	items = append(items, Keyword{Keyword: "has volume", SearchVolume: 10})

	phrases := ranker.ZeroVolumePhrases(items, MaxReseedPhrases)

	if len(phrases) != MaxReseedPhrases {
		t.Errorf("Expected %d phrases, got %d", MaxReseedPhrases, len(phrases))
	}
	for _, p := range phrases {
		if p == "has volume" {
			t.Error("Phrases with volume must not be reseeded")
		}
	}
}
