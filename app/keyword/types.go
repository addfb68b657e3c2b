package keyword

import (
	"strings"

	"github.com/fabriziochiappini/adseo/app/ai"
)

type CompetitionLevel string

const (
	CompetitionLow    CompetitionLevel = "LOW"
	CompetitionMedium CompetitionLevel = "MEDIUM"
	CompetitionHigh   CompetitionLevel = "HIGH"
)

// LevelFor classifies a competition score: LOW below 0.3, MEDIUM below
// 0.7, HIGH otherwise.
func LevelFor(competition float64) CompetitionLevel {
	switch {
	case competition < 0.3:
		return CompetitionLow
	case competition < 0.7:
		return CompetitionMedium
	default:
		return CompetitionHigh
	}
}

type Keyword struct {
	Keyword          string           `json:"keyword"`
	SearchVolume     int              `json:"search_volume"`
	Competition      float64          `json:"competition"`
	CPC              float64          `json:"cpc"`
	CompetitionLevel CompetitionLevel `json:"competition_level"`
}

// FromMetrics maps a raw metrics object into the Keyword shape,
// trimming the phrase and deriving the competition level.
func FromMetrics(m ai.KeywordMetrics) Keyword {
	return Keyword{
		Keyword:          strings.TrimSpace(m.Keyword),
		SearchVolume:     m.SearchVolume,
		Competition:      m.Competition,
		CPC:              m.CPC,
		CompetitionLevel: LevelFor(m.Competition),
	}
}

func FromMetricsList(metrics []ai.KeywordMetrics) []Keyword {
	keywords := make([]Keyword, 0, len(metrics))
	for _, m := range metrics {
		kw := FromMetrics(m)
		if kw.Keyword == "" {
			continue
		}
		keywords = append(keywords, kw)
	}
	return keywords
}
