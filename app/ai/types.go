package ai

// KeywordMetrics mirrors the JSON shape the model is instructed to
// return for keyword estimation, and the shape DataForSEO results are
// normalized into.
type KeywordMetrics struct {
	Keyword      string  `json:"keyword"`
	SearchVolume int     `json:"search_volume"`
	Competition  float64 `json:"competition"`
	CPC          float64 `json:"cpc"`
}

// LandingContent holds the branding fields for a single lander site.
type LandingContent struct {
	BrandName          string `json:"brandName"`
	HeroTitle          string `json:"heroTitle"`
	HeroSubtitle       string `json:"heroSubtitle"`
	ServiceDescription string `json:"serviceDescription"`
	CTAText            string `json:"ctaText"`
	Keyword            string `json:"keyword"`
}

// GeneratedArticle is the long-form article shape returned by the model.
type GeneratedArticle struct {
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"` // HTML
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	ImageSearchTerm string   `json:"imageSearchTerm"`
}

// Request/response shapes for the generateContent REST endpoint.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
