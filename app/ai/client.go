package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the Gemini generateContent REST API. All methods ask
// for strict JSON output and fail hard on anything unparseable.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

func NewClient(endpoint, model, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// GenerateLongTailKeywords asks for ~40 long-tail phrases (3-6 words,
// commercial intent) for the given topic.
func (c *Client) GenerateLongTailKeywords(ctx context.Context, topic, description, language string) ([]string, error) {
	text, err := c.generate(ctx, longTailKeywordsPrompt(topic, description, language))
	if err != nil {
		return nil, fmt.Errorf("keyword generation: %w", err)
	}

	var phrases []string
	if err := DecodeJSON(text, &phrases); err != nil {
		return nil, fmt.Errorf("keyword generation: %w", err)
	}

	return trimNonEmpty(phrases), nil
}

// GenerateBroadVariations asks for ~20 broader variations of phrases
// that yielded no search volume.
func (c *Client) GenerateBroadVariations(ctx context.Context, phrases []string, language string) ([]string, error) {
	text, err := c.generate(ctx, broadVariationsPrompt(phrases, language))
	if err != nil {
		return nil, fmt.Errorf("broad variation generation: %w", err)
	}

	var variations []string
	if err := DecodeJSON(text, &variations); err != nil {
		return nil, fmt.Errorf("broad variation generation: %w", err)
	}

	return trimNonEmpty(variations), nil
}

// EstimateKeywordMetrics asks the model to both generate keywords and
// estimate their metrics, used when DataForSEO is bypassed.
func (c *Client) EstimateKeywordMetrics(ctx context.Context, topic, description, language string) ([]KeywordMetrics, error) {
	text, err := c.generate(ctx, estimateMetricsPrompt(topic, description, language))
	if err != nil {
		return nil, fmt.Errorf("metric estimation: %w", err)
	}

	var metrics []KeywordMetrics
	if err := DecodeJSON(text, &metrics); err != nil {
		return nil, fmt.Errorf("metric estimation: %w", err)
	}

	return metrics, nil
}

// EstimateMetricsFor asks the model to estimate metrics for specific
// phrases, keeping them verbatim. Used for the enrichment round when
// no metrics service is configured.
func (c *Client) EstimateMetricsFor(ctx context.Context, phrases []string, language string) ([]KeywordMetrics, error) {
	text, err := c.generate(ctx, estimateMetricsForPhrasesPrompt(phrases, language))
	if err != nil {
		return nil, fmt.Errorf("metric estimation: %w", err)
	}

	var metrics []KeywordMetrics
	if err := DecodeJSON(text, &metrics); err != nil {
		return nil, fmt.Errorf("metric estimation: %w", err)
	}

	return metrics, nil
}

// GenerateDomainNames asks for ~20 domain candidates across a fixed TLD mix.
func (c *Client) GenerateDomainNames(ctx context.Context, topic string, keywords []string, language string) ([]string, error) {
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}

	text, err := c.generate(ctx, domainNamesPrompt(topic, keywords, language))
	if err != nil {
		return nil, fmt.Errorf("domain name generation: %w", err)
	}

	var domains []string
	if err := DecodeJSON(text, &domains); err != nil {
		return nil, fmt.Errorf("domain name generation: %w", err)
	}

	return trimNonEmpty(domains), nil
}

// GenerateLandingPageContent produces the branding fields for one lander.
func (c *Client) GenerateLandingPageContent(ctx context.Context, domain, keyword, language string) (*LandingContent, error) {
	text, err := c.generate(ctx, landingContentPrompt(domain, keyword, language))
	if err != nil {
		return nil, fmt.Errorf("landing content generation: %w", err)
	}

	var landing LandingContent
	if err := DecodeJSON(text, &landing); err != nil {
		return nil, fmt.Errorf("landing content generation: %w", err)
	}

	return &landing, nil
}

// GenerateLongFormArticle produces a full article for a queued keyword.
func (c *Client) GenerateLongFormArticle(ctx context.Context, keyword, language string) (*GeneratedArticle, error) {
	text, err := c.generate(ctx, longFormArticlePrompt(keyword, language))
	if err != nil {
		return nil, fmt.Errorf("article generation: %w", err)
	}

	var article GeneratedArticle
	if err := DecodeJSON(text, &article); err != nil {
		return nil, fmt.Errorf("article generation: %w", err)
	}

	return &article, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("missing Gemini API key")
	}

	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Error bodies are usually JSON but gateways can return HTML;
		// keep the status line when the body is not parseable.
		var genResp generateResponse
		if err := json.Unmarshal(data, &genResp); err == nil && genResp.Error != nil {
			return "", fmt.Errorf("API error %d: %s", genResp.Error.Code, genResp.Error.Message)
		}
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var genResp generateResponse
	if err := json.Unmarshal(data, &genResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty generation response")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

func trimNonEmpty(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}
