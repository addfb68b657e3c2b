package dataforseo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fabriziochiappini/adseo/app/ai"
)

// Client talks to the DataForSEO keywords_data live endpoints.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) Configured() bool {
	return c.username != "" && c.password != ""
}

type taskRequest struct {
	Keywords     []string `json:"keywords"`
	LocationCode int      `json:"location_code,omitempty"`
	LanguageCode string   `json:"language_code,omitempty"`
}

type taskResponse struct {
	Tasks []struct {
		StatusMessage string `json:"status_message"`
		Result        []struct {
			Keyword     string `json:"keyword"`
			KeywordInfo struct {
				SearchVolume int     `json:"search_volume"`
				Competition  float64 `json:"competition"`
				CPC          float64 `json:"cpc"`
			} `json:"keyword_info"`
		} `json:"result"`
	} `json:"tasks"`
}

// GetSearchVolume fetches live search metrics for the given phrases.
// Values are passed through untouched; missing numeric fields simply
// decode to zero.
func (c *Client) GetSearchVolume(ctx context.Context, keywords []string, locationCode int, languageCode string) ([]ai.KeywordMetrics, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("missing DataForSEO credentials")
	}

	payload := []taskRequest{{
		Keywords:     keywords,
		LocationCode: locationCode,
		LanguageCode: languageCode,
	}}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/v3/keywords_data/google/search_volume/live"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+c.authToken())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var taskResp taskResponse
	if err := json.Unmarshal(data, &taskResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(taskResp.Tasks) == 0 {
		return nil, fmt.Errorf("empty task response")
	}

	task := taskResp.Tasks[0]
	metrics := make([]ai.KeywordMetrics, 0, len(task.Result))
	for _, r := range task.Result {
		metrics = append(metrics, ai.KeywordMetrics{
			Keyword:      r.Keyword,
			SearchVolume: r.KeywordInfo.SearchVolume,
			Competition:  r.KeywordInfo.Competition,
			CPC:          r.KeywordInfo.CPC,
		})
	}

	return metrics, nil
}

func (c *Client) authToken() string {
	return base64.StdEncoding.EncodeToString([]byte(c.username + ":" + c.password))
}
