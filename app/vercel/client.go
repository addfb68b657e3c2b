package vercel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const baseURL = "https://api.vercel.com"

// Client talks to the Vercel REST API.
type Client struct {
	token      string
	teamID     string
	httpClient *http.Client
}

func NewClient(token, teamID string) *Client {
	return &Client{
		token:  token,
		teamID: teamID,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) Configured() bool {
	return c.token != ""
}

type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AccountID string `json:"accountId"`
}

type Deployment struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// AllTargets covers every deployment target an environment variable
// can apply to.
var AllTargets = []string{"production", "preview", "development"}

// CreateProject creates a project bound to the given GitHub template
// repository.
func (c *Client) CreateProject(ctx context.Context, name, templateRepo string) (*Project, error) {
	payload := map[string]interface{}{
		"name":      name,
		"framework": "nextjs",
		"gitRepository": map[string]string{
			"type": "github",
			"repo": templateRepo,
		},
	}

	var project Project
	if err := c.post(ctx, "/v9/projects", payload, &project); err != nil {
		return nil, fmt.Errorf("create project failed: %w", err)
	}

	return &project, nil
}

// SetEnvVariable adds an encrypted environment variable to a project.
func (c *Client) SetEnvVariable(ctx context.Context, projectID, key, value string, targets []string) error {
	payload := map[string]interface{}{
		"key":    key,
		"value":  value,
		"type":   "encrypted",
		"target": targets,
	}

	path := fmt.Sprintf("/v10/projects/%s/env", projectID)
	if err := c.post(ctx, path, payload, nil); err != nil {
		return fmt.Errorf("set env variable %s failed: %w", key, err)
	}

	return nil
}

// AddDomain attaches a custom domain to a project. Vercel accepts
// domains pending verification, so this succeeds even before DNS
// points anywhere.
func (c *Client) AddDomain(ctx context.Context, projectID, domain string) error {
	payload := map[string]string{"name": domain}

	path := fmt.Sprintf("/v9/projects/%s/domains", projectID)
	if err := c.post(ctx, path, payload, nil); err != nil {
		return fmt.Errorf("add domain %s failed: %w", domain, err)
	}

	return nil
}

// TriggerDeployment starts a deployment of the project from the given
// git source reference.
func (c *Client) TriggerDeployment(ctx context.Context, projectID, name, repo, ref string) (*Deployment, error) {
	payload := map[string]interface{}{
		"name":    name,
		"project": projectID,
		"gitSource": map[string]string{
			"type": "github",
			"repo": repo,
			"ref":  ref,
		},
	}

	var deployment Deployment
	if err := c.post(ctx, "/v13/deployments", payload, &deployment); err != nil {
		return nil, fmt.Errorf("trigger deployment failed: %w", err)
	}

	return &deployment, nil
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	if !c.Configured() {
		return fmt.Errorf("missing Vercel API token")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	u, err := url.Parse(baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if c.teamID != "" {
		q := u.Query()
		q.Set("teamId", c.teamID)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("API error %s: %s", apiErr.Error.Code, apiErr.Error.Message)
		}
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
