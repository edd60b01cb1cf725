package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPProvider confirms a login by calling a remote endpoint. Any 2xx
// response counts as success.
type HTTPProvider struct {
	url    string
	client *http.Client
}

// NewHTTPProvider creates a provider for url. A nil client gets a default
// with a 10 second timeout.
func NewHTTPProvider(url string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPProvider{url: url, client: client}
}

type userResponse struct {
	Results []struct {
		Name struct {
			First string `json:"first"`
			Last  string `json:"last"`
		} `json:"name"`
	} `json:"results"`
}

// SignIn performs the request and returns a short description of the reply
func (p *HTTPProvider) SignIn(ctx context.Context, login string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Login", login)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("server returned %s", resp.Status)
	}

	var users userResponse
	if err := json.Unmarshal(body, &users); err == nil && len(users.Results) > 0 {
		name := strings.TrimSpace(users.Results[0].Name.First + " " + users.Results[0].Name.Last)
		if name != "" {
			return name, nil
		}
	}
	return resp.Status, nil
}
