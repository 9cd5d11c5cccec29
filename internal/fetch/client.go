// Package fetch retrieves raw feed bodies over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "ThreatRadar/2.0 (+https://threatradar.example.com)"
)

// Config configures the shared HTTP client.
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// Client fetches URLs with a bounded timeout and a stable user agent.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient creates a fetch client, applying defaults for zero values.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: ua,
	}
}

// Get fetches url and returns the response body as text. Any transport
// error or non-2xx status is returned as an error; callers log it and
// continue without that source.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("http request failed with status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}
