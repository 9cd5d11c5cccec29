// Package feedhttp posts the feed documents to a remote dashboard
// endpoint.
package feedhttp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"threatradar/pkg/models"
)

// Config configures the HTTP writer. WidgetURL may be empty, in which case
// only the full feed is posted.
type Config struct {
	URL       string
	WidgetURL string
	Timeout   time.Duration
	Headers   map[string]string
}

// Writer sends the documents over HTTP.
type Writer struct {
	url       string
	widgetURL string
	headers   map[string]string
	client    *http.Client
}

// NewWriter creates an HTTP writer.
func NewWriter(cfg Config) (*Writer, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("http feed URL is empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Writer{
		url:       cfg.URL,
		widgetURL: cfg.WidgetURL,
		headers:   cfg.Headers,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// WriteFeed posts the full document, and the widget document when a widget
// URL is configured.
func (w *Writer) WriteFeed(full models.FeedDocument, widget models.WidgetDocument) error {
	if err := w.post(w.url, full); err != nil {
		return fmt.Errorf("post full feed: %w", err)
	}
	if w.widgetURL != "" {
		if err := w.post(w.widgetURL, widget); err != nil {
			return fmt.Errorf("post widget feed: %w", err)
		}
	}
	return nil
}

func (w *Writer) post(url string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http request failed with status %s", resp.Status)
	}
	return nil
}

// Close releases HTTP resources.
func (w *Writer) Close() error { return nil }
