// Package feedjson persists the feed documents as JSON files in an output
// directory.
package feedjson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"threatradar/internal/logger"
	"threatradar/pkg/models"
)

// Output file names, fixed so the dashboard and widget know where to look.
const (
	FeedFileName   = "threat-feed.json"
	WidgetFileName = "threat-feed-widget.json"
)

// Writer writes the document pair into a directory, creating it if absent.
type Writer struct {
	dir string
	mu  sync.Mutex
}

// NewWriter creates a file writer rooted at dir.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	logger.Infof("Feed JSON writer initialized: %s", dir)
	return &Writer{dir: dir}, nil
}

// WriteFeed writes both documents.
func (w *Writer) WriteFeed(full models.FeedDocument, widget models.WidgetDocument) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writeDocument(FeedFileName, full); err != nil {
		return err
	}
	if err := w.writeDocument(WidgetFileName, widget); err != nil {
		return err
	}
	logger.Infof("saved feeds: %s (%d incidents), %s (top %d)",
		FeedFileName, len(full.Incidents), WidgetFileName, len(widget.Incidents))
	return nil
}

func (w *Writer) writeDocument(name string, doc interface{}) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return f.Close()
}

// Close is a no-op; files are closed per write.
func (w *Writer) Close() error { return nil }
