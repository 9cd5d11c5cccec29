package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"threatradar/config"
	"threatradar/internal/classify"
	"threatradar/pkg/models"
)

const defaultMaxItems = 8

// RSSSource reads a security news RSS or Atom feed. Items must pass the
// cyber-relevance filter before they become incidents.
type RSSSource struct {
	name     string
	url      string
	maxItems int
	hints    []classify.Rule
	client   Getter
	rules    *classify.Ruleset
	parser   *gofeed.Parser
}

// NewRSSSource creates a news feed source.
func NewRSSSource(c config.SourceConfig, deps Deps) *RSSSource {
	hints := make([]classify.Rule, 0, len(c.CategoryHints))
	for _, h := range c.CategoryHints {
		hints = append(hints, classify.Rule{Keyword: h.Keyword, Label: h.Category})
	}
	maxItems := c.MaxItems
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}
	return &RSSSource{
		name:     c.Name,
		url:      c.URL,
		maxItems: maxItems,
		hints:    hints,
		client:   deps.Client,
		rules:    deps.Rules,
		parser:   gofeed.NewParser(),
	}
}

// Name returns the provenance label.
func (s *RSSSource) Name() string { return s.name }

// Fetch downloads and parses the feed. gofeed maps both RSS fields and
// their Atom equivalents (summary, updated) onto the same item, so the
// alternate schema family needs no special casing here.
func (s *RSSSource) Fetch(ctx context.Context, reference time.Time) ([]models.Incident, error) {
	body, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}

	feed, err := s.parser.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.url, err)
	}

	// The cap applies to raw items, before the relevance filter.
	items := feed.Items
	if len(items) > s.maxItems {
		items = items[:s.maxItems]
	}

	meta := Meta{Name: s.name, Hints: s.hints}
	var out []models.Incident
	for _, entry := range items {
		if entry == nil || strings.TrimSpace(entry.Title) == "" {
			continue
		}
		if !s.rules.Relevant(entry.Title) {
			continue
		}
		raw := models.RawItem{
			Title:       entry.Title,
			Description: firstNonEmpty(entry.Description, entry.Content),
			URL:         entry.Link,
			Published:   firstNonEmpty(entry.Published, entry.Updated),
		}
		if incident, ok := Build(raw, meta, s.rules, reference); ok {
			out = append(out, incident)
		}
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
