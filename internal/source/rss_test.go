package source

import (
	"context"
	"fmt"
	"testing"

	"threatradar/config"
	"threatradar/internal/classify"
	"threatradar/pkg/models"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Security Feed</title>
    <item>
      <title>Ransomware group breaches hospital network</title>
      <link>https://example.com/ransomware-hospital</link>
      <description><![CDATA[<p>A ransomware crew claims <b>access</b> to patient data.</p>]]></description>
      <pubDate>Mon, 09 Mar 2026 14:30:00 GMT</pubDate>
    </item>
    <item>
      <title>Company announces new product launch</title>
      <link>https://example.com/launch</link>
      <description>Quarterly product news.</description>
      <pubDate>Mon, 09 Mar 2026 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Critical vulnerability patched in mail server</title>
      <link>https://example.com/mail-cve</link>
      <description>Admins urged to update.</description>
      <pubDate>Mon, 09 Mar 2026 08:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Advisory Feed</title>
  <entry>
    <title>Zero-day exploit observed in the wild</title>
    <link href="https://example.com/zero-day"/>
    <summary>Exploitation is ongoing.</summary>
    <updated>2026-03-09T09:00:00Z</updated>
  </entry>
</feed>`

type stubGetter struct {
	body string
	err  error
}

func (s *stubGetter) Get(ctx context.Context, url string) (string, error) {
	return s.body, s.err
}

func newTestRSSSource(body string, hints []config.CategoryHint) *RSSSource {
	return NewRSSSource(
		config.SourceConfig{Type: "rss", Name: "Test Feed", URL: "https://example.com/feed", CategoryHints: hints},
		Deps{Client: &stubGetter{body: body}, Rules: classify.Default()},
	)
}

func TestRSSSourceFiltersIrrelevantItems(t *testing.T) {
	src := newTestRSSSource(rssFixture, nil)
	incidents, err := src.Fetch(context.Background(), testReference)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(incidents) != 2 {
		t.Fatalf("expected 2 incidents after relevance filter, got %d", len(incidents))
	}
	for _, incident := range incidents {
		if incident.Title == "Company announces new product launch" {
			t.Fatalf("irrelevant item survived the filter")
		}
		if incident.Source != "Test Feed" {
			t.Fatalf("unexpected source label: %q", incident.Source)
		}
	}
}

func TestRSSSourceNormalizesItems(t *testing.T) {
	src := newTestRSSSource(rssFixture, []config.CategoryHint{
		{Keyword: "ransomware", Category: models.CategoryRansomware},
	})
	incidents, err := src.Fetch(context.Background(), testReference)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	first := incidents[0]
	if first.Category != models.CategoryRansomware {
		t.Fatalf("hint category not applied: %q", first.Category)
	}
	if first.Timestamp != "2026-03-09T14:30:00Z" {
		t.Fatalf("pubDate not normalized: %q", first.Timestamp)
	}
	if first.URL != "https://example.com/ransomware-hospital" {
		t.Fatalf("unexpected url: %q", first.URL)
	}
}

func TestRSSSourceParsesAtomFallbackFields(t *testing.T) {
	src := newTestRSSSource(atomFixture, nil)
	incidents, err := src.Fetch(context.Background(), testReference)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(incidents) != 1 {
		t.Fatalf("expected 1 incident from atom feed, got %d", len(incidents))
	}
	incident := incidents[0]
	if incident.Timestamp != "2026-03-09T09:00:00Z" {
		t.Fatalf("atom updated date not used: %q", incident.Timestamp)
	}
	if incident.Description != "Exploitation is ongoing." {
		t.Fatalf("atom summary not used: %q", incident.Description)
	}
	if incident.Severity != models.SeverityCritical {
		t.Fatalf("zero-day title should be critical, got %q", incident.Severity)
	}
}

func TestRSSSourceHonorsMaxItems(t *testing.T) {
	src := NewRSSSource(
		config.SourceConfig{Type: "rss", Name: "Test Feed", MaxItems: 1},
		Deps{Client: &stubGetter{body: rssFixture}, Rules: classify.Default()},
	)
	incidents, err := src.Fetch(context.Background(), testReference)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(incidents) != 1 {
		t.Fatalf("expected max_items cap of 1, got %d", len(incidents))
	}
}

func TestRSSSourcePropagatesFetchError(t *testing.T) {
	src := NewRSSSource(
		config.SourceConfig{Type: "rss", Name: "Down Feed", URL: "https://down.example.com"},
		Deps{Client: &stubGetter{err: fmt.Errorf("connection refused")}, Rules: classify.Default()},
	)
	if _, err := src.Fetch(context.Background(), testReference); err == nil {
		t.Fatalf("expected fetch error to propagate")
	}
}
