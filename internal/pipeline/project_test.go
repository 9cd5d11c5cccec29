package pipeline

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"threatradar/pkg/models"
)

var testBrand = Branding{
	Product:   "THREATRADAR LIVE",
	Version:   "2.0.0",
	Copyright: "© 2026 ThreatRadar",
	Contact:   "intel@threatradar.example.com",
	Website:   "https://threatradar.example.com",
}

func rankedFixture(n int) []models.Incident {
	incidents := make([]models.Incident, 0, n)
	for i := 0; i < n; i++ {
		incidents = append(incidents, models.Incident{
			Title:    fmt.Sprintf("%02d %s", i, strings.Repeat("incident title padding ", 5)),
			Category: models.CategoryIncident,
			Severity: models.SeverityMedium,
			URL:      fmt.Sprintf("https://example.com/%d", i),
			HoursAgo: i,
		})
	}
	return incidents
}

func TestBuildFeedEnvelope(t *testing.T) {
	p := New(nil, 24*time.Hour, testReference)
	incidents := rankedFixture(3)

	doc := p.BuildFeed(incidents, testBrand, time.Hour)
	if doc.Metadata.Product != testBrand.Product {
		t.Fatalf("unexpected product: %q", doc.Metadata.Product)
	}
	if doc.Metadata.TotalIncidents != 3 {
		t.Fatalf("total_incidents = %d, want 3", doc.Metadata.TotalIncidents)
	}
	if doc.Metadata.Window != "24 hours" {
		t.Fatalf("window label = %q", doc.Metadata.Window)
	}
	if doc.Metadata.Generated != "2026-03-15T12:00:00Z" {
		t.Fatalf("generated = %q", doc.Metadata.Generated)
	}
	if doc.Metadata.NextUpdate != "2026-03-15T13:00:00Z" {
		t.Fatalf("next_update = %q", doc.Metadata.NextUpdate)
	}
	if len(doc.Incidents) != 3 {
		t.Fatalf("incident list truncated: %d", len(doc.Incidents))
	}
}

func TestBuildFeedEmptyRunStillProducesDocument(t *testing.T) {
	p := New(nil, 24*time.Hour, testReference)
	doc := p.BuildFeed(nil, testBrand, time.Hour)
	if doc.Incidents == nil {
		t.Fatalf("incidents must be an empty list, not null")
	}
	if doc.Metadata.TotalIncidents != 0 {
		t.Fatalf("total_incidents = %d, want 0", doc.Metadata.TotalIncidents)
	}
}

func TestBuildWidgetIsPrefixAndFieldSubset(t *testing.T) {
	p := New(nil, 24*time.Hour, testReference)
	incidents := rankedFixture(15)

	widget := p.BuildWidget(incidents, testBrand)
	if len(widget.Incidents) != 10 {
		t.Fatalf("widget size = %d, want 10", len(widget.Incidents))
	}
	for i, compact := range widget.Incidents {
		full := incidents[i]
		if utf8.RuneCountInString(compact.Title) > 80 {
			t.Fatalf("widget title longer than 80 chars: %d", utf8.RuneCountInString(compact.Title))
		}
		if !strings.HasPrefix(full.Title, compact.Title) {
			t.Fatalf("widget title %q is not a prefix of %q", compact.Title, full.Title)
		}
		if compact.Category != full.Category || compact.Severity != full.Severity {
			t.Fatalf("widget entry %d does not mirror the ranked incident", i)
		}
		if compact.HoursAgo != full.HoursAgo {
			t.Fatalf("widget hours_ago mismatch at %d", i)
		}
		if compact.URL != full.URL {
			t.Fatalf("widget url mismatch at %d", i)
		}
	}
	if widget.Brand != testBrand.Product {
		t.Fatalf("unexpected brand: %q", widget.Brand)
	}
}

func TestBuildWidgetTitleTruncationKeepsValidUTF8(t *testing.T) {
	p := New(nil, 24*time.Hour, testReference)
	incidents := []models.Incident{{
		Title:    strings.Repeat("a", 79) + "’s customer data leaked on dark web forum",
		Category: models.CategoryDataBreach,
		Severity: models.SeverityHigh,
	}}

	widget := p.BuildWidget(incidents, testBrand)
	title := widget.Incidents[0].Title
	if !utf8.ValidString(title) {
		t.Fatalf("widget title is invalid UTF-8: %q", title)
	}
	if utf8.RuneCountInString(title) != 80 {
		t.Fatalf("widget title length = %d chars, want 80", utf8.RuneCountInString(title))
	}
	if !strings.HasSuffix(title, "’") {
		t.Fatalf("character at the limit was split: %q", title)
	}
}

func TestBuildWidgetShortCollectionKeepsAll(t *testing.T) {
	p := New(nil, 24*time.Hour, testReference)
	widget := p.BuildWidget(rankedFixture(4), testBrand)
	if len(widget.Incidents) != 4 {
		t.Fatalf("widget size = %d, want 4", len(widget.Incidents))
	}
}
