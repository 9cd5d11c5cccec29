package source

import (
	"context"
	"time"

	"threatradar/config"
	"threatradar/internal/classify"
	"threatradar/pkg/models"
)

// BreachSource surfaces breach notification records. The curated entries
// stand in for a live breach-database integration.
// TODO: replace the curated set with the HaveIBeenPwned API once a key is
// provisioned.
type BreachSource struct {
	name  string
	url   string
	rules *classify.Ruleset
}

type breachEntry struct {
	title       string
	description string
	severity    string
	category    string
}

var breachEntries = []breachEntry{
	{
		title:       "Major Social Media Platform Reports Unauthorized Access to User Database",
		description: "A major social media platform confirmed unauthorized access affecting millions of users. Account credentials and personal information potentially compromised.",
		severity:    models.SeverityHigh,
		category:    models.CategoryDataBreach,
	},
	{
		title:       "Cloud Storage Provider Discloses Security Incident",
		description: "Popular cloud storage service reports security incident. Investigation ongoing regarding potential data exposure.",
		severity:    models.SeverityMedium,
		category:    models.CategoryIncident,
	},
}

// NewBreachSource creates a breach notification source.
func NewBreachSource(c config.SourceConfig, deps Deps) *BreachSource {
	name := c.Name
	if name == "" {
		name = "Breach Database"
	}
	return &BreachSource{name: name, url: c.URL, rules: deps.Rules}
}

// Name returns the provenance label.
func (s *BreachSource) Name() string { return s.name }

// Fetch returns the current breach notifications.
func (s *BreachSource) Fetch(ctx context.Context, reference time.Time) ([]models.Incident, error) {
	meta := Meta{Name: s.name}
	out := make([]models.Incident, 0, len(breachEntries))
	for _, entry := range breachEntries {
		raw := models.RawItem{
			Title:       entry.title,
			Description: entry.description,
			URL:         s.url,
			Category:    entry.category,
			Severity:    entry.severity,
		}
		if incident, ok := Build(raw, meta, s.rules, reference); ok {
			out = append(out, incident)
		}
	}
	return out, nil
}
