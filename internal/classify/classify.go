// Package classify maps incident text to category and severity labels
// using ordered keyword tables, first match wins.
package classify

import (
	"strings"

	"threatradar/pkg/models"
)

// Rule pairs a keyword with the label it assigns. Tables are evaluated in
// declaration order; the first keyword found as a case-insensitive
// substring wins.
type Rule struct {
	Keyword string `yaml:"keyword"`
	Label   string `yaml:"label"`
}

// Ruleset holds the classification tables. Use Default or Load; the zero
// value classifies everything as a generic incident.
type Ruleset struct {
	Categories []Rule
	Critical   []string
	High       []string
	Relevance  []string
}

// Default returns the built-in tables. The category order matters:
// breach/leak outrank the more generic malware and vulnerability rules.
func Default() *Ruleset {
	return &Ruleset{
		Categories: []Rule{
			{Keyword: "breach", Label: models.CategoryDataBreach},
			{Keyword: "leak", Label: models.CategoryDataBreach},
			{Keyword: "ransomware", Label: models.CategoryRansomware},
			{Keyword: "malware", Label: models.CategoryMalware},
			{Keyword: "zero-day", Label: models.CategoryZeroDay},
			{Keyword: "0day", Label: models.CategoryZeroDay},
			{Keyword: "apt", Label: models.CategoryAPT},
			{Keyword: "nation", Label: models.CategoryAPT},
			{Keyword: "vulnerability", Label: models.CategoryCVE},
			{Keyword: "cve", Label: models.CategoryCVE},
		},
		Critical: []string{"critical", "zero-day", "actively exploited", "urgent", "emergency"},
		High:     []string{"major", "massive", "widespread", "severe", "serious"},
		Relevance: []string{
			"breach", "ransomware", "malware", "hack", "exploit",
			"vulnerability", "attack", "zero-day", "apt", "threat",
			"phishing", "trojan", "backdoor", "botnet",
		},
	}
}

// Category infers a category label from text. Source-supplied hints are
// checked before the global table; with no match anywhere the incident is
// filed under the generic label.
func (r *Ruleset) Category(text string, hints []Rule) string {
	lower := strings.ToLower(text)
	for _, hint := range hints {
		if hint.Keyword != "" && strings.Contains(lower, strings.ToLower(hint.Keyword)) {
			return hint.Label
		}
	}
	for _, rule := range r.Categories {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Label
		}
	}
	return models.CategoryIncident
}

// Severity infers a severity label from text. The tiers never produce LOW;
// it stays in the taxonomy for rule files and future tiers.
func (r *Ruleset) Severity(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range r.Critical {
		if strings.Contains(lower, kw) {
			return models.SeverityCritical
		}
	}
	for _, kw := range r.High {
		if strings.Contains(lower, kw) {
			return models.SeverityHigh
		}
	}
	return models.SeverityMedium
}

// Relevant reports whether a free-text news title mentions any cyber
// keyword. Structured sources bypass this filter.
func (r *Ruleset) Relevant(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range r.Relevance {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
