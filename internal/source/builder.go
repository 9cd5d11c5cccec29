package source

import (
	"strings"
	"time"

	"threatradar/internal/classify"
	"threatradar/internal/normalize"
	"threatradar/pkg/models"
)

const descriptionLimit = 250

// Meta describes the provenance and hint table for one source.
type Meta struct {
	Name  string
	Hints []classify.Rule
}

// Build assembles one incident from a raw item. The second return is false
// when the item lacks a title and must be dropped. Structured sources may
// pre-set category and severity; otherwise both come from the classifier.
func Build(item models.RawItem, meta Meta, rules *classify.Ruleset, reference time.Time) (models.Incident, bool) {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return models.Incident{}, false
	}

	description := strings.TrimSpace(normalize.Truncate(normalize.StripHTML(item.Description), descriptionLimit))

	category := item.Category
	if category == "" {
		category = rules.Category(title, meta.Hints)
	}
	severity := item.Severity
	if severity == "" {
		severity = rules.Severity(title)
	}

	return models.Incident{
		Title:       title,
		Description: description,
		Source:      meta.Name,
		Category:    category,
		Severity:    severity,
		URL:         strings.TrimSpace(item.URL),
		Timestamp:   normalize.Timestamp(item.Published, reference),
		Region:      "Global",
		Tier:        "free",
		CVEID:       item.CVEID,
	}, true
}
