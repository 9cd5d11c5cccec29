package pipeline

import (
	"fmt"
	"time"

	"threatradar/internal/normalize"
	"threatradar/pkg/models"
)

const (
	widgetSize       = 10
	widgetTitleLimit = 80
)

// Branding is the identity carried in the feed envelopes.
type Branding struct {
	Product   string
	Version   string
	Copyright string
	Contact   string
	Website   string
}

// BuildFeed wraps the ranked incidents in the full-feed envelope.
func (p *Pipeline) BuildFeed(incidents []models.Incident, brand Branding, nextUpdate time.Duration) models.FeedDocument {
	if incidents == nil {
		incidents = []models.Incident{}
	}
	generated := p.reference.Format(normalize.TimestampLayout)
	return models.FeedDocument{
		Metadata: models.FeedMetadata{
			Product:        brand.Product,
			Version:        brand.Version,
			Copyright:      brand.Copyright,
			Contact:        brand.Contact,
			Website:        brand.Website,
			Generated:      generated,
			TotalIncidents: len(incidents),
			Window:         fmt.Sprintf("%.0f hours", p.window.Hours()),
			NextUpdate:     p.reference.Add(nextUpdate).Format(normalize.TimestampLayout),
		},
		Incidents: incidents,
	}
}

// BuildWidget projects the top ranked incidents into the compact widget
// document. Ordering is preserved; only the prefix and fields shrink.
func (p *Pipeline) BuildWidget(incidents []models.Incident, brand Branding) models.WidgetDocument {
	top := incidents
	if len(top) > widgetSize {
		top = top[:widgetSize]
	}
	compact := make([]models.WidgetIncident, 0, len(top))
	for _, incident := range top {
		compact = append(compact, models.WidgetIncident{
			Title:    normalize.Truncate(incident.Title, widgetTitleLimit),
			Category: incident.Category,
			Severity: incident.Severity,
			HoursAgo: incident.HoursAgo,
			URL:      incident.URL,
		})
	}
	return models.WidgetDocument{
		Brand:     brand.Product,
		Generated: p.reference.Format(normalize.TimestampLayout),
		Incidents: compact,
	}
}
