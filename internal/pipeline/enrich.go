package pipeline

import (
	"math"
	"sort"

	"threatradar/internal/normalize"
	"threatradar/pkg/models"
)

// freshnessWindowHours is the span of the linear freshness decay.
const freshnessWindowHours = 24

// FilterWindow drops incidents older than the cutoff. Incidents whose
// timestamp fails to parse are kept: losing records to malformed dates is
// worse than letting a stale one through.
func (p *Pipeline) FilterWindow(incidents []models.Incident) []models.Incident {
	out := make([]models.Incident, 0, len(incidents))
	for _, incident := range incidents {
		t, err := normalize.ParseTimestamp(incident.Timestamp)
		if err != nil || !t.UTC().Before(p.cutoff) {
			out = append(out, incident)
		}
	}
	return out
}

// Enrich fills in the ranking fields and sorts the collection descending
// by severity weight, then freshness. The sort is stable so equally ranked
// incidents keep their encounter order.
func (p *Pipeline) Enrich(incidents []models.Incident) []models.Incident {
	for i := range incidents {
		incident := &incidents[i]
		incident.Score = models.SeverityWeight(incident.Severity)

		t, err := normalize.ParseTimestamp(incident.Timestamp)
		if err != nil {
			// Unknown age counts as maximally fresh.
			incident.HoursAgo = 0
			incident.FreshnessScore = freshnessWindowHours
			continue
		}

		age := p.reference.Sub(t.UTC()).Hours()
		hours := age
		if hours < 0 {
			hours = 0
		}
		incident.HoursAgo = int(hours)
		incident.FreshnessScore = math.Max(0, freshnessWindowHours-age)
	}

	sort.SliceStable(incidents, func(i, j int) bool {
		if incidents[i].Score != incidents[j].Score {
			return incidents[i].Score > incidents[j].Score
		}
		return incidents[i].FreshnessScore > incidents[j].FreshnessScore
	})
	return incidents
}
