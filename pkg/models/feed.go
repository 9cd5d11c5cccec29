package models

// FeedMetadata is the envelope for the full feed document.
type FeedMetadata struct {
	Product        string `json:"product"`
	Version        string `json:"version"`
	Copyright      string `json:"copyright"`
	Contact        string `json:"contact"`
	Website        string `json:"website"`
	Generated      string `json:"generated"`
	TotalIncidents int    `json:"total_incidents"`
	Window         string `json:"window"`
	NextUpdate     string `json:"next_update"`
}

// FeedDocument is the full ranked incident feed for the dashboard.
type FeedDocument struct {
	Metadata  FeedMetadata `json:"metadata"`
	Incidents []Incident   `json:"incidents"`
}

// WidgetIncident is the compact per-incident view for the sidebar widget.
type WidgetIncident struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	HoursAgo int    `json:"hours_ago"`
	URL      string `json:"url"`
}

// WidgetDocument is the top-N widget feed.
type WidgetDocument struct {
	Brand     string           `json:"brand"`
	Generated string           `json:"generated"`
	Incidents []WidgetIncident `json:"incidents"`
}
