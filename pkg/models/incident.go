package models

// Severity labels, ordered by ranking weight.
const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
	SeverityMedium   = "MEDIUM"
	SeverityLow      = "LOW"
)

// Category labels produced by the global classification rules. Sources may
// declare their own family names (for example "Banking Trojan") beyond
// this set.
const (
	CategoryRansomware = "Ransomware"
	CategoryMalware    = "Malware"
	CategoryDataBreach = "Data Breach"
	CategoryZeroDay    = "Zero-Day"
	CategoryCVE        = "CVE"
	CategoryAPT        = "APT"
	CategoryIncident   = "Incident"
	CategoryAdvisory   = "Advisory"
)

// Incident is one normalized cyber-security event record. It is built once
// per raw source item and only the ranking fields are filled in later.
type Incident struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	URL         string `json:"url"`
	Timestamp   string `json:"timestamp"`
	Region      string `json:"region"`
	Tier        string `json:"tier"`
	CVEID       string `json:"cve_id,omitempty"`

	// Ranking fields, populated during enrichment.
	Score          int     `json:"score"`
	HoursAgo       int     `json:"hours_ago"`
	FreshnessScore float64 `json:"freshness_score"`
}

// RawItem is one item as produced by a source fetcher before
// normalization. Category and Severity are set only by structured sources;
// free-text sources leave them empty for the classifier.
type RawItem struct {
	Title       string
	Description string
	URL         string
	Published   string
	CVEID       string
	Category    string
	Severity    string
}

// SeverityWeight maps a severity label to its ranking weight. Unknown
// labels rank as MEDIUM.
func SeverityWeight(severity string) int {
	switch severity {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 2
	}
}
