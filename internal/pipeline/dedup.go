package pipeline

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"threatradar/pkg/models"
)

// Fingerprint computes the dedup key for a title: an md5 of the
// lower-cased trimmed text. Not a security boundary, just a compact
// uniqueness signal.
func Fingerprint(title string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(title))))
	return hex.EncodeToString(sum[:])
}

// Dedupe keeps the first incident seen per title fingerprint, in input
// order. Later duplicates are dropped silently.
func Dedupe(incidents []models.Incident) []models.Incident {
	seen := make(map[string]struct{}, len(incidents))
	out := make([]models.Incident, 0, len(incidents))
	for _, incident := range incidents {
		key := Fingerprint(incident.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, incident)
	}
	return out
}
