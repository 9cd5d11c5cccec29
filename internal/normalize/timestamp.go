// Package normalize converts the messy text fields of source items into
// the canonical forms the pipeline relies on.
package normalize

import (
	"regexp"
	"strings"
	"time"
)

// TimestampLayout is the canonical timestamp form: UTC ISO-8601 with a
// trailing Z and second precision.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Layouts tried in priority order when parsing source dates. RSS feeds use
// the RFC-822 variants, Atom and JSON sources the ISO ones.
var timestampLayouts = []string{
	// time.Parse resolves unknown zone abbreviations to offset 0; the
	// configured feeds all emit GMT, which parses exactly.
	"Mon, 02 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05",
}

// Timestamp parses a source date string into the canonical UTC form.
// Empty or unparseable input falls back to the reference instant, so the
// result is always well formed.
func Timestamp(raw string, reference time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return reference.UTC().Format(TimestampLayout)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(TimestampLayout)
		}
	}
	return reference.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a canonical timestamp back into a time value.
// Callers treat an error as "age unknown" and fail open.
func ParseTimestamp(ts string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(ts))
}

var htmlTagPattern = regexp.MustCompile(`<[^<]+?>`)

// StripHTML removes markup tags from feed descriptions.
func StripHTML(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

// Truncate cuts s to at most n characters, never splitting a rune.
func Truncate(s string, n int) string {
	if n < 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
