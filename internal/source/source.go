// Package source fetches intelligence feeds and normalizes their items
// into incident records.
package source

import (
	"context"
	"fmt"
	"time"

	"threatradar/config"
	"threatradar/internal/classify"
	"threatradar/pkg/models"
)

// Source produces normalized incidents from one intelligence feed. The
// reference instant is the frozen pipeline-start time; sources use it for
// missing publish dates so one run never mixes clocks.
type Source interface {
	Name() string
	Fetch(ctx context.Context, reference time.Time) ([]models.Incident, error)
}

// Getter fetches a URL body. *fetch.Client implements it.
type Getter interface {
	Get(ctx context.Context, url string) (string, error)
}

// Deps carries the collaborators shared by all sources.
type Deps struct {
	Client Getter
	Rules  *classify.Ruleset
}

// NewFromConfig builds a source from its configuration entry.
func NewFromConfig(c config.SourceConfig, deps Deps) (Source, error) {
	switch c.Type {
	case "rss":
		return NewRSSSource(c, deps), nil
	case "breach":
		return NewBreachSource(c, deps), nil
	case "cve":
		return NewCVESource(c, deps), nil
	case "malware":
		return NewMalwareSource(c, deps), nil
	case "cert":
		return NewCERTSource(c, deps), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", c.Type)
	}
}
