// Package pipeline runs the incident aggregation cycle: collect from all
// sources, deduplicate, window-filter, score, rank, and project the output
// documents. Every stage works against a reference instant frozen at
// construction so one run never mixes clocks.
package pipeline

import (
	"context"
	"sync"
	"time"

	"threatradar/internal/logger"
	"threatradar/internal/metrics"
	"threatradar/internal/source"
	"threatradar/pkg/models"
)

const defaultWindow = 24 * time.Hour

// Pipeline executes one aggregation cycle.
type Pipeline struct {
	sources   []source.Source
	window    time.Duration
	reference time.Time
	cutoff    time.Time
}

// New creates a pipeline for one run. The reference instant is captured
// here and used for the window cutoff, ages, and envelope timestamps.
func New(sources []source.Source, window time.Duration, reference time.Time) *Pipeline {
	if window <= 0 {
		window = defaultWindow
	}
	ref := reference.UTC()
	return &Pipeline{
		sources:   sources,
		window:    window,
		reference: ref,
		cutoff:    ref.Add(-window),
	}
}

// Reference returns the frozen run instant.
func (p *Pipeline) Reference() time.Time { return p.reference }

// Window returns the rolling window duration.
func (p *Pipeline) Window() time.Duration { return p.window }

// Collect fetches every source concurrently and concatenates the results
// in source declaration order. A failed source is logged and contributes
// nothing; the run continues.
func (p *Pipeline) Collect(ctx context.Context) []models.Incident {
	batches := make([][]models.Incident, len(p.sources))
	var wg sync.WaitGroup
	for i, src := range p.sources {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			incidents, err := src.Fetch(ctx, p.reference)
			if err != nil {
				logger.Warnf("source %s: %v", src.Name(), err)
				metrics.FetchErrors.WithLabelValues(src.Name()).Inc()
				return
			}
			logger.Debugf("source %s: %d incidents", src.Name(), len(incidents))
			metrics.IncidentsIngested.WithLabelValues(src.Name()).Add(float64(len(incidents)))
			batches[i] = incidents
		}(i, src)
	}
	wg.Wait()

	var all []models.Incident
	for _, batch := range batches {
		all = append(all, batch...)
	}
	return all
}

// Run executes one full cycle and returns the ranked incident list.
func (p *Pipeline) Run(ctx context.Context) []models.Incident {
	incidents := p.Collect(ctx)
	collected := len(incidents)

	incidents = Dedupe(incidents)
	incidents = p.FilterWindow(incidents)
	incidents = p.Enrich(incidents)

	logger.Infof("processed %d unique incidents (%d collected)", len(incidents), collected)
	return incidents
}
