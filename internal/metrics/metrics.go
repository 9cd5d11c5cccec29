// Package metrics exposes run instrumentation for interval mode.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	IncidentsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "threatradar_incidents_ingested_total",
			Help: "Incidents collected per source before dedup and filtering",
		},
		[]string{"source"},
	)

	FetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "threatradar_fetch_errors_total",
			Help: "Source fetch or parse failures",
		},
		[]string{"source"},
	)

	IncidentsEmitted = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "threatradar_incidents_emitted",
			Help: "Incidents in the last generated feed by severity",
		},
		[]string{"severity"},
	)

	RunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "threatradar_run_duration_seconds",
			Help: "Wall time of the last aggregation run",
		},
	)

	LastRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "threatradar_last_run_timestamp_seconds",
			Help: "Unix time of the last completed run",
		},
	)
)

// Serve exposes /metrics on addr. Blocks; run it in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
