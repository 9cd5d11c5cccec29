package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"threatradar/config"
	"threatradar/internal/classify"
	"threatradar/internal/fetch"
	"threatradar/internal/logger"
	"threatradar/internal/metrics"
	"threatradar/internal/normalize"
	"threatradar/internal/output/feedhttp"
	"threatradar/internal/output/feedjson"
	"threatradar/internal/output/feedredis"
	"threatradar/internal/pipeline"
	"threatradar/internal/source"
	"threatradar/pkg/models"
)

// Version is set at build time via -ldflags "-X main.Version=...".
var Version = "2.0.0"

func findConfigFile(configArg string) string {
	if configArg != "" {
		if _, err := os.Stat(configArg); err == nil {
			return configArg
		}
		log.Printf("Warning: config file not found at %s, trying default locations", configArg)
	}

	if _, err := os.Stat("threatradar.yml"); err == nil {
		return "threatradar.yml"
	}

	exePath, err := os.Executable()
	if err == nil {
		path := filepath.Join(filepath.Dir(exePath), "threatradar.yml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "threatradar.yml"
}

func defaultSources() []config.SourceConfig {
	return []config.SourceConfig{
		{
			Type: "rss",
			Name: "BleepingComputer",
			URL:  "https://www.bleepingcomputer.com/feed/",
			CategoryHints: []config.CategoryHint{
				{Keyword: "ransomware", Category: models.CategoryRansomware},
				{Keyword: "malware", Category: models.CategoryMalware},
				{Keyword: "breach", Category: models.CategoryDataBreach},
				{Keyword: "zero-day", Category: models.CategoryZeroDay},
				{Keyword: "vulnerability", Category: models.CategoryCVE},
			},
		},
		{
			Type: "rss",
			Name: "The Hacker News",
			URL:  "https://feeds.feedburner.com/TheHackersNews",
			CategoryHints: []config.CategoryHint{
				{Keyword: "breach", Category: models.CategoryDataBreach},
				{Keyword: "hacking", Category: models.CategoryIncident},
				{Keyword: "malware", Category: models.CategoryMalware},
				{Keyword: "apt", Category: models.CategoryAPT},
			},
		},
		{Type: "breach"},
		{Type: "cve"},
		{Type: "malware"},
		{Type: "cert"},
	}
}

func applyDefaults(cfg *config.Config) {
	tr := &cfg.ThreatRadar

	if tr.Window <= 0 {
		tr.Window = 24 * time.Hour
	}
	if tr.Interval <= 0 {
		tr.Interval = 1 * time.Hour
	}
	if tr.Fetch.Timeout <= 0 {
		tr.Fetch.Timeout = 15 * time.Second
	}
	if len(tr.Sources) == 0 {
		tr.Sources = defaultSources()
	}
	if tr.Output.Dir == "" {
		tr.Output.Dir = "data"
	}

	if tr.Feed.Product == "" {
		tr.Feed.Product = "THREATRADAR LIVE"
	}
	if tr.Feed.Version == "" {
		tr.Feed.Version = Version
	}
	if tr.Feed.Copyright == "" {
		tr.Feed.Copyright = "© 2026 ThreatRadar"
	}
	if tr.Feed.Contact == "" {
		tr.Feed.Contact = "intel@threatradar.example.com"
	}
	if tr.Feed.Website == "" {
		tr.Feed.Website = "https://threatradar.example.com"
	}

	if tr.Metrics.Addr == "" {
		tr.Metrics.Addr = ":9464"
	}
	if tr.Logging.Level == "" {
		tr.Logging.Level = "info"
	}
}

func main() {
	var (
		configArg = flag.String("config", "", "path to YAML config")
		outDir    = flag.String("out", "", "override the output directory")
		interval  = flag.Duration("interval", 0, "override the refresh interval")
		once      = flag.Bool("once", false, "run a single cycle then exit")
	)
	flag.Parse()

	configPath := findConfigFile(*configArg)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if *configArg != "" {
			log.Fatalf("Failed to load config: %v", err)
		}
		// No config anywhere: run entirely on defaults.
		cfg = &config.Config{}
		cfg.ThreatRadar.Logging.Enabled = true
		cfg.ThreatRadar.Logging.Console = true
	}
	applyDefaults(cfg)
	if *outDir != "" {
		cfg.ThreatRadar.Output.Dir = *outDir
	}
	if *interval > 0 {
		cfg.ThreatRadar.Interval = *interval
	}

	tr := cfg.ThreatRadar

	if err := logger.Init(tr.Logging.Enabled, tr.Logging.Level, tr.Logging.File, tr.Logging.Console); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	logger.Infof("ThreatRadar v%s starting", Version)
	logger.Infof("Config loaded from: %s", configPath)
	logger.Infof("Rolling window: %s, output: %s", tr.Window, tr.Output.Dir)

	rules := classify.Default()
	if tr.Rules.Path != "" {
		loaded, stats, err := classify.Load(tr.Rules.Path)
		if err != nil {
			log.Fatalf("Failed to load classification rules: %v", err)
		}
		rules = loaded
		logger.Infof("Classification rules loaded from %s: categories=%d critical=%d high=%d relevance=%d",
			tr.Rules.Path, stats.Categories, stats.Critical, stats.High, stats.Relevance)
	}

	client := fetch.NewClient(fetch.Config{
		Timeout:   tr.Fetch.Timeout,
		UserAgent: tr.Fetch.UserAgent,
	})
	deps := source.Deps{Client: client, Rules: rules}

	sources := make([]source.Source, 0, len(tr.Sources))
	for _, sc := range tr.Sources {
		src, err := source.NewFromConfig(sc, deps)
		if err != nil {
			log.Fatalf("Failed to build source %q: %v", sc.Type, err)
		}
		sources = append(sources, src)
		logger.Infof("configured source: %s", src.Name())
	}

	var writers []pipeline.FeedWriter

	jsonWriter, err := feedjson.NewWriter(tr.Output.Dir)
	if err != nil {
		log.Fatalf("Failed to create feed file writer: %v", err)
	}
	writers = append(writers, jsonWriter)

	if tr.Output.HTTP.URL != "" {
		w, err := feedhttp.NewWriter(feedhttp.Config{
			URL:       tr.Output.HTTP.URL,
			WidgetURL: tr.Output.HTTP.WidgetURL,
			Timeout:   tr.Output.HTTP.Timeout,
			Headers:   tr.Output.HTTP.Headers,
		})
		if err != nil {
			log.Fatalf("Failed to create feed HTTP writer: %v", err)
		}
		writers = append(writers, w)
		logger.Infof("HTTP delivery enabled: %s", tr.Output.HTTP.URL)
	}

	if tr.Output.Redis.Addr != "" {
		w, err := feedredis.NewWriter(feedredis.Config{
			Addr:      tr.Output.Redis.Addr,
			Password:  tr.Output.Redis.Password,
			DB:        tr.Output.Redis.DB,
			KeyPrefix: tr.Output.Redis.KeyPrefix,
			Timeout:   tr.Output.Redis.Timeout,
		})
		if err != nil {
			log.Fatalf("Failed to create feed Redis writer: %v", err)
		}
		writers = append(writers, w)
		logger.Infof("Redis delivery enabled: %s", tr.Output.Redis.Addr)
	}

	if tr.Metrics.Enabled && !*once {
		go func() {
			logger.Infof("metrics listening on %s", tr.Metrics.Addr)
			if err := metrics.Serve(tr.Metrics.Addr); err != nil {
				logger.Errorf("metrics server: %v", err)
			}
		}()
	}

	brand := pipeline.Branding{
		Product:   tr.Feed.Product,
		Version:   tr.Feed.Version,
		Copyright: tr.Feed.Copyright,
		Contact:   tr.Feed.Contact,
		Website:   tr.Feed.Website,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runOnce := func() {
		start := time.Now()
		pipe := pipeline.New(sources, tr.Window, start)
		logger.Infof("fetching incidents since %s", pipe.Reference().Add(-pipe.Window()).Format("2006-01-02 15:04 UTC"))

		incidents := pipe.Run(ctx)
		full := pipe.BuildFeed(incidents, brand, tr.Interval)
		widget := pipe.BuildWidget(incidents, brand)

		for _, w := range writers {
			if err := w.WriteFeed(full, widget); err != nil {
				logger.Errorf("feed delivery failed: %v", err)
			}
		}

		updateRunMetrics(incidents, start)
		printSummary(incidents)
	}

	runOnce()
	if *once {
		closeWriters(writers)
		return
	}

	ticker := time.NewTicker(tr.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Infof("shutting down")
			closeWriters(writers)
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

func closeWriters(writers []pipeline.FeedWriter) {
	for _, w := range writers {
		if err := w.Close(); err != nil {
			logger.Errorf("closing writer: %v", err)
		}
	}
}

func updateRunMetrics(incidents []models.Incident, start time.Time) {
	counts := map[string]int{
		models.SeverityCritical: 0,
		models.SeverityHigh:     0,
		models.SeverityMedium:   0,
		models.SeverityLow:      0,
	}
	for _, incident := range incidents {
		counts[incident.Severity]++
	}
	for severity, n := range counts {
		metrics.IncidentsEmitted.WithLabelValues(severity).Set(float64(n))
	}
	metrics.RunDuration.Set(time.Since(start).Seconds())
	metrics.LastRun.Set(float64(time.Now().Unix()))
}

func printSummary(incidents []models.Incident) {
	severityCounts := make(map[string]int)
	categoryCounts := make(map[string]int)
	for _, incident := range incidents {
		severityCounts[incident.Severity]++
		categoryCounts[incident.Category]++
	}

	logger.Infof("intelligence summary: %d incidents", len(incidents))
	for _, severity := range []string{models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow} {
		if n := severityCounts[severity]; n > 0 {
			logger.Infof("  %s: %d", severity, n)
		}
	}

	type categoryCount struct {
		name string
		n    int
	}
	categories := make([]categoryCount, 0, len(categoryCounts))
	for name, n := range categoryCounts {
		categories = append(categories, categoryCount{name, n})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].n != categories[j].n {
			return categories[i].n > categories[j].n
		}
		return categories[i].name < categories[j].name
	})
	if len(categories) > 6 {
		categories = categories[:6]
	}
	for _, c := range categories {
		logger.Infof("  %s: %d", c.name, c.n)
	}

	top := incidents
	if len(top) > 3 {
		top = top[:3]
	}
	for i, incident := range top {
		title := normalize.Truncate(incident.Title, 65)
		if title != incident.Title {
			title += "..."
		}
		logger.Infof("  top %d: [%s] %s", i+1, incident.Severity, title)
	}
}
