package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	ThreatRadar ThreatRadarConfig `yaml:"threatradar"`
}

// ThreatRadarConfig is the project configuration.
type ThreatRadarConfig struct {
	Window   time.Duration  `yaml:"window"`
	Interval time.Duration  `yaml:"interval"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Sources  []SourceConfig `yaml:"sources"`
	Rules    RulesConfig    `yaml:"rules"`
	Output   OutputConfig   `yaml:"output"`
	Feed     FeedConfig     `yaml:"feed"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// FetchConfig controls the shared HTTP client.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// SourceConfig declares one intelligence source.
type SourceConfig struct {
	Type          string         `yaml:"type"` // rss|breach|cve|malware|cert
	Name          string         `yaml:"name"`
	URL           string         `yaml:"url"`
	MaxItems      int            `yaml:"max_items"`
	CategoryHints []CategoryHint `yaml:"category_hints"`
}

// CategoryHint maps a keyword to a category for one source. Hints are
// checked in list order before the global rules.
type CategoryHint struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

// RulesConfig points at an optional classification rule override file.
type RulesConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig controls feed delivery. The file sink is always active;
// HTTP and Redis are additional destinations when configured.
type OutputConfig struct {
	Dir   string            `yaml:"dir"`
	HTTP  HTTPOutputConfig  `yaml:"http"`
	Redis RedisOutputConfig `yaml:"redis"`
}

// HTTPOutputConfig config for posting feeds to a dashboard endpoint.
type HTTPOutputConfig struct {
	URL       string            `yaml:"url"`
	WidgetURL string            `yaml:"widget_url"`
	Timeout   time.Duration     `yaml:"timeout"`
	Headers   map[string]string `yaml:"headers"`
}

// RedisOutputConfig config for publishing feeds under Redis keys.
type RedisOutputConfig struct {
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	KeyPrefix string        `yaml:"key_prefix"`
	Timeout   time.Duration `yaml:"timeout"`
}

// FeedConfig is the branding carried in the feed envelopes.
type FeedConfig struct {
	Product   string `yaml:"product"`
	Version   string `yaml:"version"`
	Copyright string `yaml:"copyright"`
	Contact   string `yaml:"contact"`
	Website   string `yaml:"website"`
}

// MetricsConfig controls the Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LoggingConfig controls logging output.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	Console bool   `yaml:"console"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
