package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile is the on-disk override format. Sections left empty keep the
// built-in tables, so a file can replace just the category rules.
type RulesFile struct {
	Categories []Rule   `yaml:"categories"`
	Critical   []string `yaml:"critical"`
	High       []string `yaml:"high"`
	Relevance  []string `yaml:"relevance"`
}

// LoadStats reports what a rule file contributed, for startup logging.
type LoadStats struct {
	Categories int
	Critical   int
	High       int
	Relevance  int
}

// Load reads a YAML rule file and merges it over the defaults.
func Load(path string) (*Ruleset, LoadStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read rules file: %w", err)
	}

	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, LoadStats{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	rs := Default()
	stats := LoadStats{
		Categories: len(file.Categories),
		Critical:   len(file.Critical),
		High:       len(file.High),
		Relevance:  len(file.Relevance),
	}
	if len(file.Categories) > 0 {
		rs.Categories = file.Categories
	}
	if len(file.Critical) > 0 {
		rs.Critical = file.Critical
	}
	if len(file.High) > 0 {
		rs.High = file.High
	}
	if len(file.Relevance) > 0 {
		rs.Relevance = file.Relevance
	}
	return rs, stats, nil
}
