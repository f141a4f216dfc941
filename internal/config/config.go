// Package config loads perfgate settings from a YAML or JSON file and fills
// in defaults for anything the file leaves out.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"perfgate/internal/analysis"
	"perfgate/internal/results"
)

// Config holds the tunable settings of a feedback pass.
type Config struct {
	// ReportsDir is the root of the reports layout.
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`
	// Thresholds override the built-in evaluation limits.
	Thresholds analysis.Thresholds `json:"thresholds" yaml:"thresholds"`
	// HistoryLimit caps how many archived runs the trend analyzer reads.
	HistoryLimit int `json:"history_limit" yaml:"history_limit"`
	// BaselineReference overrides the baseline reference file location.
	// Defaults to <reports_dir>/history/baseline_reference.json.
	BaselineReference string `json:"baseline_reference" yaml:"baseline_reference"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{
		ReportsDir:   results.DefaultReportsDir,
		Thresholds:   analysis.DefaultThresholds(),
		HistoryLimit: analysis.DefaultHistoryLimit,
	}
	c.BaselineReference = filepath.Join(c.ReportsDir, "history", analysis.BaselineReferenceName)
	return c
}

// LoadFromPath reads a config file (YAML or JSON) and returns the parsed
// Config with defaults applied. An empty path returns Default().
func LoadFromPath(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config from bytes. ext is the file extension (e.g. ".json",
// ".yaml") for format hint; empty = detect from content.
func Load(data []byte, ext string) (*Config, error) {
	c := Default()
	// The reference default is derived from the final ReportsDir. Start empty
	// so applyDefaults recomputes it unless the file sets it explicitly.
	c.BaselineReference = ""
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	switch ext {
	case ".yaml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	default:
		// Detect: try JSON first (starts with {), else YAML
		trimmed := strings.TrimSpace(string(data))
		if strings.HasPrefix(trimmed, "{") {
			if err := json.Unmarshal(data, c); err != nil {
				return nil, fmt.Errorf("parse config json: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, fmt.Errorf("parse config yaml: %w", err)
			}
		}
	}
	c.applyDefaults()
	return c, nil
}

// applyDefaults backfills zero-valued fields after parsing. A file may set
// only a subset of thresholds; the rest keep their built-in values.
func (c *Config) applyDefaults() {
	def := Default()
	if c.ReportsDir == "" {
		c.ReportsDir = def.ReportsDir
	}
	if c.Thresholds.P95Ms == 0 {
		c.Thresholds.P95Ms = def.Thresholds.P95Ms
	}
	if c.Thresholds.P99Ms == 0 {
		c.Thresholds.P99Ms = def.Thresholds.P99Ms
	}
	if c.Thresholds.ErrorRate == 0 {
		c.Thresholds.ErrorRate = def.Thresholds.ErrorRate
	}
	if c.Thresholds.MinThroughput == 0 {
		c.Thresholds.MinThroughput = def.Thresholds.MinThroughput
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = def.HistoryLimit
	}
	if c.BaselineReference == "" {
		c.BaselineReference = filepath.Join(c.ReportsDir, "history", analysis.BaselineReferenceName)
	}
}
