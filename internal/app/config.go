package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/prodgraph/internal/batch"
	"github.com/specialistvlad/prodgraph/internal/scheduler"
	"github.com/specialistvlad/prodgraph/internal/source"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Source      string // directory, file, s3:// or postgres:// source
	S3          source.S3Config
	PostgresDSN string

	// Reference is the instant availability windows are measured from. Zero
	// means today at midnight UTC.
	Reference    time.Time
	Split        string // batch split strategy: fill or even
	OutputFormat string // json or yaml

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Source == "" {
		return nil, errors.New("Source is a required configuration field and cannot be empty")
	}
	if _, err := batch.StrategyByName(cfg.Split); err != nil {
		return nil, err
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = string(scheduler.FormatJSON)
	}
	format, err := scheduler.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	cfg.OutputFormat = string(format)
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "" && cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	return &cfg, nil
}

// SourceConfig returns the loader settings of the configuration.
func (c *Config) SourceConfig() source.Config {
	return source.Config{Source: c.Source, S3: c.S3, PostgresDSN: c.PostgresDSN}
}
