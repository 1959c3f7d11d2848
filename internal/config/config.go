package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = "lifeexp.yaml"

// Config represents the YAML configuration file.
type Config struct {
	DataDir      string        `yaml:"data_dir"`
	Input        string        `yaml:"input"`
	Country      string        `yaml:"country"`
	OutputFormat string        `yaml:"output_format"`
	StrictYear   bool          `yaml:"strict_year"`
	MetricsFile  string        `yaml:"metrics_file"`
	Logging      LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataDir:      DefaultDataDir,
		Country:      "PT",
		OutputFormat: DefaultOutputFormat,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from a YAML file. Unset fields take their
// defaults. A missing file is an error unless optional is true, in which
// case the defaults are returned.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.merge(&file)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Input != "" {
		c.Input = o.Input
	}
	if o.Country != "" {
		c.Country = o.Country
	}
	if o.OutputFormat != "" {
		c.OutputFormat = o.OutputFormat
	}
	if o.StrictYear {
		c.StrictYear = true
	}
	if o.MetricsFile != "" {
		c.MetricsFile = o.MetricsFile
	}
	if o.Logging.Level != "" {
		c.Logging.Level = o.Logging.Level
	}
	if o.Logging.Format != "" {
		c.Logging.Format = o.Logging.Format
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}
	return nil
}

// Paths returns the filesystem paths for this configuration. An explicit
// Input overrides the default input path; a bare file name is looked up in
// DataDir.
func (c *Config) Paths() *Paths {
	p := DefaultPaths(c.DataDir)
	if c.Input != "" {
		p.Input = c.Input
		if filepath.Base(c.Input) == c.Input {
			p.Input = filepath.Join(p.DataDir, c.Input)
		}
	}
	return p
}
