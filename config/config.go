// Package config loads the aegis YAML configuration file. Values not set in
// the file come from the embedded default.yaml.
package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/poiesic/aegis/linkcheck"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfigFS embed.FS

// ErrInvalidConfig is returned when a config file has out-of-range values.
var ErrInvalidConfig = errors.New("invalid config")

// LinkCheck configures the link checker.
type LinkCheck struct {
	Workers    int    `yaml:"workers"`
	Timeout    string `yaml:"timeout"`
	MaxRetries int    `yaml:"max_retries"`
	RetryDelay string `yaml:"retry_delay"`
}

// Config is the aegis configuration file.
type Config struct {
	DataDir   string    `yaml:"data_dir"`
	StorePath string    `yaml:"store_path"`
	Listen    string    `yaml:"listen"`
	Strict    bool      `yaml:"strict"`
	LinkCheck LinkCheck `yaml:"link_check"`
}

// Default returns the built-in configuration.
func Default() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file at path over the defaults; keys missing from
// the file keep their default values. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and duration syntax.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir is required", ErrInvalidConfig)
	}
	if c.StorePath == "" {
		return fmt.Errorf("%w: store_path is required", ErrInvalidConfig)
	}
	if c.LinkCheck.Workers < 0 {
		return fmt.Errorf("%w: link_check.workers must not be negative", ErrInvalidConfig)
	}
	if c.LinkCheck.MaxRetries < 0 {
		return fmt.Errorf("%w: link_check.max_retries must not be negative", ErrInvalidConfig)
	}
	if d, err := time.ParseDuration(c.LinkCheck.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("%w: link_check.timeout %q", ErrInvalidConfig, c.LinkCheck.Timeout)
	}
	if d, err := time.ParseDuration(c.LinkCheck.RetryDelay); err != nil || d < 0 {
		return fmt.Errorf("%w: link_check.retry_delay %q", ErrInvalidConfig, c.LinkCheck.RetryDelay)
	}
	return nil
}

// Options converts the link check settings into checker options.
// Unparseable durations fall back to the checker defaults.
func (l LinkCheck) Options() []linkcheck.Option {
	var opts []linkcheck.Option
	if l.Workers > 0 {
		opts = append(opts, linkcheck.WithPoolSize(l.Workers))
	}
	if d, err := time.ParseDuration(l.Timeout); err == nil && d > 0 {
		opts = append(opts, linkcheck.WithTimeout(d))
	}
	if l.MaxRetries >= 0 {
		opts = append(opts, linkcheck.WithMaxRetries(l.MaxRetries))
	}
	if d, err := time.ParseDuration(l.RetryDelay); err == nil && d >= 0 {
		opts = append(opts, linkcheck.WithRetryDelay(d))
	}
	return opts
}
