// Package config loads the licwatch configuration: a YAML file with
// defaults for everything except the API key, which may also arrive
// through the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is where Load looks when no path is given on the
	// command line.
	DefaultFile = "licwatch.yaml"

	// EnvAPIKey overrides api.key whenever it is set and non-empty.
	EnvAPIKey = "MERAKI_DASHBOARD_API_KEY"

	defaultBaseURL        = "https://api.meraki.com/api/v1"
	defaultTimeoutSeconds = 30
	defaultMaxRetries     = 3
	defaultOutputDir      = "."
	defaultLogLevel       = "info"
)

// APIConfig covers the dashboard connection. MaxRetries is a pointer
// so an explicit 0, which disables retries, is distinct from unset.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	Key            string `yaml:"key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     *int   `yaml:"max_retries"`
}

// ReportConfig covers the output artifact.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// ConsoleConfig covers the human-facing presentation.
type ConsoleConfig struct {
	Plain   bool `yaml:"plain"`
	Verbose bool `yaml:"verbose"`
}

// LogConfig covers the operational run log.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Config models the licwatch YAML file.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Report  ReportConfig  `yaml:"report"`
	Console ConsoleConfig `yaml:"console"`
	Log     LogConfig     `yaml:"log"`
}

// Load reads the YAML config at path, applies defaults and environment
// overrides, and validates the result. A missing file is not an error;
// defaults plus environment must then supply everything required.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Timeout returns the per-request API timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// MaxRetries returns how many times a failed API request is retried
// after the initial attempt.
func (c *Config) MaxRetries() int {
	return *c.API.MaxRetries
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultBaseURL
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.API.MaxRetries == nil {
		retries := defaultMaxRetries
		c.API.MaxRetries = &retries
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = defaultOutputDir
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}

func (c *Config) applyEnv() {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		c.API.Key = key
	}
}

func (c *Config) normalize() {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	c.API.Key = strings.TrimSpace(c.API.Key)
	c.Report.OutputDir = strings.TrimSpace(c.Report.OutputDir)
	c.Log.Path = strings.TrimSpace(c.Log.Path)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

func (c *Config) validate() error {
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.base_url %q is not a valid URL", c.API.BaseURL)
	}
	if c.API.Key == "" {
		return fmt.Errorf("api.key is required (set it in the config file or via %s)", EnvAPIKey)
	}
	if c.API.TimeoutSeconds < 1 {
		return fmt.Errorf("api.timeout_seconds must be >= 1")
	}
	if *c.API.MaxRetries < 0 {
		return fmt.Errorf("api.max_retries must be >= 0")
	}
	if c.Report.OutputDir == "" {
		return fmt.Errorf("report.output_dir is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}
