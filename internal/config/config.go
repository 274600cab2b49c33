// Package config loads and finalizes the service configuration: a TOML base
// file, an optional environment overlay, then defaults, environment variable
// overrides, and validation per section.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jtrogers/goose-gdrive-classifier/pkg/drive"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/llm"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvConfigPath      = "GDRIVE_CLASSIFIER_CONFIG"
	EnvEnvironment     = "GDRIVE_CLASSIFIER_ENV"
	EnvShutdownTimeout = "GDRIVE_CLASSIFIER_SHUTDOWN_TIMEOUT"
	EnvVersion         = "GDRIVE_CLASSIFIER_VERSION"
)

var driveEnv = &drive.Env{
	TokenPath: "GOOGLE_TOKEN_PATH",
	PageSize:  "GDRIVE_CLASSIFIER_DRIVE_PAGE_SIZE",
}

var llmEnv = &llm.Env{
	Model:           "GDRIVE_CLASSIFIER_LLM_MODEL",
	Temperature:     "GDRIVE_CLASSIFIER_LLM_TEMPERATURE",
	MaxOutputTokens: "GDRIVE_CLASSIFIER_LLM_MAX_OUTPUT_TOKENS",
	APIKey:          "GEMINI_API_KEY",
}

// Config is the root configuration for the classifier service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Rubric          RubricConfig     `toml:"rubric"`
	Thresholds      ThresholdsConfig `toml:"thresholds"`
	Processing      ProcessingConfig `toml:"processing"`
	Reporting       ReportingConfig  `toml:"reporting"`
	Drive           drive.Config     `toml:"drive"`
	LLM             llm.Config       `toml:"llm"`
	API             APIConfig        `toml:"api"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the GDRIVE_CLASSIFIER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvEnvironment); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config file exists, defaults and
// environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	base := basePath()
	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Rubric.Merge(&overlay.Rubric)
	c.Thresholds.Merge(&overlay.Thresholds)
	c.Processing.Merge(&overlay.Processing)
	c.Reporting.Merge(&overlay.Reporting)
	c.Drive.Merge(&overlay.Drive)
	c.LLM.Merge(&overlay.LLM)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Rubric.Finalize(); err != nil {
		return fmt.Errorf("rubric: %w", err)
	}
	if err := c.Thresholds.Finalize(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	if err := c.Processing.Finalize(); err != nil {
		return fmt.Errorf("processing: %w", err)
	}
	if err := c.Reporting.Finalize(); err != nil {
		return fmt.Errorf("reporting: %w", err)
	}
	if err := c.Drive.Finalize(driveEnv); err != nil {
		return fmt.Errorf("drive: %w", err)
	}
	if err := c.LLM.Finalize(llmEnv); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "1.0.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func basePath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	return BaseConfigFile
}

func overlayPath() string {
	if env := os.Getenv(EnvEnvironment); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
