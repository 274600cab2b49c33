package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvReportingSampleSizePercent = "GDRIVE_CLASSIFIER_SAMPLE_SIZE_PERCENT"
	EnvReportingFormat            = "GDRIVE_CLASSIFIER_REPORT_FORMAT"
)

// ReportingConfig holds report and validation defaults.
type ReportingConfig struct {
	SampleSizePercent int    `toml:"sample_size_percent"`
	ReportFormat      string `toml:"report_format"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ReportingConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ReportingConfig) Merge(overlay *ReportingConfig) {
	if overlay.SampleSizePercent != 0 {
		c.SampleSizePercent = overlay.SampleSizePercent
	}
	if overlay.ReportFormat != "" {
		c.ReportFormat = overlay.ReportFormat
	}
}

func (c *ReportingConfig) loadDefaults() {
	if c.SampleSizePercent == 0 {
		c.SampleSizePercent = 10
	}
	if c.ReportFormat == "" {
		c.ReportFormat = "markdown"
	}
}

func (c *ReportingConfig) loadEnv() {
	if v := os.Getenv(EnvReportingSampleSizePercent); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SampleSizePercent = n
		}
	}
	if v := os.Getenv(EnvReportingFormat); v != "" {
		c.ReportFormat = v
	}
}

func (c *ReportingConfig) validate() error {
	if c.SampleSizePercent < 1 || c.SampleSizePercent > 100 {
		return fmt.Errorf("sample_size_percent out of range [1,100]: %d", c.SampleSizePercent)
	}
	return nil
}
