package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jtrogers/goose-gdrive-classifier/internal/classifier"
)

const (
	EnvProcessingBatchSize        = "GDRIVE_CLASSIFIER_BATCH_SIZE"
	EnvProcessingMaxRetries       = "GDRIVE_CLASSIFIER_MAX_RETRIES"
	EnvProcessingRetryBackoff     = "GDRIVE_CLASSIFIER_RETRY_BACKOFF"
	EnvProcessingMaxContentLength = "GDRIVE_CLASSIFIER_MAX_CONTENT_LENGTH"
)

// ProcessingConfig holds batch processing and model-call parameters.
type ProcessingConfig struct {
	BatchSize        int    `toml:"batch_size"`
	MaxRetries       int    `toml:"max_retries"`
	RetryBackoff     string `toml:"retry_backoff"`
	MaxContentLength int    `toml:"max_content_length"`
}

// RetryBackoffDuration returns RetryBackoff as a time.Duration.
func (c *ProcessingConfig) RetryBackoffDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryBackoff)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ProcessingConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ProcessingConfig) Merge(overlay *ProcessingConfig) {
	if overlay.BatchSize != 0 {
		c.BatchSize = overlay.BatchSize
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.RetryBackoff != "" {
		c.RetryBackoff = overlay.RetryBackoff
	}
	if overlay.MaxContentLength != 0 {
		c.MaxContentLength = overlay.MaxContentLength
	}
}

func (c *ProcessingConfig) loadDefaults() {
	if c.BatchSize == 0 {
		c.BatchSize = 100
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.RetryBackoff == "" {
		c.RetryBackoff = "1s"
	}
	if c.MaxContentLength == 0 {
		c.MaxContentLength = classifier.DefaultMaxContentLength
	}
}

func (c *ProcessingConfig) loadEnv() {
	if v := os.Getenv(EnvProcessingBatchSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.BatchSize = n
		}
	}
	if v := os.Getenv(EnvProcessingMaxRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv(EnvProcessingRetryBackoff); v != "" {
		c.RetryBackoff = v
	}
	if v := os.Getenv(EnvProcessingMaxContentLength); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxContentLength = n
		}
	}
}

func (c *ProcessingConfig) validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("invalid batch_size: %d", c.BatchSize)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("invalid max_retries: %d", c.MaxRetries)
	}
	if _, err := time.ParseDuration(c.RetryBackoff); err != nil {
		return fmt.Errorf("invalid retry_backoff: %w", err)
	}
	if c.MaxContentLength < 1 {
		return fmt.Errorf("invalid max_content_length: %d", c.MaxContentLength)
	}
	return nil
}
