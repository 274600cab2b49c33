package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jtrogers/goose-gdrive-classifier/internal/classifier"
)

const (
	EnvThresholdHigh   = "GDRIVE_CLASSIFIER_THRESHOLD_HIGH"
	EnvThresholdMedium = "GDRIVE_CLASSIFIER_THRESHOLD_MEDIUM"
	EnvThresholdLow    = "GDRIVE_CLASSIFIER_THRESHOLD_LOW"
)

// ThresholdsConfig holds the confidence score thresholds. Each value must be
// in [0,100]; range is the only load-time constraint, so a misordered pair
// resolves by the literal comparison rule in the classifier.
type ThresholdsConfig struct {
	High   int `toml:"high"`
	Medium int `toml:"medium"`
	Low    int `toml:"low"`
}

// Thresholds converts the config into the classifier's threshold set.
func (c *ThresholdsConfig) Thresholds() classifier.Thresholds {
	return classifier.Thresholds{
		High:   c.High,
		Medium: c.Medium,
		Low:    c.Low,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ThresholdsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ThresholdsConfig) Merge(overlay *ThresholdsConfig) {
	if overlay.High != 0 {
		c.High = overlay.High
	}
	if overlay.Medium != 0 {
		c.Medium = overlay.Medium
	}
	if overlay.Low != 0 {
		c.Low = overlay.Low
	}
}

func (c *ThresholdsConfig) loadDefaults() {
	if c.High == 0 {
		c.High = 90
	}
	if c.Medium == 0 {
		c.Medium = 70
	}
}

func (c *ThresholdsConfig) loadEnv() {
	if v := os.Getenv(EnvThresholdHigh); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.High = n
		}
	}
	if v := os.Getenv(EnvThresholdMedium); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Medium = n
		}
	}
	if v := os.Getenv(EnvThresholdLow); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Low = n
		}
	}
}

func (c *ThresholdsConfig) validate() error {
	for name, v := range map[string]int{"high": c.High, "medium": c.Medium, "low": c.Low} {
		if v < 0 || v > 100 {
			return fmt.Errorf("threshold %s out of range [0,100]: %d", name, v)
		}
	}
	return nil
}
