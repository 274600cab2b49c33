package config

import (
	"fmt"
	"os"
)

const EnvRubricPath = "GDRIVE_CLASSIFIER_RUBRIC"

// RubricConfig locates the classification rubric document.
type RubricConfig struct {
	Path string `toml:"path"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RubricConfig) Finalize() error {
	if c.Path == "" {
		c.Path = "rubric.json"
	}
	if v := os.Getenv(EnvRubricPath); v != "" {
		c.Path = v
	}
	if c.Path == "" {
		return fmt.Errorf("rubric path required")
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *RubricConfig) Merge(overlay *RubricConfig) {
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}
