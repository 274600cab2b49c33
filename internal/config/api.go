package config

import (
	"fmt"
	"os"

	"github.com/jtrogers/goose-gdrive-classifier/pkg/middleware"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "GDRIVE_CLASSIFIER_CORS_ENABLED",
	Origins:          "GDRIVE_CLASSIFIER_CORS_ORIGINS",
	AllowedMethods:   "GDRIVE_CLASSIFIER_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "GDRIVE_CLASSIFIER_CORS_ALLOWED_HEADERS",
	AllowCredentials: "GDRIVE_CLASSIFIER_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "GDRIVE_CLASSIFIER_CORS_MAX_AGE",
}

// APIConfig holds API routing and CORS settings.
type APIConfig struct {
	BasePath string                `toml:"base_path"`
	CORS     middleware.CORSConfig `toml:"cors"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if v := os.Getenv("GDRIVE_CLASSIFIER_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
}
