package llm

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds Gemini model parameters. The API key is environment-only and
// never written to configuration files.
type Config struct {
	Model           string  `toml:"model"`
	Temperature     float64 `toml:"temperature"`
	MaxOutputTokens int32   `toml:"max_output_tokens"`

	apiKey string
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Model           string
	Temperature     string
	MaxOutputTokens string
	APIKey          string
}

// APIKey returns the API key resolved during Finalize.
func (c *Config) APIKey() string {
	return c.apiKey
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
	if overlay.MaxOutputTokens != 0 {
		c.MaxOutputTokens = overlay.MaxOutputTokens
	}
}

func (c *Config) loadDefaults() {
	if c.Model == "" {
		c.Model = "gemini-1.5-pro"
	}
	if c.Temperature == 0 {
		// Favors determinism over creativity for classification output.
		c.Temperature = 0.3
	}
	if c.MaxOutputTokens == 0 {
		c.MaxOutputTokens = 1000
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Model != "" {
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
	}
	if env.Temperature != "" {
		if v := os.Getenv(env.Temperature); v != "" {
			if t, err := strconv.ParseFloat(v, 64); err == nil {
				c.Temperature = t
			}
		}
	}
	if env.MaxOutputTokens != "" {
		if v := os.Getenv(env.MaxOutputTokens); v != "" {
			if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 {
				c.MaxOutputTokens = int32(n)
			}
		}
	}
	if env.APIKey != "" {
		c.apiKey = os.Getenv(env.APIKey)
	}
}

func (c *Config) validate() error {
	if c.Model == "" {
		return fmt.Errorf("model required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("invalid temperature: %v", c.Temperature)
	}
	if c.MaxOutputTokens < 1 {
		return fmt.Errorf("invalid max_output_tokens: %d", c.MaxOutputTokens)
	}
	if c.apiKey == "" {
		return fmt.Errorf("api key required")
	}
	return nil
}
