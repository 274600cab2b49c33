package drive

import (
	"fmt"
	"os"
	"strconv"
)

// MaxPageSize caps the page size requested from the Drive files list API.
const MaxPageSize = 100

// Config holds Google Drive connection parameters.
type Config struct {
	TokenPath string `toml:"token_path"`
	PageSize  int64  `toml:"page_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	TokenPath string
	PageSize  string
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
	if overlay.TokenPath != "" {
		c.TokenPath = overlay.TokenPath
	}
	if overlay.PageSize != 0 {
		c.PageSize = overlay.PageSize
	}
}

func (c *Config) loadDefaults() {
	if c.TokenPath == "" {
		c.TokenPath = "token.json"
	}
	if c.PageSize == 0 {
		c.PageSize = MaxPageSize
	}
	if c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.TokenPath != "" {
		if v := os.Getenv(env.TokenPath); v != "" {
			c.TokenPath = v
		}
	}
	if env.PageSize != "" {
		if v := os.Getenv(env.PageSize); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				c.PageSize = min(n, MaxPageSize)
			}
		}
	}
}

func (c *Config) validate() error {
	if c.TokenPath == "" {
		return fmt.Errorf("token_path required")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("invalid page_size: %d", c.PageSize)
	}
	return nil
}
