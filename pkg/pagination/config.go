// Package pagination turns list query parameters into bounded page
// requests and wraps query results with page metadata.
package pagination

import (
	"errors"

	"github.com/JaimeStill/assessor/pkg/settings"
)

// Config bounds page sizes. Requests without a size get DefaultPageSize;
// larger requests are capped at MaxPageSize.
type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

// ConfigEnv names the environment variables that override Config fields.
type ConfigEnv struct {
	DefaultPageSize string
	MaxPageSize     string
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *ConfigEnv) error {
	settings.Default(&c.DefaultPageSize, 20)
	settings.Default(&c.MaxPageSize, 100)

	if env != nil {
		settings.Int(env.DefaultPageSize, &c.DefaultPageSize)
		settings.Int(env.MaxPageSize, &c.MaxPageSize)
	}

	switch {
	case c.DefaultPageSize < 1, c.MaxPageSize < 1:
		return errors.New("page sizes must be positive")
	case c.DefaultPageSize > c.MaxPageSize:
		return errors.New("default_page_size cannot exceed max_page_size")
	}
	return nil
}

// Merge overlays the non-zero fields of overlay.
func (c *Config) Merge(overlay *Config) {
	settings.Overlay(&c.DefaultPageSize, overlay.DefaultPageSize)
	settings.Overlay(&c.MaxPageSize, overlay.MaxPageSize)
}
