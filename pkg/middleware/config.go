package middleware

import (
	"errors"

	"github.com/JaimeStill/assessor/pkg/settings"
)

// CORSConfig is the cross-origin policy for the API.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"`
	Origins          []string `toml:"origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	ExposedHeaders   []string `toml:"exposed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

// CORSEnv names the environment variables that override CORSConfig fields.
type CORSEnv struct {
	Enabled          string
	Origins          string
	AllowedMethods   string
	AllowedHeaders   string
	ExposedHeaders   string
	AllowCredentials string
	MaxAge           string
}

// Finalize applies defaults, environment overrides, and validation.
func (c *CORSConfig) Finalize(env *CORSEnv) error {
	if c.AllowedMethods == nil {
		c.AllowedMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if c.AllowedHeaders == nil {
		c.AllowedHeaders = []string{"Content-Type", "Authorization", RequestIDHeader}
	}
	if c.ExposedHeaders == nil {
		c.ExposedHeaders = []string{"Content-Disposition", RequestIDHeader}
	}
	settings.Default(&c.MaxAge, 3600)

	if env != nil {
		settings.Bool(env.Enabled, &c.Enabled)
		settings.List(env.Origins, &c.Origins)
		settings.List(env.AllowedMethods, &c.AllowedMethods)
		settings.List(env.AllowedHeaders, &c.AllowedHeaders)
		settings.List(env.ExposedHeaders, &c.ExposedHeaders)
		settings.Bool(env.AllowCredentials, &c.AllowCredentials)
		settings.Int(env.MaxAge, &c.MaxAge)
	}

	if c.MaxAge < 0 {
		return errors.New("max_age must not be negative")
	}
	return nil
}

// Merge overlays overlay. The booleans always take the overlay's value so a
// config file can switch CORS off.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	c.Enabled = overlay.Enabled
	c.AllowCredentials = overlay.AllowCredentials

	settings.OverlayList(&c.Origins, overlay.Origins)
	settings.OverlayList(&c.AllowedMethods, overlay.AllowedMethods)
	settings.OverlayList(&c.AllowedHeaders, overlay.AllowedHeaders)
	settings.OverlayList(&c.ExposedHeaders, overlay.ExposedHeaders)
	settings.Overlay(&c.MaxAge, overlay.MaxAge)
}
