package storage

import (
	"errors"

	"github.com/JaimeStill/assessor/pkg/settings"
)

// Config names the blob container and how to reach it.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
}

// Env names the environment variables that override Config fields.
type Env struct {
	ContainerName    string
	ConnectionString string
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	settings.Default(&c.ContainerName, "proposals")
	if env != nil {
		settings.String(env.ContainerName, &c.ContainerName)
		settings.String(env.ConnectionString, &c.ConnectionString)
	}

	if c.ConnectionString == "" {
		return errors.New("connection_string required")
	}
	return nil
}

// Merge overlays the non-zero fields of overlay.
func (c *Config) Merge(overlay *Config) {
	settings.Overlay(&c.ContainerName, overlay.ContainerName)
	settings.Overlay(&c.ConnectionString, overlay.ConnectionString)
}
