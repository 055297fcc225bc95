package oracle

import (
	"fmt"
	"time"

	"github.com/JaimeStill/assessor/pkg/settings"
)

// Supported providers.
const (
	ProviderAgent  = "agent"
	ProviderGemini = "gemini"
)

// Config selects and tunes the model provider behind the Oracle.
type Config struct {
	Provider     string `toml:"provider"`
	Timeout      string `toml:"timeout"`
	GeminiModel  string `toml:"gemini_model"`
	GeminiAPIKey string `toml:"gemini_api_key"`
}

// Env names the environment variables that override Config fields.
type Env struct {
	Provider     string
	Timeout      string
	GeminiModel  string
	GeminiAPIKey string
}

func (c *Config) TimeoutDuration() time.Duration {
	return settings.MustDuration(c.Timeout)
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	settings.Default(&c.Provider, ProviderAgent)
	settings.Default(&c.Timeout, "30s")
	settings.Default(&c.GeminiModel, DefaultGeminiModel)

	if env != nil {
		settings.String(env.Provider, &c.Provider)
		settings.String(env.Timeout, &c.Timeout)
		settings.String(env.GeminiModel, &c.GeminiModel)
		settings.String(env.GeminiAPIKey, &c.GeminiAPIKey)
	}

	switch c.Provider {
	case ProviderAgent:
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("gemini_api_key required for provider %q", c.Provider)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	_, err := settings.Duration("timeout", c.Timeout)
	return err
}

// Merge overlays the non-zero fields of overlay.
func (c *Config) Merge(overlay *Config) {
	settings.Overlay(&c.Provider, overlay.Provider)
	settings.Overlay(&c.Timeout, overlay.Timeout)
	settings.Overlay(&c.GeminiModel, overlay.GeminiModel)
	settings.Overlay(&c.GeminiAPIKey, overlay.GeminiAPIKey)
}
