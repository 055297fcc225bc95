package config

import (
	"errors"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/assessor/pkg/settings"
)

// Provider options that may be injected from the environment, keyed by the
// go-agents option name. Credentials belong here rather than in config.toml.
var agentOptionEnv = map[string]string{
	"token":       "ASSESSOR_AGENT_TOKEN",
	"deployment":  "ASSESSOR_AGENT_DEPLOYMENT",
	"api_version": "ASSESSOR_AGENT_API_VERSION",
	"auth_type":   "ASSESSOR_AGENT_AUTH_TYPE",
}

// FinalizeAgent layers config.toml's [agent] section over the go-agents
// defaults, then applies environment overrides and validates the result.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	merged := gaconfig.DefaultAgentConfig()
	merged.Merge(c)
	*c = merged

	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = map[string]any{}
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}

	settings.String("ASSESSOR_AGENT_PROVIDER_NAME", &c.Provider.Name)
	settings.String("ASSESSOR_AGENT_BASE_URL", &c.Provider.BaseURL)
	settings.String("ASSESSOR_AGENT_MODEL_NAME", &c.Model.Name)

	for option, env := range agentOptionEnv {
		var v string
		settings.String(env, &v)
		if v != "" {
			c.Provider.Options[option] = v
		}
	}

	switch {
	case c.Name == "":
		return errors.New("name required")
	case c.Provider.Name == "":
		return errors.New("provider name required")
	}
	return nil
}
