package oracle

import (
	"context"
	"fmt"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// New builds the Oracle named by cfg.Provider, bounded by cfg's timeout.
// The agent config is only consulted for the agent provider.
func New(ctx context.Context, cfg *Config, agent gaconfig.AgentConfig) (Oracle, error) {
	var (
		o   Oracle
		err error
	)

	switch cfg.Provider {
	case ProviderAgent:
		o = NewAgent(agent)
	case ProviderGemini:
		o, err = NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}

	return WithTimeout(o, cfg.TimeoutDuration()), nil
}
