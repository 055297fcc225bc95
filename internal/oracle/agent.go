package oracle

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

type agentOracle struct {
	cfg gaconfig.AgentConfig
}

// NewAgent returns an Oracle backed by go-agents. A fresh agent is created
// for every call so concurrent evaluations share no client state.
func NewAgent(cfg gaconfig.AgentConfig) Oracle {
	return &agentOracle{cfg: cfg}
}

func (o *agentOracle) Complete(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&o.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}

	return resp.Content(), nil
}
