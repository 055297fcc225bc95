// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/assessor/internal/config"
	"github.com/JaimeStill/assessor/internal/infrastructure"
	"github.com/JaimeStill/assessor/pkg/middleware"
	"github.com/JaimeStill/assessor/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	patterns := registerRoutes(mux, domain, cfg, runtime)
	runtime.Logger.Debug("routes registered", "base_path", cfg.API.BasePath, "routes", patterns)

	return module.New(
		cfg.API.BasePath, mux,
		middleware.RequestID(),
		middleware.Logger(runtime.Logger),
		middleware.CORS(&cfg.API.CORS),
	)
}
