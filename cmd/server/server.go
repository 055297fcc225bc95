package main

import (
	"context"
	"time"

	"github.com/JaimeStill/assessor/internal/config"
	"github.com/JaimeStill/assessor/internal/infrastructure"
)

// Server wires infrastructure, HTTP modules, and the listener together.
type Server struct {
	infra    *infrastructure.Infrastructure
	modules  *Modules
	listener *listener
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	mux := newMux(infra, cfg.Version)
	modules.Mount(mux)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
		"oracle", cfg.Oracle.Provider,
		"rubric", infra.Workflow.Rubric.Version,
	)

	return &Server{
		infra:    infra,
		modules:  modules,
		listener: newListener(&cfg.Server, mux, infra.Logger),
	}, nil
}

// Start binds the listener and kicks off subsystem startup. Startup
// failures are logged and leave /readyz reporting unavailable.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.listener.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
			s.infra.Logger.Error("startup incomplete", "error", err)
			return
		}
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
