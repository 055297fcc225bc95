package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/JaimeStill/assessor/internal/config"
	"github.com/JaimeStill/assessor/pkg/lifecycle"
)

// listener owns the HTTP server. The port is bound in Start so a busy
// address fails startup instead of surfacing later in a goroutine.
type listener struct {
	srv    *http.Server
	addr   string
	logger *slog.Logger
}

func newListener(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *listener {
	return &listener{
		srv: &http.Server{
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeoutDuration(),
			WriteTimeout: cfg.WriteTimeoutDuration(),
			ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		addr:   cfg.Addr(),
		logger: logger.With("system", "http"),
	}
}

func (l *listener) Start(lc *lifecycle.Coordinator) error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", l.addr, err)
	}

	go func() {
		l.logger.Info("listening", "addr", ln.Addr().String())
		if err := l.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.logger.Error("serve failed", "error", err)
		}
	}()

	lc.OnShutdown("http", func(ctx context.Context) error {
		if err := l.srv.Shutdown(ctx); err != nil {
			return err
		}
		l.logger.Info("listener closed")
		return nil
	})
	return nil
}
