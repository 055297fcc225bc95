package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/assessor/internal/api"
	"github.com/JaimeStill/assessor/internal/config"
	"github.com/JaimeStill/assessor/internal/infrastructure"
	"github.com/JaimeStill/assessor/pkg/module"
)

// Modules holds the mounted HTTP modules.
type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

func (m *Modules) Mount(mux *http.ServeMux) {
	m.API.Mount(mux)
}

// newMux serves the liveness and readiness checks that sit outside every
// module. Readiness requires startup to have succeeded and the database to
// answer now.
func newMux(infra *infrastructure.Infrastructure, version string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "ok", "version": version})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
			return
		}
		if err := infra.Database.Ping(r.Context()); err != nil {
			infra.Logger.Warn("readiness check failed", "error", err)
			writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
			return
		}
		writeStatus(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	return mux
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
