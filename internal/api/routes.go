package api

import (
	"net/http"

	"github.com/JaimeStill/assessor/internal/config"
	"github.com/JaimeStill/assessor/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) []string {
	rubric := newRubricHandler(runtime.Workflow.Rubric, runtime.Logger)

	groups := []routes.Group{
		domain.Evaluations.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		rubric.routes(),
	}
	routes.Register(mux, groups...)
	return routes.Patterns(groups...)
}
