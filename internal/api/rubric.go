package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/assessor/internal/phase"
	"github.com/JaimeStill/assessor/internal/rubric"
	"github.com/JaimeStill/assessor/pkg/handlers"
	"github.com/JaimeStill/assessor/pkg/routes"
)

type rubricHandler struct {
	rubric *rubric.Rubric
	logger *slog.Logger
}

type phaseCriteria struct {
	ID       phase.ID     `json:"id"`
	Title    string       `json:"title"`
	Priority int          `json:"priority"`
	Criteria rubric.Phase `json:"criteria"`
}

func newRubricHandler(r *rubric.Rubric, logger *slog.Logger) *rubricHandler {
	return &rubricHandler{
		rubric: r,
		logger: logger.With("handler", "rubric"),
	}
}

func (h *rubricHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/rubric",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.get},
			{Method: "GET", Pattern: "/phases/{id}", Handler: h.phase},
		},
	}
}

func (h *rubricHandler) get(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.rubric)
}

func (h *rubricHandler) phase(w http.ResponseWriter, r *http.Request) {
	id, err := phase.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, err)
		return
	}

	criteria, err := h.rubric.For(id)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, fmt.Errorf("rubric: %w", err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, phaseCriteria{
		ID:       id,
		Title:    id.Title(),
		Priority: phase.Priority(id),
		Criteria: criteria,
	})
}
