package workflow

import (
	"log/slog"

	"github.com/JaimeStill/assessor/internal/oracle"
	"github.com/JaimeStill/assessor/internal/rubric"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from infrastructure.
type Runtime struct {
	Oracle oracle.Oracle
	Rubric *rubric.Rubric
	Logger *slog.Logger
	Config Config
}

func (rt *Runtime) workerCount(n int) int {
	limit := rt.Config.MaxWorkers
	if limit < 1 {
		limit = 1
	}
	return max(min(limit, n), 1)
}
