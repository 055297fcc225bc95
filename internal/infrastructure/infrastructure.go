// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, the model
// oracle, and the rubric) that domain systems require.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/assessor/internal/config"
	"github.com/JaimeStill/assessor/internal/oracle"
	"github.com/JaimeStill/assessor/internal/rubric"
	"github.com/JaimeStill/assessor/internal/workflow"
	"github.com/JaimeStill/assessor/pkg/database"
	"github.com/JaimeStill/assessor/pkg/lifecycle"
	"github.com/JaimeStill/assessor/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Workflow  *workflow.Runtime
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := NewLogger()

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	rt, err := NewWorkflow(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Workflow:  rt,
	}, nil
}

// NewLogger returns the process logger. Output goes to stderr so command
// output on stdout stays clean.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// NewWorkflow builds the evaluation runtime: the configured oracle and the
// rubric named by the workflow config (the embedded default when empty).
func NewWorkflow(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*workflow.Runtime, error) {
	o, err := oracle.New(ctx, &cfg.Oracle, cfg.Agent)
	if err != nil {
		return nil, fmt.Errorf("oracle init failed: %w", err)
	}

	r, err := rubric.Load(cfg.Workflow.Rubric)
	if err != nil {
		return nil, fmt.Errorf("rubric load failed: %w", err)
	}

	return &workflow.Runtime{
		Oracle: o,
		Rubric: r,
		Logger: logger.With("component", "workflow"),
		Config: cfg.Workflow,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
