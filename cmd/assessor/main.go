// Command assessor evaluates migration proposals from the command line
// without the HTTP service, database, or blob storage.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/assessor/internal/config"
	"github.com/JaimeStill/assessor/internal/infrastructure"
	"github.com/JaimeStill/assessor/internal/workflow"
)

// runtimeFunc builds the evaluation runtime. rubricPath overrides the
// configured rubric when non-empty.
type runtimeFunc func(ctx context.Context, rubricPath string) (*workflow.Runtime, error)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(loadRuntime).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(build runtimeFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "assessor",
		Short: "Score cloud migration proposals against a phase rubric",
		Long: `assessor classifies a proposal by migration phase, evaluates each relevant
phase against the rubric, checks overall compliance, and prints a scored report.

Model access is configured through config.toml and ASSESSOR_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newEvaluateCmd(build), newRubricCmd())
	return root
}

func loadRuntime(ctx context.Context, rubricPath string) (*workflow.Runtime, error) {
	cfg, err := config.LoadEvaluator()
	if err != nil {
		return nil, err
	}
	if rubricPath != "" {
		cfg.Workflow.Rubric = rubricPath
	}
	return infrastructure.NewWorkflow(ctx, cfg, infrastructure.NewLogger())
}
