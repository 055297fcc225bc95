package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/assessor/internal/document"
	"github.com/JaimeStill/assessor/internal/report"
	"github.com/JaimeStill/assessor/internal/workflow"
)

// ErrBelowThreshold is returned when --fail-under is set and the proposal
// scores lower, or produces no score at all.
var ErrBelowThreshold = errors.New("score below threshold")

type evaluateOptions struct {
	format    string
	rubric    string
	failUnder int
}

func newEvaluateCmd(build runtimeFunc) *cobra.Command {
	var opts evaluateOptions

	cmd := &cobra.Command{
		Use:   "evaluate FILE",
		Short: "Evaluate a proposal document and print the report",
		Long: `Evaluates a .txt, .md, .html, .pdf, or .docx proposal and writes the report to stdout.

Example:
  assessor evaluate proposal.md --format text --fail-under 60`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return extensions(), cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(opts.format)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			doc, err := document.Normalize(data, args[0])
			if err != nil {
				return err
			}

			rt, err := build(cmd.Context(), opts.rubric)
			if err != nil {
				return err
			}

			result, err := workflow.Execute(cmd.Context(), rt, doc)
			if err != nil {
				return err
			}

			r := report.Report{
				Filename:     doc.Filename,
				DocumentType: string(doc.Type),
				SizeBytes:    int64(len(data)),
				Result:       result,
			}
			if err := report.Render(cmd.OutOrStdout(), r, format); err != nil {
				return err
			}

			return checkThreshold(result, opts.failUnder)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(report.FormatText), "report format: text, json, or yaml")
	cmd.Flags().StringVar(&opts.rubric, "rubric", "", "rubric YAML file (defaults to the configured or embedded rubric)")
	cmd.Flags().IntVar(&opts.failUnder, "fail-under", 0, "exit non-zero when the final score is below this value")

	return cmd
}

// extensions returns the accepted document extensions without their leading
// dot, the form cobra's file-extension completion expects.
func extensions() []string {
	exts := document.Extensions()
	out := make([]string, len(exts))
	for i, ext := range exts {
		out[i] = strings.TrimPrefix(ext, ".")
	}
	return out
}

func checkThreshold(result *workflow.Result, threshold int) error {
	if threshold <= 0 {
		return nil
	}
	if result.FinalScore == nil {
		return fmt.Errorf("%w: no final score", ErrBelowThreshold)
	}
	if result.FinalScore.Value < threshold {
		return fmt.Errorf("%w: %d < %d", ErrBelowThreshold, result.FinalScore.Value, threshold)
	}
	return nil
}
