package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/assessor/internal/phase"
	"github.com/JaimeStill/assessor/internal/rubric"
)

func newRubricCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rubric [PATH]",
		Short: "Validate a rubric file and print its criteria",
		Long:  `Loads the rubric at PATH, or the embedded default when PATH is omitted, and prints each phase with its weighted workstreams.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}

			r, err := rubric.Load(path)
			if err != nil {
				return err
			}

			return printRubric(cmd.OutOrStdout(), r)
		},
	}
}

func printRubric(w io.Writer, r *rubric.Rubric) error {
	if _, err := fmt.Fprintf(w, "%s (version %s)\n", r.Name, r.Version); err != nil {
		return err
	}

	for _, id := range phase.All() {
		p, err := r.For(id)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "\n%s (%s)\n", p.Name, id)
		for i, ws := range p.Workstreams {
			fmt.Fprintf(w, "  %3.0f%%  %s\n", p.Share(i)*100, ws.Name)
		}
	}

	_, err := fmt.Fprintf(w, "\n%d core principles, %d red flags\n", len(r.Principles()), len(r.Flags()))
	return err
}
