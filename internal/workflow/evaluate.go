package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/assessor/internal/document"
	"github.com/JaimeStill/assessor/internal/oracle"
	"github.com/JaimeStill/assessor/internal/phase"
	"github.com/JaimeStill/assessor/internal/prompts"
	"github.com/JaimeStill/assessor/internal/rubric"
)

type evaluateResponse struct {
	Score           *int     `json:"score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Evidence        []string `json:"evidence"`
	Recommendations []string `json:"recommendations"`
}

func (r evaluateResponse) Validate() error {
	if r.Score == nil {
		return errors.New("score is required")
	}
	if *r.Score < 0 || *r.Score > 3 {
		return fmt.Errorf("score %d outside 0..3", *r.Score)
	}
	return nil
}

// EvaluatePhase scores the document against one phase of the rubric. Any
// oracle or schema failure yields a failed evaluation rather than an error;
// an error is returned only when ctx ends.
func EvaluatePhase(ctx context.Context, rt *Runtime, doc *document.Document, id phase.ID) (PhaseEvaluation, error) {
	criteria, err := rt.Rubric.For(id)
	if err != nil {
		return failedEvaluation(id, err), nil
	}

	prompt, err := ComposePrompt(
		prompts.StageEvaluate,
		criteriaBlock(id, criteria),
		documentBlock(doc.Window(rt.Config.EvaluationWindow)),
	)
	if err != nil {
		return failedEvaluation(id, err), nil
	}

	resp, err := oracle.Query[evaluateResponse](ctx, rt.Oracle, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return PhaseEvaluation{}, ctx.Err()
		}
		return failedEvaluation(id, err), nil
	}

	return PhaseEvaluation{
		Phase:           id,
		Score:           *resp.Score,
		Strengths:       nonNil(resp.Strengths),
		Weaknesses:      nonNil(resp.Weaknesses),
		Evidence:        nonNil(resp.Evidence),
		Recommendations: nonNil(resp.Recommendations),
	}, nil
}

func failedEvaluation(id phase.ID, err error) PhaseEvaluation {
	return PhaseEvaluation{
		Phase:           id,
		Strengths:       []string{},
		Weaknesses:      []string{},
		Evidence:        []string{},
		Recommendations: []string{},
		Failed:          true,
		Error:           err.Error(),
	}
}

// nonNil keeps omitted list fields serialized as [] rather than null.
func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func criteriaBlock(id phase.ID, p rubric.Phase) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Phase: %s (%s)\n", p.Name, id)
	if p.Description != "" {
		fmt.Fprintf(&sb, "%s\n", strings.TrimSpace(p.Description))
	}
	sb.WriteString("\nCriteria:\n")
	for i, w := range p.Workstreams {
		fmt.Fprintf(&sb, "- %s (%.0f%%): %s\n", w.Name, p.Share(i)*100, w.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// EvaluateAll evaluates every dispatched phase concurrently, bounded by the
// configured worker count. The returned slice is index-aligned with ids.
func EvaluateAll(ctx context.Context, rt *Runtime, doc *document.Document, ids []phase.ID) ([]PhaseEvaluation, error) {
	evaluations := make([]PhaseEvaluation, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.workerCount(len(ids)))

	for i, id := range ids {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			ev, err := EvaluatePhase(gctx, rt, doc, id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}

			evaluations[i] = ev
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return evaluations, nil
}

// EvaluateNode returns a state node that evaluates the dispatched phases.
func EvaluateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		doc, err := extractDocument(s)
		if err != nil {
			return s, fmt.Errorf("evaluate: %w", err)
		}

		ids, err := extractDispatched(s)
		if err != nil {
			return s, fmt.Errorf("evaluate: %w", err)
		}

		evaluations, err := EvaluateAll(ctx, rt, doc, ids)
		if err != nil {
			return s, fmt.Errorf("evaluate: %w", err)
		}

		failed := 0
		for _, ev := range evaluations {
			if ev.Failed {
				failed++
			}
		}

		rt.Logger.InfoContext(
			ctx, "evaluate node complete",
			"phase_count", len(evaluations),
			"failed", failed,
		)

		return s.Set(KeyEvaluations, evaluations), nil
	})
}

func extractEvaluations(s state.State) ([]PhaseEvaluation, error) {
	val, ok := s.Get(KeyEvaluations)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyEvaluations)
	}

	evaluations, ok := val.([]PhaseEvaluation)
	if !ok {
		return nil, fmt.Errorf("%s is not []PhaseEvaluation", KeyEvaluations)
	}

	return evaluations, nil
}
