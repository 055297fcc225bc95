package workflow

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/assessor/internal/phase"
)

// Aggregation is the deterministic combination of phase evaluations and
// compliance into gaps, recommendations, and a final score.
type Aggregation struct {
	PhaseEvaluations []PhaseEvaluation
	SpecCompliance   *SpecCompliance
	Gaps             []Gap
	Recommendations  []string
	FinalScore       *FinalScore
	Errors           []string
}

// Canonical returns a copy of evaluations sorted into phase priority order.
func Canonical(evaluations []PhaseEvaluation) []PhaseEvaluation {
	out := slices.Clone(evaluations)
	slices.SortStableFunc(out, func(a, b PhaseEvaluation) int {
		return phase.Compare(a.Phase, b.Phase)
	})
	return out
}

// Aggregate combines evaluations with an optional compliance result. The
// output does not depend on the order of evaluations. It never fails: missing
// pieces are recorded in Errors.
func Aggregate(evaluations []PhaseEvaluation, compliance *SpecCompliance) Aggregation {
	canonical := Canonical(evaluations)

	agg := Aggregation{
		PhaseEvaluations: canonical,
		SpecCompliance:   compliance,
		Gaps:             Gaps(canonical, compliance),
		Recommendations:  Recommendations(canonical, compliance),
	}

	for _, ev := range canonical {
		if ev.Failed {
			agg.Errors = append(agg.Errors, fmt.Sprintf("%s: %s", ev.Phase, ev.Error))
		}
	}

	score, err := Score(canonical, compliance)
	if err != nil {
		agg.Errors = append(agg.Errors, fmt.Sprintf("final score: %s", err))
	}
	agg.FinalScore = score

	return agg
}

func weaknessSeverity(score int) Severity {
	switch score {
	case 0:
		return SeverityHigh
	case 1:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Gaps collects weaknesses from successful evaluations and missing elements
// from compliance, grouped by severity from critical to low.
func Gaps(evaluations []PhaseEvaluation, compliance *SpecCompliance) []Gap {
	buckets := make(map[Severity][]Gap, len(severities))

	if compliance != nil {
		for _, m := range compliance.MissingElements {
			if strings.TrimSpace(m) == "" {
				continue
			}
			buckets[SeverityCritical] = append(buckets[SeverityCritical], Gap{
				Description: m,
				Severity:    SeverityCritical,
			})
		}
	}

	for _, ev := range evaluations {
		if ev.Failed {
			continue
		}
		sev := weaknessSeverity(ev.Score)
		for _, w := range ev.Weaknesses {
			if strings.TrimSpace(w) == "" {
				continue
			}
			source := ev.Phase
			buckets[sev] = append(buckets[sev], Gap{
				Description: w,
				Severity:    sev,
				SourcePhase: &source,
			})
		}
	}

	gaps := []Gap{}
	for _, sev := range severities {
		gaps = append(gaps, buckets[sev]...)
	}
	return gaps
}

// Recommendations merges phase recommendations in order, then compliance
// recommendations, dropping blanks and exact duplicates.
func Recommendations(evaluations []PhaseEvaluation, compliance *SpecCompliance) []string {
	seen := make(map[string]struct{})
	out := []string{}

	add := func(items []string) {
		for _, r := range items {
			if strings.TrimSpace(r) == "" {
				continue
			}
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}

	for _, ev := range evaluations {
		add(ev.Recommendations)
	}
	if compliance != nil {
		add(compliance.Recommendations)
	}

	return out
}

// AggregateNode returns a state node that runs the compliance check and
// assembles the final Result.
func AggregateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		doc, err := extractDocument(s)
		if err != nil {
			return s, fmt.Errorf("aggregate: %w", err)
		}

		c, err := extractClassification(s)
		if err != nil {
			return s, fmt.Errorf("aggregate: %w", err)
		}

		dispatched, err := extractDispatched(s)
		if err != nil {
			return s, fmt.Errorf("aggregate: %w", err)
		}

		evaluations, err := extractEvaluations(s)
		if err != nil {
			return s, fmt.Errorf("aggregate: %w", err)
		}

		evaluations = Canonical(evaluations)

		errs := []string{}
		if c.Err != nil {
			errs = append(errs, c.Err.Error())
		}

		compliance, err := Comply(ctx, rt, doc, evaluations)
		if err != nil {
			if ctx.Err() != nil {
				return s, fmt.Errorf("aggregate: %w", ctx.Err())
			}
			rt.Logger.WarnContext(ctx, "compliance check failed", "error", err)
			errs = append(errs, err.Error())
		}

		agg := Aggregate(evaluations, compliance)
		errs = append(errs, agg.Errors...)

		result := Result{
			Relevances:       c.Relevances,
			Dispatched:       dispatched,
			PhaseEvaluations: agg.PhaseEvaluations,
			SpecCompliance:   agg.SpecCompliance,
			Gaps:             agg.Gaps,
			Recommendations:  agg.Recommendations,
			FinalScore:       agg.FinalScore,
			Errors:           errs,
		}

		rt.Logger.InfoContext(
			ctx, "aggregate node complete",
			"gaps", len(result.Gaps),
			"recommendations", len(result.Recommendations),
			"errors", len(result.Errors),
		)

		return s.Set(KeyResult, result), nil
	})
}
