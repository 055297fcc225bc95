package workflow

import (
	"context"
	"fmt"
	"math"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/assessor/internal/phase"
)

// DispatchThreshold is the confidence a phase must exceed to be evaluated.
const DispatchThreshold = 0.5

// Select returns every known phase whose confidence exceeds DispatchThreshold,
// in priority order. When none does, the single most confident phase is
// returned, ties broken by priority. The result is never empty.
func Select(relevances []PhaseRelevance) []phase.ID {
	best := make(map[phase.ID]float64, len(relevances))
	for _, r := range relevances {
		if !r.Phase.Known() {
			continue
		}
		if c, ok := best[r.Phase]; !ok || r.Confidence > c {
			best[r.Phase] = r.Confidence
		}
	}

	ids := phase.All()

	var selected []phase.ID
	for _, id := range ids {
		if best[id] > DispatchThreshold {
			selected = append(selected, id)
		}
	}
	if len(selected) > 0 {
		return selected
	}

	top, topConfidence := ids[0], math.Inf(-1)
	for _, id := range ids {
		if c := best[id]; c > topConfidence {
			top, topConfidence = id, c
		}
	}

	return []phase.ID{top}
}

// DispatchNode returns a state node that selects the phases to evaluate.
func DispatchNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		c, err := extractClassification(s)
		if err != nil {
			return s, fmt.Errorf("dispatch: %w", err)
		}

		selected := Select(c.Relevances)
		if len(selected) == 0 {
			return s, fmt.Errorf("dispatch: %w", ErrDispatchInvariant)
		}

		rt.Logger.InfoContext(ctx, "dispatch node complete", "phases", selected)

		return s.Set(KeyDispatched, selected), nil
	})
}

func extractDispatched(s state.State) ([]phase.ID, error) {
	val, ok := s.Get(KeyDispatched)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyDispatched)
	}

	ids, ok := val.([]phase.ID)
	if !ok {
		return nil, fmt.Errorf("%s is not []phase.ID", KeyDispatched)
	}

	return ids, nil
}
