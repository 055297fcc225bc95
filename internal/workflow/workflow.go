// Package workflow runs the proposal evaluation pipeline: classify the
// document by phase, dispatch the relevant phase evaluators, evaluate them in
// parallel, and aggregate the results into a scored Result.
package workflow

import (
	"context"
	"fmt"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/assessor/internal/document"
)

// Execute evaluates a normalized document. The graph is
// classify → dispatch → evaluate → aggregate. Oracle failures degrade the
// Result rather than failing it; cancellation of ctx returns ErrCanceled and
// no Result.
func Execute(ctx context.Context, rt *Runtime, doc *document.Document) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyDocument, doc)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
		}
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("assessor-evaluate")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	nodes := []struct {
		name string
		node state.StateNode
	}{
		{"classify", ClassifyNode(rt)},
		{"dispatch", DispatchNode(rt)},
		{"evaluate", EvaluateNode(rt)},
		{"aggregate", AggregateNode(rt)},
	}

	for _, n := range nodes {
		if err := graph.AddNode(n.name, n.node); err != nil {
			return nil, err
		}
	}

	for i := 1; i < len(nodes); i++ {
		if err := graph.AddEdge(nodes[i-1].name, nodes[i].name, nil); err != nil {
			return nil, err
		}
	}

	if err := graph.SetEntryPoint("classify"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("aggregate"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	val, ok := s.Get(KeyResult)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyResult)
	}

	result, ok := val.(Result)
	if !ok {
		return nil, fmt.Errorf("%s is not Result", KeyResult)
	}

	result.CompletedAt = time.Now().UTC()
	return &result, nil
}
