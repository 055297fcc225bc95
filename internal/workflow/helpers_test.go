package workflow_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/JaimeStill/assessor/internal/document"
	"github.com/JaimeStill/assessor/internal/phase"
	"github.com/JaimeStill/assessor/internal/rubric"
	"github.com/JaimeStill/assessor/internal/workflow"
)

type reply struct {
	content string
	err     error
}

// stubOracle answers by stage, recognising each stage by a marker in the
// composed prompt.
type stubOracle struct {
	classify reply
	evaluate map[phase.ID]reply
	comply   reply

	mu      sync.Mutex
	prompts []string
}

func (o *stubOracle) Complete(_ context.Context, prompt string) (string, error) {
	o.mu.Lock()
	o.prompts = append(o.prompts, prompt)
	o.mu.Unlock()

	switch {
	case strings.Contains(prompt, "Core principles:"):
		return o.comply.content, o.comply.err
	case strings.Contains(prompt, "Criteria:"):
		for id, r := range o.evaluate {
			if strings.Contains(prompt, "("+string(id)+")") {
				return r.content, r.err
			}
		}
		return "", nil
	default:
		return o.classify.content, o.classify.err
	}
}

func (o *stubOracle) countContaining(marker string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, p := range o.prompts {
		if strings.Contains(p, marker) {
			n++
		}
	}
	return n
}

func (o *stubOracle) promptContaining(marker string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, p := range o.prompts {
		if strings.Contains(p, marker) {
			return p
		}
	}
	return ""
}

func newRuntime(t *testing.T, o *stubOracle) *workflow.Runtime {
	t.Helper()

	r, err := rubric.Default()
	if err != nil {
		t.Fatalf("load rubric: %v", err)
	}

	return &workflow.Runtime{
		Oracle: o,
		Rubric: r,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: workflow.Config{
			AnalysisWindow: 2000,
			MaxWorkers:     4,
		},
	}
}

func testDocument() *document.Document {
	return &document.Document{
		Filename: "proposal.md",
		Format:   document.FormatMarkdown,
		Type:     document.TypeProposal,
		Text:     "We will assess the estate, migrate in waves, and run the platform afterwards.",
	}
}

const classifyAll = `{
  "strategise_and_plan": {"relevant_content": "assess the estate", "key_points": ["assessment"], "confidence_score": 0.9},
  "migrate_and_modernise": {"relevant_content": "migrate in waves", "key_points": ["waves"], "confidence_score": 0.7},
  "manage_and_optimise": {"relevant_content": "run the platform", "key_points": [], "confidence_score": 0.2}
}`

const complyHalf = `{
  "overall_compliance_score": 0.5,
  "missing_elements": ["No FinOps model"],
  "strengths": ["Clear waves"],
  "improvement_areas": ["Operations"],
  "recommendations": ["Add a FinOps model", "Automate landing zones"]
}`
