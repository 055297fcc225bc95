package workflow

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/JaimeStill/assessor/internal/document"
	"github.com/JaimeStill/assessor/internal/oracle"
	"github.com/JaimeStill/assessor/internal/prompts"
)

type complyResponse struct {
	OverallComplianceScore *float64 `json:"overall_compliance_score"`
	MissingElements        []string `json:"missing_elements"`
	Strengths              []string `json:"strengths"`
	ImprovementAreas       []string `json:"improvement_areas"`
	Recommendations        []string `json:"recommendations"`
}

func (r complyResponse) Validate() error {
	if r.OverallComplianceScore == nil {
		return errors.New("overall_compliance_score is required")
	}
	c := *r.OverallComplianceScore
	if math.IsNaN(c) || c < 0 || c > 1 {
		return fmt.Errorf("overall_compliance_score %v outside [0,1]", c)
	}
	return nil
}

// Comply checks the full document against the rubric's core principles and red
// flags, informed by the phase evaluations. Evaluations must already be in
// canonical order. Oracle failures are returned wrapped; callers treat them as
// a missing compliance score.
func Comply(ctx context.Context, rt *Runtime, doc *document.Document, evaluations []PhaseEvaluation) (*SpecCompliance, error) {
	prompt, err := ComposePrompt(
		prompts.StageComply,
		bulletList("Core principles", rt.Rubric.Principles()),
		bulletList("Red flags", rt.Rubric.Flags()),
		evaluationSummary(evaluations),
		documentBlock(doc.Text),
	)
	if err != nil {
		return nil, err
	}

	resp, err := oracle.Query[complyResponse](ctx, rt.Oracle, prompt)
	if err != nil {
		return nil, fmt.Errorf("compliance: %w", err)
	}

	return &SpecCompliance{
		OverallComplianceScore: *resp.OverallComplianceScore,
		MissingElements:        nonNil(resp.MissingElements),
		Strengths:              nonNil(resp.Strengths),
		ImprovementAreas:       nonNil(resp.ImprovementAreas),
		Recommendations:        nonNil(resp.Recommendations),
	}, nil
}

func evaluationSummary(evaluations []PhaseEvaluation) string {
	if len(evaluations) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Phase evaluations:\n")
	for _, ev := range evaluations {
		if ev.Failed {
			fmt.Fprintf(&sb, "- %s: evaluation failed\n", ev.Phase)
			continue
		}
		fmt.Fprintf(&sb, "- %s: score %d/3\n", ev.Phase, ev.Score)
	}
	return strings.TrimRight(sb.String(), "\n")
}
