package workflow_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/assessor/internal/phase"
	"github.com/JaimeStill/assessor/internal/workflow"
)

func scored(scores ...int) []workflow.PhaseEvaluation {
	ids := phase.All()
	out := make([]workflow.PhaseEvaluation, len(scores))
	for i, s := range scores {
		out[i] = workflow.PhaseEvaluation{Phase: ids[i%len(ids)], Score: s}
	}
	return out
}

func TestScore(t *testing.T) {
	half := &workflow.SpecCompliance{OverallComplianceScore: 0.5}
	full := &workflow.SpecCompliance{OverallComplianceScore: 1}

	tests := []struct {
		name       string
		evals      []workflow.PhaseEvaluation
		compliance *workflow.SpecCompliance
		wantValue  int
		wantGrade  string
	}{
		{name: "baseline 3,3,0 at half compliance", evals: scored(3, 3, 0), compliance: half, wantValue: 33, wantGrade: "F"},
		{name: "perfect", evals: scored(3, 3, 3), compliance: full, wantValue: 100, wantGrade: "A"},
		{name: "no compliance", evals: scored(3, 2), wantValue: 83, wantGrade: "B"},
		{name: "single phase", evals: scored(2), compliance: full, wantValue: 67, wantGrade: "C"},
		{name: "zero compliance", evals: scored(3), compliance: &workflow.SpecCompliance{}, wantValue: 0, wantGrade: "F"},
		{name: "d band", evals: scored(2, 1), compliance: full, wantValue: 50, wantGrade: "D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := workflow.Score(tt.evals, tt.compliance)
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			if got.Value != tt.wantValue || got.Grade != tt.wantGrade {
				t.Errorf("got %d/%s, want %d/%s", got.Value, got.Grade, tt.wantValue, tt.wantGrade)
			}
			if got.Version != workflow.ScoringVersion {
				t.Errorf("version: got %q", got.Version)
			}
			if got.Rationale == "" {
				t.Error("rationale is empty")
			}
		})
	}
}

func TestScoreFailedCountsAsZero(t *testing.T) {
	evals := scored(3, 3, 3)
	evals[2].Failed = true
	evals[2].Score = 0

	got, err := workflow.Score(evals, &workflow.SpecCompliance{OverallComplianceScore: 0.5})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got.Value != 33 {
		t.Errorf("value: got %d, want 33", got.Value)
	}
}

func TestScoreAllFailed(t *testing.T) {
	evals := scored(0, 0)
	for i := range evals {
		evals[i].Failed = true
	}

	got, err := workflow.Score(evals, &workflow.SpecCompliance{OverallComplianceScore: 1})
	if !errors.Is(err, workflow.ErrNoEvaluations) {
		t.Errorf("got %v, want ErrNoEvaluations", err)
	}
	if got != nil {
		t.Errorf("final score: got %+v, want nil", got)
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{100, "A"}, {90, "A"}, {89, "B"}, {75, "B"}, {74, "C"},
		{60, "C"}, {59, "D"}, {40, "D"}, {39, "F"}, {0, "F"},
	}

	for _, tt := range tests {
		if got := workflow.Grade(tt.value); got != tt.want {
			t.Errorf("Grade(%d) = %s, want %s", tt.value, got, tt.want)
		}
	}
}
