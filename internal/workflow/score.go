package workflow

import (
	"fmt"
	"math"
)

// ScoringVersion identifies the final-score formula.
const ScoringVersion = "v1"

// GradeBand maps a minimum score to a letter grade.
type GradeBand struct {
	Min   int
	Grade string
}

// DefaultGradeBands are ordered from highest to lowest minimum.
var DefaultGradeBands = []GradeBand{
	{Min: 90, Grade: "A"},
	{Min: 75, Grade: "B"},
	{Min: 60, Grade: "C"},
	{Min: 40, Grade: "D"},
	{Min: 0, Grade: "F"},
}

// Grade returns the letter for value under DefaultGradeBands.
func Grade(value int) string {
	for _, b := range DefaultGradeBands {
		if value >= b.Min {
			return b.Grade
		}
	}
	return DefaultGradeBands[len(DefaultGradeBands)-1].Grade
}

// Score computes the final score from the dispatched evaluations. Failed
// evaluations count as 0. The phase average, scaled to 0..100, is multiplied
// by the compliance score when one is present. Returns ErrNoEvaluations when
// every evaluation failed.
func Score(evaluations []PhaseEvaluation, compliance *SpecCompliance) (*FinalScore, error) {
	if len(evaluations) == 0 {
		return nil, ErrNoEvaluations
	}

	total, failed := 0, 0
	for _, ev := range evaluations {
		if ev.Failed {
			failed++
			continue
		}
		total += ev.Score
	}

	if failed == len(evaluations) {
		return nil, ErrNoEvaluations
	}

	average := float64(total) / float64(len(evaluations))
	base := average / 3 * 100

	rationale := fmt.Sprintf(
		"average phase score %.2f/3 across %d phase(s)",
		average, len(evaluations),
	)
	if failed > 0 {
		rationale += fmt.Sprintf(", %d failed and counted as 0", failed)
	}

	value := base
	if compliance != nil {
		value = base * compliance.OverallComplianceScore
		rationale += fmt.Sprintf("; scaled by compliance %.2f", compliance.OverallComplianceScore)
	} else {
		rationale += "; compliance unavailable"
	}

	v := min(max(int(math.Round(value)), 0), 100)

	return &FinalScore{
		Value:     v,
		Grade:     Grade(v),
		Rationale: rationale,
		Version:   ScoringVersion,
	}, nil
}
