package workflow

import (
	"time"

	"github.com/JaimeStill/assessor/internal/phase"
)

// State keys used by the workflow graph.
const (
	KeyDocument       = "document"
	KeyClassification = "classification"
	KeyDispatched     = "dispatched"
	KeyEvaluations    = "evaluations"
	KeyResult         = "result"
)

// PhaseRelevance is the classifier's estimate of how strongly the document
// addresses one phase.
type PhaseRelevance struct {
	Phase      phase.ID `json:"phase" yaml:"phase"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Excerpt    string   `json:"excerpt" yaml:"excerpt"`
	KeyPoints  []string `json:"key_points,omitempty" yaml:"key_points,omitempty"`
}

// PhaseEvaluation is the scored assessment of one dispatched phase.
// A failed evaluation carries Score 0 and the failure cause in Error.
type PhaseEvaluation struct {
	Phase           phase.ID `json:"phase" yaml:"phase"`
	Score           int      `json:"score" yaml:"score"`
	Strengths       []string `json:"strengths" yaml:"strengths"`
	Weaknesses      []string `json:"weaknesses" yaml:"weaknesses"`
	Evidence        []string `json:"evidence" yaml:"evidence"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
	Failed          bool     `json:"failed" yaml:"failed"`
	Error           string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// SpecCompliance measures adherence to the rubric's core principles.
type SpecCompliance struct {
	OverallComplianceScore float64  `json:"overall_compliance_score" yaml:"overall_compliance_score"`
	MissingElements        []string `json:"missing_elements" yaml:"missing_elements"`
	Strengths              []string `json:"strengths" yaml:"strengths"`
	ImprovementAreas       []string `json:"improvement_areas" yaml:"improvement_areas"`
	Recommendations        []string `json:"recommendations" yaml:"recommendations"`
}

// Severity ranks a gap.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

var severities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
}

// Gap is a missing or weak element found in the proposal.
type Gap struct {
	Description string    `json:"description" yaml:"description"`
	Severity    Severity  `json:"severity" yaml:"severity"`
	SourcePhase *phase.ID `json:"source_phase,omitempty" yaml:"source_phase,omitempty"`
}

// FinalScore is the overall grade of a proposal.
type FinalScore struct {
	Value     int    `json:"value" yaml:"value"`
	Grade     string `json:"grade" yaml:"grade"`
	Rationale string `json:"rationale" yaml:"rationale"`
	Version   string `json:"version" yaml:"version"`
}

// Result is the complete output of one evaluation run.
type Result struct {
	Relevances       []PhaseRelevance  `json:"relevances" yaml:"relevances"`
	Dispatched       []phase.ID        `json:"dispatched" yaml:"dispatched"`
	PhaseEvaluations []PhaseEvaluation `json:"phase_evaluations" yaml:"phase_evaluations"`
	SpecCompliance   *SpecCompliance   `json:"spec_compliance" yaml:"spec_compliance"`
	Gaps             []Gap             `json:"gaps" yaml:"gaps"`
	Recommendations  []string          `json:"recommendations" yaml:"recommendations"`
	FinalScore       *FinalScore       `json:"final_score" yaml:"final_score"`
	Errors           []string          `json:"errors" yaml:"errors"`
	CompletedAt      time.Time         `json:"completed_at" yaml:"completed_at"`
}
