package evaluations

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/assessor/internal/report"
	"github.com/JaimeStill/assessor/internal/workflow"
)

// Evaluation is a persisted evaluation run for one uploaded proposal.
type Evaluation struct {
	ID           uuid.UUID        `json:"id"`
	Filename     string           `json:"filename"`
	ContentType  string           `json:"content_type"`
	DocumentType string           `json:"document_type"`
	SizeBytes    int64            `json:"size_bytes"`
	StorageKey   string           `json:"storage_key"`
	FinalScore   *int             `json:"final_score"`
	Grade        *string          `json:"grade"`
	ErrorCount   int              `json:"error_count"`
	Result       *workflow.Result `json:"result"`
	EvaluatedAt  time.Time        `json:"evaluated_at"`
}

// Report returns the exportable view of the evaluation.
func (e *Evaluation) Report() report.Report {
	return report.Report{
		Filename:     e.Filename,
		DocumentType: e.DocumentType,
		SizeBytes:    e.SizeBytes,
		Result:       e.Result,
	}
}

// EvaluateCommand carries an uploaded proposal to be evaluated.
type EvaluateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
}
