package evaluations

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/JaimeStill/assessor/internal/workflow"
	"github.com/JaimeStill/assessor/pkg/pagination"
	"github.com/JaimeStill/assessor/pkg/repository"
)

const table = "evaluations"

var columns = []string{
	"id",
	"filename",
	"content_type",
	"document_type",
	"size_bytes",
	"storage_key",
	"final_score",
	"grade",
	"error_count",
	"result",
	"evaluated_at",
}

// sortColumns maps API sort fields to columns.
var sortColumns = map[string]string{
	"filename":      "filename",
	"document_type": "document_type",
	"size_bytes":    "size_bytes",
	"final_score":   "final_score",
	"grade":         "grade",
	"evaluated_at":  "evaluated_at",
}

var defaultSort = pagination.SortField{
	Field:      "evaluated_at",
	Descending: true,
}

// Filters contains optional filtering criteria for evaluation queries.
// Nil fields are ignored. Grade and DocumentType use exact matching, Filename
// uses case-insensitive contains matching, and MinScore is inclusive.
type Filters struct {
	Grade        *string `json:"grade,omitempty"`
	DocumentType *string `json:"document_type,omitempty"`
	Filename     *string `json:"filename,omitempty"`
	MinScore     *int    `json:"min_score,omitempty"`
}

// Apply adds filter conditions to a select builder.
func (f Filters) Apply(b sq.SelectBuilder) sq.SelectBuilder {
	if f.Grade != nil {
		b = b.Where(sq.Eq{"grade": strings.ToUpper(*f.Grade)})
	}
	if f.DocumentType != nil {
		b = b.Where(sq.Eq{"document_type": *f.DocumentType})
	}
	if f.Filename != nil {
		b = b.Where(sq.ILike{"filename": "%" + *f.Filename + "%"})
	}
	if f.MinScore != nil {
		b = b.Where(sq.GtOrEq{"final_score": *f.MinScore})
	}
	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if g := values.Get("grade"); g != "" {
		f.Grade = &g
	}

	if dt := values.Get("document_type"); dt != "" {
		f.DocumentType = &dt
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ms := values.Get("min_score"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil {
			f.MinScore = &v
		}
	}

	return f
}

func applySearch(b sq.SelectBuilder, search *string) sq.SelectBuilder {
	if search == nil || *search == "" {
		return b
	}
	term := "%" + *search + "%"
	return b.Where(sq.Or{
		sq.ILike{"filename": term},
		sq.ILike{"document_type": term},
	})
}

func scanEvaluation(s repository.Scanner) (Evaluation, error) {
	var (
		e   Evaluation
		raw []byte
	)

	err := s.Scan(
		&e.ID,
		&e.Filename,
		&e.ContentType,
		&e.DocumentType,
		&e.SizeBytes,
		&e.StorageKey,
		&e.FinalScore,
		&e.Grade,
		&e.ErrorCount,
		&raw,
		&e.EvaluatedAt,
	)
	if err != nil {
		return e, err
	}

	if len(raw) > 0 {
		var result workflow.Result
		if err := json.Unmarshal(raw, &result); err != nil {
			return e, fmt.Errorf("decode result: %w", err)
		}
		e.Result = &result
	}

	return e, nil
}
