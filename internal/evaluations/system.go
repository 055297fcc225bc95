// Package evaluations persists proposal evaluation runs and exposes them over HTTP.
package evaluations

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/assessor/pkg/pagination"
)

// System defines the public contract for evaluation domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Evaluation], error)

	Find(ctx context.Context, id uuid.UUID) (*Evaluation, error)
	Evaluate(ctx context.Context, cmd EvaluateCommand) (*Evaluation, error)

	// Source opens the uploaded document an evaluation was run against.
	// The caller closes the returned reader.
	Source(ctx context.Context, id uuid.UUID) (*Evaluation, io.ReadCloser, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
