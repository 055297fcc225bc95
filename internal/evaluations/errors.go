package evaluations

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/assessor/internal/document"
	"github.com/JaimeStill/assessor/internal/report"
	"github.com/JaimeStill/assessor/internal/workflow"
	"github.com/JaimeStill/assessor/pkg/storage"
)

// Domain errors for evaluation operations.
var (
	ErrNotFound        = errors.New("evaluation not found")
	ErrDuplicate       = errors.New("evaluation already exists")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidDocument = errors.New("invalid document")
)

// MapHTTPStatus maps evaluation domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, document.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrInvalidDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, report.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrCanceled):
		return http.StatusRequestTimeout
	default:
		return storage.MapHTTPStatus(err)
	}
}
