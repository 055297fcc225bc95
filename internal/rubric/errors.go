package rubric

import "errors"

var (
	// ErrInvalid indicates a rubric document failed validation.
	ErrInvalid = errors.New("invalid rubric")
	// ErrPhaseNotFound indicates the rubric has no entry for a requested phase.
	ErrPhaseNotFound = errors.New("phase not defined in rubric")
)
