package workflow

import "errors"

var (
	// ErrDispatchInvariant indicates dispatch selected no phase.
	ErrDispatchInvariant = errors.New("dispatch selected no phases")
	// ErrCanceled indicates the caller's context ended before the pipeline finished.
	ErrCanceled = errors.New("evaluation canceled")
	// ErrNoEvaluations indicates every dispatched phase evaluation failed.
	ErrNoEvaluations = errors.New("no phase evaluation succeeded")
)
