package api

import "github.com/JaimeStill/assessor/internal/evaluations"

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Evaluations evaluations.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Evaluations: evaluations.New(
			runtime.Database.Connection(),
			runtime.Storage,
			runtime.Workflow,
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
