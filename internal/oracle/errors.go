package oracle

import "errors"

var (
	// ErrOracle wraps failures reported by a model provider.
	ErrOracle = errors.New("oracle call failed")
	// ErrEmptyResponse indicates the provider returned no content.
	ErrEmptyResponse = errors.New("oracle returned an empty response")
	// ErrInvalidResponse indicates the response did not satisfy the requested schema.
	ErrInvalidResponse = errors.New("oracle response does not match schema")
	// ErrUnknownProvider indicates configuration named an unsupported provider.
	ErrUnknownProvider = errors.New("unknown oracle provider")
)
