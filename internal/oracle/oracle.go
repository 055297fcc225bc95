// Package oracle is the single boundary between the evaluation pipeline and
// language models. Everything behind an Oracle is treated as untrusted: its
// text is only consumed through Query, which enforces a schema.
package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/assessor/pkg/formatting"
)

// Oracle completes a prompt with free-form text.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Func adapts a function to the Oracle interface.
type Func func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f Func) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Validator is implemented by response schemas that check their own
// required fields and value ranges after decoding.
type Validator interface {
	Validate() error
}

// Query completes prompt and decodes the response into T. A response that
// cannot be decoded or fails validation yields ErrInvalidResponse.
func Query[T Validator](ctx context.Context, o Oracle, prompt string) (T, error) {
	var zero T

	content, err := o.Complete(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return zero, fmt.Errorf("%w: %w", ErrOracle, err)
	}

	if strings.TrimSpace(content) == "" {
		return zero, ErrEmptyResponse
	}

	parsed, err := formatting.Parse[T](content)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	if err := parsed.Validate(); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return parsed, nil
}

// WithTimeout bounds every call to o by d. A non-positive d returns o unchanged.
func WithTimeout(o Oracle, d time.Duration) Oracle {
	if d <= 0 {
		return o
	}
	return Func(func(ctx context.Context, prompt string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return o.Complete(ctx, prompt)
	})
}
