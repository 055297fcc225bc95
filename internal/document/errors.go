package document

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is the root of every normalization failure.
	ErrParse = errors.New("document could not be normalized")
	// ErrUnsupportedFormat indicates the file extension has no normalizer.
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported format", ErrParse)
	// ErrEmptyDocument indicates normalization produced no text.
	ErrEmptyDocument = fmt.Errorf("%w: document is empty", ErrParse)
)
