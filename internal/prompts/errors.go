package prompts

import "errors"

// ErrInvalidStage is returned for a stage outside the known set.
var ErrInvalidStage = errors.New("stage must be classify, evaluate, or comply")
