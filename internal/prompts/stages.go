// Package prompts holds the instruction and response-format text for each
// oracle-backed workflow stage.
package prompts

import (
	"encoding/json"
	"slices"
)

// Stage represents a workflow stage that issues an oracle call.
type Stage string

// Valid workflow stages.
const (
	StageClassify Stage = "classify"
	StageEvaluate Stage = "evaluate"
	StageComply   Stage = "comply"
)

var stages = []Stage{
	StageClassify,
	StageEvaluate,
	StageComply,
}

// Stages returns the list of valid workflow stages.
func Stages() []Stage {
	return slices.Clone(stages)
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseStage(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStage validates a string as a known workflow stage.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
