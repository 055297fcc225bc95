// Package phase defines the closed set of migration phases a proposal is
// evaluated against and their fixed priority order.
package phase

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ErrUnknown is returned when a value does not name a known phase.
var ErrUnknown = errors.New("unknown phase")

// ID identifies one migration phase.
type ID string

// Known phases, declared in priority order.
const (
	StrategiseAndPlan   ID = "strategise_and_plan"
	MigrateAndModernise ID = "migrate_and_modernise"
	ManageAndOptimise   ID = "manage_and_optimise"
)

var ordered = []ID{
	StrategiseAndPlan,
	MigrateAndModernise,
	ManageAndOptimise,
}

var titles = map[ID]string{
	StrategiseAndPlan:   "Strategise & Plan",
	MigrateAndModernise: "Migrate & Modernise",
	ManageAndOptimise:   "Manage & Optimise",
}

// All returns every known phase in priority order. The slice is a copy.
func All() []ID {
	return slices.Clone(ordered)
}

// Priority returns the position of id in the priority order, or -1 when unknown.
func Priority(id ID) int {
	return slices.Index(ordered, id)
}

// Known reports whether id is one of the declared phases.
func (id ID) Known() bool {
	return Priority(id) >= 0
}

// Title returns the human-readable phase name.
func (id ID) Title() string {
	if t, ok := titles[id]; ok {
		return t
	}
	return string(id)
}

// Parse validates s as a known phase.
func Parse(s string) (ID, error) {
	id := ID(s)
	if !id.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
	return id, nil
}

// Compare orders two phases by priority. Unknown phases sort last.
func Compare(a, b ID) int {
	pa, pb := Priority(a), Priority(b)
	if pa < 0 {
		pa = len(ordered)
	}
	if pb < 0 {
		pb = len(ordered)
	}
	return pa - pb
}

// UnmarshalJSON rejects values that are not known phases.
func (id *ID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := Parse(raw)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// UnmarshalText rejects values that are not known phases. Used by YAML decoding.
func (id *ID) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}
