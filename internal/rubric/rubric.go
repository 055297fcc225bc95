// Package rubric loads the weighted evaluation criteria that phase evaluators
// and the compliance check consult. A rubric is loaded once at startup and is
// read-only afterwards.
package rubric

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/assessor/internal/phase"
)

//go:embed rubric.yaml
var defaultRubric []byte

// Workstream is one weighted criterion within a phase.
type Workstream struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Weight      float64 `yaml:"weight" json:"weight"`
}

// Phase holds the criteria for a single migration phase.
type Phase struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description" json:"description"`
	Workstreams []Workstream `yaml:"workstreams" json:"workstreams"`
}

// Share returns the workstream's weight as a fraction of the phase total.
func (p Phase) Share(i int) float64 {
	var total float64
	for _, w := range p.Workstreams {
		total += w.Weight
	}
	if total == 0 || i < 0 || i >= len(p.Workstreams) {
		return 0
	}
	return p.Workstreams[i].Weight / total
}

// Rubric is the full specification: per-phase criteria plus the cross-cutting
// core principles and red flags used by the compliance check.
type Rubric struct {
	Version        string           `yaml:"version" json:"version"`
	Name           string           `yaml:"name" json:"name"`
	Phases         map[string]Phase `yaml:"phases" json:"phases"`
	CorePrinciples []string         `yaml:"core_principles" json:"core_principles"`
	RedFlags       []string         `yaml:"red_flags" json:"red_flags"`
}

// Default returns the embedded rubric.
func Default() (*Rubric, error) {
	return Parse(defaultRubric)
}

// Load reads a rubric from path. An empty path returns the embedded default.
func Load(path string) (*Rubric, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rubric: %w", err)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates a YAML rubric. Workstreams without a weight
// default to 1.
func Parse(data []byte) (*Rubric, error) {
	var r Rubric
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	r.loadDefaults()

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return &r, nil
}

// For returns the criteria for id.
func (r *Rubric) For(id phase.ID) (Phase, error) {
	p, ok := r.Phases[string(id)]
	if !ok {
		return Phase{}, fmt.Errorf("%w: %s", ErrPhaseNotFound, id)
	}
	return p, nil
}

// Principles returns a copy of the core principles.
func (r *Rubric) Principles() []string {
	return slices.Clone(r.CorePrinciples)
}

// Flags returns a copy of the red flags.
func (r *Rubric) Flags() []string {
	return slices.Clone(r.RedFlags)
}

func (r *Rubric) loadDefaults() {
	for id, p := range r.Phases {
		for i := range p.Workstreams {
			if p.Workstreams[i].Weight == 0 {
				p.Workstreams[i].Weight = 1
			}
		}
		r.Phases[id] = p
	}
}

func (r *Rubric) validate() error {
	for id := range r.Phases {
		if _, err := phase.Parse(id); err != nil {
			return err
		}
	}

	for _, id := range phase.All() {
		p, ok := r.Phases[string(id)]
		if !ok {
			return fmt.Errorf("missing phase %s", id)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("phase %s: name required", id)
		}
		if len(p.Workstreams) == 0 {
			return fmt.Errorf("phase %s: at least one workstream required", id)
		}
		for _, w := range p.Workstreams {
			if strings.TrimSpace(w.Name) == "" {
				return fmt.Errorf("phase %s: workstream name required", id)
			}
			if w.Weight < 0 {
				return fmt.Errorf("phase %s: workstream %q has negative weight", id, w.Name)
			}
		}
	}

	if len(r.CorePrinciples) == 0 {
		return fmt.Errorf("core_principles required")
	}

	return nil
}
