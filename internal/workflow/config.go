package workflow

import (
	"fmt"
	"runtime"

	"github.com/JaimeStill/assessor/pkg/settings"
)

// Config tunes the evaluation pipeline. EvaluationWindow caps the text sent
// to each phase evaluator; zero sends the full document.
type Config struct {
	AnalysisWindow   int    `toml:"analysis_window"`
	EvaluationWindow int    `toml:"evaluation_window"`
	MaxWorkers       int    `toml:"max_workers"`
	Rubric           string `toml:"rubric"`
}

// Env names the environment variables that override Config fields.
type Env struct {
	AnalysisWindow   string
	EvaluationWindow string
	MaxWorkers       string
	Rubric           string
}

// Finalize applies defaults, environment overrides, and validation.
// MaxWorkers defaults to the CPU count.
func (c *Config) Finalize(env *Env) error {
	settings.Default(&c.AnalysisWindow, 2000)
	settings.Default(&c.MaxWorkers, runtime.NumCPU())

	if env != nil {
		settings.Int(env.AnalysisWindow, &c.AnalysisWindow)
		settings.Int(env.EvaluationWindow, &c.EvaluationWindow)
		settings.Int(env.MaxWorkers, &c.MaxWorkers)
		settings.String(env.Rubric, &c.Rubric)
	}

	switch {
	case c.AnalysisWindow < 1:
		return fmt.Errorf("analysis_window must be positive: %d", c.AnalysisWindow)
	case c.EvaluationWindow < 0:
		return fmt.Errorf("evaluation_window must not be negative: %d", c.EvaluationWindow)
	case c.MaxWorkers < 1:
		return fmt.Errorf("max_workers must be positive: %d", c.MaxWorkers)
	}
	return nil
}

// Merge overlays the non-zero fields of overlay.
func (c *Config) Merge(overlay *Config) {
	settings.Overlay(&c.AnalysisWindow, overlay.AnalysisWindow)
	settings.Overlay(&c.EvaluationWindow, overlay.EvaluationWindow)
	settings.Overlay(&c.MaxWorkers, overlay.MaxWorkers)
	settings.Overlay(&c.Rubric, overlay.Rubric)
}
