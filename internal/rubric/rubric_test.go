package rubric_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/assessor/internal/phase"
	"github.com/JaimeStill/assessor/internal/rubric"
)

const minimalRubric = `
version: test
phases:
  strategise_and_plan:
    name: Plan
    workstreams:
      - name: Discovery
        weight: 3
      - name: Strategy
  migrate_and_modernise:
    name: Migrate
    workstreams:
      - name: Factory
  manage_and_optimise:
    name: Operate
    workstreams:
      - name: FinOps
core_principles:
  - Automate everything
red_flags:
  - Big-bang cut-over
`

func TestDefault(t *testing.T) {
	r, err := rubric.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	for _, id := range phase.All() {
		p, err := r.For(id)
		if err != nil {
			t.Fatalf("For(%s): %v", id, err)
		}
		if len(p.Workstreams) == 0 {
			t.Errorf("phase %s has no workstreams", id)
		}
	}

	if len(r.Principles()) == 0 {
		t.Error("default rubric has no core principles")
	}
	if len(r.Flags()) == 0 {
		t.Error("default rubric has no red flags")
	}
}

func TestParseDefaultsWeight(t *testing.T) {
	r, err := rubric.Parse([]byte(minimalRubric))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	p, err := r.For(phase.StrategiseAndPlan)
	if err != nil {
		t.Fatalf("For: %v", err)
	}

	if p.Workstreams[1].Weight != 1 {
		t.Errorf("default weight = %v, want 1", p.Workstreams[1].Weight)
	}
	if got := p.Share(0); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Share(0) = %v, want 0.75", got)
	}
	if got := p.Share(5); got != 0 {
		t.Errorf("Share(out of range) = %v, want 0", got)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantMsg string
	}{
		{
			name: "missing phase",
			mutate: func(s string) string {
				i := strings.Index(s, "  manage_and_optimise:")
				j := strings.Index(s, "core_principles:")
				return s[:i] + s[j:]
			},
			wantMsg: "missing phase manage_and_optimise",
		},
		{
			name: "unknown phase",
			mutate: func(s string) string {
				return strings.Replace(s, "phases:\n", "phases:\n  operate:\n    name: X\n    workstreams:\n      - name: Y\n", 1)
			},
			wantMsg: "unknown phase",
		},
		{
			name: "negative weight",
			mutate: func(s string) string {
				return strings.Replace(s, "weight: 3", "weight: -1", 1)
			},
			wantMsg: "negative weight",
		},
		{
			name: "no principles",
			mutate: func(s string) string {
				return strings.Replace(s, "core_principles:\n  - Automate everything\n", "", 1)
			},
			wantMsg: "core_principles required",
		},
		{
			name:    "malformed yaml",
			mutate:  func(string) string { return "phases: [" },
			wantMsg: "invalid rubric",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rubric.Parse([]byte(tt.mutate(minimalRubric)))
			if !errors.Is(err, rubric.ErrInvalid) {
				t.Fatalf("error = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses default", func(t *testing.T) {
		r, err := rubric.Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if r.Version == "" {
			t.Error("default rubric has no version")
		}
	})

	t.Run("file override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rubric.yaml")
		if err := os.WriteFile(path, []byte(minimalRubric), 0600); err != nil {
			t.Fatal(err)
		}

		r, err := rubric.Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if r.Version != "test" {
			t.Errorf("Version = %q, want test", r.Version)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := rubric.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestAccessorsReturnCopies(t *testing.T) {
	r, err := rubric.Parse([]byte(minimalRubric))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	p := r.Principles()
	p[0] = "changed"
	if r.Principles()[0] != "Automate everything" {
		t.Error("Principles() must return a copy")
	}
}

func TestForUnknownPhase(t *testing.T) {
	r, err := rubric.Default()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.For("bogus"); !errors.Is(err, rubric.ErrPhaseNotFound) {
		t.Errorf("For(bogus) = %v, want ErrPhaseNotFound", err)
	}
}
