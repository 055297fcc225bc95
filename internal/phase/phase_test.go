package phase_test

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/JaimeStill/assessor/internal/phase"
)

func TestAllPriorityOrder(t *testing.T) {
	want := []phase.ID{
		phase.StrategiseAndPlan,
		phase.MigrateAndModernise,
		phase.ManageAndOptimise,
	}

	got := phase.All()
	if !slices.Equal(got, want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}

	got[0] = "mutated"
	if phase.All()[0] != phase.StrategiseAndPlan {
		t.Error("All() must return a copy")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    phase.ID
		wantErr bool
	}{
		{"strategise_and_plan", phase.StrategiseAndPlan, false},
		{"manage_and_optimise", phase.ManageAndOptimise, false},
		{"plan", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := phase.Parse(tt.in)
		if tt.wantErr {
			if !errors.Is(err, phase.ErrUnknown) {
				t.Errorf("Parse(%q) error = %v, want ErrUnknown", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Parse(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestCompare(t *testing.T) {
	ids := []phase.ID{"bogus", phase.ManageAndOptimise, phase.StrategiseAndPlan, phase.MigrateAndModernise}
	slices.SortFunc(ids, phase.Compare)

	want := []phase.ID{phase.StrategiseAndPlan, phase.MigrateAndModernise, phase.ManageAndOptimise, "bogus"}
	if !slices.Equal(ids, want) {
		t.Errorf("sorted = %v, want %v", ids, want)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var v struct {
		Phase phase.ID `json:"phase"`
	}

	if err := json.Unmarshal([]byte(`{"phase":"migrate_and_modernise"}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Phase != phase.MigrateAndModernise {
		t.Errorf("phase = %q", v.Phase)
	}

	if err := json.Unmarshal([]byte(`{"phase":"optimise"}`), &v); !errors.Is(err, phase.ErrUnknown) {
		t.Errorf("unknown phase error = %v, want ErrUnknown", err)
	}
}

func TestTitle(t *testing.T) {
	if got := phase.StrategiseAndPlan.Title(); got != "Strategise & Plan" {
		t.Errorf("Title = %q", got)
	}
	if got := phase.ID("other").Title(); got != "other" {
		t.Errorf("Title(unknown) = %q", got)
	}
}
