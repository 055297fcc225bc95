// Package settings holds the small helpers every config section uses to layer
// environment overrides and file overlays onto its defaults.
//
// Each helper is a no-op when the environment variable name is empty or the
// variable is unset, so a section's Env struct may leave fields blank.
// Values that fail to parse are ignored and the field keeps its prior value;
// validate is where bad input gets reported.
package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	v := os.Getenv(name)
	return v, v != ""
}

// String overrides dst with the named variable.
func String(name string, dst *string) {
	if v, ok := lookup(name); ok {
		*dst = v
	}
}

// Int overrides dst with the named variable parsed as a base-10 integer.
func Int(name string, dst *int) {
	if v, ok := lookup(name); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Bool overrides dst with the named variable parsed by strconv.ParseBool.
func Bool(name string, dst *bool) {
	if v, ok := lookup(name); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// List overrides dst with the named variable split on commas. Blank
// entries are dropped.
func List(name string, dst *[]string) {
	v, ok := lookup(name)
	if !ok {
		return
	}
	items := make([]string, 0, strings.Count(v, ",")+1)
	for item := range strings.SplitSeq(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*dst = items
}

// Overlay copies v into dst unless v is the zero value.
func Overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// OverlayList copies v into dst unless v is nil.
func OverlayList(dst *[]string, v []string) {
	if v != nil {
		*dst = v
	}
}

// Default sets dst to def when dst holds the zero value.
func Default[T comparable](dst *T, def T) {
	var zero T
	if *dst == zero {
		*dst = def
	}
}

// Duration parses value, naming field in the error.
func Duration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	return d, nil
}

// MustDuration parses a value that validate has already accepted.
func MustDuration(value string) time.Duration {
	d, _ := time.ParseDuration(value)
	return d
}
