package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
)

type fakeMigrator struct {
	calls   []string
	err     error
	version uint
	closed  bool
}

func (f *fakeMigrator) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeMigrator) Up() error   { return f.record("up") }
func (f *fakeMigrator) Down() error { return f.record("down") }
func (f *fakeMigrator) Steps(n int) error {
	return f.record("steps " + strings.Repeat("+", max(n, 0)) + strings.Repeat("-", max(-n, 0)))
}
func (f *fakeMigrator) Force(v int) error { return f.record("force") }
func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, false, f.record("version")
}
func (f *fakeMigrator) Close() (error, error) {
	f.closed = true
	return nil, nil
}

func execute(t *testing.T, fake *fakeMigrator, args ...string) (string, string, error) {
	t.Helper()
	var gotURL string
	cmd := newRootCmd(func(url string) (migrator, error) {
		gotURL = url
		return fake, nil
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), gotURL, err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		err       error
		version   uint
		wantCall  string
		wantOut   string
		wantError string
	}{
		{name: "up", args: []string{"up"}, wantCall: "up", wantOut: "schema is current"},
		{name: "up no change", args: []string{"up"}, err: migrate.ErrNoChange, wantCall: "up", wantOut: "no change"},
		{name: "down", args: []string{"down"}, wantCall: "down", wantOut: "schema removed"},
		{name: "steps back", args: []string{"steps", "--", "-2"}, wantCall: "steps --", wantOut: "moved -2 steps"},
		{name: "steps zero", args: []string{"steps", "0"}, wantError: "non-zero"},
		{name: "version", args: []string{"version"}, version: 1, wantCall: "version", wantOut: "version 1 (dirty: false)"},
		{name: "no version", args: []string{"version"}, err: migrate.ErrNilVersion, wantCall: "version", wantOut: "no migrations applied"},
		{name: "force", args: []string{"force", "1"}, wantCall: "force", wantOut: "forced to version 1"},
		{name: "failure", args: []string{"up"}, err: errors.New("dirty database version 1"), wantCall: "up", wantError: "dirty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeMigrator{err: tt.err, version: tt.version}
			args := append([]string{"--url", "postgres://u@h/d"}, tt.args...)

			out, url, err := execute(t, fake, args...)

			if tt.wantError != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantError) {
					t.Fatalf("got %v, want error containing %q", err, tt.wantError)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantCall != "" && (len(fake.calls) != 1 || fake.calls[0] != tt.wantCall) {
				t.Errorf("calls: got %v, want [%s]", fake.calls, tt.wantCall)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output %q missing %q", out, tt.wantOut)
			}
			if url != "postgres://u@h/d" {
				t.Errorf("url: got %q", url)
			}
			if !fake.closed {
				t.Error("migrator was not closed")
			}
		})
	}
}

func TestURLFromConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ASSESSOR_DB_HOST", "pg.internal")

	_, url, err := execute(t, &fakeMigrator{}, "up")
	if err != nil {
		t.Fatalf("up: %v", err)
	}
	if url != "postgres://assessor@pg.internal:5432/assessor?sslmode=disable" {
		t.Errorf("url: got %q", url)
	}
}
