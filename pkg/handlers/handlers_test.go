package handlers_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/assessor/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondJSON(rec, http.StatusCreated, struct {
		Grade    string   `json:"grade"`
		Findings []string `json:"findings"`
	}{Grade: "B", Findings: []string{}})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"grade":"B","findings":[]}` {
		t.Errorf("body: got %s", got)
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		status    int
		wantLevel string
	}{
		{status: http.StatusNotFound, wantLevel: "level=WARN"},
		{status: http.StatusRequestEntityTooLarge, wantLevel: "level=WARN"},
		{status: http.StatusBadGateway, wantLevel: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			rec := httptest.NewRecorder()

			handlers.RespondError(rec, logger, tt.status, errors.New("evaluation not found"))

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"evaluation not found"}` {
				t.Errorf("body: got %s", got)
			}
			if !strings.Contains(logs.String(), tt.wantLevel) {
				t.Errorf("log %q missing %s", logs.String(), tt.wantLevel)
			}
		})
	}
}

func TestRespondText(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondText(rec, http.StatusOK, "application/yaml", []byte("grade: B\n"))

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("content-type: got %q", ct)
	}
	if rec.Body.String() != "grade: B\n" {
		t.Errorf("body: got %q", rec.Body.String())
	}
}
