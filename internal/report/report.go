// Package report renders evaluation results as YAML, JSON, or a styled text
// summary for terminals.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/assessor/internal/workflow"
)

// ErrUnknownFormat is returned for an export format outside the known set.
var ErrUnknownFormat = errors.New("format must be text, json, or yaml")

// Format names an export encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates s as an export format. An empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the HTTP media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Report is a result together with the document it describes.
type Report struct {
	Filename     string           `json:"filename" yaml:"filename"`
	DocumentType string           `json:"document_type" yaml:"document_type"`
	SizeBytes    int64            `json:"size_bytes" yaml:"size_bytes"`
	Result       *workflow.Result `json:"result" yaml:"result"`
}

// Render writes r to w in format f.
func Render(w io.Writer, r Report, f Format) error {
	switch f {
	case FormatJSON:
		data, err := JSON(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatYAML:
		data, err := YAML(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatText:
		_, err := io.WriteString(w, Text(r))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// JSON encodes r as indented JSON.
func JSON(r Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// YAML encodes r as YAML.
func YAML(r Report) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}
