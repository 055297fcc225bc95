// Package document normalizes uploaded proposal files into plain text with
// coarse structure: ordered sections, a detected document type, and metadata.
package document

import (
	"strconv"
	"strings"
)

// Format is the source format a document was normalized from.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// Type is the detected kind of document.
type Type string

const (
	TypeRFP      Type = "rfp"
	TypeProposal Type = "proposal"
	TypeResponse Type = "response"
	TypeOther    Type = "other"
)

// Section is a headed block of text in document order.
type Section struct {
	Heading string `json:"heading" yaml:"heading"`
	Body    string `json:"body" yaml:"body"`
}

// Document is the normalized form of an upload. It is produced once and never
// mutated by the evaluation pipeline.
type Document struct {
	Filename string            `json:"filename" yaml:"filename"`
	Format   Format            `json:"format" yaml:"format"`
	Type     Type              `json:"type" yaml:"type"`
	Text     string            `json:"text" yaml:"text"`
	Sections []Section         `json:"sections" yaml:"sections"`
	Metadata map[string]string `json:"metadata" yaml:"metadata"`
}

// Window returns at most n runes from the start of the text. n <= 0 returns the full text.
func (d *Document) Window(n int) string {
	if n <= 0 {
		return d.Text
	}
	count := 0
	for i := range d.Text {
		if count == n {
			return d.Text[:i]
		}
		count++
	}
	return d.Text
}

// buildMetadata fills the common keys, keeping any format-specific ones the
// normalizer already set (pages for PDF, paragraphs and tables for DOCX).
func (d *Document) buildMetadata() {
	if d.Metadata == nil {
		d.Metadata = make(map[string]string)
	}
	d.Metadata["filename"] = d.Filename
	d.Metadata["format"] = string(d.Format)
	d.Metadata["type"] = string(d.Type)
	d.Metadata["lines"] = strconv.Itoa(strings.Count(d.Text, "\n") + 1)
	d.Metadata["characters"] = strconv.Itoa(len([]rune(d.Text)))
	d.Metadata["sections"] = strconv.Itoa(len(d.Sections))
}
