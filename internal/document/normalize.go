package document

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extensions lists the file extensions Normalize accepts.
func Extensions() []string {
	return []string{".txt", ".md", ".markdown", ".html", ".htm", ".pdf", ".docx"}
}

// Normalize converts uploaded bytes into a Document based on the filename's
// extension. Failures wrap ErrParse.
func Normalize(data []byte, filename string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		doc *Document
		err error
	)

	switch ext {
	case ".txt":
		doc, err = normalizeText(data, FormatText)
	case ".md", ".markdown":
		doc, err = normalizeText(data, FormatMarkdown)
	case ".html", ".htm":
		doc, err = normalizeHTML(data)
	case ".pdf":
		doc, err = normalizePDF(data)
	case ".docx":
		doc, err = normalizeDOCX(data)
	default:
		if ext == "" {
			ext = "(none)"
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(doc.Text) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}

	doc.Filename = filepath.Base(filename)
	doc.Type = DetectType(doc.Text)
	doc.buildMetadata()

	return doc, nil
}

func normalizeText(data []byte, format Format) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrParse)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	var sections []Section
	if format == FormatMarkdown {
		sections = markdownSections(text)
	} else {
		sections = keywordSections(text)
	}

	return &Document{
		Format:   format,
		Text:     text,
		Sections: sections,
	}, nil
}
