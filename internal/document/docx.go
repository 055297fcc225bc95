package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const docxBody = "word/document.xml"

// docxNode mirrors just enough of WordprocessingML to recover paragraph text,
// heading styles, and table cells. Unknown elements are ignored.
type docxNode struct {
	XMLName  xml.Name
	Val      string     `xml:"val,attr"`
	Text     string     `xml:",chardata"`
	Children []docxNode `xml:",any"`
}

type docxDocument struct {
	Body struct {
		Children []docxNode `xml:",any"`
	} `xml:"body"`
}

// normalizeDOCX reads body paragraphs in order, then appends table rows after
// a blank line. Paragraphs styled as headings open a new section.
func normalizeDOCX(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: docx: %w", ErrParse, err)
	}

	body, err := readZipEntry(zr, docxBody)
	if err != nil {
		return nil, fmt.Errorf("%w: docx: %w", ErrParse, err)
	}

	var wd docxDocument
	if err := xml.Unmarshal(body, &wd); err != nil {
		return nil, fmt.Errorf("%w: docx: %w", ErrParse, err)
	}

	var (
		paragraphs []string
		rows       []string
		sections   []Section
		tables     int
		current    *Section
	)

	for _, n := range wd.Body.Children {
		switch n.XMLName.Local {
		case "p":
			text := paragraphText(n)
			paragraphs = append(paragraphs, text)

			if isHeading(n) && strings.TrimSpace(text) != "" {
				sections = appendSection(sections, current)
				current = &Section{Heading: strings.TrimSpace(text)}
				continue
			}
			if current != nil && strings.TrimSpace(text) != "" {
				if current.Body != "" {
					current.Body += "\n"
				}
				current.Body += strings.TrimSpace(text)
			}
		case "tbl":
			tables++
			rows = append(rows, tableRows(n)...)
		}
	}
	sections = appendSection(sections, current)

	text := strings.Join(paragraphs, "\n")
	if len(rows) > 0 {
		text += "\n\n" + strings.Join(rows, "\n")
	}

	if len(sections) == 0 {
		sections = keywordSections(text)
	}

	return &Document{
		Format:   FormatDOCX,
		Text:     text,
		Sections: sections,
		Metadata: map[string]string{
			"paragraphs": strconv.Itoa(len(paragraphs)),
			"tables":     strconv.Itoa(tables),
		},
	}, nil
}

func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func appendSection(sections []Section, s *Section) []Section {
	if s == nil || s.Body == "" {
		return sections
	}
	return append(sections, *s)
}

func paragraphText(p docxNode) string {
	var sb strings.Builder
	var walk func(n docxNode)
	walk = func(n docxNode) {
		switch n.XMLName.Local {
		case "t":
			sb.WriteString(n.Text)
		case "tab":
			sb.WriteByte('\t')
		case "br", "cr":
			sb.WriteByte('\n')
		case "pPr", "rPr", "instrText":
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(p)
	return sb.String()
}

func isHeading(p docxNode) bool {
	for _, c := range p.Children {
		if c.XMLName.Local != "pPr" {
			continue
		}
		for _, pc := range c.Children {
			if pc.XMLName.Local != "pStyle" {
				continue
			}
			style := strings.ToLower(pc.Val)
			return style == "title" || strings.HasPrefix(style, "heading")
		}
	}
	return false
}

// tableRows renders each row as its non-empty cell texts joined by spaces.
func tableRows(tbl docxNode) []string {
	var rows []string
	for _, tr := range tbl.Children {
		if tr.XMLName.Local != "tr" {
			continue
		}
		var cells []string
		for _, tc := range tr.Children {
			if tc.XMLName.Local != "tc" {
				continue
			}
			var parts []string
			for _, p := range tc.Children {
				if p.XMLName.Local == "p" {
					if text := strings.TrimSpace(paragraphText(p)); text != "" {
						parts = append(parts, text)
					}
				}
			}
			if len(parts) > 0 {
				cells = append(cells, strings.Join(parts, " "))
			}
		}
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " "))
		}
	}
	return rows
}
