package document

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// normalizePDF reads the PDF with pdfcpu and pulls the text shown on each
// page out of its content stream. Pages are separated by a blank line.
func normalizePDF(data []byte) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadAndValidate(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: pdf: %w", ErrParse, err)
	}

	pages := make([]string, 0, ctx.PageCount)
	for i := 1; i <= ctx.PageCount; i++ {
		r, err := pdfcpu.ExtractPageContent(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("%w: pdf page %d: %w", ErrParse, i, err)
		}
		if r == nil {
			continue
		}

		content, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: pdf page %d: %w", ErrParse, i, err)
		}

		if text := pageText(content); text != "" {
			pages = append(pages, text)
		}
	}

	text := strings.Join(pages, "\n\n")

	return &Document{
		Format:   FormatPDF,
		Text:     text,
		Sections: keywordSections(text),
		Metadata: map[string]string{
			"pages": strconv.Itoa(ctx.PageCount),
		},
	}, nil
}

// pageText scans a content stream for text-showing operators (Tj, TJ, ' and
// "). Positioning operators that move to a new line end the current line.
func pageText(content []byte) string {
	var (
		lines    []string
		line     strings.Builder
		operands []string
	)

	flush := func() {
		if s := collapse(line.String()); s != "" {
			lines = append(lines, s)
		}
		line.Reset()
	}

	sc := contentScanner{data: content}
	for {
		tok, kind, ok := sc.next()
		if !ok {
			break
		}

		switch kind {
		case tokenString, tokenArray:
			operands = append(operands, tok)
			continue
		case tokenOther:
			if isOperand(tok) {
				continue
			}
		}

		switch tok {
		case "Tj", "TJ":
			for _, s := range operands {
				line.WriteString(s)
			}
		case "'", "\"":
			flush()
			for _, s := range operands {
				line.WriteString(s)
			}
		case "T*", "Td", "TD", "ET":
			flush()
		}
		operands = operands[:0]
	}
	flush()

	return strings.Join(lines, "\n")
}

type tokenKind int

const (
	tokenOther tokenKind = iota
	tokenString
	tokenArray
)

// contentScanner tokenizes the subset of PDF content stream syntax needed to
// recover shown text. Strings come back decoded; a TJ array comes back as its
// concatenated strings, with a space wherever a large kern implies one.
type contentScanner struct {
	data []byte
	pos  int
}

func (s *contentScanner) next() (string, tokenKind, bool) {
	s.skipSpace()
	if s.pos >= len(s.data) {
		return "", tokenOther, false
	}

	switch c := s.data[s.pos]; {
	case c == '(':
		return s.literal(), tokenString, true
	case c == '<' && s.peek(1) == '<':
		s.pos += 2
		return "<<", tokenOther, true
	case c == '<':
		return s.hex(), tokenString, true
	case c == '>' && s.peek(1) == '>':
		s.pos += 2
		return ">>", tokenOther, true
	case c == '/':
		start := s.pos
		s.pos++
		for s.pos < len(s.data) && !isSpace(s.data[s.pos]) && !isDelimiter(s.data[s.pos]) {
			s.pos++
		}
		return string(s.data[start:s.pos]), tokenOther, true
	case c == '[':
		return s.array(), tokenArray, true
	case c == '%':
		for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
			s.pos++
		}
		return s.next()
	case isDelimiter(c):
		s.pos++
		return string(c), tokenOther, true
	default:
		start := s.pos
		for s.pos < len(s.data) && !isSpace(s.data[s.pos]) && !isDelimiter(s.data[s.pos]) {
			s.pos++
		}
		return string(s.data[start:s.pos]), tokenOther, true
	}
}

func (s *contentScanner) array() string {
	s.pos++
	var sb strings.Builder
	for {
		s.skipSpace()
		if s.pos >= len(s.data) {
			return sb.String()
		}
		switch c := s.data[s.pos]; {
		case c == ']':
			s.pos++
			return sb.String()
		case c == '(':
			sb.WriteString(s.literal())
		case c == '<':
			sb.WriteString(s.hex())
		default:
			start := s.pos
			for s.pos < len(s.data) && !isSpace(s.data[s.pos]) && !isDelimiter(s.data[s.pos]) {
				s.pos++
			}
			if s.pos == start {
				s.pos++
				continue
			}
			if kern, err := strconv.ParseFloat(string(s.data[start:s.pos]), 64); err == nil && kern <= -200 {
				sb.WriteByte(' ')
			}
		}
	}
}

func (s *contentScanner) literal() string {
	s.pos++
	var sb strings.Builder
	depth := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '\\':
			if s.pos >= len(s.data) {
				return sb.String()
			}
			e := s.data[s.pos]
			s.pos++
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
			case '\r', '\n':
				if e == '\r' && s.peek(0) == '\n' {
					s.pos++
				}
			default:
				if e >= '0' && e <= '7' {
					n := int(e - '0')
					for i := 0; i < 2 && s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '7'; i++ {
						n = n*8 + int(s.data[s.pos]-'0')
						s.pos++
					}
					sb.WriteRune(rune(n & 0xff))
					continue
				}
				sb.WriteByte(e)
			}
		case '(':
			depth++
			sb.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return sb.String()
			}
			sb.WriteByte(c)
		default:
			sb.WriteRune(rune(c))
		}
	}
	return sb.String()
}

func (s *contentScanner) hex() string {
	s.pos++
	var digits []byte
	for s.pos < len(s.data) && s.data[s.pos] != '>' {
		if c := s.data[s.pos]; !isSpace(c) {
			digits = append(digits, c)
		}
		s.pos++
	}
	s.pos++
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	var sb strings.Builder
	for i := 0; i+1 < len(digits); i += 2 {
		b, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			continue
		}
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

func (s *contentScanner) skipSpace() {
	for s.pos < len(s.data) && isSpace(s.data[s.pos]) {
		s.pos++
	}
}

func (s *contentScanner) peek(offset int) byte {
	if s.pos+offset >= len(s.data) {
		return 0
	}
	return s.data[s.pos+offset]
}

func isOperand(tok string) bool {
	if tok == "" {
		return true
	}
	if tok[0] == '/' {
		return true
	}
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return true
	}
	switch tok {
	case "true", "false", "null", "<<", ">>", "{", "}":
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
