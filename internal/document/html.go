package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	blockSelector   = "h1,h2,h3,h4,h5,h6,p,li,pre,blockquote,td,th,dt,dd"
	headingSelector = "h1,h2,h3"
)

func normalizeHTML(data []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: html: %w", ErrParse, err)
	}

	doc.Find("script,style,noscript,template").Remove()

	var lines []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}
		if text := collapse(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})

	if len(lines) == 0 {
		if text := collapse(doc.Find("body").Text()); text != "" {
			lines = append(lines, text)
		}
	}

	var sections []Section
	doc.Find(headingSelector).Each(func(_ int, h *goquery.Selection) {
		heading := collapse(h.Text())
		var body []string
		h.NextUntil(headingSelector).Each(func(_ int, s *goquery.Selection) {
			if text := collapse(s.Text()); text != "" {
				body = append(body, text)
			}
		})
		if heading != "" && len(body) > 0 {
			sections = append(sections, Section{
				Heading: heading,
				Body:    strings.Join(body, "\n"),
			})
		}
	})

	return &Document{
		Format:   FormatHTML,
		Text:     strings.Join(lines, "\n"),
		Sections: sections,
	}, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
