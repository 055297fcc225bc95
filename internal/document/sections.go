package document

import (
	"regexp"
	"strings"
)

var (
	markdownHeading = regexp.MustCompile(`^\s{0,3}(#{1,6})\s+(.+?)\s*#*\s*$`)
	numberPrefix    = regexp.MustCompile(`^(\d+(\.\d+)*\.?)\s+`)
)

// sectionKeywords are the plain-text headings recognised in documents
// without markup.
var sectionKeywords = []string{
	"executive summary", "summary",
	"introduction", "overview",
	"approach", "methodology",
	"solution", "proposed solution",
	"timeline", "schedule", "project timeline",
	"team", "resources", "staffing",
	"technology", "technical approach",
	"migration", "migration approach",
	"assessment", "analysis",
	"operations", "operational support",
}

type sectionBuilder struct {
	sections []Section
	heading  string
	body     []string
	open     bool
}

func (b *sectionBuilder) start(heading string) {
	b.flush()
	b.heading = heading
	b.body = b.body[:0]
	b.open = true
}

func (b *sectionBuilder) add(line string) {
	if b.open {
		b.body = append(b.body, line)
	}
}

func (b *sectionBuilder) flush() {
	if !b.open {
		return
	}
	body := strings.TrimSpace(strings.Join(b.body, "\n"))
	if body != "" {
		b.sections = append(b.sections, Section{Heading: b.heading, Body: body})
	}
	b.open = false
}

func markdownSections(text string) []Section {
	var b sectionBuilder
	inFence := false

	for line := range strings.SplitSeq(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}
		if !inFence {
			if m := markdownHeading.FindStringSubmatch(line); m != nil {
				b.start(strings.TrimSpace(m[2]))
				continue
			}
		}
		b.add(line)
	}

	b.flush()
	return b.sections
}

func keywordSections(text string) []Section {
	var b sectionBuilder

	for line := range strings.SplitSeq(text, "\n") {
		if heading, ok := keywordHeading(line); ok {
			b.start(heading)
			continue
		}
		b.add(line)
	}

	b.flush()
	return b.sections
}

func keywordHeading(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 60 {
		return "", false
	}

	candidate := numberPrefix.ReplaceAllString(trimmed, "")
	candidate = strings.TrimRight(candidate, ": ")
	lower := strings.ToLower(candidate)

	for _, kw := range sectionKeywords {
		if lower == kw {
			return candidate, true
		}
	}
	return "", false
}
