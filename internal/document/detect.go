package document

import (
	"regexp"
	"strings"
)

// Indicators are checked in order; the first matching type wins.
var typeIndicators = []struct {
	typ     Type
	pattern *regexp.Regexp
}{
	{TypeRFP, indicatorPattern(
		"request for proposal", "rfp", "request for quotation", "rfq",
		"invitation to tender", "itt", "statement of work", "sow",
	)},
	{TypeProposal, indicatorPattern(
		"proposal", "response to rfp", "technical proposal",
		"commercial proposal", "bid response",
	)},
	{TypeResponse, indicatorPattern(
		"response", "reply", "submission", "tender response",
	)},
}

func indicatorPattern(phrases ...string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// DetectType classifies text by indicator phrases matched on word boundaries.
func DetectType(text string) Type {
	for _, ind := range typeIndicators {
		if ind.pattern.MatchString(text) {
			return ind.typ
		}
	}
	return TypeOther
}
