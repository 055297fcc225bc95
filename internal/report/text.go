package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JaimeStill/assessor/internal/workflow"
	"github.com/JaimeStill/assessor/pkg/formatting"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	gradeColors = map[string]lipgloss.Color{
		"A": lipgloss.Color("#4CAF50"),
		"B": lipgloss.Color("#8BC34A"),
		"C": lipgloss.Color("#FFC107"),
		"D": lipgloss.Color("#FF9800"),
		"F": lipgloss.Color("#FF6B6B"),
	}
)

// Text renders a human-readable summary of r.
func Text(r Report) string {
	var sections []string

	sections = append(sections, titleStyle.Render("Proposal evaluation: "+r.Filename))

	meta := fmt.Sprintf("type %s", orDash(r.DocumentType))
	if r.SizeBytes > 0 {
		meta += ", " + formatting.FormatBytes(r.SizeBytes, 1)
	}
	sections = append(sections, mutedStyle.Render(meta))

	res := r.Result
	if res == nil {
		return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
	}

	sections = append(sections, boxStyle.Render(scoreLine(res)))

	sections = append(sections, headingStyle.Render("Phases"))
	for _, ev := range res.PhaseEvaluations {
		if ev.Failed {
			sections = append(sections, errorStyle.Render(fmt.Sprintf("  %-22s failed", ev.Phase.Title())))
			continue
		}
		sections = append(sections, fmt.Sprintf("  %-22s %d/3", ev.Phase.Title(), ev.Score))
	}

	if c := res.SpecCompliance; c != nil {
		sections = append(sections, headingStyle.Render("Compliance"))
		sections = append(sections, fmt.Sprintf("  %.0f%%", c.OverallComplianceScore*100))
	}

	if len(res.Gaps) > 0 {
		sections = append(sections, headingStyle.Render("Gaps"))
		for _, g := range res.Gaps {
			line := fmt.Sprintf("  [%s] %s", g.Severity, g.Description)
			if g.SourcePhase != nil {
				line += mutedStyle.Render(" (" + g.SourcePhase.Title() + ")")
			}
			sections = append(sections, line)
		}
	}

	if len(res.Recommendations) > 0 {
		sections = append(sections, headingStyle.Render("Recommendations"))
		for i, rec := range res.Recommendations {
			sections = append(sections, fmt.Sprintf("  %d. %s", i+1, rec))
		}
	}

	if len(res.Errors) > 0 {
		sections = append(sections, headingStyle.Render("Errors"))
		for _, e := range res.Errors {
			sections = append(sections, errorStyle.Render("  "+e))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func scoreLine(res *workflow.Result) string {
	if res.FinalScore == nil {
		return errorStyle.Render("No final score")
	}
	fs := res.FinalScore
	grade := lipgloss.NewStyle().Bold(true).Foreground(gradeColors[fs.Grade]).Render(fs.Grade)
	return strings.Join([]string{
		fmt.Sprintf("Score %d/100  Grade %s", fs.Value, grade),
		mutedStyle.Render(fs.Rationale),
	}, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
