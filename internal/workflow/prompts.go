package workflow

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/assessor/internal/prompts"
)

// ComposePrompt builds a prompt from a stage's instructions and response
// specification followed by any stage context blocks. Empty blocks are skipped.
func ComposePrompt(stage prompts.Stage, blocks ...string) (string, error) {
	instructions, err := prompts.Instructions(stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := prompts.Spec(stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)

	for _, b := range blocks {
		if strings.TrimSpace(b) == "" {
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(b)
	}

	return sb.String(), nil
}

func bulletList(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString(":\n")
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func documentBlock(text string) string {
	return "Document:\n\n" + text
}
