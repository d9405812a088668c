// Package graph renders survey definitions as Mermaid flowcharts for
// documentation and debugging.
package graph

import (
	"fmt"
	"strings"

	"github.com/careerloop/surveyflow/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart syntax string from a
// definition. It applies semantic styling:
//   - Entry: ((Circle))
//   - Options/Input/Dropdown: [/Parallelogram/]
//   - Terminal bot message: ((Double circle)) via stadium shape
//   - Other bot messages: [Rectangle]
//
// Option edges are labelled with the option label.
func GenerateMermaid(def *domain.Definition) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, step := range def.Steps() {
		safeID := sanitizeMermaidID(step.ID)

		opener, closer := "[", "]"
		switch {
		case step.ID == def.EntryID():
			opener, closer = "((", "))" // Circle
		case step.Interactive():
			opener, closer = "[/", "/]" // Parallelogram (input)
		case step.Terminal:
			opener, closer = "([", "])" // Stadium (end)
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, step.ID, closer))

		if step.Kind == domain.KindUserOptions {
			for _, opt := range step.Options {
				if opt.NextStepID == "" {
					continue
				}
				safeLabel := strings.ReplaceAll(opt.Label, "\"", "'")
				sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
					safeID, safeLabel, sanitizeMermaidID(opt.NextStepID)))
			}
			continue
		}

		if step.NextStepID != "" {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, sanitizeMermaidID(step.NextStepID)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
