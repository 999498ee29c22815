package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ashutoshrp06/vragent/internal/functions"
	"github.com/ashutoshrp06/vragent/internal/types"
)

const none = "(none)"

// RenderTurn formats one turn result: thought, numbered actions and the
// done flag. Argument warnings are shown under their action.
func (s Styles) RenderTurn(result types.TurnResult) string {
	var sb strings.Builder

	sb.WriteString(s.Heading.Render("Thought"))
	sb.WriteString("\n")
	if result.Thought != nil {
		sb.WriteString(s.Thought.Render(*result.Thought))
	} else {
		sb.WriteString(s.Thought.Render(s.Muted.Render(none)))
	}
	sb.WriteString("\n\n")

	sb.WriteString(s.Heading.Render("Actions"))
	sb.WriteString("\n")
	if len(result.Actions) == 0 {
		sb.WriteString("  " + s.Muted.Render(none) + "\n")
	} else {
		var lines []string
		for i, act := range result.Actions {
			args, _ := json.Marshal(act.Args)
			line := fmt.Sprintf("%d. %s %s", i+1, s.ActionName.Render(act.Function), s.ActionArgs.Render(string(args)))
			if act.Warning != "" {
				line += "\n   " + s.Warning.Render(act.Warning)
			}
			lines = append(lines, line)
		}
		sb.WriteString(s.ActionBox.Render(strings.Join(lines, "\n")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if result.Done {
		sb.WriteString(s.Success.Render("Goal complete"))
	} else {
		sb.WriteString(s.Muted.Render("Not done"))
	}
	sb.WriteString("\n")
	return sb.String()
}

// RenderActions lists action definitions in registry order. Parameters are
// included when verbose is set.
func (s Styles) RenderActions(defs []types.ActionDefinition, verbose bool) string {
	var sb strings.Builder

	sb.WriteString(s.Heading.Render("Available Actions"))
	sb.WriteString("\n\n")

	for _, def := range defs {
		name := s.ActionName.Render(def.Name)
		if functions.IsTermination(def.Name) {
			name += " " + s.Termination.Render("(ends the task)")
		}
		sb.WriteString("  " + name + "\n")
		sb.WriteString("    " + s.Muted.Render(def.Description) + "\n")

		if verbose && len(def.Parameters) > 0 {
			sb.WriteString("    Parameters:\n")
			for _, p := range def.Parameters {
				req := ""
				if p.Required {
					req = " (required)"
				}
				sb.WriteString(fmt.Sprintf("      %s %s%s\n", s.ParamName.Render(p.Name), s.Muted.Render(p.Type), req))
				if p.Description != "" {
					sb.WriteString("        " + s.Muted.Render(p.Description) + "\n")
				}
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(s.Muted.Render(fmt.Sprintf("  Total: %d actions available", len(defs))))
	sb.WriteString("\n")
	if !verbose {
		sb.WriteString(s.Muted.Render("  Use --verbose for parameter details"))
		sb.WriteString("\n")
	}
	return sb.String()
}
