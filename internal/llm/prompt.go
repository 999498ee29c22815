// Package llm renders the per-turn context the model reasons over.
package llm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ashutoshrp06/vragent/internal/types"
)

const (
	unknownID          = "?"
	unknownDescription = "N/A"
	unknownDistance    = "?"
	defaultStatus      = "idle"
	interactableMarker = "[interactable]"
)

// BuildTurnContext renders the user message for one turn: step, goal, the
// agent's physical state, and one line per visible object. It never fails;
// absent optional fields are rendered as placeholders.
func BuildTurnContext(goal string, step int, agent types.AgentState, objects []types.WorldObject) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Current Step: %d\n", step))
	sb.WriteString(fmt.Sprintf("Goal: %s\n\n", goal))

	status := agent.Status
	if status == "" {
		status = defaultStatus
	}
	sb.WriteString("Agent State:\n")
	sb.WriteString(fmt.Sprintf("- Position: (%s, %s)\n", formatNumber(agent.Position.X), formatNumber(agent.Position.Z)))
	sb.WriteString(fmt.Sprintf("- Rotation: %s°\n", formatNumber(agent.RotationDeg)))
	sb.WriteString(fmt.Sprintf("- Status: %s\n\n", status))

	sb.WriteString("World Scan (objects visible):\n")
	for _, obj := range objects {
		sb.WriteString(objectLine(obj))
		sb.WriteString("\n")
	}

	return sb.String()
}

// ─── helpers ──────────────────────────────────────────────────────────────────

func objectLine(obj types.WorldObject) string {
	id := obj.ID
	if id == "" {
		id = unknownID
	}

	description := obj.Description
	if description == "" {
		description = unknownDescription
	}

	distance := unknownDistance
	if obj.Distance != nil {
		distance = formatNumber(*obj.Distance)
	}

	line := fmt.Sprintf("- %s (%s): %s at (%s, %s), distance: %s",
		id, obj.Type, description,
		formatNumber(obj.Position.X), formatNumber(obj.Position.Z),
		distance)
	if obj.Interactable {
		line += " " + interactableMarker
	}
	return line
}

// formatNumber prints the shortest exact form: 3 -> "3", 4.2 -> "4.2".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
