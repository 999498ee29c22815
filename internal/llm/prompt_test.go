package llm

import (
	"strings"
	"testing"

	"github.com/ashutoshrp06/vragent/internal/types"
	"github.com/stretchr/testify/assert"
)

func distance(v float64) *float64 { return &v }

func TestBuildTurnContext_FullObject(t *testing.T) {
	agent := types.AgentState{Position: types.Vec2{X: 1.5, Z: -2}, RotationDeg: 90, Status: "walking"}
	objects := []types.WorldObject{{
		ID:           "lamp1",
		Type:         "lamp",
		Description:  "A brass lamp",
		Position:     types.Vec2{X: 3, Z: 3},
		Distance:     distance(4.2),
		Interactable: true,
	}}

	got := BuildTurnContext("find the lamp", 2, agent, objects)

	want := "Current Step: 2\n" +
		"Goal: find the lamp\n\n" +
		"Agent State:\n" +
		"- Position: (1.5, -2)\n" +
		"- Rotation: 90°\n" +
		"- Status: walking\n\n" +
		"World Scan (objects visible):\n" +
		"- lamp1 (lamp): A brass lamp at (3, 3), distance: 4.2 [interactable]\n"
	assert.Equal(t, want, got)
}

func TestBuildTurnContext_EmptyWorld(t *testing.T) {
	got := BuildTurnContext("explore", 0, types.AgentState{}, nil)

	assert.Contains(t, got, "Goal: explore")
	assert.Contains(t, got, "- Position: (0, 0)")
	assert.Contains(t, got, "- Status: idle")
	assert.True(t, strings.HasSuffix(got, "World Scan (objects visible):\n"))
	assert.NotContains(t, got, "distance:")
}

func TestBuildTurnContext_MissingOptionalFields(t *testing.T) {
	objects := []types.WorldObject{{ID: "box", Type: "crate", Position: types.Vec2{X: -1, Z: 2}}}

	got := BuildTurnContext("open the crate", 1, types.AgentState{}, objects)

	assert.Contains(t, got, "- box (crate): N/A at (-1, 2), distance: ?\n")
	assert.NotContains(t, got, "[interactable]")
}

func TestBuildTurnContext_EmptyGoalAndMissingID(t *testing.T) {
	objects := []types.WorldObject{{Type: "chair", Position: types.Vec2{X: 1, Z: 1}}}

	got := BuildTurnContext("", 0, types.AgentState{}, objects)

	assert.Contains(t, got, "Current Step: 0\nGoal: \n\n")
	assert.Contains(t, got, "- ? (chair): N/A at (1, 1), distance: ?\n")
}

func TestBuildTurnContext_ObjectOrderPreserved(t *testing.T) {
	objects := []types.WorldObject{
		{ID: "b", Type: "tree"},
		{ID: "a", Type: "rock"},
	}

	got := BuildTurnContext("g", 3, types.AgentState{}, objects)

	assert.Less(t, strings.Index(got, "- b (tree)"), strings.Index(got, "- a (rock)"))
}

func TestBuildTurnContext_Deterministic(t *testing.T) {
	objects := []types.WorldObject{{ID: "x", Type: "y", Distance: distance(0)}}
	agent := types.AgentState{RotationDeg: 270.25}

	first := BuildTurnContext("g", 5, agent, objects)
	second := BuildTurnContext("g", 5, agent, objects)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "distance: 0")
	assert.Contains(t, first, "- Rotation: 270.25°")
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{3, "3"},
		{4.2, "4.2"},
		{-0.5, "-0.5"},
		{0, "0"},
		{24, "24"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatNumber(tt.input))
	}
}
