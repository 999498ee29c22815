package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashutoshrp06/vragent/internal/config"
)

func TestReadTurnRequest(t *testing.T) {
	in := `{
		"sessionId": "s1",
		"goal": "find the lamp",
		"worldState": {"objects": [{"id": "lamp1", "type": "lamp", "position": {"x": 3, "z": 4}}]},
		"agentState": {"position": {"x": 1, "z": 2}, "rotationDeg": 90, "status": "walking"},
		"step": 2
	}`

	req, err := readTurnRequest(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, "s1", req.SessionID)
	assert.Equal(t, "find the lamp", req.Goal)
	assert.Equal(t, 2, req.Step)
	assert.Equal(t, "walking", req.AgentState.Status)
	assert.Equal(t, 90.0, req.AgentState.RotationDeg)
	require.Len(t, req.WorldState.Objects, 1)
	assert.Equal(t, "lamp1", req.WorldState.Objects[0].ID)
}

func TestReadTurnRequest_Malformed(t *testing.T) {
	_, err := readTurnRequest(strings.NewReader(`{"goal":`))
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()

	require.NoError(t, applyOverrides(cfg, "", ""))
	assert.Equal(t, config.DefaultConfig(), cfg)

	require.NoError(t, applyOverrides(cfg, "http://gpu-box:11434", "llama3.1:8b"))
	assert.Equal(t, "http://gpu-box:11434", cfg.Ollama.URL)
	assert.Equal(t, "llama3.1:8b", cfg.Ollama.Model)
}

func TestApplyOverrides_Revalidates(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		model string
		want  string
	}{
		{"url without scheme", "notaurl", "", "ollama.url"},
		{"blank model", "", "   ", "ollama.model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := applyOverrides(config.DefaultConfig(), tt.url, tt.model)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
