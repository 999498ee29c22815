package validator

import (
	"strings"
	"testing"

	"github.com/ashutoshrp06/vragent/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestInputValidator_Validate(t *testing.T) {
	v := NewInputValidator()

	tests := []struct {
		name    string
		req     types.TurnRequest
		wantErr bool
	}{
		{"valid", types.TurnRequest{Goal: "find the lamp", Step: 0}, false},
		{"valid later step", types.TurnRequest{Goal: "g", Step: 12}, false},
		{"negative step", types.TurnRequest{Goal: "g", Step: -1}, true},
		{"empty goal", types.TurnRequest{Goal: "   "}, false},
		{"long multibyte goal", types.TurnRequest{Goal: strings.Repeat("é", 1500)}, false},
		{
			"object without id",
			types.TurnRequest{Goal: "g", WorldState: types.WorldState{Objects: []types.WorldObject{{Type: "lamp"}}}},
			false,
		},
		{
			"object without optional fields",
			types.TurnRequest{Goal: "g", WorldState: types.WorldState{Objects: []types.WorldObject{{ID: "a", Type: "lamp"}}}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInputValidator_Sanitize(t *testing.T) {
	got := NewInputValidator().Sanitize(types.TurnRequest{Goal: "  find the lamp \n", Step: 3})

	assert.Equal(t, "find the lamp", got.Goal)
	assert.Equal(t, 3, got.Step)
}

func TestInputValidator_SanitizeInvalidUTF8(t *testing.T) {
	got := NewInputValidator().Sanitize(types.TurnRequest{Goal: "go\xff home"})

	assert.Equal(t, "go\uFFFD home", got.Goal)
}
