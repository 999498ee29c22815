// Package validator checks turn requests on the way in and interprets model
// replies on the way out.
package validator

import (
	"fmt"
	"strings"

	"github.com/ashutoshrp06/vragent/internal/types"
)

type InputValidator struct{}

func NewInputValidator() *InputValidator {
	return &InputValidator{}
}

// Validate rejects only requests with a negative step. An empty goal and
// world objects missing any field, the id included, still produce a turn.
func (v *InputValidator) Validate(req types.TurnRequest) error {
	if req.Step < 0 {
		return fmt.Errorf("step must be non-negative, got %d", req.Step)
	}
	return nil
}

// Sanitize trims surrounding whitespace from the goal and replaces invalid
// UTF-8 sequences.
func (v *InputValidator) Sanitize(req types.TurnRequest) types.TurnRequest {
	req.Goal = strings.ToValidUTF8(strings.TrimSpace(req.Goal), "�")
	return req
}
