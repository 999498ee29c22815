package agent

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ashutoshrp06/vragent/internal/ollama"
	"github.com/ashutoshrp06/vragent/internal/types"
	"go.uber.org/zap"
)

// FailureReason classifies why a turn could not produce a model reply.
type FailureReason int

const (
	ReasonBackendUnreachable FailureReason = iota
	ReasonBackendRequestFailed
	ReasonMalformedResponse
	ReasonInvalidRequest
	ReasonUnexpected
)

func (r FailureReason) String() string {
	switch r {
	case ReasonBackendUnreachable:
		return "backend_unreachable"
	case ReasonBackendRequestFailed:
		return "backend_request_failed"
	case ReasonMalformedResponse:
		return "malformed_response"
	case ReasonInvalidRequest:
		return "invalid_request"
	default:
		return "unexpected"
	}
}

// UnreachableMessage is the thought returned when Ollama cannot be dialled.
const UnreachableMessage = "Cannot connect to Ollama! Make sure 'ollama serve' is running."

// classify maps a backend call error onto a FailureReason.
func classify(err error) FailureReason {
	var statusErr *ollama.StatusError
	switch {
	case errors.Is(err, ollama.ErrUnreachable):
		return ReasonBackendUnreachable
	case errors.As(err, &statusErr), errors.Is(err, ollama.ErrTimeout):
		return ReasonBackendRequestFailed
	case errors.Is(err, ollama.ErrMalformedResponse):
		return ReasonMalformedResponse
	default:
		return ReasonUnexpected
	}
}

// diagnostic renders the human-readable thought for a failed turn.
func (a *Agent) diagnostic(reason FailureReason, err error) string {
	var statusErr *ollama.StatusError
	switch {
	case reason == ReasonBackendUnreachable:
		return UnreachableMessage
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Ollama error (%d): %s", statusErr.StatusCode, statusErr.Body)
	case errors.Is(err, ollama.ErrTimeout):
		return "Ollama request timed out after " + strconv.FormatFloat(a.chatTimeout.Seconds(), 'f', -1, 64) + "s"
	case reason == ReasonMalformedResponse:
		return fmt.Sprintf("Ollama returned a malformed response: %v", err)
	case reason == ReasonInvalidRequest:
		return fmt.Sprintf("Invalid request: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// degrade is the only place a failure becomes a TurnResult. The result is
// never done and carries no actions.
func (a *Agent) degrade(reason FailureReason, err error, fields ...zap.Field) types.TurnResult {
	thought := a.diagnostic(reason, err)

	fields = append(fields, zap.Stringer("reason", reason), zap.Error(err))
	a.logger.Warn("Turn failed", fields...)

	return types.TurnResult{
		Thought: types.StringPtr(thought),
		Actions: []types.ParsedAction{},
		Done:    false,
	}
}
