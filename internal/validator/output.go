package validator

import (
	"github.com/ashutoshrp06/vragent/internal/functions"
	"github.com/ashutoshrp06/vragent/internal/types"
)

// Interpretation is what one backend reply asks the agent to do.
type Interpretation struct {
	Thought *string
	Actions []types.ParsedAction
	Done    bool
}

// OutputValidator turns a backend reply into thought, actions and a done flag.
type OutputValidator struct {
	registry *functions.Registry
}

func NewOutputValidator(registry *functions.Registry) *OutputValidator {
	return &OutputValidator{registry: registry}
}

// Interpret never fails. Tool calls are processed in the order returned:
// the termination action sets Done and replaces Thought with its summary and
// is never surfaced as an action; every other call is passed through with
// its arguments untouched, plus a Warning when they do not decode into the
// action's typed form. A call whose arguments could not be decoded at all
// is passed through with empty arguments and a Warning saying so.
func (v *OutputValidator) Interpret(msg types.Message) Interpretation {
	result := Interpretation{Actions: make([]types.ParsedAction, 0, len(msg.ToolCalls))}

	if msg.Content != "" {
		result.Thought = types.StringPtr(msg.Content)
	}

	for _, call := range msg.ToolCalls {
		name := call.Function.Name
		args := call.Function.Arguments
		if args == nil {
			args = map[string]any{}
		}

		if functions.IsTermination(name) {
			result.Done = true
			result.Thought = types.StringPtr(summaryOf(args))
			continue
		}

		action := types.ParsedAction{Function: name, Args: args}
		if call.Function.ArgumentsError != "" {
			action.Warning = "arguments not decoded: " + call.Function.ArgumentsError
		} else if v.registry != nil {
			if _, err := v.registry.Decode(name, args); err != nil {
				action.Warning = err.Error()
			}
		}
		result.Actions = append(result.Actions, action)
	}

	return result
}

func summaryOf(args map[string]any) string {
	if s, ok := args[functions.SummaryArg].(string); ok && s != "" {
		return s
	}
	return functions.FallbackSummary
}
