// Package types defines shared data structures for the agent reasoning bridge.
package types

import "encoding/json"

// Message roles used in the conversation transcript.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Vec2 is a position on the world's ground plane.
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// WorldObject is one object visible to the agent during a turn.
type WorldObject struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Description  string   `json:"description,omitempty"`
	Position     Vec2     `json:"position"`
	Distance     *float64 `json:"distance,omitempty"`
	Interactable bool     `json:"interactable"`
}

// WorldState is the agent's world scan for one turn.
type WorldState struct {
	Objects []WorldObject `json:"objects"`
}

// AgentState is the agent's physical state for one turn.
type AgentState struct {
	Position    Vec2    `json:"position"`
	RotationDeg float64 `json:"rotationDeg"`
	Status      string  `json:"state,omitempty"`
}

// UnmarshalJSON accepts both "state" and "status" for the status label.
func (a *AgentState) UnmarshalJSON(data []byte) error {
	var raw struct {
		Position    Vec2    `json:"position"`
		RotationDeg float64 `json:"rotationDeg"`
		State       string  `json:"state"`
		Status      string  `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Position = raw.Position
	a.RotationDeg = raw.RotationDeg
	a.Status = raw.State
	if a.Status == "" {
		a.Status = raw.Status
	}
	return nil
}

// TurnRequest is the input to one reasoning step.
type TurnRequest struct {
	SessionID  string     `json:"session_id,omitempty"`
	Goal       string     `json:"goal"`
	WorldState WorldState `json:"world_state"`
	AgentState AgentState `json:"agent_state"`
	Step       int        `json:"step"`
}

// UnmarshalJSON accepts snake_case and camelCase keys for the nested states.
func (r *TurnRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		SessionID      string      `json:"session_id"`
		SessionIDCamel string      `json:"sessionId"`
		Goal           string      `json:"goal"`
		WorldState     *WorldState `json:"world_state"`
		WorldStateC    *WorldState `json:"worldState"`
		AgentState     *AgentState `json:"agent_state"`
		AgentStateC    *AgentState `json:"agentState"`
		Step           int         `json:"step"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = TurnRequest{Goal: raw.Goal, Step: raw.Step, SessionID: raw.SessionID}
	if r.SessionID == "" {
		r.SessionID = raw.SessionIDCamel
	}
	switch {
	case raw.WorldState != nil:
		r.WorldState = *raw.WorldState
	case raw.WorldStateC != nil:
		r.WorldState = *raw.WorldStateC
	}
	switch {
	case raw.AgentState != nil:
		r.AgentState = *raw.AgentState
	case raw.AgentStateC != nil:
		r.AgentState = *raw.AgentStateC
	}
	return nil
}

// ToolCallFunction names an invoked action and carries its arguments.
type ToolCallFunction struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`

	// ArgumentsError is set when the backend sent arguments that could not
	// be decoded into an object. Arguments is then empty.
	ArgumentsError string `json:"-"`
}

// ToolCall is one action invocation returned by the chat backend.
type ToolCall struct {
	Function ToolCallFunction `json:"function"`
}

// Message is one entry in the conversation transcript.
type Message struct {
	Role      string     `json:"role"` // "system", "user" or "assistant"
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ParameterDefinition describes one action parameter.
type ParameterDefinition struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description" json:"description"`
	Required    bool   `yaml:"required" json:"required"`
}

// ActionDefinition describes an action the agent can invoke.
type ActionDefinition struct {
	Name        string                `yaml:"name" json:"name"`
	Description string                `yaml:"description" json:"description"`
	Parameters  []ParameterDefinition `yaml:"parameters" json:"parameters"`
}

// RequiredParameters returns the names of required parameters in declaration order.
func (d ActionDefinition) RequiredParameters() []string {
	var names []string
	for _, p := range d.Parameters {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// ParsedAction is an action chosen by the model for the world simulator to run.
type ParsedAction struct {
	Function string         `json:"function"`
	Args     map[string]any `json:"args"`
	// Warning is set when Args do not decode into the action's typed form.
	Warning string `json:"warning,omitempty"`
}

// TurnResult is the output of one reasoning step.
type TurnResult struct {
	Thought *string        `json:"thought"`
	Actions []ParsedAction `json:"actions"`
	Done    bool           `json:"done"`
}

// ThoughtText returns the thought or an empty string when unset.
func (r TurnResult) ThoughtText() string {
	if r.Thought == nil {
		return ""
	}
	return *r.Thought
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
