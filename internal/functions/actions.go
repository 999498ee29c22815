package functions

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidField  = errors.New("invalid field")
)

// Action is the typed form of an invoked action.
type Action interface {
	Name() string
	Validate() error
}

type MoveTo struct {
	X float64 `mapstructure:"x"`
	Z float64 `mapstructure:"z"`
}

func (MoveTo) Name() string { return "moveTo" }

func (a MoveTo) Validate() error {
	return finite("x", a.X, "z", a.Z)
}

type MoveForward struct {
	Distance float64 `mapstructure:"distance"`
}

func (MoveForward) Name() string { return "moveForward" }

func (a MoveForward) Validate() error {
	return finite("distance", a.Distance)
}

type TurnTo struct {
	AngleDeg float64 `mapstructure:"angleDeg"`
}

func (TurnTo) Name() string { return "turnTo" }

func (a TurnTo) Validate() error {
	return finite("angleDeg", a.AngleDeg)
}

type LookAt struct {
	ObjectID string `mapstructure:"objectId"`
}

func (LookAt) Name() string { return "lookAt" }

func (a LookAt) Validate() error {
	return nonEmpty("objectId", a.ObjectID)
}

type Interact struct {
	ObjectID string `mapstructure:"objectId"`
}

func (Interact) Name() string { return "interact" }

func (a Interact) Validate() error {
	return nonEmpty("objectId", a.ObjectID)
}

type Say struct {
	Text string `mapstructure:"text"`
}

func (Say) Name() string { return "say" }

func (a Say) Validate() error {
	return nonEmpty("text", a.Text)
}

type Done struct {
	Summary string `mapstructure:"summary"`
}

func (Done) Name() string { return TerminationAction }

// Validate accepts an empty summary; callers substitute FallbackSummary.
func (Done) Validate() error { return nil }

func newAction(name string) (Action, bool) {
	switch name {
	case "moveTo":
		return &MoveTo{}, true
	case "moveForward":
		return &MoveForward{}, true
	case "turnTo":
		return &TurnTo{}, true
	case "lookAt":
		return &LookAt{}, true
	case "interact":
		return &Interact{}, true
	case "say":
		return &Say{}, true
	case TerminationAction:
		return &Done{}, true
	}
	return nil, false
}

// Decode converts a free-form argument map into the typed action for name.
// Required parameters come from the registry definition; extra keys are
// rejected and numeric strings are accepted for number fields.
func (r *Registry) Decode(name string, args map[string]any) (Action, error) {
	def, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	target, ok := newAction(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q has no typed form", ErrUnknownAction, name)
	}

	var missing []string
	for _, param := range def.RequiredParameters() {
		if v, present := args[param]; !present || v == nil {
			missing = append(missing, param)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: %w: %s", name, ErrMissingField, strings.Join(missing, ", "))
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           target,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(args); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrInvalidField, err)
	}

	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return deref(target), nil
}

// deref returns the value form so callers can type-switch on MoveTo, Say, ...
func deref(a Action) Action {
	switch v := a.(type) {
	case *MoveTo:
		return *v
	case *MoveForward:
		return *v
	case *TurnTo:
		return *v
	case *LookAt:
		return *v
	case *Interact:
		return *v
	case *Say:
		return *v
	case *Done:
		return *v
	}
	return a
}

func nonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidField, field)
	}
	return nil
}

func finite(pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		v := pairs[i+1].(float64)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidField, pairs[i])
		}
	}
	return nil
}
