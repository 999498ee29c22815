// Package functions holds the fixed action vocabulary exposed to the model.
package functions

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ashutoshrp06/vragent/internal/types"
	"gopkg.in/yaml.v3"
)

// TerminationAction is the reserved action that signals the goal is complete.
const TerminationAction = "done"

// SummaryArg is the termination action's summary argument.
const SummaryArg = "summary"

// FallbackSummary is reported when the termination action carries no summary.
const FallbackSummary = "Goal accomplished"

//go:embed actions.yaml
var defaultActions []byte

type Registry struct {
	systemPrompt string
	definitions  []types.ActionDefinition
	byName       map[string]types.ActionDefinition
}

type registryFile struct {
	SystemPrompt string                   `yaml:"system_prompt"`
	Actions      []types.ActionDefinition `yaml:"actions"`
}

// Default returns the registry built from the embedded action file.
func Default() *Registry {
	r, err := Parse(defaultActions)
	if err != nil {
		panic(fmt.Sprintf("embedded actions.yaml: %v", err))
	}
	return r
}

// LoadRegistry reads an action file from disk.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read action registry: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse action registry %s: %w", path, err)
	}
	return r, nil
}

// Parse builds a registry from YAML. Action names must be unique and the
// termination action must be declared.
func Parse(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	if strings.TrimSpace(file.SystemPrompt) == "" {
		return nil, errors.New("missing system_prompt")
	}

	registry := &Registry{
		systemPrompt: file.SystemPrompt,
		definitions:  make([]types.ActionDefinition, 0, len(file.Actions)),
		byName:       make(map[string]types.ActionDefinition, len(file.Actions)),
	}

	for _, def := range file.Actions {
		if def.Name == "" {
			return nil, errors.New("action with empty name")
		}
		if _, exists := registry.byName[def.Name]; exists {
			return nil, fmt.Errorf("duplicate action %q", def.Name)
		}
		registry.byName[def.Name] = def
		registry.definitions = append(registry.definitions, def)
	}

	if _, ok := registry.byName[TerminationAction]; !ok {
		return nil, fmt.Errorf("termination action %q not declared", TerminationAction)
	}

	return registry, nil
}

// SystemPrompt returns the fixed operating instructions sent with every turn.
func (r *Registry) SystemPrompt() string {
	return r.systemPrompt
}

// Definitions returns the actions in declaration order. The slice is a copy.
func (r *Registry) Definitions() []types.ActionDefinition {
	defs := make([]types.ActionDefinition, len(r.definitions))
	copy(defs, r.definitions)
	return defs
}

func (r *Registry) Get(name string) (types.ActionDefinition, bool) {
	def, exists := r.byName[name]
	return def, exists
}

func (r *Registry) Has(name string) bool {
	_, exists := r.byName[name]
	return exists
}

// List returns action names in declaration order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.definitions))
	for _, def := range r.definitions {
		names = append(names, def.Name)
	}
	return names
}

// IsTermination reports whether name is the reserved termination action.
func IsTermination(name string) bool {
	return name == TerminationAction
}
