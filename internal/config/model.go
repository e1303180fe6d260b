package config

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of every operation manifest loaded
// for one registry.
type Model struct {
	Operations map[string]*OperationDefinition
}

// NewModel returns an empty Model.
func NewModel() *Model {
	return &Model{Operations: make(map[string]*OperationDefinition)}
}

// Add merges def into the model. Operation names must be unique across all
// manifests.
func (m *Model) Add(def *OperationDefinition) error {
	if prev, exists := m.Operations[def.Name]; exists {
		return fmt.Errorf("operation %q declared twice (%s and %s)", def.Name, prev.Source, def.Source)
	}
	m.Operations[def.Name] = def
	return nil
}

// Names returns the operation names in sorted order.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.Operations))
	for name := range m.Operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OperationDefinition is the format-agnostic representation of an
// `operation` manifest block.
type OperationDefinition struct {
	Name        string
	DisplayName string
	Description string
	// Kernel names the Go kernel registered for this operation. Empty means
	// the operation has no kernel and evaluates to an empty value.
	Kernel string
	Inputs []*InputDefinition
	Output cty.Type
	// Source is the manifest file the definition came from, for messages.
	Source string
}

// Arity is the number of inputs the operation takes.
func (d *OperationDefinition) Arity() int {
	return len(d.Inputs)
}

// InputDefinition declares one positional input of an operation.
type InputDefinition struct {
	Name        string
	Type        cty.Type
	Description string
}
