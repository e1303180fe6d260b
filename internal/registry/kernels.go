package registry

import (
	"context"
	"fmt"

	"github.com/specialistvlad/planegraph/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Call is everything a kernel receives for one evaluation.
type Call struct {
	Op     *Operation
	Dims   value.Dimensions
	Inputs []value.Value
}

// KernelFunc computes the value of one node from its input values.
// Kernels must not modify their inputs.
type KernelFunc func(ctx context.Context, call *Call) (value.Value, error)

// RegisteredKernel holds a compiled kernel and the signature it expects.
// The signature is checked against the manifest by ValidateRegistry.
type RegisteredKernel struct {
	InputTypes []cty.Type
	Fn         KernelFunc
}

// RegisterKernel binds a Go kernel under a handler name. Registering the same
// name twice, or registering on a frozen registry, is a programming error.
func (r *Registry) RegisterKernel(name string, k *RegisteredKernel) {
	if r.frozen.Load() {
		panic(fmt.Sprintf("%v: cannot register kernel '%s'", ErrFrozen, name))
	}
	if _, exists := r.kernels[name]; exists {
		panic(fmt.Sprintf("kernel with name '%s' already registered", name))
	}
	if k == nil || k.Fn == nil {
		panic(fmt.Sprintf("kernel '%s' has no function", name))
	}
	r.logger.Debug("Registering kernel.", "name", name, "arity", len(k.InputTypes))
	r.kernels[name] = k
}

// RegisterModules runs Register on every module.
func (r *Registry) RegisterModules(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}
