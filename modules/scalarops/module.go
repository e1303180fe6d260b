// Package scalarops provides the number kernels: arithmetic on cty numbers
// through the go-cty standard function library.
package scalarops

import (
	"context"
	_ "embed"

	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/internal/value"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Manifest returns the embedded operation manifest.
func (m *Module) Manifest() (string, []byte) {
	return "scalarops/manifest.hcl", manifest
}

// Register registers the number kernels with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKernel("AddNumbers", binary(stdlib.Add))
	r.RegisterKernel("SubtractNumbers", binary(stdlib.Subtract))
	r.RegisterKernel("MultiplyNumbers", binary(stdlib.Multiply))
	r.RegisterKernel("DivideNumbers", binary(stdlib.Divide))
	r.RegisterKernel("NegateNumber", unary(stdlib.Negate))
	r.RegisterKernel("AbsoluteNumber", unary(stdlib.Absolute))
}

func binary(fn func(a, b cty.Value) (cty.Value, error)) *registry.RegisteredKernel {
	return &registry.RegisteredKernel{
		InputTypes: []cty.Type{cty.Number, cty.Number},
		Fn: func(_ context.Context, call *registry.Call) (value.Value, error) {
			out, err := fn(call.Inputs[0].Cty(), call.Inputs[1].Cty())
			if err != nil {
				return value.Empty(), err
			}
			return value.Of(out), nil
		},
	}
}

func unary(fn func(a cty.Value) (cty.Value, error)) *registry.RegisteredKernel {
	return &registry.RegisteredKernel{
		InputTypes: []cty.Type{cty.Number},
		Fn: func(_ context.Context, call *registry.Call) (value.Value, error) {
			out, err := fn(call.Inputs[0].Cty())
			if err != nil {
				return value.Empty(), err
			}
			return value.Of(out), nil
		},
	}
}
