package registry

import (
	"context"

	"github.com/specialistvlad/planegraph/internal/config"
	"github.com/specialistvlad/planegraph/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Builtin operation and kernel names.
const (
	ConstantOpName = "engine.constant"
	AssignOpName   = "engine.assign"

	assignKernelName = "engine.Assign"
)

func (r *Registry) registerBuiltins() {
	var err error
	r.constantOp, err = r.Define(&config.OperationDefinition{
		Name:        ConstantOpName,
		DisplayName: "constant",
		Description: "A value supplied when the node is created.",
		Output:      cty.DynamicPseudoType,
	})
	if err != nil {
		panic(err)
	}

	r.assignOp, err = r.Define(&config.OperationDefinition{
		Name:        AssignOpName,
		DisplayName: "assign",
		Description: "Passes its input through unchanged.",
		Kernel:      assignKernelName,
		Inputs:      []*config.InputDefinition{{Name: "value", Type: cty.DynamicPseudoType}},
		Output:      cty.DynamicPseudoType,
	})
	if err != nil {
		panic(err)
	}

	r.RegisterKernel(assignKernelName, &RegisteredKernel{
		InputTypes: []cty.Type{cty.DynamicPseudoType},
		Fn:         assign,
	})
}

func assign(_ context.Context, call *Call) (value.Value, error) {
	return call.Inputs[0], nil
}
