package registry

import (
	"context"
	"fmt"
	"math"

	"github.com/specialistvlad/planegraph/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// OpID is the dense identifier of an operation within one registry.
type OpID uint32

// NoOp is the sentinel for "no operation".
const NoOp OpID = math.MaxUint32

// Operation is the registry's view of one operation: its manifest
// declaration plus the kernel bound to it at freeze time.
type Operation struct {
	ID          OpID
	Name        string
	DisplayName string
	Description string
	Arity       int
	InputNames  []string
	// InputTypes holds one entry per input; cty.DynamicPseudoType accepts
	// any value.
	InputTypes []cty.Type
	OutputType cty.Type
	// Kernel is the handler name from the manifest. Empty means the
	// operation has no kernel and processing it yields an empty value.
	Kernel string

	fn KernelFunc
}

func (op *Operation) String() string {
	return op.Name
}

// CheckInputs verifies that inputs match the declared input types.
func (op *Operation) CheckInputs(inputs []value.Value) error {
	if len(inputs) != op.Arity {
		return fmt.Errorf("operation %q takes %d inputs, got %d", op.Name, op.Arity, len(inputs))
	}
	for i, in := range inputs {
		if !in.Conforms(op.InputTypes[i]) {
			return fmt.Errorf("%w: operation %q input %q wants %s, have %s",
				value.ErrBadValueType, op.Name, op.InputNames[i], op.InputTypes[i].FriendlyName(), describe(in))
		}
	}
	return nil
}

// Invoke runs the operation's kernel. Inputs are checked against the
// declared types first, and a non-empty result against the output type.
func (op *Operation) Invoke(ctx context.Context, call *Call) (value.Value, error) {
	if op.Kernel == "" {
		return value.Empty(), nil
	}
	if op.fn == nil {
		return value.Empty(), fmt.Errorf("%w: operation %q wants kernel %q", ErrMissingKernel, op.Name, op.Kernel)
	}
	if err := op.CheckInputs(call.Inputs); err != nil {
		return value.Empty(), err
	}

	out, err := op.call(ctx, call)
	if err != nil {
		return value.Empty(), err
	}
	if !out.IsEmpty() && !out.Conforms(op.OutputType) {
		return value.Empty(), fmt.Errorf("%w: kernel %q returned %s, operation %q declares %s",
			value.ErrBadValueType, op.Kernel, describe(out), op.Name, op.OutputType.FriendlyName())
	}
	return out, nil
}

// call runs the bound kernel, turning a kernel panic into ErrKernelPanic.
func (op *Operation) call(ctx context.Context, call *Call) (out value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = value.Empty(), fmt.Errorf("%w: kernel %q of operation %q: %v", ErrKernelPanic, op.Kernel, op.Name, r)
		}
	}()
	return op.fn(ctx, call)
}

func describe(v value.Value) string {
	if v.IsEmpty() {
		return "no value"
	}
	return v.Type().FriendlyName()
}
