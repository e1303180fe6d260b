package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/planegraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// ValidateRegistry performs a strict parity check between manifests and Go
// kernels. It checks that every referenced kernel exists and that its arity
// and input types agree with the manifest.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	missing := false
	logger := ctxlog.FromContext(ctx)
	used := make(map[string]struct{})

	for _, op := range r.ops {
		if op.Kernel == "" {
			continue
		}
		used[op.Kernel] = struct{}{}

		k, ok := r.kernels[op.Kernel]
		if !ok {
			missing = true
			errs = append(errs, fmt.Sprintf("operation '%s': manifest names kernel '%s' which is not registered", op.Name, op.Kernel))
			continue
		}

		if len(k.InputTypes) != op.Arity {
			errs = append(errs, fmt.Sprintf("operation '%s': manifest declares %d inputs, but kernel '%s' takes %d",
				op.Name, op.Arity, op.Kernel, len(k.InputTypes)))
			continue
		}

		for i, manifestType := range op.InputTypes {
			if manifestType.Equals(cty.DynamicPseudoType) {
				if op.ID != r.assignOp {
					logger.Warn("Manifest for operation has input with 'type = any', which disables static type checking.", "operation", op.Name, "input", op.InputNames[i])
				}
				continue
			}
			kernelType := k.InputTypes[i]
			if kernelType.Equals(cty.DynamicPseudoType) {
				continue
			}
			if !manifestType.Equals(kernelType) {
				errs = append(errs, fmt.Sprintf("operation '%s', input '%s': type mismatch. Manifest requires '%s' but kernel '%s' expects '%s'",
					op.Name, op.InputNames[i], manifestType.FriendlyName(), op.Kernel, kernelType.FriendlyName()))
			}
		}
	}

	var unused []string
	for name := range r.kernels {
		if _, ok := used[name]; !ok {
			unused = append(unused, name)
		}
	}
	sort.Strings(unused)
	for _, name := range unused {
		logger.Warn("Kernel is registered but no operation uses it.", "kernel", name)
	}

	if len(errs) > 0 {
		err := fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
		if missing {
			err = fmt.Errorf("%w: %w", ErrMissingKernel, err)
		}
		return err
	}
	return nil
}
