package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/planegraph/internal/config"
	"github.com/specialistvlad/planegraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translateOperation converts a decoded `operation` block into its
// format-agnostic definition.
func translateOperation(ctx context.Context, op *Operation, filename string) (*config.OperationDefinition, error) {
	logger := ctxlog.FromContext(ctx).With("operation", op.Name)

	if op.Name == "" {
		return nil, fmt.Errorf("%s: operation name cannot be empty", filename)
	}

	def := &config.OperationDefinition{
		Name:        op.Name,
		DisplayName: op.DisplayName,
		Description: op.Description,
		Kernel:      op.Kernel,
		Output:      cty.DynamicPseudoType,
		Source:      filename,
	}
	if def.DisplayName == "" {
		def.DisplayName = op.Name
	}

	seen := make(map[string]struct{}, len(op.Inputs))
	for _, in := range op.Inputs {
		if _, dup := seen[in.Name]; dup {
			return nil, fmt.Errorf("%s: operation %q declares input %q twice", filename, op.Name, in.Name)
		}
		seen[in.Name] = struct{}{}

		ty, err := typeExprToCtyType(ctx, in.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: in operation %q, input %q: %w", filename, op.Name, in.Name, err)
		}
		def.Inputs = append(def.Inputs, &config.InputDefinition{
			Name:        in.Name,
			Type:        ty,
			Description: in.Description,
		})
	}

	if isExprDefined(ctx, op.Output, "output") {
		ty, err := typeExprToCtyType(ctx, op.Output)
		if err != nil {
			return nil, fmt.Errorf("%s: in operation %q, output: %w", filename, op.Name, err)
		}
		def.Output = ty
	}

	logger.Debug("Translated operation definition.", "arity", def.Arity(), "kernel", def.Kernel, "output", def.Output.FriendlyName())
	return def, nil
}

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional expression fields with a
// synthetic null expression, so a nil check is insufficient: a real attribute
// occupies bytes in the file, while the placeholder has a zero-width range.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}
