package computed

import (
	"context"

	"github.com/specialistvlad/planegraph/internal/graph"
	"github.com/specialistvlad/planegraph/internal/node"
	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/internal/value"
)

// Handle is implemented by every Value, whatever its type parameter.
type Handle interface {
	Graph() *graph.Graph
	ID() node.ID
	Release()
}

// Value is a typed handle on a graph node. The zero Value is empty.
// A Value is not safe for concurrent use; neither is its graph.
type Value[T any] struct {
	g  *graph.Graph
	id node.ID
}

// New builds a Value computing opname over operands with the given output
// dimensions. Each operand is one of:
//   - a Handle, used by reference: it stays valid and is copied when it
//     lives in another graph;
//   - a Temporary from Temp: its node is moved instead of copied where
//     possible, and the handle is released;
//   - a constant: value.Value, value.Plane, or any Go value gocty converts.
//
// Every operand is checked before any graph is changed.
func New[T any](reg *registry.Registry, opname string, dims value.Dimensions, operands ...any) (*Value[T], error) {
	plan, err := planOperands(reg, opname, operands)
	if err != nil {
		return nil, err
	}
	g, id, err := plan.build(dims)
	if err != nil {
		return nil, err
	}
	return &Value[T]{g: g, id: id}, nil
}

// Constant builds a Value holding v. Plane constants take the plane's
// dimensions.
func Constant[T any](reg *registry.Registry, v T) (*Value[T], error) {
	cv, err := value.FromGo(v)
	if err != nil {
		return nil, err
	}
	dims := value.NullDims
	if p, ok := cv.Plane(); ok {
		dims = p.Dims()
	}
	return New[T](reg, registry.AssignOpName, dims, cv)
}

// Graph returns the graph holding the node, or nil for an empty Value.
func (v *Value[T]) Graph() *graph.Graph {
	if v == nil {
		return nil
	}
	return v.g
}

// ID returns the node id, or node.Null for an empty Value.
func (v *Value[T]) ID() node.ID {
	if v == nil || v.g == nil {
		return node.Null
	}
	return v.id
}

// Empty reports whether the Value has no graph.
func (v *Value[T]) Empty() bool {
	return v.Graph() == nil
}

// Dims returns the node's output dimensions.
func (v *Value[T]) Dims() value.Dimensions {
	if v.Empty() {
		return value.NullDims
	}
	n, err := v.g.Node(v.id)
	if err != nil {
		return value.NullDims
	}
	return n.Dims()
}

// Pending reports whether the value still has to be computed.
func (v *Value[T]) Pending() bool {
	if v.Empty() {
		return true
	}
	return v.g.Pending(v.id)
}

// Compute evaluates the node and extracts its result as a T.
func (v *Value[T]) Compute(ctx context.Context) (T, error) {
	var zero T
	if v.Empty() {
		return zero, ErrNoGraph
	}
	out, err := v.g.GetValue(ctx, v.id)
	if err != nil {
		return zero, err
	}
	return value.As[T](out)
}

// Clone returns a second handle on the same node.
func (v *Value[T]) Clone() *Value[T] {
	if v.Empty() {
		return &Value[T]{id: node.Null}
	}
	if err := v.g.Reference(v.id); err != nil {
		v.g.Registry().Logger().Error("Failed to reference node for clone.", "node", v.id, "error", err)
		return &Value[T]{id: node.Null}
	}
	return &Value[T]{g: v.g, id: v.id}
}

// Release drops the handle's reference and empties it. Releasing an empty
// Value does nothing.
func (v *Value[T]) Release() {
	if v.Empty() {
		return
	}
	if err := v.g.Unreference(v.id); err != nil {
		v.g.Registry().Logger().Error("Failed to release node.", "node", v.id, "error", err)
	}
	v.g = nil
	v.id = node.Null
}
