package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/planegraph/internal/ctxlog"
	"github.com/specialistvlad/planegraph/internal/node"
	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/internal/value"
)

// GetValue returns the value of id, evaluating whatever part of its input
// subgraph is pending. Every node evaluated on the way caches its result.
//
// The walk keeps its own stack, so chain depth is bounded by memory rather
// than by the goroutine stack. Each node is evaluated at most once per call;
// a kernel that yields no value leaves its node pending.
func (g *Graph) GetValue(ctx context.Context, id node.ID) (value.Value, error) {
	if err := g.checkLive(id); err != nil {
		return value.Empty(), err
	}
	if !g.nodes[id].Pending() {
		return g.nodes[id].Value(), nil
	}
	ctx = ctxlog.Ensure(ctx, g.logger)

	done := make(map[node.ID]struct{})
	stack := []node.ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		if _, ok := done[cur]; ok || !g.nodes[cur].Pending() {
			stack = stack[:len(stack)-1]
			continue
		}

		inputs := g.nodes[cur].Inputs()
		deferred := false
		for i := len(inputs) - 1; i >= 0; i-- {
			in := inputs[i]
			if _, ok := done[in]; !ok && g.nodes[in].Pending() {
				stack = append(stack, in)
				deferred = true
			}
		}
		if deferred {
			continue
		}

		stack = stack[:len(stack)-1]
		v, err := g.evaluate(ctx, cur)
		if err != nil {
			return value.Empty(), err
		}
		g.nodes[cur].SetValue(v)
		done[cur] = struct{}{}
		if !v.IsEmpty() {
			g.consumeInputs(cur)
		}
	}
	return g.nodes[id].Value(), nil
}

// Process runs the kernel of id over its input values without caching the
// result. Inputs are obtained through GetValue and are cached as usual.
func (g *Graph) Process(ctx context.Context, id node.ID) (value.Value, error) {
	if err := g.checkLive(id); err != nil {
		return value.Empty(), err
	}
	for _, in := range g.nodes[id].Inputs() {
		if _, err := g.GetValue(ctx, in); err != nil {
			return value.Empty(), err
		}
	}
	return g.evaluate(ctxlog.Ensure(ctx, g.logger), id)
}

// ProcessBatch processes each id in order. It stops at the first failure.
func (g *Graph) ProcessBatch(ctx context.Context, ids []node.ID) ([]value.Value, error) {
	out := make([]value.Value, 0, len(ids))
	for _, id := range ids {
		v, err := g.Process(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// evaluate invokes the kernel of id on the current values of its inputs.
func (g *Graph) evaluate(ctx context.Context, id node.ID) (value.Value, error) {
	n := &g.nodes[id]
	op, err := g.reg.Op(n.Op())
	if err != nil {
		return value.Empty(), err
	}

	inputs := make([]value.Value, len(n.Inputs()))
	for i, in := range n.Inputs() {
		inputs[i] = g.nodes[in].Value()
	}

	v, err := op.Invoke(ctx, &registry.Call{Op: op, Dims: n.Dims(), Inputs: inputs})
	if err != nil {
		return value.Empty(), fmt.Errorf("evaluating node %s (%s): %w", id, op.Name, err)
	}
	g.logger.Debug("Evaluated node.", "node", id, "op", op.Name, "value", v)
	return v, nil
}

// consumeInputs drops the cached values of r-value inputs that have just
// been consumed by id: no roots, and id is their only consumer. Source nodes
// keep their value.
func (g *Graph) consumeInputs(id node.ID) {
	for _, in := range g.nodes[id].Inputs() {
		n := &g.nodes[in]
		if !n.IsRValue() || len(n.Inputs()) == 0 || n.Pending() {
			continue
		}
		if g.roots[in] > 0 || len(n.Outputs()) != 1 {
			continue
		}
		n.ClearValue()
		g.logger.Debug("Released consumed r-value.", "node", in, "consumer", id)
	}
}
