package graph

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/planegraph/internal/hashing"
	"github.com/specialistvlad/planegraph/internal/node"
	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/internal/value"
)

// AddNode adds a node computing op over inputs, or returns the live node
// that already computes it. v, when not empty, is stored as the node's
// cached value; a pending node found by hash adopts it.
func (g *Graph) AddNode(op registry.OpID, v value.Value, dims value.Dimensions, inputs ...node.ID) (node.ID, error) {
	def, err := g.reg.Op(op)
	if err != nil {
		return node.Null, err
	}
	if len(inputs) != def.Arity {
		return node.Null, fmt.Errorf("%w: operation %q takes %d inputs, got %d", ErrArityMismatch, def.Name, def.Arity, len(inputs))
	}
	for _, in := range inputs {
		if err := g.checkLive(in); err != nil {
			return node.Null, fmt.Errorf("input of %q: %w", def.Name, err)
		}
	}
	if op == g.reg.ConstantOp() && v.IsEmpty() {
		return node.Null, fmt.Errorf("%w: constant node without a value", value.ErrBadValueType)
	}

	h, err := g.hashNode(op, dims, v, inputs)
	if err != nil {
		return node.Null, err
	}
	id, _, err := g.insert(op, dims, inputs, v, h)
	return id, err
}

// AddNodeByName is AddNode with the operation looked up by name and no
// initial value.
func (g *Graph) AddNodeByName(opname string, dims value.Dimensions, inputs ...node.ID) (node.ID, error) {
	op, err := g.reg.Find(opname)
	if err != nil {
		return node.Null, err
	}
	return g.AddNode(op, value.Empty(), dims, inputs...)
}

// AddConstant adds a source node holding v. Plane values take the plane's
// dimensions; everything else has null dimensions. Equal constants share a
// node.
func (g *Graph) AddConstant(v value.Value) (node.ID, error) {
	dims := value.NullDims
	if p, ok := v.Plane(); ok {
		dims = p.Dims()
	}
	return g.AddNode(g.reg.ConstantOp(), v, dims)
}

// hashNode folds the operation, dimensions and input hashes, in that order.
// Constant nodes also fold their value.
func (g *Graph) hashNode(op registry.OpID, dims value.Dimensions, v value.Value, inputs []node.ID) (hashing.Value, error) {
	h := hashing.New().Uint32(uint32(op)).Uint16(dims.X).Uint16(dims.Y)
	for _, in := range inputs {
		h.Digest(g.nodes[in].Hash())
	}
	if op == g.reg.ConstantOp() {
		if err := v.Fingerprint(h); err != nil {
			return hashing.Value{}, err
		}
	}
	return h.Sum(), nil
}

// insert allocates a node with a precomputed hash, or resolves to the live
// node indexed under that hash. created reports whether a slot was allocated.
func (g *Graph) insert(op registry.OpID, dims value.Dimensions, inputs []node.ID, v value.Value, h hashing.Value) (id node.ID, created bool, err error) {
	if existing, ok := g.index[h]; ok {
		n := &g.nodes[existing]
		if n.Op() != op || n.Dims() != dims || !slices.Equal(n.Inputs(), inputs) {
			return node.Null, false, fmt.Errorf("%w: hash %s maps to %s (%s), not op=%d dims=%s inputs=%v",
				ErrHashCollision, h.Short(), existing, n, op, dims, inputs)
		}
		if n.Pending() && !v.IsEmpty() {
			n.SetValue(v)
		}
		g.logger.Debug("Reusing structurally identical node.", "node", existing, "hash", h.Short())
		return existing, false, nil
	}

	if uint64(len(g.nodes)) >= uint64(node.Null) {
		return node.Null, false, fmt.Errorf("graph is full: %d nodes", len(g.nodes))
	}

	id = node.ID(len(g.nodes))
	g.nodes = append(g.nodes, node.New(op, dims, inputs, v, h))
	g.index[h] = id
	g.live++
	for _, in := range inputs {
		g.nodes[in].AddOutput(id)
	}
	g.logger.Debug("Added node.", "node", id, "op", op, "dims", dims, "inputs", inputs, "hash", h.Short())
	return id, true, nil
}
