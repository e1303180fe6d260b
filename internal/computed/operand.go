package computed

import (
	"fmt"

	"github.com/specialistvlad/planegraph/internal/graph"
	"github.com/specialistvlad/planegraph/internal/node"
	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/internal/value"
)

// Temporary marks a handle as disposable: New may move its node into the
// target graph and releases the handle once the new node holds it.
type Temporary struct {
	h Handle
}

// Temp passes h to New as a temporary.
func Temp(h Handle) Temporary {
	return Temporary{h: h}
}

type operandKind int

const (
	byReference operandKind = iota
	byMove
	byValue
)

type operand struct {
	kind operandKind
	h    Handle
	val  value.Value
}

// plan is a fully validated New call.
type plan struct {
	reg      *registry.Registry
	op       *registry.Operation
	operands []operand
	target   *graph.Graph
}

func planOperands(reg *registry.Registry, opname string, operands []any) (*plan, error) {
	opID, err := reg.Find(opname)
	if err != nil {
		return nil, err
	}
	op, err := reg.Op(opID)
	if err != nil {
		return nil, err
	}
	if len(operands) != op.Arity {
		return nil, fmt.Errorf("%w: operation %q takes %d operands, got %d", graph.ErrArityMismatch, opname, op.Arity, len(operands))
	}

	p := &plan{reg: reg, op: op, operands: make([]operand, len(operands))}
	for i, raw := range operands {
		o, err := classify(raw)
		if err != nil {
			return nil, fmt.Errorf("operand %d of %q: %w", i, opname, err)
		}
		if o.kind != byValue {
			g := o.h.Graph()
			if g == nil {
				return nil, fmt.Errorf("operand %d of %q: %w", i, opname, ErrNoGraph)
			}
			if g.Registry() != reg {
				return nil, fmt.Errorf("%w: operand %d of %q belongs to another registry", ErrMixedRegistry, i, opname)
			}
			if p.target == nil {
				p.target = g
			}
		}
		p.operands[i] = o
	}
	return p, nil
}

func classify(raw any) (operand, error) {
	switch x := raw.(type) {
	case Temporary:
		if x.h == nil {
			return operand{}, ErrNoGraph
		}
		return operand{kind: byMove, h: x.h}, nil
	case Handle:
		return operand{kind: byReference, h: x}, nil
	}
	v, err := value.FromGo(raw)
	if err != nil {
		return operand{}, err
	}
	return operand{kind: byValue, val: v}, nil
}

// handleKey identifies a node across graphs.
type handleKey struct {
	g  *graph.Graph
	id node.ID
}

// build resolves every operand to a node of the target graph, adds the
// result node and references it. Referenced operands are resolved before
// temporaries, so moving a temporary never pulls a node out from under a
// reference.
func (p *plan) build(dims value.Dimensions) (*graph.Graph, node.ID, error) {
	g := p.target
	if g == nil {
		g = graph.New(p.reg)
	}

	ids := make([]node.ID, len(p.operands))
	resolved := make(map[handleKey]node.ID)

	for i, o := range p.operands {
		var err error
		switch o.kind {
		case byValue:
			ids[i], err = g.AddConstant(o.val)
		case byReference:
			ids[i], err = p.resolve(g, o.h, resolved, false)
		}
		if err != nil {
			return nil, node.Null, err
		}
	}
	for i, o := range p.operands {
		if o.kind != byMove {
			continue
		}
		id, err := p.resolve(g, o.h, resolved, true)
		if err != nil {
			return nil, node.Null, err
		}
		ids[i] = id
	}

	id, err := g.AddNode(p.op.ID, value.Empty(), dims, ids...)
	if err != nil {
		return nil, node.Null, err
	}
	if err := g.Reference(id); err != nil {
		return nil, node.Null, err
	}

	for i, o := range p.operands {
		if o.kind != byMove {
			continue
		}
		o.h.Release()
		if err := g.TagRValue(ids[i]); err != nil {
			return nil, node.Null, err
		}
	}
	return g, id, nil
}

// resolve maps a handle to a node of g, copying or moving it there when it
// lives elsewhere. A temporary whose node is shared is copied.
func (p *plan) resolve(g *graph.Graph, h Handle, resolved map[handleKey]node.ID, move bool) (node.ID, error) {
	key := handleKey{g: h.Graph(), id: h.ID()}
	if id, ok := resolved[key]; ok {
		return id, nil
	}

	src := key.g
	var (
		id  node.ID
		err error
	)
	switch {
	case src == g:
		id, err = key.id, nil
	case move && src.OutputCount(key.id) == 0 && src.RootCount(key.id) <= 1:
		id, err = g.MoveNode(src, key.id)
	default:
		id, err = g.CopyNode(src, key.id)
	}
	if err != nil {
		return node.Null, err
	}
	resolved[key] = id
	return id, nil
}
