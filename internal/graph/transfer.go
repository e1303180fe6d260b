package graph

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/planegraph/internal/node"
)

// CopyNode reproduces id and its input subgraph from other into g and
// returns the id of the copy. Cached values and hashes are carried over;
// nodes that already exist in g are shared. Copying from g itself returns
// id unchanged. On failure every node created by the copy is removed again.
func (g *Graph) CopyNode(other *Graph, id node.ID) (node.ID, error) {
	if other == g {
		if err := g.checkLive(id); err != nil {
			return node.Null, err
		}
		return id, nil
	}
	if other.reg != g.reg {
		return node.Null, fmt.Errorf("%w: cannot copy between graphs of different registries", ErrMixedRegistry)
	}
	if err := other.checkLive(id); err != nil {
		return node.Null, err
	}

	type frame struct {
		id       node.ID
		expanded bool
	}

	mapped := make(map[node.ID]node.ID)
	var created []node.ID
	stack := []frame{{id: id}}

	for len(stack) > 0 {
		top := len(stack) - 1
		f := stack[top]
		if _, ok := mapped[f.id]; ok {
			stack = stack[:top]
			continue
		}
		src := &other.nodes[f.id]

		if !f.expanded {
			stack[top].expanded = true
			inputs := src.Inputs()
			for i := len(inputs) - 1; i >= 0; i-- {
				if _, ok := mapped[inputs[i]]; !ok {
					stack = append(stack, frame{id: inputs[i]})
				}
			}
			continue
		}
		stack = stack[:top]

		inputs := make([]node.ID, len(src.Inputs()))
		for i, in := range src.Inputs() {
			inputs[i] = mapped[in]
		}
		dst, isNew, err := g.insert(src.Op(), src.Dims(), inputs, src.Value(), src.Hash())
		if err != nil {
			g.rollback(created)
			return node.Null, fmt.Errorf("copying node %s: %w", f.id, err)
		}
		if isNew {
			created = append(created, dst)
		}
		mapped[f.id] = dst
	}

	g.logger.Debug("Copied subgraph.", "source_node", id, "node", mapped[id], "created", len(created), "visited", len(mapped))
	return mapped[id], nil
}

// MoveNode copies id from other into g and then removes it from other,
// cascading through inputs nothing else holds. Nodes with consumers in
// other cannot be moved.
func (g *Graph) MoveNode(other *Graph, id node.ID) (node.ID, error) {
	if other == g {
		if err := g.checkLive(id); err != nil {
			return node.Null, err
		}
		return id, nil
	}
	if err := other.checkLive(id); err != nil {
		return node.Null, err
	}
	if outputs := other.nodes[id].Outputs(); len(outputs) > 0 {
		return node.Null, fmt.Errorf("%w: %s is read by %v", ErrInvalidMove, id, outputs)
	}

	dst, err := g.CopyNode(other, id)
	if err != nil {
		return node.Null, err
	}
	other.removeNode(id)
	g.logger.Debug("Moved node.", "source_node", id, "node", dst)
	return dst, nil
}

// rollback removes freshly created nodes, newest first, without cascading.
func (g *Graph) rollback(created []node.ID) {
	for _, id := range slices.Backward(created) {
		n := g.nodes[id]
		for _, in := range n.Inputs() {
			g.nodes[in].RemoveOutput(id)
		}
		delete(g.index, n.Hash())
		g.nodes[id] = node.Node{}
		g.live--
	}
}
