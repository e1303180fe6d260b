package graph

import (
	"fmt"

	"github.com/specialistvlad/planegraph/internal/node"
)

// RemoveNode removes id and cascades to inputs left with neither roots nor
// consumers. Nodes that still have consumers or roots cannot be removed.
func (g *Graph) RemoveNode(id node.ID) error {
	if err := g.checkLive(id); err != nil {
		return err
	}
	if outputs := g.nodes[id].Outputs(); len(outputs) > 0 {
		return fmt.Errorf("%w: %s is read by %v", ErrNodeInUse, id, outputs)
	}
	if roots := g.roots[id]; roots > 0 {
		return fmt.Errorf("%w: %s is held by %d references", ErrNodeInUse, id, roots)
	}
	g.removeNode(id)
	return nil
}

// removeNode tombstones id and walks the cascade breadth-first.
func (g *Graph) removeNode(id node.ID) {
	removed := 0
	queue := []node.ID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		n := g.nodes[cur]
		if !n.Live() {
			continue
		}
		if idx, ok := g.index[n.Hash()]; ok && idx == cur {
			delete(g.index, n.Hash())
		}
		g.nodes[cur] = node.Node{}
		g.live--
		removed++

		for _, in := range n.Inputs() {
			producer := &g.nodes[in]
			producer.RemoveOutput(cur)
			if producer.Live() && len(producer.Outputs()) == 0 && g.roots[in] == 0 {
				queue = append(queue, in)
			}
		}
	}
	g.logger.Debug("Removed nodes.", "node", id, "count", removed)
}
