package graph

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/planegraph/internal/hashing"
	"github.com/specialistvlad/planegraph/internal/node"
	"github.com/specialistvlad/planegraph/internal/registry"
)

// Graph is an arena of nodes over one registry.
type Graph struct {
	reg    *registry.Registry
	logger *slog.Logger

	nodes []node.Node
	index map[hashing.Value]node.ID
	roots map[node.ID]uint32
	live  int
}

// New creates an empty graph. The registry is frozen, if it is not already.
func New(reg *registry.Registry) *Graph {
	reg.Freeze()
	return &Graph{
		reg:    reg,
		logger: reg.Logger(),
		index:  make(map[hashing.Value]node.ID),
		roots:  make(map[node.ID]uint32),
	}
}

// Registry returns the registry the graph was built over.
func (g *Graph) Registry() *registry.Registry {
	return g.reg
}

// Size is the arena length, tombstones included.
func (g *Graph) Size() int {
	return len(g.nodes)
}

// Live is the number of live nodes.
func (g *Graph) Live() int {
	return g.live
}

// Node returns a copy of the node record.
func (g *Graph) Node(id node.ID) (node.Node, error) {
	if err := g.checkLive(id); err != nil {
		return node.Node{}, err
	}
	return g.nodes[id], nil
}

// Lookup returns the live node with the given hash, or node.Null.
func (g *Graph) Lookup(h hashing.Value) node.ID {
	if id, ok := g.index[h]; ok {
		return id
	}
	return node.Null
}

// RootCount is the number of external references held on id.
func (g *Graph) RootCount(id node.ID) uint32 {
	return g.roots[id]
}

// OutputCount is the number of live consumers of id.
func (g *Graph) OutputCount(id node.ID) int {
	if g.checkLive(id) != nil {
		return 0
	}
	return len(g.nodes[id].Outputs())
}

// Pending reports whether id has no cached value. Invalid ids are pending.
func (g *Graph) Pending(id node.ID) bool {
	if g.checkLive(id) != nil {
		return true
	}
	return g.nodes[id].Pending()
}

// Reference adds an external root reference to id. A referenced node is no
// longer treated as a temporary.
func (g *Graph) Reference(id node.ID) error {
	if err := g.checkLive(id); err != nil {
		return err
	}
	g.roots[id]++
	g.nodes[id].SetRValue(false)
	return nil
}

// Unreference drops one root reference from id. When the last root of a
// node without consumers is dropped, the node is removed. Unreferencing a
// removed node only settles its root count.
func (g *Graph) Unreference(id node.ID) error {
	if int(id) >= len(g.nodes) {
		return fmt.Errorf("%w: %s", ErrInvalidNodeID, id)
	}
	count, ok := g.roots[id]
	if !ok {
		return fmt.Errorf("%w: %s is not referenced", ErrInvalidNodeID, id)
	}
	if count > 1 {
		g.roots[id] = count - 1
		return nil
	}
	delete(g.roots, id)

	n := &g.nodes[id]
	if n.Live() && len(n.Outputs()) == 0 {
		g.removeNode(id)
	}
	return nil
}

// TagRValue marks id as a consumable temporary. Referenced nodes are left
// untouched.
func (g *Graph) TagRValue(id node.ID) error {
	if err := g.checkLive(id); err != nil {
		return err
	}
	if roots := g.roots[id]; roots > 0 {
		g.logger.Debug("Node is referenced, not tagging as r-value.", "node", id, "roots", roots)
		return nil
	}
	g.nodes[id].SetRValue(true)
	return nil
}

// IsRValue reports whether id is tagged as a consumable temporary.
func (g *Graph) IsRValue(id node.ID) bool {
	if g.checkLive(id) != nil {
		return false
	}
	return g.nodes[id].IsRValue()
}

func (g *Graph) checkLive(id node.ID) error {
	if int64(id) >= int64(len(g.nodes)) {
		return fmt.Errorf("%w: %s out of range", ErrInvalidNodeID, id)
	}
	if !g.nodes[id].Live() {
		return fmt.Errorf("%w: %s was removed", ErrInvalidNodeID, id)
	}
	return nil
}
