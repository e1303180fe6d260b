// Package graph implements the lazy, hash-consed computation graph.
//
// A Graph is an arena of nodes addressed by node.ID. Each node names a
// registry operation, its output dimensions and its ordered inputs. Building
// an expression only adds nodes; nothing is computed until a value is
// demanded through GetValue, which evaluates the required subgraph inputs
// first and memoizes every result in the node that produced it.
//
// # Structural Sharing
//
// Every node carries a content hash folded from its operation, dimensions and
// the hashes of its inputs (constants also fold their value). The graph keeps
// a hash index, so adding a node that is structurally identical to a live one
// returns the existing id instead of allocating:
//
//	a, _ := g.AddConstant(value.Number(2))
//	b, _ := g.AddConstant(value.Number(3))
//	x, _ := g.AddNodeByName("n.add_nn", value.NullDims, a, b)
//	y, _ := g.AddNodeByName("n.add_nn", value.NullDims, a, b)
//	// x == y
//
// # Lifetime
//
// Handles outside the graph pin nodes with Reference and release them with
// Unreference. A node stays alive while it has a root reference or a live
// consumer. When the last root of an unconsumed node goes away the node is
// removed, and the removal cascades through inputs that are left with
// neither roots nor consumers. Slots are never reused: a removed node leaves
// a tombstone, so the arena only grows.
//
// # Moving Work Between Graphs
//
// CopyNode reproduces a node and its whole input subgraph in another graph,
// carrying cached values along, so work already done is not repeated.
// MoveNode does the same and then removes the source node; it is only legal
// when nothing in the source graph consumes the node.
//
// # Thread-Safety
//
// A Graph is not safe for concurrent use. Independent graphs over the same
// frozen registry may be used from different goroutines.
package graph
