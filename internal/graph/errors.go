package graph

import "errors"

var (
	// ErrInvalidNodeID is returned for ids that are out of range or refer to
	// a removed node.
	ErrInvalidNodeID = errors.New("invalid node id")

	// ErrArityMismatch is returned when the number of inputs does not match
	// the operation's arity.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrHashCollision is returned when two structurally different nodes
	// produce the same content hash.
	ErrHashCollision = errors.New("hash collision")

	// ErrInvalidMove is returned when moving a node that still has consumers
	// in its source graph.
	ErrInvalidMove = errors.New("invalid move")

	// ErrNodeInUse is returned when removing a node that still has consumers
	// or references.
	ErrNodeInUse = errors.New("node in use")

	// ErrMixedRegistry is returned when two graphs built over different
	// registries exchange nodes.
	ErrMixedRegistry = errors.New("mixed registry")
)
