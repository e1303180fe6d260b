package node

import (
	"fmt"
	"math"
	"slices"

	"github.com/specialistvlad/planegraph/internal/hashing"
	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/internal/value"
)

// ID addresses a node slot within one graph. IDs are never reused.
type ID uint32

// Null is the "no node" sentinel.
const Null ID = math.MaxUint32

func (id ID) String() string {
	if id == Null {
		return "null"
	}
	return fmt.Sprintf("#%d", uint32(id))
}

// Node is one vertex of a computation graph. The zero Node is a tombstone.
type Node struct {
	op      registry.OpID
	dims    value.Dimensions
	inputs  []ID
	outputs []ID
	val     value.Value
	hash    hashing.Value
	rvalue  bool
	live    bool
}

// New returns a live node. The inputs slice is copied.
func New(op registry.OpID, dims value.Dimensions, inputs []ID, val value.Value, hash hashing.Value) Node {
	return Node{
		op:     op,
		dims:   dims,
		inputs: slices.Clone(inputs),
		val:    val,
		hash:   hash,
		live:   true,
	}
}

// Op is the node's operation.
func (n *Node) Op() registry.OpID { return n.op }

// Dims is the node's output dimensions.
func (n *Node) Dims() value.Dimensions { return n.dims }

// Inputs returns the producer ids in positional order. Callers must not
// modify the returned slice.
func (n *Node) Inputs() []ID { return n.inputs }

// Outputs returns the consumer ids in insertion order. Callers must not
// modify the returned slice.
func (n *Node) Outputs() []ID { return n.outputs }

// Value is the cached result; empty while pending.
func (n *Node) Value() value.Value { return n.val }

// Hash is the node's content hash.
func (n *Node) Hash() hashing.Value { return n.hash }

// IsRValue reports whether the node was tagged as a consumable temporary.
func (n *Node) IsRValue() bool { return n.rvalue }

// Live reports whether the slot holds a node rather than a tombstone.
func (n *Node) Live() bool { return n.live }

// Pending reports whether the cached value is empty.
func (n *Node) Pending() bool { return n.val.IsEmpty() }

// AddOutput records consumer as reading this node. Outputs form a set.
func (n *Node) AddOutput(consumer ID) {
	if !slices.Contains(n.outputs, consumer) {
		n.outputs = append(n.outputs, consumer)
	}
}

// RemoveOutput forgets consumer. It reports whether consumer was present.
func (n *Node) RemoveOutput(consumer ID) bool {
	i := slices.Index(n.outputs, consumer)
	if i < 0 {
		return false
	}
	n.outputs = slices.Delete(n.outputs, i, i+1)
	return true
}

// SetValue stores a computed result.
func (n *Node) SetValue(v value.Value) { n.val = v }

// ClearValue empties the cached result.
func (n *Node) ClearValue() { n.val = value.Empty() }

// SetRValue sets the r-value flag.
func (n *Node) SetRValue(v bool) { n.rvalue = v }

func (n *Node) String() string {
	if !n.live {
		return "tombstone"
	}
	return fmt.Sprintf("op=%d dims=%s inputs=%v outputs=%v hash=%s", n.op, n.dims, n.inputs, n.outputs, n.hash.Short())
}
