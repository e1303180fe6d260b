// Package computed provides Value, the typed handle through which callers
// build and read lazy expressions.
//
// A Value pins one node of a graph. Creating a Value from operands adds a
// node to the graph of the first operand that has one; operands living in
// other graphs are copied in, or moved in when they are passed as
// temporaries with Temp. Nothing is evaluated until Compute is called.
//
//	x, _ := computed.Constant(reg, 2.0)
//	y, _ := computed.Constant(reg, 3.0)
//	z, _ := computed.New[float64](reg, "n.add_nn", value.NullDims, x, y)
//	v, _ := z.Compute(ctx) // 5
//
// Values must be released with Release when no longer needed; the graph
// frees nodes that are neither referenced by a Value nor read by another
// node.
package computed
