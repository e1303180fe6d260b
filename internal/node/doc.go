// Package node defines the vertex record stored in a graph's arena and the
// arena-local identifier used to address it.
//
// A Node's operation, dimensions, inputs and hash are fixed at birth. Its
// outputs (the consumers that read it), its cached value and its r-value
// flag change over its life and are only mutated by the owning graph.
package node
