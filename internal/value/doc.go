// Package value defines the dynamically typed value slot carried by graph
// nodes, the plane payload type, and node dimensions.
//
// A Value wraps a cty.Value. Scalars, strings and booleans use the cty
// primitive types; planes are carried as a cty capsule (PlaneType) so they
// keep their native layout. Extraction into a concrete Go type goes through
// As, which fails with ErrBadValueType when the dynamic type does not match.
package value
