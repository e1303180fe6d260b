// Package registry provides the central "glue" between operation manifests
// and the Go kernels that implement them.
//
// The Registry maps the string names used by expressions (e.g. "p.add_pp")
// to dense OpIDs, holds the typed, format-agnostic operation definitions
// loaded from manifests, and binds each operation to the compiled kernel
// named in its manifest.
//
// A registry is populated once at startup, validated to ensure the manifests
// and the Go code are in sync, and then frozen. The first graph created over
// a registry freezes it; after that it is read-only and may be shared by any
// number of graphs on any number of goroutines.
package registry
