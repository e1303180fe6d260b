// Package app wires the library together for a host program: it builds the
// logger, loads operation manifests, registers the compiled kernel modules,
// validates the registry and freezes it, decoupled from any specific
// entrypoint.
package app
