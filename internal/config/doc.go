// Package config defines the format-agnostic model of operation manifests,
// along with the Loader interface for reading manifests from a concrete
// source format.
//
// The config.Model is what the registry is populated from. Concrete loaders,
// such as the HCL one in package manifest, live in separate packages.
package config
