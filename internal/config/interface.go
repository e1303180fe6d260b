package config

import (
	"context"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads manifests from files or directories, translates them into
	// the format-agnostic model and merges them into one Model.
	Load(ctx context.Context, paths ...string) (*Model, error)

	// LoadSource parses a single in-memory manifest, such as one embedded in
	// a kernel module, and merges it into model.
	LoadSource(ctx context.Context, model *Model, filename string, src []byte) error
}
