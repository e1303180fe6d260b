package computed

import (
	"errors"

	"github.com/specialistvlad/planegraph/internal/graph"
)

var (
	// ErrMixedRegistry is returned when operands were built over different
	// registries.
	ErrMixedRegistry = graph.ErrMixedRegistry

	// ErrNoGraph is returned when an empty or released Value is used.
	ErrNoGraph = errors.New("value has no graph")
)
