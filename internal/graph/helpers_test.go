package graph

import (
	"context"
	"testing"

	"github.com/specialistvlad/planegraph/internal/node"
	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/internal/testutil"
	"github.com/specialistvlad/planegraph/internal/value"
	"github.com/stretchr/testify/require"
)

// newTestRegistry boots a registry with the counting module only.
func newTestRegistry(t *testing.T) (*registry.Registry, *testutil.CountingModule) {
	t.Helper()
	counting := testutil.NewCountingModule()
	h := testutil.NewHarness(t, counting)
	return h.Registry(), counting
}

// createTestGraph creates an empty graph over a fresh counting registry.
func createTestGraph(t *testing.T) (*Graph, *testutil.CountingModule) {
	t.Helper()
	reg, counting := newTestRegistry(t)
	return New(reg), counting
}

func addConstant(t *testing.T, g *Graph, f float64) node.ID {
	t.Helper()
	id, err := g.AddConstant(value.Number(f))
	require.NoError(t, err)
	return id
}

func addOp(t *testing.T, g *Graph, opname string, inputs ...node.ID) node.ID {
	t.Helper()
	id, err := g.AddNodeByName(opname, value.NullDims, inputs...)
	require.NoError(t, err)
	return id
}

func numberOf(t *testing.T, g *Graph, id node.ID) float64 {
	t.Helper()
	v, err := g.GetValue(context.Background(), id)
	require.NoError(t, err)
	f, err := value.As[float64](v)
	require.NoError(t, err)
	return f
}
