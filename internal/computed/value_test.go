package computed

import (
	"context"
	"math"
	"testing"

	"github.com/specialistvlad/planegraph/internal/graph"
	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/internal/testutil"
	"github.com/specialistvlad/planegraph/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return testutil.NewHarness(t).Registry()
}

func constant(t *testing.T, reg *registry.Registry, f float64) *Value[float64] {
	t.Helper()
	v, err := Constant(reg, f)
	require.NoError(t, err)
	return v
}

func compute[T any](t *testing.T, v *Value[T]) T {
	t.Helper()
	out, err := v.Compute(context.Background())
	require.NoError(t, err)
	return out
}

func TestNew_AddsAndSharesStructure(t *testing.T) {
	reg := newTestRegistry(t)
	x := constant(t, reg, 2.0)
	y := constant(t, reg, 3.0)
	require.NotSame(t, x.Graph(), y.Graph(), "constants start in graphs of their own")

	z, err := New[float64](reg, "n.add_nn", value.NullDims, x, y)
	require.NoError(t, err)
	assert.Same(t, x.Graph(), z.Graph(), "the first operand's graph is the target")
	assert.True(t, z.Pending())
	assert.Equal(t, 5.0, compute(t, z))
	assert.False(t, z.Pending())

	w, err := New[float64](reg, "n.add_nn", value.NullDims, x, y)
	require.NoError(t, err)
	assert.Same(t, z.Graph(), w.Graph())
	assert.Equal(t, z.ID(), w.ID(), "identical expressions share a node")
	assert.False(t, w.Pending(), "and its cached value")

	assert.False(t, y.Empty(), "operands used by reference stay valid")
	assert.Equal(t, 3.0, compute(t, y))
}

func TestNew_MergeOrder(t *testing.T) {
	reg := newTestRegistry(t)
	x := constant(t, reg, 2.0)
	y := constant(t, reg, 5.0)

	xy, err := New[float64](reg, "n.sub_nn", value.NullDims, x, y)
	require.NoError(t, err)
	yx, err := New[float64](reg, "n.sub_nn", value.NullDims, y, x)
	require.NoError(t, err)

	assert.Same(t, x.Graph(), xy.Graph())
	assert.Same(t, y.Graph(), yx.Graph())
	assert.Equal(t, -3.0, compute(t, xy))
	assert.Equal(t, 3.0, compute(t, yx))
}

func TestNew_ConstantOperands(t *testing.T) {
	reg := newTestRegistry(t)

	v, err := New[float64](reg, "n.mul_nn", value.NullDims, 4, float32(2.5))
	require.NoError(t, err)
	assert.NotNil(t, v.Graph(), "a fresh graph is created when no operand has one")
	assert.Equal(t, 10.0, compute(t, v))

	x := constant(t, reg, 1.0)
	sum, err := New[float64](reg, "n.add_nn", value.NullDims, value.Number(2), x)
	require.NoError(t, err)
	assert.Same(t, x.Graph(), sum.Graph(), "constants do not choose the graph")
	assert.Equal(t, 3.0, compute(t, sum))
}

func TestNew_Errors(t *testing.T) {
	reg := newTestRegistry(t)
	otherReg := newTestRegistry(t)

	x := constant(t, reg, 2.0)
	foreign := constant(t, otherReg, 2.0)
	released := constant(t, reg, 1.0)
	released.Release()
	var nilValue *Value[float64]

	testCases := []struct {
		name     string
		opname   string
		operands []any
		target   error
	}{
		{name: "unknown operation", opname: "n.pow", operands: []any{x, x}, target: registry.ErrUnknownOperation},
		{name: "too few operands", opname: "n.add_nn", operands: []any{x}, target: graph.ErrArityMismatch},
		{name: "mixed registry", opname: "n.add_nn", operands: []any{x, foreign}, target: ErrMixedRegistry},
		{name: "released handle", opname: "n.add_nn", operands: []any{x, released}, target: ErrNoGraph},
		{name: "nil handle", opname: "n.add_nn", operands: []any{nilValue, x}, target: ErrNoGraph},
		{name: "nil temporary", opname: "n.neg", operands: []any{Temp(nil)}, target: ErrNoGraph},
		{name: "unconvertible constant", opname: "n.add_nn", operands: []any{x, make(chan int)}, target: value.ErrBadValueType},
		{name: "nil constant", opname: "n.add_nn", operands: []any{x, nil}, target: value.ErrBadValueType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := x.Graph().Size()
			v, err := New[float64](reg, tc.opname, value.NullDims, tc.operands...)
			assert.ErrorIs(t, err, tc.target)
			assert.Nil(t, v)
			assert.Equal(t, before, x.Graph().Size(), "a failed New leaves the graph untouched")
		})
	}
}

func TestTemp_MovesUnsharedNode(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	tmp, err := New[float64](reg, "n.neg", value.NullDims, 2.0)
	require.NoError(t, err)
	source := tmp.Graph()
	require.Equal(t, 2, source.Live())

	b := constant(t, reg, 1.0)
	c, err := New[float64](reg, "n.add_nn", value.NullDims, b, Temp(tmp))
	require.NoError(t, err)

	assert.True(t, tmp.Empty(), "the temporary handle is released")
	assert.Zero(t, source.Live(), "the moved subgraph leaves its source graph")

	n, err := c.Graph().Node(c.ID())
	require.NoError(t, err)
	moved := n.Inputs()[1]
	assert.True(t, c.Graph().IsRValue(moved))

	out, err := c.Compute(ctx)
	require.NoError(t, err)
	assert.Equal(t, -1.0, out)
	assert.True(t, c.Graph().Pending(moved), "a consumed temporary drops its value")
}

func TestTemp_SharedNodeIsCopied(t *testing.T) {
	reg := newTestRegistry(t)

	tmp, err := New[float64](reg, "n.neg", value.NullDims, 2.0)
	require.NoError(t, err)
	keep := tmp.Clone()

	b := constant(t, reg, 1.0)
	c, err := New[float64](reg, "n.add_nn", value.NullDims, b, Temp(tmp))
	require.NoError(t, err)

	assert.True(t, tmp.Empty())
	assert.False(t, keep.Empty())
	assert.Equal(t, -2.0, compute(t, keep), "the clone still works in the source graph")
	assert.Equal(t, -1.0, compute(t, c))
}

func TestTemp_SameGraph(t *testing.T) {
	reg := newTestRegistry(t)
	a := constant(t, reg, 2.0)
	tmp, err := New[float64](reg, "n.neg", value.NullDims, a)
	require.NoError(t, err)
	id := tmp.ID()

	c, err := New[float64](reg, "n.neg", value.NullDims, Temp(tmp))
	require.NoError(t, err)
	assert.Same(t, a.Graph(), c.Graph())
	assert.True(t, tmp.Empty())
	assert.True(t, c.Graph().IsRValue(id))
	assert.Zero(t, c.Graph().RootCount(id))
	assert.Equal(t, 2.0, compute(t, c))
}

func TestTemp_AllOperandsTemporary(t *testing.T) {
	reg := newTestRegistry(t)
	tmp, err := New[float64](reg, "n.neg", value.NullDims, 3.0)
	require.NoError(t, err)
	b := constant(t, reg, 0.0)

	c, err := New[float64](reg, "n.add_nn", value.NullDims, Temp(b), Temp(tmp))
	require.NoError(t, err)
	assert.Equal(t, -3.0, compute(t, c))

	d, err := New[float64](reg, "n.mul_nn", value.NullDims, c, c)
	require.NoError(t, err)
	assert.Equal(t, 9.0, compute(t, d))

	twice, err := New[float64](reg, "n.add_nn", value.NullDims, Temp(d), Temp(d))
	require.NoError(t, err)
	assert.True(t, d.Empty())
	assert.Equal(t, 18.0, compute(t, twice))
}

func TestCompute(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()
	x := constant(t, reg, 2.0)

	t.Run("empty handle", func(t *testing.T) {
		var empty Value[float64]
		_, err := empty.Compute(ctx)
		assert.ErrorIs(t, err, ErrNoGraph)
	})

	t.Run("wrong result type", func(t *testing.T) {
		asPlane, err := New[value.Plane](reg, "n.neg", value.NullDims, x)
		require.NoError(t, err)
		_, err = asPlane.Compute(ctx)
		assert.ErrorIs(t, err, value.ErrBadValueType)
	})

	t.Run("raw value", func(t *testing.T) {
		raw, err := New[value.Value](reg, "n.neg", value.NullDims, x)
		require.NoError(t, err)
		out := compute(t, raw)
		assert.Equal(t, "-2", out.String())
	})

	t.Run("NaN constant", func(t *testing.T) {
		var v *Value[float64]
		var err error
		require.NotPanics(t, func() { v, err = Constant(reg, math.NaN()) })
		assert.ErrorIs(t, err, value.ErrBadValueType)
		assert.Nil(t, v)
	})

	t.Run("integer result", func(t *testing.T) {
		i, err := Constant(reg, 7)
		require.NoError(t, err)
		assert.Equal(t, 7, compute(t, i))
	})
}

func TestCloneAndRelease(t *testing.T) {
	reg := newTestRegistry(t)
	x := constant(t, reg, 2.0)
	y := constant(t, reg, 3.0)
	z, err := New[float64](reg, "n.add_nn", value.NullDims, x, y)
	require.NoError(t, err)
	g := z.Graph()

	clone := z.Clone()
	assert.Equal(t, z.ID(), clone.ID())
	assert.EqualValues(t, 2, g.RootCount(z.ID()))

	z.Release()
	assert.True(t, z.Empty())
	assert.True(t, z.Pending())
	z.Release()
	assert.Equal(t, 5.0, compute(t, clone))

	x.Release()
	y.Release()
	assert.NotZero(t, g.Live(), "the clone keeps its inputs alive")

	clone.Release()
	assert.Zero(t, g.Live(), "nothing is left once every handle is released")

	var empty Value[float64]
	assert.True(t, empty.Clone().Empty())
}

func TestDims(t *testing.T) {
	reg := newTestRegistry(t)
	dims, err := value.NewDimensions(4, 2)
	require.NoError(t, err)

	p, err := New[value.Plane](reg, "p.fill", dims, 1.5)
	require.NoError(t, err)
	assert.Equal(t, dims, p.Dims())

	plane := compute(t, p)
	assert.Equal(t, 4, plane.Width)
	assert.Equal(t, float32(1.5), plane.At(3, 1))

	pc, err := Constant(reg, value.FilledPlane(3, 3, 0))
	require.NoError(t, err)
	assert.Equal(t, value.Dimensions{X: 3, Y: 3}, pc.Dims())

	var empty Value[float64]
	assert.Equal(t, value.NullDims, empty.Dims())
}
