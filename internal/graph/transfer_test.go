package graph

import (
	"testing"

	"github.com/specialistvlad/planegraph/internal/node"
	"github.com/specialistvlad/planegraph/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyNode_CarriesValuesAndShares(t *testing.T) {
	reg, counting := newTestRegistry(t)
	src := New(reg)
	dst := New(reg)

	a := addConstant(t, src, 2)
	b := addConstant(t, src, 3)
	x := addOp(t, src, "t.add", a, b)
	assert.Equal(t, 5.0, numberOf(t, src, x))

	existing := addConstant(t, dst, 3)

	cx, err := dst.CopyNode(src, x)
	require.NoError(t, err)
	assert.Equal(t, 3, dst.Live(), "the constant 3 is shared")
	assert.False(t, dst.Pending(cx), "cached values travel with the copy")
	assert.Equal(t, 5.0, numberOf(t, dst, cx))
	assert.Equal(t, 1, counting.Calls("t.add"))

	n := mustNode(t, dst, cx)
	assert.Equal(t, mustNode(t, src, x).Hash(), n.Hash())
	assert.Equal(t, existing, n.Inputs()[1])
	assert.Equal(t, 3, src.Live(), "the source is untouched")

	again, err := dst.CopyNode(src, x)
	require.NoError(t, err)
	assert.Equal(t, cx, again, "copying twice converges on the same node")
	assert.Equal(t, 3, dst.Live())
}

func TestCopyNode_Diamond(t *testing.T) {
	reg, _ := newTestRegistry(t)
	src := New(reg)
	dst := New(reg)

	a := addConstant(t, src, 2)
	l := addOp(t, src, "t.neg", a)
	r := addOp(t, src, "t.add", a, a)
	top := addOp(t, src, "t.add", l, r)

	ct, err := dst.CopyNode(src, top)
	require.NoError(t, err)
	assert.Equal(t, 4, dst.Live())
	assert.Equal(t, 2.0, numberOf(t, dst, ct))
}

func TestCopyNode_SameGraph(t *testing.T) {
	g, _ := createTestGraph(t)
	a := addConstant(t, g, 2)

	id, err := g.CopyNode(g, a)
	require.NoError(t, err)
	assert.Equal(t, a, id)
	assert.Equal(t, 1, g.Size())

	_, err = g.CopyNode(g, 7)
	assert.ErrorIs(t, err, ErrInvalidNodeID)
}

func TestCopyNode_Errors(t *testing.T) {
	reg, _ := newTestRegistry(t)
	otherReg, _ := newTestRegistry(t)
	src := New(reg)
	a := addConstant(t, src, 2)

	_, err := New(otherReg).CopyNode(src, a)
	assert.ErrorIs(t, err, ErrMixedRegistry)

	_, err = New(reg).CopyNode(src, 5)
	assert.ErrorIs(t, err, ErrInvalidNodeID)
}

func TestCopyNode_RollsBackOnFailure(t *testing.T) {
	reg, _ := newTestRegistry(t)
	src := New(reg)
	dst := New(reg)

	a := addConstant(t, src, 2)
	b := addConstant(t, src, 3)
	x := addOp(t, src, "t.add", a, b)

	// Occupy x's hash in dst with an unrelated node.
	squatter, _, err := dst.insert(reg.ConstantOp(), value.NullDims, nil, value.Number(9), mustNode(t, src, x).Hash())
	require.NoError(t, err)

	_, err = dst.CopyNode(src, x)
	require.ErrorIs(t, err, ErrHashCollision)
	assert.Equal(t, 1, dst.Live(), "nodes created by the failed copy are removed")
	assert.Equal(t, node.Null, dst.Lookup(mustNode(t, src, a).Hash()))
	assert.Equal(t, node.Null, dst.Lookup(mustNode(t, src, b).Hash()))
	assert.Equal(t, squatter, dst.Lookup(mustNode(t, src, x).Hash()))
	assert.Equal(t, 3, src.Live())
}

func TestMoveNode(t *testing.T) {
	reg, _ := newTestRegistry(t)
	src := New(reg)
	dst := New(reg)

	a := addConstant(t, src, 2)
	b := addConstant(t, src, 3)
	keep := addOp(t, src, "t.neg", b)
	require.NoError(t, src.Reference(keep))
	x := addOp(t, src, "t.add", a, b)
	require.NoError(t, src.Reference(x))

	mx, err := dst.MoveNode(src, x)
	require.NoError(t, err)
	assert.Equal(t, 3, dst.Live())
	assert.Equal(t, 5.0, numberOf(t, dst, mx))

	_, err = src.Node(x)
	assert.ErrorIs(t, err, ErrInvalidNodeID, "the source node is gone")
	_, err = src.Node(a)
	assert.ErrorIs(t, err, ErrInvalidNodeID, "inputs nothing else holds go with it")
	assert.Equal(t, 2, src.Live(), "b is still read by keep")

	assert.EqualValues(t, 1, src.RootCount(x), "the caller still owns the old root")
	require.NoError(t, src.Unreference(x))
	assert.Equal(t, 2, src.Live())
}

func TestMoveNode_Errors(t *testing.T) {
	reg, _ := newTestRegistry(t)
	src := New(reg)
	dst := New(reg)

	a := addConstant(t, src, 2)
	addOp(t, src, "t.neg", a)

	_, err := dst.MoveNode(src, a)
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Zero(t, dst.Live())
	assert.Equal(t, 2, src.Live())

	_, err = dst.MoveNode(src, 9)
	assert.ErrorIs(t, err, ErrInvalidNodeID)

	id, err := src.MoveNode(src, a)
	require.NoError(t, err)
	assert.Equal(t, a, id)
}
