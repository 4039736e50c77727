package linked

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabula/internal/tabular/tabulartest"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

func TestContract(t *testing.T) {
	tabulartest.Run(t, Factory{})
}

func TestNilTableCountsZero(t *testing.T) {
	var tbl *Table
	assert.Equal(t, 0, tbl.Count())
}

func TestFactoryName(t *testing.T) {
	assert.Equal(t, types.BackendLinked, Factory{}.Name())
}

// requireRing checks the ring's links and that the cursor names the node at
// its index.
func requireRing(t *testing.T, tbl *Table) {
	t.Helper()
	n, count := tbl.head.next, 0
	for n != tbl.head {
		require.Same(t, n, n.next.prev)
		require.Same(t, n, n.prev.next)
		if tbl.cursor.index == count {
			require.Same(t, n, tbl.cursor.node, "cursor node must sit at index %d", count)
		}
		n = n.next
		count++
	}
	require.Equal(t, tbl.size, count)
	require.Less(t, tbl.cursor.index, tbl.size)
}

func TestCursorStartsAtFirstNode(t *testing.T) {
	tbl, err := New(tabulartest.Squares())
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.cursor.index)
	assert.Same(t, tbl.head.next, tbl.cursor.node)
	requireRing(t, tbl)
}

func TestNodeAtUpdatesCursor(t *testing.T) {
	tbl, err := NewRange(0, 10, 50)
	require.NoError(t, err)

	for _, i := range []int{25, 26, 24, 0, 49, 48, 10, 30, 30} {
		n := tbl.nodeAt(i)
		assert.Equal(t, i, tbl.cursor.index)
		assert.Same(t, n, tbl.cursor.node)
		requireRing(t, tbl)

		x, err := tbl.XAt(i)
		require.NoError(t, err)
		assert.InDelta(t, float64(i)*10/49, x, 1e-12)
	}
}

func TestCursorAfterInsert(t *testing.T) {
	tests := []struct {
		name      string
		cursorAt  int
		insert    types.Point
		wantIndex int
	}{
		{name: "insert before cursor shifts it", cursorAt: 3, insert: types.NewPoint(0.5, 0), wantIndex: 4},
		{name: "insert at cursor shifts it", cursorAt: 2, insert: types.NewPoint(1.5, 0), wantIndex: 3},
		{name: "insert after cursor keeps it", cursorAt: 1, insert: types.NewPoint(3.5, 0), wantIndex: 1},
		{name: "append keeps it", cursorAt: 4, insert: types.NewPoint(9, 0), wantIndex: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := New(tabulartest.Squares())
			require.NoError(t, err)
			cached := tbl.nodeAt(tt.cursorAt)

			require.NoError(t, tbl.AddPoint(tt.insert))
			assert.Equal(t, tt.wantIndex, tbl.cursor.index)
			assert.Same(t, cached, tbl.cursor.node)
			requireRing(t, tbl)
		})
	}
}

func TestCursorAfterDelete(t *testing.T) {
	tests := []struct {
		name      string
		cursorAt  int
		remove    int
		wantIndex int
		wantX     float64
	}{
		{name: "delete interior re-points to successor", cursorAt: 0, remove: 2, wantIndex: 2, wantX: 3},
		{name: "delete tail re-points to predecessor", cursorAt: 0, remove: 4, wantIndex: 3, wantX: 3},
		{name: "delete head re-points to new first", cursorAt: 3, remove: 0, wantIndex: 0, wantX: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := New(tabulartest.Squares())
			require.NoError(t, err)
			tbl.nodeAt(tt.cursorAt)

			require.NoError(t, tbl.DeletePoint(tt.remove))
			assert.Equal(t, tt.wantIndex, tbl.cursor.index)
			assert.Equal(t, tt.wantX, tbl.cursor.node.point.X)
			requireRing(t, tbl)
		})
	}
}

func TestUnlinkShiftsCursorBehindRemovedNode(t *testing.T) {
	tbl, err := New(tabulartest.Squares())
	require.NoError(t, err)

	victim := tbl.nodeAt(1)
	cached := tbl.nodeAt(3)
	tbl.unlink(victim, 1)

	assert.Equal(t, 2, tbl.cursor.index)
	assert.Same(t, cached, tbl.cursor.node)
	requireRing(t, tbl)
}

func TestStaleCursorStillCorrect(t *testing.T) {
	tbl, err := New(tabulartest.Squares())
	require.NoError(t, err)

	tbl.cursor = cursor{node: tbl.head, index: -1}
	for i, want := range tabulartest.Squares() {
		p, err := tbl.PointAt(i)
		require.NoError(t, err)
		assert.Equal(t, want, p)
	}
}

func TestCloneResetsCursor(t *testing.T) {
	tbl, err := New(tabulartest.Squares())
	require.NoError(t, err)
	tbl.nodeAt(3)

	c, ok := tbl.Clone().(*Table)
	require.True(t, ok)
	assert.Equal(t, 0, c.cursor.index)
	assert.Same(t, c.head.next, c.cursor.node)
	assert.NotSame(t, tbl.head, c.head)
	requireRing(t, c)
}

func TestRandomEditsKeepRingConsistent(t *testing.T) {
	tbl, err := NewFromArrays([]float64{0, 100}, []float64{0, 0})
	require.NoError(t, err)

	for i := 1; i < 100; i += 2 {
		require.NoError(t, tbl.AddPoint(types.NewPoint(float64(i), float64(i))))
		requireRing(t, tbl)
	}
	for _, i := range []int{5, 0, 10, 3, 3, 20} {
		tbl.nodeAt(i)
		require.NoError(t, tbl.DeletePoint(i/2))
		requireRing(t, tbl)
	}
	tabulartest.RequireOrdered(t, tbl)
}
