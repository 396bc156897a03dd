package edge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEdgeStoreHasSentinels(t *testing.T) {
	s := NewEdgeStore()
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, int32(math.MinInt32), s.At(headIndex).X)
	assert.Equal(t, int32(math.MaxInt32), s.At(tailIndex).X)
}

func TestAddIncreasesCount(t *testing.T) {
	s := NewEdgeStore()
	s.Add(Edge{StartY: 0, EndY: 16})
	s.Add(Edge{StartY: 0, EndY: 16})
	assert.Equal(t, 2, s.Count())
	require.Len(t, s.RealIndices(), 2)
}

func TestActiveListInsertKeepsXOrder(t *testing.T) {
	s := NewEdgeStore()
	i1 := s.Add(Edge{X: 30})
	i2 := s.Add(Edge{X: 10})
	i3 := s.Add(Edge{X: 20})

	al := NewActiveList(s)
	al.Insert(i1)
	al.Insert(i2)
	al.Insert(i3)

	var xs []int32
	al.Walk(func(_ int32, e *Edge) { xs = append(xs, e.X) })
	assert.Equal(t, []int32{10, 20, 30}, xs)
	assert.Equal(t, 3, al.Count())
}

func TestActiveListAdvanceDropsExpiredEdges(t *testing.T) {
	s := NewEdgeStore()
	i1 := s.Add(Edge{X: 0, Dx: 1, EndY: 16})
	i2 := s.Add(Edge{X: 100, Dx: 0, EndY: 32})

	al := NewActiveList(s)
	al.Insert(i1)
	al.Insert(i2)

	al.Advance(16)

	assert.Equal(t, 1, al.Count())
	al.Walk(func(idx int32, e *Edge) {
		assert.Equal(t, i2, idx)
		assert.Equal(t, int32(100), e.X)
	})
}

func TestActiveListAdvanceReordersOnCrossing(t *testing.T) {
	s := NewEdgeStore()
	left := s.Add(Edge{X: 0, Dx: 20, EndY: 64})
	right := s.Add(Edge{X: 10, Dx: 0, EndY: 64})

	al := NewActiveList(s)
	al.Insert(left)
	al.Insert(right)

	al.Advance(16) // left steps to X=20, crossing right at X=10

	var order []int32
	al.Walk(func(idx int32, _ *Edge) { order = append(order, idx) })
	assert.Equal(t, []int32{right, left}, order)
}

func TestBuildInactiveArraySortsByStartYThenX(t *testing.T) {
	s := NewEdgeStore()
	s.Add(Edge{StartY: 32, X: 5})
	s.Add(Edge{StartY: 16, X: 50})
	s.Add(Edge{StartY: 16, X: 10})

	ia := BuildInactiveArray(s)

	assert.Equal(t, int32(16), ia.NextStartY())
}

func TestInactiveArrayInsertReadyActivatesInOrder(t *testing.T) {
	s := NewEdgeStore()
	s.Add(Edge{StartY: 16, X: 50})
	s.Add(Edge{StartY: 16, X: 10})
	s.Add(Edge{StartY: 32, X: 5})

	ia := BuildInactiveArray(s)
	al := NewActiveList(s)

	ia.InsertReady(16, al)

	var xs []int32
	al.Walk(func(_ int32, e *Edge) { xs = append(xs, e.X) })
	assert.Equal(t, []int32{10, 50}, xs)
	assert.Equal(t, int32(32), ia.NextStartY())
	assert.False(t, ia.Done())

	ia.InsertReady(32, al)
	assert.True(t, ia.Done())
}
