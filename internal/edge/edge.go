// Package edge builds the DDA edge table from a flattened path and drives
// the active-edge-list scan used by the scanline filler: an edge store
// (chunked, append-only), a sorted inactive array, and an intrusive
// sentinel-terminated active list threaded through the edges themselves.
package edge

import (
	"math"

	"github.com/gpufill/gpufill/internal/array"
)

// Edge is one monotone-in-y DDA segment. All coordinates are raster units:
// 28.4 fixed point (internal/fixed.Scale, 1/16 device pixel) further scaled
// by the AA subpixel shift (internal/fixed.AAShift), so 1 raster unit is
// 1/128 of a device pixel and one AA-subpixel scanline is
// internal/fixed.Scale (16) raster-Y units.
type Edge struct {
	StartY, EndY int32 // raster Y; EndY exclusive, both AA-row aligned
	X            int32 // current raster X on the active scanline
	Dx           int32 // integer X step per AA-subpixel scanline
	ErrorUp      int32 // DDA error increment per step
	ErrorDown    int32 // DDA error modulus: the edge's AA-row count (always > 0 from InitializeEdges)
	Error        int32 // accumulator; invariant error ∈ [-ErrorDown, 0)

	WindingDirection int32 // +1 or -1, sign of the transformed dy before the endpoints are ordered by y

	// Next is the active-list link: an index into the owning EdgeStore.
	// Unused while an edge sits only in the inactive array.
	Next int32
}

const (
	headIndex     int32 = 0
	tailIndex     int32 = 1
	firstRealSlot int32 = 2
)

// EdgeStore is an append-only chunked pool of edges, built on the same
// block-vector the rest of the pack uses for growable POD storage. Index 0
// and 1 are reserved head/tail sentinels for the intrusive active list;
// real edges start at index 2.
type EdgeStore struct {
	edges *array.PodBVector[Edge]
}

// NewEdgeStore returns an empty store with its sentinels installed.
func NewEdgeStore() *EdgeStore {
	s := &EdgeStore{edges: array.NewPodBVector[Edge]()}
	s.edges.Add(Edge{X: math.MinInt32, Next: tailIndex})
	s.edges.Add(Edge{X: math.MaxInt32, Next: tailIndex})
	return s
}

// Add appends e and returns its index.
func (s *EdgeStore) Add(e Edge) int32 {
	idx := int32(s.edges.Size())
	s.edges.Add(e)
	return idx
}

// At returns a stable pointer to the edge at idx (sentinels included).
func (s *EdgeStore) At(idx int32) *Edge {
	return s.edges.Ptr(int(idx))
}

// Count returns the number of real (non-sentinel) edges.
func (s *EdgeStore) Count() int {
	return s.edges.Size() - int(firstRealSlot)
}

// RealIndices returns the indices of every real edge, in store order (not
// sorted), for the inactive array builder to consume.
func (s *EdgeStore) RealIndices() []int32 {
	n := s.Count()
	if n <= 0 {
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = firstRealSlot + int32(i)
	}
	return out
}
