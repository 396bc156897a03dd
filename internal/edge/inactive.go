package edge

import (
	"math"

	"github.com/gpufill/gpufill/internal/array"
)

type inactiveEntry struct {
	key     int64 // packed (startY, x) so numeric order equals (y, x) lexicographic order
	edgeIdx int32
}

func packYX(y, x int32) int64 {
	biasedX := int64(x) - math.MinInt32 // shift into [0, 2^32)
	return (int64(y) << 32) | biasedX
}

// InactiveArray is the sorted-by-(startY,x) array of not-yet-active edges,
// popped into the active list as the scan reaches each edge's start
// scanline.
type InactiveArray struct {
	entries []inactiveEntry
	pos     int
}

// BuildInactiveArray sorts every real edge in store by (StartY, X) using
// the pack's median-of-three quicksort (falling back to insertion sort for
// small subarrays), the same algorithm used for the teacher's general POD
// containers.
func BuildInactiveArray(store *EdgeStore) *InactiveArray {
	indices := store.RealIndices()
	entries := make([]inactiveEntry, len(indices))
	for i, idx := range indices {
		e := store.At(idx)
		entries[i] = inactiveEntry{key: packYX(e.StartY, e.X), edgeIdx: idx}
	}
	array.QuickSortSlice(entries, func(a, b inactiveEntry) bool { return array.Int64Less(a.key, b.key) })
	return &InactiveArray{entries: entries}
}

// NextStartY returns the StartY of the next not-yet-activated edge, or
// math.MaxInt32 once the array is exhausted — the sentinel value a scan
// driver compares its current scanline against to know when to stop
// polling this array.
func (ia *InactiveArray) NextStartY() int32 {
	if ia.pos >= len(ia.entries) {
		return math.MaxInt32
	}
	return int32(ia.entries[ia.pos].key >> 32)
}

// InsertReady splices every edge whose StartY equals y into active, in
// array order (already x-sorted within a shared y by construction).
func (ia *InactiveArray) InsertReady(y int32, active *ActiveList) {
	for ia.pos < len(ia.entries) && int32(ia.entries[ia.pos].key>>32) == y {
		active.Insert(ia.entries[ia.pos].edgeIdx)
		ia.pos++
	}
}

// Done reports whether every edge has been activated.
func (ia *InactiveArray) Done() bool {
	return ia.pos >= len(ia.entries)
}
