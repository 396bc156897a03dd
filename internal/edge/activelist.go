package edge

// ActiveList is the intrusive, sentinel-terminated, x-ordered list of edges
// currently crossing the scanline under the scan. It always holds an even
// number of real edges once a path has been fully threaded through.
type ActiveList struct {
	store *EdgeStore
}

// NewActiveList returns an active list threaded through store, initially
// empty (head linked directly to tail).
func NewActiveList(store *EdgeStore) *ActiveList {
	al := &ActiveList{store: store}
	al.Reset()
	return al
}

// Reset empties the list.
func (al *ActiveList) Reset() {
	al.store.At(headIndex).Next = tailIndex
}

// Empty reports whether no real edges are active.
func (al *ActiveList) Empty() bool {
	return al.store.At(headIndex).Next == tailIndex
}

// Insert splices the edge at edgeIdx into the list in ascending-X order.
// An edge whose X ties an already-active edge's is placed before it. The
// tail sentinel's MaxInt32 X always stops the scan, so it terminates.
func (al *ActiveList) Insert(edgeIdx int32) {
	x := al.store.At(edgeIdx).X
	prev := headIndex
	for {
		nextIdx := al.store.At(prev).Next
		if al.store.At(nextIdx).X >= x {
			break
		}
		prev = nextIdx
	}
	e := al.store.At(edgeIdx)
	e.Next = al.store.At(prev).Next
	al.store.At(prev).Next = edgeIdx
}

// Advance steps every active edge's DDA forward by one AA-subpixel
// scanline and removes edges whose span no longer covers nextY, the
// scanline about to be processed.
func (al *ActiveList) Advance(nextY int32) {
	prev := headIndex
	for {
		idx := al.store.At(prev).Next
		if idx == tailIndex {
			break
		}
		e := al.store.At(idx)
		e.X += e.Dx
		if e.ErrorDown > 0 {
			e.Error += e.ErrorUp
			if e.Error >= 0 {
				e.Error -= e.ErrorDown
				e.X++
			}
		}
		if e.EndY <= nextY {
			al.store.At(prev).Next = e.Next
			continue
		}
		prev = idx
	}
	al.bubbleSortByX()
}

// bubbleSortByX restores ascending-X order after a DDA step. Crossings are
// rare and local, so a bubble pass over the (typically short) active list
// is cheaper than a general sort.
func (al *ActiveList) bubbleSortByX() {
	for {
		swapped := false
		prev := headIndex
		for {
			aIdx := al.store.At(prev).Next
			if aIdx == tailIndex {
				break
			}
			bIdx := al.store.At(aIdx).Next
			if bIdx == tailIndex {
				break
			}
			if al.store.At(bIdx).X < al.store.At(aIdx).X {
				a := al.store.At(aIdx)
				b := al.store.At(bIdx)
				al.store.At(prev).Next = bIdx
				a.Next = b.Next
				b.Next = aIdx
				swapped = true
				prev = bIdx
			} else {
				prev = aIdx
			}
		}
		if !swapped {
			break
		}
	}
}

// Walk calls fn for every real edge currently active, in X order.
func (al *ActiveList) Walk(fn func(idx int32, e *Edge)) {
	idx := al.store.At(headIndex).Next
	for idx != tailIndex {
		e := al.store.At(idx)
		next := e.Next
		fn(idx, e)
		idx = next
	}
}

// Count returns the number of real edges currently active.
func (al *ActiveList) Count() int {
	n := 0
	al.Walk(func(int32, *Edge) { n++ })
	return n
}

// First returns the index of the first real active edge, or the tail
// sentinel index if the list is empty.
func (al *ActiveList) First() int32 {
	return al.store.At(headIndex).Next
}

// NextIndex returns the edge following idx in the active list.
func (al *ActiveList) NextIndex(idx int32) int32 {
	return al.store.At(idx).Next
}

// IsEnd reports whether idx is the tail sentinel, i.e. scanning has reached
// the end of the active list.
func (al *ActiveList) IsEnd(idx int32) bool {
	return idx == tailIndex
}

// EdgeAt returns the mutable edge record at idx, for direct field access
// (X, WindingDirection) by scanline fillers walking the list manually.
func (al *ActiveList) EdgeAt(idx int32) *Edge {
	return al.store.At(idx)
}
