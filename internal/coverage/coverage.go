// Package coverage implements the per-scanline antialiased coverage buffer:
// a sorted, sentinel-terminated linked list of (pixelX, coverage) intervals
// spanning one AA-subpixel scanline, rebuilt from the active edge list and
// reset (not freed) between scanlines.
package coverage

import (
	"math"

	"github.com/gpufill/gpufill/internal/array"
	"github.com/gpufill/gpufill/internal/fixed"
)

// Interval is one node of the coverage linked list: everything from this
// node's PixelX up to (but not including) Next's PixelX carries Coverage.
type Interval struct {
	PixelX   int32
	Coverage int32
	Next     int32
}

const (
	headIdx       int32 = 0
	tailIdx       int32 = 1
	firstRealSlot int32 = 2
)

// sentinelMagicCoverage marks the tail sentinel's Coverage field with an
// implausible value (0xDEADBEEF's int32 bit pattern) so a debugger or a
// future bug that mistakes the sentinel for a real interval's coverage
// stands out immediately; Walk never iterates as far as tailIdx, so no
// caller ever reads it.
const sentinelMagicCoverage int32 = -559038737

// Buffer is one scanline's coverage interval list, backed by a PodBVector
// so repeated Reset calls reuse already-allocated chunks instead of
// reallocating every scanline.
type Buffer struct {
	intervals *array.PodBVector[Interval]
}

// New returns an empty, reset coverage buffer.
func New() *Buffer {
	b := &Buffer{intervals: array.NewPodBVector[Interval]()}
	b.Reset()
	return b
}

// Reset rewinds the list to just the head/tail sentinels, reusing whatever
// chunks the underlying vector already allocated.
func (b *Buffer) Reset() {
	b.intervals.CutAt(0)
	b.intervals.Add(Interval{PixelX: math.MinInt32, Coverage: 0, Next: tailIdx})
	b.intervals.Add(Interval{PixelX: math.MaxInt32, Coverage: sentinelMagicCoverage, Next: tailIdx})
}

func (b *Buffer) at(i int32) *Interval {
	return b.intervals.Ptr(int(i))
}

func (b *Buffer) alloc(v Interval) int32 {
	b.intervals.Add(v)
	return int32(b.intervals.Size() - 1)
}

// AddInterval adds coverage to the half-open subpixel interval
// [subpixelXLeft, subpixelXRight), where both bounds are in AA-subpixel
// units (8 per device pixel). subpixelXLeft must be less than
// subpixelXRight.
func (b *Buffer) AddInterval(subpixelXLeft, subpixelXRight int32) {
	pixelLeft := subpixelXLeft >> fixed.AAShift
	pixelRight := subpixelXRight >> fixed.AAShift

	cur := headIdx
	var nextPixelX int32
	for {
		nextPixelX = b.at(b.at(cur).Next).PixelX
		if nextPixelX >= pixelLeft {
			break
		}
		cur = b.at(cur).Next
	}

	if nextPixelX != pixelLeft {
		newIdx := b.alloc(Interval{
			PixelX:   pixelLeft,
			Coverage: b.at(cur).Coverage,
			Next:     b.at(cur).Next,
		})
		b.at(cur).Next = newIdx
		cur = newIdx
	} else {
		cur = b.at(cur).Next
	}

	coverageLeft := int32(fixed.AASize) - (subpixelXLeft & fixed.AAMask)

	if (coverageLeft < fixed.AASize || pixelLeft == pixelRight) && pixelLeft+1 != b.at(b.at(cur).Next).PixelX {
		newIdx := b.alloc(Interval{
			PixelX:   pixelLeft + 1,
			Coverage: b.at(cur).Coverage,
			Next:     b.at(cur).Next,
		})
		b.at(cur).Next = newIdx
	}

	if pixelLeft == pixelRight {
		b.at(cur).Coverage += subpixelXRight - subpixelXLeft
		return
	}

	b.at(cur).Coverage += coverageLeft

	for {
		nextPixelX = b.at(b.at(cur).Next).PixelX
		if nextPixelX >= pixelRight {
			break
		}
		cur = b.at(cur).Next
		b.at(cur).Coverage += int32(fixed.AASize)
	}

	if nextPixelX != pixelRight {
		newIdx := b.alloc(Interval{
			PixelX:   pixelRight,
			Coverage: b.at(cur).Coverage - int32(fixed.AASize),
			Next:     b.at(cur).Next,
		})
		b.at(cur).Next = newIdx
		cur = newIdx
	} else {
		cur = b.at(cur).Next
	}

	coverageRight := subpixelXRight & fixed.AAMask
	if coverageRight > 0 {
		if pixelRight+1 != b.at(b.at(cur).Next).PixelX {
			newIdx := b.alloc(Interval{
				PixelX:   pixelRight + 1,
				Coverage: b.at(cur).Coverage,
				Next:     b.at(cur).Next,
			})
			b.at(cur).Next = newIdx
		}
		b.at(cur).Coverage += coverageRight
	}
}

// Walk calls fn for every real interval with nonzero coverage, in
// ascending PixelX order, passing the pixel range [pixelX, nextPixelX) and
// its coverage. Zero-coverage intervals are skipped.
func (b *Buffer) Walk(fn func(pixelX, nextPixelX, coverageSubpixelSquared int32)) {
	cur := b.at(headIdx).Next
	for cur != tailIdx {
		iv := b.at(cur)
		next := b.at(iv.Next)
		if iv.Coverage != 0 {
			fn(iv.PixelX, next.PixelX, iv.Coverage)
		}
		cur = iv.Next
	}
}

// Empty reports whether the buffer holds no nonzero-coverage intervals.
func (b *Buffer) Empty() bool {
	empty := true
	b.Walk(func(int32, int32, int32) { empty = false })
	return empty
}
