// Package vertexbuf builds the triangle-strip (and short line-list) vertex
// stream handed back to the caller: one quad or degenerate-stitched strip
// piece per coverage span, plus the optional zero-alpha "outside" geometry
// used when a shape's complement needs to be rendered.
package vertexbuf

import (
	"github.com/gpufill/gpufill/internal/coverage"
	"github.com/gpufill/gpufill/internal/fixed"
)

// OutputVertex is one vertex of the output stream: device-pixel (x, y) plus
// normalized [0,1] coverage (alpha).
type OutputVertex struct {
	X, Y, Coverage float32
}

// Rect is an inclusive-exclusive device-pixel rectangle. Every emitted
// span is horizontally clamped to it regardless of complement mode (the
// façade passes its clip extent, or the outside bounds when complement
// geometry is requested); in complement mode the same rect additionally
// bounds the zero-alpha fill.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// Builder accumulates the triangle-strip output (and, for 1-pixel-tall
// spans away from the viewport top, a parallel line-list) for one
// rasterize call.
type Builder struct {
	Strip []OutputVertex
	Lines []OutputVertex

	needInsideGeometry  bool
	needOutsideGeometry bool
	viewportTop         float32
	outsideBounds       Rect

	// Strata bookkeeping (only load-bearing when needOutsideGeometry is
	// set): tracks the vertical extent of the most recently emitted row so
	// prepareStratum can fill the zero-alpha gaps between rows.
	curStratumTop      float32
	curStratumBottom   float32
	lastTrapezoidRight float32
	haveStratum        bool
}

const negInf = float32(-1e30)
const posInf = float32(1e30)

// New returns a builder. needInsideGeometry/needOutsideGeometry gate which
// coverage values actually need emitted geometry (§4.7); outsideBounds is
// always used to clamp span geometry horizontally, and is
// additionally used to bound the zero-alpha complement fill when
// needOutsideGeometry is true.
func New(needInsideGeometry, needOutsideGeometry bool, viewportTop float32, outsideBounds Rect) *Builder {
	return &Builder{
		needInsideGeometry:  needInsideGeometry,
		needOutsideGeometry: needOutsideGeometry,
		viewportTop:         viewportTop,
		outsideBounds:       outsideBounds,
		curStratumTop:       posInf,
		curStratumBottom:    negInf,
		lastTrapezoidRight:  negInf,
	}
}

// NeedCoverageGeometry reports whether a span with this coverage (in
// [0, fixed.CoverageFull] subpixel-squared units) needs emitted geometry at
// all: a fully-covered interior span can be skipped when inside geometry
// isn't needed, and a zero-coverage span can be skipped when outside
// geometry isn't needed.
func (b *Builder) NeedCoverageGeometry(cvg int32) bool {
	return (b.needInsideGeometry || cvg != fixed.CoverageFull) &&
		(b.needOutsideGeometry || cvg != 0)
}

func (b *Builder) appendStripDegenerate(v OutputVertex) {
	if len(b.Strip) > 0 {
		b.Strip = append(b.Strip, b.Strip[len(b.Strip)-1], v)
	}
	b.Strip = append(b.Strip, v)
}

// AddComplexScan emits one device scanline's worth of coverage geometry:
// a 1-pixel-tall span per nonzero (or, in complement mode, every) coverage
// interval from buf, at pixel row pixelY.
func (b *Builder) AddComplexScan(pixelY int32, buf *coverage.Buffer) {
	b.prepareStratum(float32(pixelY), float32(pixelY+1), false, 0, 0)

	rowY := float32(pixelY) + 0.5
	nearTop := rowY < b.viewportTop+1

	buf.Walk(func(pixelX, nextPixelX, cvg int32) {
		if !b.NeedCoverageGeometry(cvg) {
			return
		}
		coverage01 := float32(cvg) / float32(fixed.CoverageFull)

		begin := float32(pixelX)
		end := float32(nextPixelX)
		if begin < b.outsideBounds.Left {
			begin = b.outsideBounds.Left
		}
		if end > b.outsideBounds.Right {
			end = b.outsideBounds.Right
		}
		if begin > end {
			begin = end
		}
		xBegin := begin + 0.5
		xEnd := end + 0.5

		if nearTop {
			// Degenerate 6-vertex quad: GPU line-clipping rules drop
			// lines that fall exactly on the viewport's top row, so a
			// 1-pixel-tall quad is used instead.
			tl := OutputVertex{X: xBegin, Y: rowY - 0.5, Coverage: coverage01}
			bl := OutputVertex{X: xBegin, Y: rowY + 0.5, Coverage: coverage01}
			tr := OutputVertex{X: xEnd, Y: rowY - 0.5, Coverage: coverage01}
			br := OutputVertex{X: xEnd, Y: rowY + 0.5, Coverage: coverage01}
			b.appendStripDegenerate(tl)
			b.Strip = append(b.Strip, bl, tr, br, br)
			return
		}

		b.Lines = append(b.Lines,
			OutputVertex{X: xBegin, Y: rowY, Coverage: coverage01},
			OutputVertex{X: xEnd, Y: rowY, Coverage: coverage01},
		)
	})
}

// AddTrapezoid emits an antialiased trapezoid spanning [yTop, yBottom),
// with left/right fringes of width dxLeft/dxRight fading coverage in and
// out linearly. The raster driver does not call it: its trapezoid fast
// path emits each device row through AddComplexScan instead.
func (b *Builder) AddTrapezoid(yTop, xTopLeft, xTopRight, yBottom, xBottomLeft, xBottomRight, dxLeft, dxRight float32) {
	b.prepareStratum(yTop, yBottom, true, xTopLeft, xTopRight)

	// Only the trapezoid's first vertex stitches in from whatever piece
	// came before it (matching AddComplexScan's convention); the rest are
	// plain strip continuations, or every triangle in the trapezoid would
	// come out degenerate.
	first := true
	emit := func(x, y, cvg float32) {
		v := OutputVertex{X: x, Y: y, Coverage: cvg}
		if first {
			b.appendStripDegenerate(v)
			first = false
			return
		}
		b.Strip = append(b.Strip, v)
	}

	// Left fringe: coverage ramps 0 -> 1 across 2*dxLeft.
	if dxLeft > 0 {
		emit(xTopLeft-dxLeft, yTop, 0)
		emit(xBottomLeft-dxLeft, yBottom, 0)
		emit(xTopLeft+dxLeft, yTop, 1)
		emit(xBottomLeft+dxLeft, yBottom, 1)
	} else {
		emit(xTopLeft, yTop, 1)
		emit(xBottomLeft, yBottom, 1)
	}

	// Solid interior, or (complement-only mode) a degenerate skip of it.
	if b.needInsideGeometry {
		emit(xTopRight-dxRight, yTop, 1)
		emit(xBottomRight-dxRight, yBottom, 1)
	} else {
		last := b.Strip[len(b.Strip)-1]
		b.Strip = append(b.Strip, last, last)
	}

	// Right fringe: coverage ramps 1 -> 0 across 2*dxRight.
	if dxRight > 0 {
		emit(xTopRight+dxRight, yTop, 0)
		emit(xBottomRight+dxRight, yBottom, 0)
	}

	b.lastTrapezoidRight = xTopRight + dxRight
}

// prepareStratum is a no-op unless complement (outside) geometry is
// requested. Otherwise it closes any gap between the previous emitted row
// and this one with a zero-alpha rectangle, and (for a new trapezoid
// stratum) emits the left-side zero-alpha lead-in out to outsideBounds.
func (b *Builder) prepareStratum(top, bottom float32, isTrapezoid bool, trapLeft, trapRight float32) {
	if !b.needOutsideGeometry {
		return
	}
	if b.haveStratum && top > b.curStratumBottom {
		b.closeStratumRightFringe()
		b.emitZeroAlphaRect(b.outsideBounds.Left, b.curStratumBottom, b.outsideBounds.Right, top)
	}
	if isTrapezoid {
		left := trapLeft
		if left > b.outsideBounds.Left {
			b.emitZeroAlphaRect(b.outsideBounds.Left, top, left, bottom)
		}
	}
	b.curStratumTop = top
	b.curStratumBottom = bottom
	b.haveStratum = true
}

func (b *Builder) closeStratumRightFringe() {
	if b.lastTrapezoidRight < b.outsideBounds.Right {
		b.emitZeroAlphaRect(b.lastTrapezoidRight, b.curStratumTop, b.outsideBounds.Right, b.curStratumBottom)
	}
}

func (b *Builder) emitZeroAlphaRect(left, top, right, bottom float32) {
	if left >= right || top >= bottom {
		return
	}
	b.appendStripDegenerate(OutputVertex{X: left, Y: top, Coverage: 0})
	b.Strip = append(b.Strip,
		OutputVertex{X: left, Y: bottom, Coverage: 0},
		OutputVertex{X: right, Y: top, Coverage: 0},
		OutputVertex{X: right, Y: bottom, Coverage: 0},
	)
}

// EndBuildingOutside closes the final stratum, filling the zero-alpha
// region down to the bottom of outsideBounds. When no row was emitted at
// all, it covers the whole of outsideBounds with one zero-alpha rectangle.
func (b *Builder) EndBuildingOutside() {
	if !b.needOutsideGeometry {
		return
	}
	if !b.haveStratum {
		b.emitZeroAlphaRect(b.outsideBounds.Left, b.outsideBounds.Top, b.outsideBounds.Right, b.outsideBounds.Bottom)
		return
	}
	b.prepareStratum(b.outsideBounds.Bottom, b.outsideBounds.Bottom, false, 0, 0)
}
