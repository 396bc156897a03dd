package raster

import (
	"github.com/gpufill/gpufill/internal/basics"
	"github.com/gpufill/gpufill/internal/config"
	"github.com/gpufill/gpufill/internal/coverage"
	"github.com/gpufill/gpufill/internal/edge"
	"github.com/gpufill/gpufill/internal/fixed"
	"github.com/gpufill/gpufill/internal/rlog"
	"github.com/gpufill/gpufill/internal/vertexbuf"
)

// aaRow is the raster-unit span of one AA-subpixel scanline.
const aaRow = int32(fixed.Scale)

// deviceRow is the raster-unit span of one full device scanline (8 AA rows).
const deviceRow = int32(fixed.Scale * fixed.AASize)

func floorToDeviceRow(v int32) int32 {
	m := v % deviceRow
	if m < 0 {
		m += deviceRow
	}
	return v - m
}

func minInt32(vs ...int32) int32 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// RasterizeEdges runs the main scanline sweep over store's edges: for every
// AA-subpixel row from the first inactive edge's startY up to clip.Bottom,
// it activates ready edges, fills the coverage buffer under cfg.FillRule,
// and every 8th row hands the accumulated row to vb as one device
// scanline. Vertical, full-device-row-spanning pairs of edges take the
// trapezoid fast path (§4.6) when cfg.EnableTrapezoidFastPath is set.
func RasterizeEdges(store *edge.EdgeStore, clip edge.ClipRect, cfg config.RasterConfig, vb *vertexbuf.Builder, log rlog.Logger) {
	ia := edge.BuildInactiveArray(store)
	if ia.Done() {
		log.Debug("raster: no edges, nothing to rasterize")
		return
	}

	active := edge.NewActiveList(store)
	buf := coverage.New()

	y := ia.NextStartY()
	yBottom := clip.Bottom
	log.Debug("raster: sweep starting", "yTop", y, "yBottom", yBottom)

	fill := FillAlternate
	if cfg.FillRule == basics.FillNonZero {
		fill = FillWinding
	}

	for y < yBottom {
		ia.InsertReady(y, active)

		if cfg.EnableTrapezoidFastPath {
			if applied, newY := tryTrapezoidFastPath(active, ia, clip, y, buf, vb); applied {
				active.Advance(newY)
				y = newY
				continue
			}
		}

		fill(active, buf)

		next := y + aaRow
		lastRowOfSweep := next >= yBottom
		if y%deviceRow == deviceRow-aaRow || active.Empty() || lastRowOfSweep {
			vb.AddComplexScan(y/deviceRow, buf)
			buf.Reset()
		}

		active.Advance(next)
		y = next
	}

	log.Debug("raster: sweep complete")
}

// tryTrapezoidFastPath attempts the §4.6 fast path at row y: applicable
// only when exactly two strictly-vertical edges are active, both already
// spanning at least one full device row, on a device-row-aligned y. On
// success it fills buf for one device row, emits every scanline in the
// skipped range directly to vb, and returns the row to resume from.
func tryTrapezoidFastPath(active *edge.ActiveList, ia *edge.InactiveArray, clip edge.ClipRect, y int32, buf *coverage.Buffer, vb *vertexbuf.Builder) (bool, int32) {
	if y%deviceRow != 0 || active.Count() != 2 {
		return false, y
	}

	e0idx := active.First()
	e1idx := active.NextIndex(e0idx)
	e0 := active.EdgeAt(e0idx)
	e1 := active.EdgeAt(e1idx)

	if e0.Dx != 0 || e0.ErrorUp != 0 || e1.Dx != 0 || e1.ErrorUp != 0 {
		return false, y
	}
	if e0.EndY < y+deviceRow || e1.EndY < y+deviceRow {
		return false, y
	}

	nextInactiveY := ia.NextStartY()
	if nextInactiveY < y+deviceRow {
		return false, y
	}

	yNext := floorToDeviceRow(minInt32(e0.EndY, e1.EndY, nextInactiveY, clip.Bottom))
	if yNext <= y {
		return false, y
	}

	subLeft := e0.X >> fixed.Shift
	subRight := e1.X >> fixed.Shift
	if subLeft > subRight {
		subLeft, subRight = subRight, subLeft
	}

	if subLeft != subRight {
		for i := 0; i < fixed.AASize; i++ {
			buf.AddInterval(subLeft, subRight)
		}
		for py := y / deviceRow; py < yNext/deviceRow; py++ {
			vb.AddComplexScan(py, buf)
		}
		buf.Reset()
	}

	return true, yNext
}
