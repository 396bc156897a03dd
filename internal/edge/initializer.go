package edge

import (
	"math"

	"github.com/gpufill/gpufill/internal/basics"
	"github.com/gpufill/gpufill/internal/config"
	"github.com/gpufill/gpufill/internal/fixed"
	"github.com/gpufill/gpufill/internal/flatten"
	"github.com/gpufill/gpufill/internal/pathbuilder"
	"github.com/gpufill/gpufill/internal/rasterr"
	"github.com/gpufill/gpufill/internal/xform"
)

// ClipRect is the vertical/horizontal clip rectangle in raster units (28.4
// further scaled by the AA subpixel shift, see Edge's doc comment).
type ClipRect struct {
	Left, Top, Right, Bottom int32
}

// aaRowRaster is the raster-unit span of one AA-subpixel scanline.
const aaRowRaster = int32(fixed.Scale)

// toRaster promotes a 28.4 fixed-point coordinate to full raster units.
// Safe against overflow because fixed.FromFloat already rejects magnitudes
// beyond fixed.MaxCoord, which reserves exactly fixed.AAShift bits of
// headroom for this shift.
func toRaster(v int32) int32 {
	return v << fixed.AAShift
}

// ceilToAARow rounds v up to the next multiple of aaRowRaster.
func ceilToAARow(v int32) int32 {
	r := v % aaRowRaster
	if r == 0 {
		return v
	}
	if v > 0 {
		return v + (aaRowRaster - r)
	}
	return v - r
}

// InitializeEdges walks path's point/type arrays, transforms every point
// through matrix, flattens Béziers at cfg.CurveTolerance (device pixels,
// converted to raster units for the flattener), vertically clips
// against clip, and appends one Edge per non-horizontal, in-bounds segment
// to a fresh EdgeStore.
//
// Every subpath is treated as implicitly closed for fill purposes
// regardless of whether the caller called Close: a fill rule has no
// meaning on an open contour, so the closing edge back to the subpath's
// start point is always synthesized.
func InitializeEdges(path *pathbuilder.Path, matrix xform.Matrix, clip ClipRect, cfg config.RasterConfig) (*EdgeStore, error) {
	store := NewEdgeStore()
	f := flatten.NewFlattener(cfg.CurveTolerance * float32(fixed.Scale*fixed.AASize))

	i := 0
	n := len(path.Types)
	for i < n {
		if path.Types[i].Kind() != pathbuilder.Start {
			// Malformed input: façade is expected to guarantee well-formed
			// paths. Skip the stray element rather than assert in release.
			i++
			continue
		}

		verts, next, err := collectSubpath(path, i, matrix, f)
		if err != nil {
			return store, err
		}
		i = next

		verts = collapseCollinearOutside(verts, clip)
		if err := emitSubpathEdges(store, verts, clip); err != nil {
			return store, err
		}
	}

	return store, nil
}

// collectSubpath gathers the raster-unit vertices of one subpath starting
// at path.Types[start] (a Start element), flattening any Bezier runs, and
// returns the index of the first element of the following subpath.
func collectSubpath(path *pathbuilder.Path, start int, matrix xform.Matrix, f *flatten.Flattener) (verts []fixed.Point, next int, err error) {
	p, ok := transformToRaster(path.Points[start], matrix)
	if !ok {
		return nil, start + 1, rasterr.New(rasterr.KindBadNumber, "edge.initializer")
	}
	verts = append(verts, p)

	i := start + 1
	for i < len(path.Types) && path.Types[i].Kind() != pathbuilder.Start {
		switch path.Types[i].Kind() {
		case pathbuilder.Line:
			q, ok := transformToRaster(path.Points[i], matrix)
			if !ok {
				return nil, i + 1, rasterr.New(rasterr.KindBadNumber, "edge.initializer")
			}
			verts = append(verts, q)
			i++

		case pathbuilder.Bezier:
			if i+2 >= len(path.Types) {
				return nil, i + 1, rasterr.New(rasterr.KindBadNumber, "edge.initializer")
			}
			c1, ok1 := transformToRaster(path.Points[i], matrix)
			c2, ok2 := transformToRaster(path.Points[i+1], matrix)
			end, ok3 := transformToRaster(path.Points[i+2], matrix)
			if !ok1 || !ok2 || !ok3 {
				return nil, i + 3, rasterr.New(rasterr.KindBadNumber, "edge.initializer")
			}
			p0 := verts[len(verts)-1]
			f.Reset()
			verts = f.Flatten(p0, c1, c2, end, verts[:len(verts)-1])
			i += 3

		default:
			i++
		}
	}

	return verts, i, nil
}

// transformToRaster applies matrix to a caller-space point and converts the
// result to raster units, reporting ok=false on non-finite or
// out-of-range coordinates.
func transformToRaster(p pathbuilder.Point, matrix xform.Matrix) (fixed.Point, bool) {
	tx, ty := matrix.Apply(p.X, p.Y)
	fp, ok := fixed.PointFromFloat(tx, ty)
	if !ok {
		return fixed.Point{}, false
	}
	return fixed.Point{X: toRaster(fp.X), Y: toRaster(fp.Y)}, true
}

// collapseCollinearOutside merges consecutive vertices that all lie
// outside the same side of clip into a single edge, operating on a copy of
// the vertex buffer so the caller's accumulated points are never mutated.
// This is the one optimization the edge initializer performs before DDA
// setup: a run of N points strictly left (or right, above, or below) of
// the clip rectangle contributes the same edges as its first and last
// point alone would.
func collapseCollinearOutside(verts []fixed.Point, clip ClipRect) []fixed.Point {
	if len(verts) < 3 {
		return verts
	}
	out := make([]fixed.Point, 0, len(verts))
	out = append(out, verts[0])
	for i := 1; i < len(verts)-1; i++ {
		prev := out[len(out)-1]
		cur := verts[i]
		next := verts[i+1]
		if sameOutsideSide(prev, cur, next, clip) {
			continue
		}
		out = append(out, cur)
	}
	out = append(out, verts[len(verts)-1])
	return out
}

// clipFlagsRect converts clip's half-open (Right/Bottom exclusive) convention
// to the closed Rect basics.ClippingFlags expects, by pulling the far edges
// in by one raster unit.
func clipFlagsRect(clip ClipRect) basics.Rect[int32] {
	return basics.Rect[int32]{X1: clip.Left, Y1: clip.Top, X2: clip.Right - 1, Y2: clip.Bottom - 1}
}

func sameOutsideSide(a, b, c fixed.Point, clip ClipRect) bool {
	box := clipFlagsRect(clip)
	fa := basics.ClippingFlags(a.X, a.Y, box)
	fb := basics.ClippingFlags(b.X, b.Y, box)
	fc := basics.ClippingFlags(c.X, c.Y, box)
	common := fa & fb & fc
	return common&(basics.ClippingFlagsX1Clipped|basics.ClippingFlagsX2Clipped|basics.ClippingFlagsY1Clipped|basics.ClippingFlagsY2Clipped) != 0
}

// emitSubpathEdges appends one Edge per non-horizontal segment of the
// implicitly-closed polygon verts to store, after vertical clipping.
func emitSubpathEdges(store *EdgeStore, verts []fixed.Point, clip ClipRect) error {
	if len(verts) < 2 {
		return nil
	}
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		if a == b {
			continue
		}
		if err := emitEdge(store, a, b, clip); err != nil {
			return err
		}
	}
	return nil
}

func emitEdge(store *EdgeStore, a, b fixed.Point, clip ClipRect) error {
	winding := int32(1)
	if a.Y > b.Y {
		a, b = b, a
		winding = -1
	}
	if a.Y == b.Y {
		return nil // horizontal: no scanline contribution
	}

	trueEndY := ceilToAARow(b.Y)
	if ceilToAARow(a.Y) >= trueEndY {
		return nil // sub-AA-row span, contributes nothing at this resolution
	}
	if trueEndY <= clip.Top || ceilToAARow(a.Y) >= clip.Bottom {
		return nil // trivially outside the vertical clip range
	}

	steps := int64(b.Y-a.Y) / int64(aaRowRaster)
	if steps <= 0 {
		steps = 1
	}
	totalDx := int64(b.X - a.X)

	dx := totalDx / steps
	rem := totalDx % steps
	if rem < 0 {
		rem += steps
		dx--
	}
	if dx > math.MaxInt32 || dx < math.MinInt32 || steps > math.MaxInt32 {
		return rasterr.New(rasterr.KindValueOverflow, "edge.initializer")
	}

	e := Edge{
		X:                a.X,
		Dx:               int32(dx),
		ErrorUp:          int32(rem),
		ErrorDown:        int32(steps),
		WindingDirection: winding,
	}
	if e.ErrorDown > 0 {
		e.Error = -e.ErrorDown
	}

	// The edge becomes active at the later of its own rounded-up start and
	// the clip's top: in either case, walk the DDA forward from the true
	// (unrounded) start using a single 64-bit multiply-divide for all the
	// rows skipped,
	// preserving the error invariant ("jump the DDA forward" per the edge
	// initializer's vertical-clip step).
	effectiveStartY := ceilToAARow(a.Y)
	if clip.Top > effectiveStartY {
		effectiveStartY = clip.Top
	}
	if rowsToSkip := int64(effectiveStartY-a.Y) / int64(aaRowRaster); rowsToSkip > 0 {
		// Exact floor-divide advance over rowsToSkip steps in one 64-bit
		// multiply-divide, instead of rowsToSkip individual DDA steps.
		advanceNum := totalDx * rowsToSkip
		advance := advanceNum / steps
		advRem := advanceNum % steps
		if advRem < 0 {
			advRem += steps
			advance--
		}
		e.X += int32(advance)
		if e.ErrorDown > 0 {
			e.Error = int32(advRem) - e.ErrorDown
		}
	}
	e.StartY = effectiveStartY
	e.EndY = trueEndY
	if e.EndY > clip.Bottom {
		e.EndY = clip.Bottom
	}
	if e.StartY >= e.EndY {
		return nil
	}

	store.Add(e)
	return nil
}
