// Package flatten subdivides cubic Bézier segments into line segments of
// fixed-point points, at a chord tolerance in those same units. Unlike
// classic recursive de Casteljau subdivision, the flattener here is a
// state machine: a bounded explicit stack stands in for the call stack,
// so subdivision depth is capped at CurveRecursionLimit entries without
// ever growing a Go call stack.
package flatten

import (
	"math"

	"github.com/gpufill/gpufill/internal/curves"
	"github.com/gpufill/gpufill/internal/fixed"
)

// segment is one candidate cubic on the subdivision stack, alongside the
// recursion depth it was produced at.
type segment struct {
	x1, y1, x2, y2, x3, y3, x4, y4 float64
	level                          uint
}

// Flattener is a reusable, bounded-memory Bézier-to-polyline converter. A
// zero-value Flattener is ready to use. Flatten starts every call from a
// fresh stack, so calling Reset between curves is optional.
type Flattener struct {
	stack       [curves.CurveRecursionLimit + 1]segment
	depth       int
	toleranceSq float64
}

// NewFlattener builds a Flattener for the given chord tolerance, in the
// same units as the points later passed to Flatten. It has no angle or
// cusp refinements.
func NewFlattener(tolerance float32) *Flattener {
	t := float64(tolerance)
	return &Flattener{toleranceSq: t * t}
}

// Reset discards any in-progress subdivision state.
func (f *Flattener) Reset() {
	f.depth = 0
}

// Flatten appends line-segment endpoints approximating the cubic Bézier
// (p1..p4, in fixed-point units such as 28.4 or raster units) to out,
// returning the extended slice. The first and last points emitted are p1 and p4 themselves; out
// is never truncated, only appended to.
func (f *Flattener) Flatten(p1, p2, p3, p4 fixed.Point, out []fixed.Point) []fixed.Point {
	x1, y1 := float64(p1.X), float64(p1.Y)
	x2, y2 := float64(p2.X), float64(p2.Y)
	x3, y3 := float64(p3.X), float64(p3.Y)
	x4, y4 := float64(p4.X), float64(p4.Y)

	out = append(out, p1)
	f.depth = 1
	f.stack[0] = segment{x1, y1, x2, y2, x3, y3, x4, y4, 0}

	for f.depth > 0 {
		f.depth--
		s := f.stack[f.depth]

		if s.level > curves.CurveRecursionLimit {
			continue
		}

		mid, flat := f.isFlatEnough(s)
		if flat {
			if mid != nil {
				out = append(out, *mid)
			}
			continue
		}

		// Subdivide: de Casteljau midpoint split, push the second half
		// first so the first half is processed next (stack is LIFO but
		// emission order must stay left-to-right).
		x12 := (s.x1 + s.x2) / 2
		y12 := (s.y1 + s.y2) / 2
		x23 := (s.x2 + s.x3) / 2
		y23 := (s.y2 + s.y3) / 2
		x34 := (s.x3 + s.x4) / 2
		y34 := (s.y3 + s.y4) / 2
		x123 := (x12 + x23) / 2
		y123 := (y12 + y23) / 2
		x234 := (x23 + x34) / 2
		y234 := (y23 + y34) / 2
		x1234 := (x123 + x234) / 2
		y1234 := (y123 + y234) / 2

		if f.depth+2 >= len(f.stack) {
			// Stack exhausted: treat as flat rather than overflow the
			// bounded buffer. This only happens on pathological
			// near-cusp input at the recursion limit.
			out = append(out, fixed.Point{X: int32(s.x4), Y: int32(s.y4)})
			continue
		}

		f.stack[f.depth] = segment{x1234, y1234, x234, y234, x34, y34, s.x4, s.y4, s.level + 1}
		f.depth++
		f.stack[f.depth] = segment{s.x1, s.y1, x12, y12, x123, y123, x1234, y1234, s.level + 1}
		f.depth++
	}

	out = append(out, p4)
	return out
}

// isFlatEnough runs AGG's curve4_div distance-to-chord / collinearity test
// (without its angle and cusp checks) and returns a midpoint to emit when the
// segment is flat enough to stop subdividing.
func (f *Flattener) isFlatEnough(s segment) (*fixed.Point, bool) {
	x1, y1, x2, y2, x3, y3, x4, y4 := s.x1, s.y1, s.x2, s.y2, s.x3, s.y3, s.x4, s.y4

	dx := x4 - x1
	dy := y4 - y1

	d2 := math.Abs((x2-x4)*dy - (y2-y4)*dx)
	d3 := math.Abs((x3-x4)*dy - (y3-y4)*dx)

	collinearCase := 0
	if d2 > curves.CurveCollinearityEpsilon {
		collinearCase |= 1
	}
	if d3 > curves.CurveCollinearityEpsilon {
		collinearCase |= 2
	}

	switch collinearCase {
	case 0:
		k := dx*dx + dy*dy
		if k == 0 {
			d2 = calcSqDistance(x1, y1, x2, y2)
			d3 = calcSqDistance(x4, y4, x3, y3)
		} else {
			k = 1 / k
			da1 := x2 - x1
			da2 := y2 - y1
			d2 = k * (da1*dx + da2*dy)
			da1 = x3 - x1
			da2 = y3 - y1
			d3 = k * (da1*dx + da2*dy)
			if d2 > 0 && d2 < 1 && d3 > 0 && d3 < 1 {
				return nil, true
			}
			d2 = projectedSqDistance(d2, x2, y2, x1, y1, x4, y4, dx, dy)
			d3 = projectedSqDistance(d3, x3, y3, x1, y1, x4, y4, dx, dy)
		}
		if d2 > d3 {
			if d2 < f.toleranceSq {
				p := makePoint(x2, y2)
				return &p, true
			}
		} else if d3 < f.toleranceSq {
			p := makePoint(x3, y3)
			return &p, true
		}

	case 1:
		if d3*d3 <= f.toleranceSq*(dx*dx+dy*dy) {
			p := makePoint((x2+x3)/2, (y2+y3)/2)
			return &p, true
		}

	case 2:
		if d2*d2 <= f.toleranceSq*(dx*dx+dy*dy) {
			p := makePoint((x2+x3)/2, (y2+y3)/2)
			return &p, true
		}

	case 3:
		if (d2+d3)*(d2+d3) <= f.toleranceSq*(dx*dx+dy*dy) {
			p := makePoint((x2+x3)/2, (y2+y3)/2)
			return &p, true
		}
	}

	return nil, false
}

func calcSqDistance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

func projectedSqDistance(d, px, py, x1, y1, x4, y4, dx, dy float64) float64 {
	switch {
	case d <= 0:
		return calcSqDistance(px, py, x1, y1)
	case d >= 1:
		return calcSqDistance(px, py, x4, y4)
	default:
		return calcSqDistance(px, py, x1+d*dx, y1+d*dy)
	}
}

func makePoint(x, y float64) fixed.Point {
	return fixed.Point{X: int32(math.Round(x)), Y: int32(math.Round(y))}
}
