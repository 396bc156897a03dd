// Package pathbuilder accumulates a path as a parallel pair of point/type
// arrays, the encoding the edge initializer consumes directly: no generic
// vertex-command container, no arcs or smooth-join synthesis, just moves,
// lines and cubic Béziers with an optional close bit.
package pathbuilder

// ElementType is the low 3 bits of a type entry.
type ElementType uint8

const (
	Start  ElementType = 0
	Line   ElementType = 1
	Bezier ElementType = 3

	// CloseSubpath is OR'd onto the last element's type of a subpath.
	CloseSubpath ElementType = 0x80

	typeMask = 0x07
)

// Kind strips the CloseSubpath bit, returning the base element type.
func (t ElementType) Kind() ElementType {
	return t & typeMask
}

// Closed reports whether CloseSubpath is set.
func (t ElementType) Closed() bool {
	return t&CloseSubpath != 0
}

// Point is a path vertex in caller (real, not fixed-point) coordinates.
type Point struct {
	X, Y float32
}

// Path is a builder-accumulated parallel point/type array pair, ready for
// the edge initializer to walk.
type Path struct {
	Points []Point
	Types  []ElementType

	pendingStart Point
	haveStart    bool
	haveOpen     bool
}

// New returns an empty path builder.
func New() *Path {
	return &Path{}
}

// Reset discards all accumulated elements, keeping the underlying arrays'
// capacity for reuse.
func (p *Path) Reset() {
	p.Points = p.Points[:0]
	p.Types = p.Types[:0]
	p.haveStart = false
	p.haveOpen = false
}

// MoveTo begins a new subpath at (x, y). The move is deferred: nothing is
// appended until a following draw call opens the subpath, matching the
// façade contract that a dangling MoveTo with no geometry emits nothing.
func (p *Path) MoveTo(x, y float32) {
	p.pendingStart = Point{X: x, Y: y}
	p.haveStart = true
	p.haveOpen = false
}

func (p *Path) openSubpathIfNeeded(x, y float32) {
	if p.haveOpen {
		return
	}
	start := p.pendingStart
	if !p.haveStart {
		start = Point{X: x, Y: y}
	}
	p.Points = append(p.Points, start)
	p.Types = append(p.Types, Start)
	p.haveOpen = true
	p.haveStart = true
}

// LineTo appends a line element, opening a subpath at (x, y) first if none
// is currently open.
func (p *Path) LineTo(x, y float32) {
	p.openSubpathIfNeeded(x, y)
	p.Points = append(p.Points, Point{X: x, Y: y})
	p.Types = append(p.Types, Line)
}

// CurveTo appends a cubic Bézier (three Bezier elements: the two control
// points and the end point; the on-curve start is the path's last vertex).
func (p *Path) CurveTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.openSubpathIfNeeded(c1x, c1y)
	p.Points = append(p.Points,
		Point{X: c1x, Y: c1y},
		Point{X: c2x, Y: c2y},
		Point{X: x, Y: y},
	)
	p.Types = append(p.Types, Bezier, Bezier, Bezier)
}

// QuadTo appends a quadratic Bézier, promoted to cubic with control points
// placed 2/3 of the way along each tangent from the shared quadratic
// control point.
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.openSubpathIfNeeded(cx, cy)
	var x0, y0 float32
	if n := len(p.Points); n > 0 {
		x0, y0 = p.Points[n-1].X, p.Points[n-1].Y
	}
	c1x := x0 + 2.0/3.0*(cx-x0)
	c1y := y0 + 2.0/3.0*(cy-y0)
	c2x := x + 2.0/3.0*(cx-x)
	c2y := y + 2.0/3.0*(cy-y)
	p.CurveTo(c1x, c1y, c2x, c2y, x, y)
}

// Close ORs CloseSubpath onto the last element and clears the pending
// start, so a following MoveTo-less draw call begins a fresh subpath.
func (p *Path) Close() {
	if n := len(p.Types); n > 0 {
		p.Types[n-1] |= CloseSubpath
	}
	p.haveOpen = false
	p.haveStart = false
}

// Empty reports whether the path has no elements.
func (p *Path) Empty() bool {
	return len(p.Points) == 0
}
