// Package gpufill converts a 2D vector path and a rectangular clip into an
// antialiased triangle-strip mesh, the front-end of a hardware fill
// pipeline: a caller builds a path with MoveTo/LineTo/CurveTo/Close, then
// asks for a device-space triangle strip with per-vertex coverage baked in.
package gpufill

import (
	"github.com/gpufill/gpufill/internal/basics"
	"github.com/gpufill/gpufill/internal/config"
	"github.com/gpufill/gpufill/internal/edge"
	"github.com/gpufill/gpufill/internal/fixed"
	"github.com/gpufill/gpufill/internal/pathbuilder"
	"github.com/gpufill/gpufill/internal/raster"
	"github.com/gpufill/gpufill/internal/rasterr"
	"github.com/gpufill/gpufill/internal/rlog"
	"github.com/gpufill/gpufill/internal/vertexbuf"
	"github.com/gpufill/gpufill/internal/xform"
)

// FillMode selects the fill rule applied where subpaths overlap.
type FillMode int

const (
	// NonZero fills wherever the winding number is non-zero.
	NonZero FillMode = iota
	// EvenOdd fills wherever the crossing count is odd.
	EvenOdd
)

// Rect is an inclusive-exclusive rectangle in device pixels; it is not
// transformed by the Builder's world-to-device matrix.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// OutputVertex is one vertex of the rasterized triangle-strip (or
// supplementary line-list) output: device-pixel (x, y) plus coverage
// normalized to [0,1].
type OutputVertex = vertexbuf.OutputVertex

// Builder accumulates a path and the settings that govern how it gets
// rasterized. The zero value is not usable; construct one with New.
type Builder struct {
	path *pathbuilder.Path
	cfg  config.RasterConfig

	worldToDevice xform.Matrix

	haveOutsideBounds  bool
	outsideBounds      Rect
	needInsideGeometry bool

	lastLines []OutputVertex

	log rlog.Logger
}

// New returns an empty Builder with default configuration: non-zero
// winding, trapezoid fast path enabled, complement disabled, identity
// world-to-device transform.
func New() *Builder {
	return &Builder{
		path:               pathbuilder.New(),
		cfg:                config.DefaultConfig(),
		worldToDevice:      xform.Identity(),
		needInsideGeometry: true,
		log:                rlog.Default(),
	}
}

// SetLogger replaces the builder's logger; the default is a silent no-op.
func (b *Builder) SetLogger(log rlog.Logger) {
	if log == nil {
		log = rlog.Default()
	}
	b.log = log
}

// SetWorldToDevice replaces the world-to-device transform applied ahead of
// the rasterizer's own half-pixel / 28.4 scale composition. Identity by
// default.
func (b *Builder) SetWorldToDevice(m xform.Matrix) {
	b.worldToDevice = m
}

// ResetPath discards all accumulated path elements, keeping configuration.
func (b *Builder) ResetPath() {
	b.path.Reset()
}

// MoveTo begins a new subpath at (x, y). Deferred: nothing is recorded
// until a following draw call opens the subpath, so a dangling MoveTo with
// no geometry after it contributes nothing to the rasterized output.
func (b *Builder) MoveTo(x, y float32) {
	b.path.MoveTo(x, y)
}

// LineTo appends a line element, opening a subpath at (x, y) first if none
// is currently open.
func (b *Builder) LineTo(x, y float32) {
	b.path.LineTo(x, y)
}

// CurveTo appends a cubic Bézier with the given control points and end
// point; the on-curve start is the path's current point.
func (b *Builder) CurveTo(c1x, c1y, c2x, c2y, x, y float32) {
	b.path.CurveTo(c1x, c1y, c2x, c2y, x, y)
}

// QuadTo appends a quadratic Bézier, promoted internally to a cubic.
func (b *Builder) QuadTo(cx, cy, x, y float32) {
	b.path.QuadTo(cx, cy, x, y)
}

// Close marks the current subpath closed and clears the pending start, so
// a following draw call with no MoveTo begins a fresh subpath.
func (b *Builder) Close() {
	b.path.Close()
}

// SetFillMode selects the fill rule used when rasterizing.
func (b *Builder) SetFillMode(mode FillMode) {
	if mode == EvenOdd {
		b.cfg.FillRule = basics.FillEvenOdd
	} else {
		b.cfg.FillRule = basics.FillNonZero
	}
}

// SetOutsideBounds enables complement geometry: the region inside bounds
// but outside the filled shape is covered with zero-alpha vertices, so a
// caller compositing this mesh over existing content can clear exactly the
// shape's complement within bounds in the same draw. needInside controls
// whether the solid interior is still emitted alongside it; set it false
// when the interior is composited from a separate draw call.
func (b *Builder) SetOutsideBounds(bounds Rect, needInside bool) {
	b.haveOutsideBounds = true
	b.outsideBounds = bounds
	b.needInsideGeometry = needInside
	b.cfg.EnableComplement = true
	b.cfg.NeedInsideGeometry = needInside
}

// ClearOutsideBounds disables complement geometry.
func (b *Builder) ClearOutsideBounds() {
	b.haveOutsideBounds = false
	b.cfg.EnableComplement = false
	b.cfg.NeedInsideGeometry = true
}

// SetTrapezoidFastPath toggles the vertical-edge-pair fast path. Disabling
// it must never change output, only cost; it exists as a separately
// switchable path so regressions in it are isolable from the general fill.
func (b *Builder) SetTrapezoidFastPath(enabled bool) {
	b.cfg.EnableTrapezoidFastPath = enabled
}

// RasterizeToTriStrip rasterizes the accumulated path against the given
// device-pixel clip rectangle and returns the triangle-strip output; the
// line-list output of the same call is available from LastLineList. A
// non-finite coordinate or a fixed-point overflow produces an empty result
// with a nil error: rendering never panics on numeric pathologies in path
// data, and such a result looks the same as the result for an empty path.
func (b *Builder) RasterizeToTriStrip(clipX, clipY, clipW, clipH int32) ([]OutputVertex, error) {
	b.log.Debug("gpufill: rasterize starting", "clipW", clipW, "clipH", clipH)

	clip := edge.ClipRect{
		Left:   clipX << rasterShift,
		Top:    clipY << rasterShift,
		Right:  (clipX + clipW) << rasterShift,
		Bottom: (clipY + clipH) << rasterShift,
	}

	matrix := b.worldToDevice.Multiply(halfPixelShift)

	store, err := edge.InitializeEdges(b.path, matrix, clip, b.cfg)
	if err != nil {
		if rasterr.IsEmptyGeometry(err) {
			b.log.Warn("gpufill: rasterize produced no geometry", "err", err)
			return nil, nil
		}
		return nil, err
	}

	outsideBounds := vertexbuf.Rect{
		Left:   float32(clipX),
		Top:    float32(clipY),
		Right:  float32(clipX + clipW),
		Bottom: float32(clipY + clipH),
	}
	if b.haveOutsideBounds {
		outsideBounds = vertexbuf.Rect{
			Left:   b.outsideBounds.Left,
			Top:    b.outsideBounds.Top,
			Right:  b.outsideBounds.Right,
			Bottom: b.outsideBounds.Bottom,
		}
	}

	vb := vertexbuf.New(b.needInsideGeometry || !b.haveOutsideBounds, b.haveOutsideBounds, float32(clipY), outsideBounds)

	if store.Count() == 0 {
		if b.haveOutsideBounds {
			vb.EndBuildingOutside()
		}
		b.lastLines = vb.Lines
		return vb.Strip, nil
	}

	raster.RasterizeEdges(store, clip, b.cfg, vb, b.log)

	if b.haveOutsideBounds {
		vb.EndBuildingOutside()
	}

	b.log.Debug("gpufill: rasterize complete", "stripLen", len(vb.Strip), "linesLen", len(vb.Lines))
	b.lastLines = vb.Lines
	return vb.Strip, nil
}

// LastLineList returns the supplementary 2-vertex-per-segment line list
// produced by the most recent RasterizeToTriStrip call: spans on any pixel
// row below the viewport's top row are emitted as lines rather than
// degenerate strip quads (§4.7). Empty until the first call.
func (b *Builder) LastLineList() []OutputVertex {
	return b.lastLines
}

// rasterShift converts a device-pixel coordinate to raster units (28.4
// fixed point further scaled by the AA subpixel shift, §4.8 step 1).
const rasterShift = fixed.Shift + fixed.AAShift

// halfPixelShift is the translate(-0.5,-0.5) half of the matrix composed
// ahead of the edge initializer: it converts from half-pixel-centered
// device coordinates to integer-pixel centers. The scale(16,16) into 28.4
// fixed point is applied after the matrix, by fixed.PointFromFloat inside
// the edge initializer.
var halfPixelShift = xform.Matrix{
	M11: 1, M22: 1,
	Dx: -0.5, Dy: -0.5,
}
