package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpufill/gpufill/internal/basics"
	"github.com/gpufill/gpufill/internal/config"
	"github.com/gpufill/gpufill/internal/edge"
	"github.com/gpufill/gpufill/internal/pathbuilder"
	"github.com/gpufill/gpufill/internal/rlog"
	"github.com/gpufill/gpufill/internal/vertexbuf"
	"github.com/gpufill/gpufill/internal/xform"
)

func buildRectangleStore(t *testing.T, x0, y0, x1, y1 float32, clip edge.ClipRect) *edge.EdgeStore {
	t.Helper()
	p := pathbuilder.New()
	p.LineTo(x0, y0)
	p.LineTo(x1, y0)
	p.LineTo(x1, y1)
	p.LineTo(x0, y1)
	p.Close()

	store, err := edge.InitializeEdges(p, xform.Identity(), clip, config.DefaultConfig())
	require.NoError(t, err)
	return store
}

func TestRasterizeEdgesEmitsGeometryForSolidRectangle(t *testing.T) {
	clip := edge.ClipRect{Left: 0, Top: 0, Right: 100 * 128, Bottom: 100 * 128}
	store := buildRectangleStore(t, 2, 2, 6, 6, clip)

	vb := vertexbuf.New(true, false, 0, vertexbuf.Rect{})
	cfg := config.DefaultConfig()
	RasterizeEdges(store, clip, cfg, vb, rlog.Nop())

	assert.NotEmpty(t, vb.Strip)
}

func TestRasterizeEdgesNoEdgesProducesNoGeometry(t *testing.T) {
	clip := edge.ClipRect{Left: 0, Top: 0, Right: 100 * 128, Bottom: 100 * 128}
	store := edge.NewEdgeStore()

	vb := vertexbuf.New(true, false, 0, vertexbuf.Rect{})
	cfg := config.DefaultConfig()
	RasterizeEdges(store, clip, cfg, vb, rlog.Nop())

	assert.Empty(t, vb.Strip)
	assert.Empty(t, vb.Lines)
}

func TestRasterizeEdgesTrapezoidFastPathMatchesGeneralPath(t *testing.T) {
	clip := edge.ClipRect{Left: 0, Top: 0, Right: 100 * 128, Bottom: 100 * 128}

	cfg := config.DefaultConfig()
	cfg.EnableTrapezoidFastPath = true
	storeFast := buildRectangleStore(t, 4, 4, 12, 20, clip)
	vbFast := vertexbuf.New(true, false, 0, vertexbuf.Rect{})
	RasterizeEdges(storeFast, clip, cfg, vbFast, rlog.Nop())

	cfg.EnableTrapezoidFastPath = false
	storeSlow := buildRectangleStore(t, 4, 4, 12, 20, clip)
	vbSlow := vertexbuf.New(true, false, 0, vertexbuf.Rect{})
	RasterizeEdges(storeSlow, clip, cfg, vbSlow, rlog.Nop())

	assert.NotEmpty(t, vbFast.Strip)
	assert.NotEmpty(t, vbSlow.Strip)
	assert.Equal(t, vbSlow.Strip, vbFast.Strip)
	assert.Equal(t, vbSlow.Lines, vbFast.Lines)
}

func TestRasterizeEdgesAlternateVsWindingOnNestedRectangles(t *testing.T) {
	clip := edge.ClipRect{Left: 0, Top: 0, Right: 100 * 128, Bottom: 100 * 128}

	p := pathbuilder.New()
	// Outer rectangle, clockwise.
	p.LineTo(0, 0)
	p.LineTo(20, 0)
	p.LineTo(20, 20)
	p.LineTo(0, 20)
	p.Close()
	// Inner rectangle, same winding direction (also clockwise): under the
	// non-zero rule the overlap stays filled (winding reaches 2, nonzero);
	// under even-odd it becomes a hole.
	p.LineTo(5, 5)
	p.LineTo(15, 5)
	p.LineTo(15, 15)
	p.LineTo(5, 15)
	p.Close()

	store, err := edge.InitializeEdges(p, xform.Identity(), clip, config.DefaultConfig())
	require.NoError(t, err)

	vbWinding := vertexbuf.New(true, false, 0, vertexbuf.Rect{})
	cfgWinding := config.DefaultConfig() // FillNonZero
	RasterizeEdges(store, clip, cfgWinding, vbWinding, rlog.Nop())

	store2, err := edge.InitializeEdges(p, xform.Identity(), clip, config.DefaultConfig())
	require.NoError(t, err)
	vbAlternate := vertexbuf.New(true, false, 0, vertexbuf.Rect{})
	cfgAlternate := config.DefaultConfig()
	cfgAlternate.FillRule = basics.FillEvenOdd
	RasterizeEdges(store2, clip, cfgAlternate, vbAlternate, rlog.Nop())

	// Both fill rules produce geometry for the nested rectangles; this
	// test checks only that, not how the two vertex counts compare.
	assert.NotEmpty(t, vbWinding.Strip)
	assert.NotEmpty(t, vbAlternate.Strip)
}
