package edge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpufill/gpufill/internal/config"
	"github.com/gpufill/gpufill/internal/pathbuilder"
	"github.com/gpufill/gpufill/internal/xform"
)

func wideOpenClip() ClipRect {
	// 0..200 device pixels in both axes, expressed in raster units
	// (device pixel * fixed.Scale * fixed.AASize = *128).
	return ClipRect{Left: 0, Top: 0, Right: 200 * 128, Bottom: 200 * 128}
}

func TestInitializeEdgesRectangleProducesTwoVerticalEdges(t *testing.T) {
	p := pathbuilder.New()
	p.LineTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.LineTo(0, 10)
	p.Close()

	store, err := InitializeEdges(p, xform.Identity(), wideOpenClip(), config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, store.Count())

	for _, idx := range store.RealIndices() {
		e := store.At(idx)
		assert.Equal(t, int32(10*128), e.EndY-e.StartY)
		assert.Less(t, e.StartY, e.EndY)
	}
}

func TestInitializeEdgesTriangleHasTwoNonHorizontalEdges(t *testing.T) {
	p := pathbuilder.New()
	p.LineTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(5, 10)
	p.Close()

	store, err := InitializeEdges(p, xform.Identity(), wideOpenClip(), config.DefaultConfig())
	require.NoError(t, err)
	// The top edge (0,0)-(10,0) is horizontal and contributes nothing; the
	// other two sides, (10,0)-(5,10) and the implicit closing side
	// (5,10)-(0,0), each produce one edge.
	assert.Equal(t, 2, store.Count())
}

func TestInitializeEdgesDiscardsEdgesFullyAboveClip(t *testing.T) {
	p := pathbuilder.New()
	p.LineTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 5)
	p.LineTo(0, 5)
	p.Close()

	clip := ClipRect{Left: 0, Top: 20 * 128, Right: 200 * 128, Bottom: 200 * 128}
	store, err := InitializeEdges(p, xform.Identity(), clip, config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, store.Count())
}

func TestInitializeEdgesClipsStartYToClipTop(t *testing.T) {
	p := pathbuilder.New()
	p.LineTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.LineTo(0, 10)
	p.Close()

	clipTop := int32(5 * 128)
	clip := ClipRect{Left: 0, Top: clipTop, Right: 200 * 128, Bottom: 200 * 128}
	store, err := InitializeEdges(p, xform.Identity(), clip, config.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 2, store.Count())

	for _, idx := range store.RealIndices() {
		e := store.At(idx)
		assert.GreaterOrEqual(t, e.StartY, clipTop)
	}
}

func TestInitializeEdgesRejectsNonFiniteCoordinate(t *testing.T) {
	p := pathbuilder.New()
	p.LineTo(0, 0)
	p.LineTo(float32(1e30)*float32(1e30), 0) // overflows to +Inf
	p.LineTo(10, 10)
	p.Close()

	_, err := InitializeEdges(p, xform.Identity(), wideOpenClip(), config.DefaultConfig())
	assert.Error(t, err)
}

func TestInitializeEdgesCurvedPathFlattensToMultipleEdges(t *testing.T) {
	p := pathbuilder.New()
	p.LineTo(0, 0)
	p.CurveTo(0, 20, 20, 20, 20, 0)
	p.Close()

	store, err := InitializeEdges(p, xform.Identity(), wideOpenClip(), config.DefaultConfig())
	require.NoError(t, err)
	assert.Greater(t, store.Count(), 2)
}
