package gpufill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterizeSolidRectangleProducesVertices(t *testing.T) {
	b := New()
	b.MoveTo(10, 10)
	b.LineTo(10, 30)
	b.LineTo(30, 30)
	b.LineTo(30, 10)
	b.Close()

	verts, err := b.RasterizeToTriStrip(0, 0, 100, 100)
	require.NoError(t, err)
	assert.NotEmpty(t, verts)
}

func TestRasterizeEmptyPathProducesNoVertices(t *testing.T) {
	b := New()
	verts, err := b.RasterizeToTriStrip(0, 0, 100, 100)
	require.NoError(t, err)
	assert.Empty(t, verts)
}

func TestRasterizeOverflowingCoordinateReturnsEmptyNotError(t *testing.T) {
	b := New()
	b.MoveTo(0, 0)
	b.CurveTo(8.87e16, 0, 0, 0, 0, 0)

	verts, err := b.RasterizeToTriStrip(0, 0, 100, 100)
	require.NoError(t, err)
	assert.Empty(t, verts)
}

func TestRasterizeDanglingMoveToEmitsNothing(t *testing.T) {
	b := New()
	b.MoveTo(10, 10)

	verts, err := b.RasterizeToTriStrip(0, 0, 100, 100)
	require.NoError(t, err)
	assert.Empty(t, verts)
}

func TestSetFillModeChangesOverlapBehavior(t *testing.T) {
	square := func(b *Builder, x0, y0, x1, y1 float32) {
		b.MoveTo(x0, y0)
		b.LineTo(x1, y0)
		b.LineTo(x1, y1)
		b.LineTo(x0, y1)
		b.Close()
	}

	nested := func(b *Builder) {
		square(b, 0, 0, 20, 20)
		square(b, 5, 5, 15, 15)
	}

	winding := New()
	nested(winding)
	winding.SetFillMode(NonZero)
	wVerts, err := winding.RasterizeToTriStrip(0, 0, 100, 100)
	require.NoError(t, err)

	alternate := New()
	nested(alternate)
	alternate.SetFillMode(EvenOdd)
	aVerts, err := alternate.RasterizeToTriStrip(0, 0, 100, 100)
	require.NoError(t, err)

	assert.NotEmpty(t, wVerts)
	assert.NotEmpty(t, aVerts)
	assert.NotEqual(t, len(wVerts), len(aVerts), "even-odd should punch a hole that non-zero winding fills solid")
}

func TestSetOutsideBoundsEnablesComplementGeometry(t *testing.T) {
	without := New()
	without.MoveTo(10, 10)
	without.LineTo(10, 20)
	without.LineTo(20, 20)
	without.LineTo(20, 10)
	without.Close()
	plainVerts, err := without.RasterizeToTriStrip(0, 0, 40, 40)
	require.NoError(t, err)

	withOutside := New()
	withOutside.MoveTo(10, 10)
	withOutside.LineTo(10, 20)
	withOutside.LineTo(20, 20)
	withOutside.LineTo(20, 10)
	withOutside.Close()
	withOutside.SetOutsideBounds(Rect{Left: 0, Top: 0, Right: 40, Bottom: 40}, true)
	complementVerts, err := withOutside.RasterizeToTriStrip(0, 0, 40, 40)
	require.NoError(t, err)

	assert.NotEmpty(t, plainVerts)
	assert.Greater(t, len(complementVerts), len(plainVerts))
}

func TestResetPathClearsAccumulatedElements(t *testing.T) {
	b := New()
	b.MoveTo(10, 10)
	b.LineTo(10, 30)
	b.LineTo(30, 30)
	b.Close()
	b.ResetPath()

	verts, err := b.RasterizeToTriStrip(0, 0, 100, 100)
	require.NoError(t, err)
	assert.Empty(t, verts)
}

func TestSetTrapezoidFastPathDoesNotChangeOutput(t *testing.T) {
	build := func(fastPath bool) []OutputVertex {
		b := New()
		b.SetTrapezoidFastPath(fastPath)
		b.MoveTo(4, 4)
		b.LineTo(4, 20)
		b.LineTo(12, 20)
		b.LineTo(12, 4)
		b.Close()
		verts, err := b.RasterizeToTriStrip(0, 0, 100, 100)
		require.NoError(t, err)
		return verts
	}

	assert.Equal(t, len(build(true)), len(build(false)))
}
