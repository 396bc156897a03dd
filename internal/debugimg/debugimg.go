// Package debugimg renders a rasterized triangle-strip/line-list output
// back to a raster image, purely so a developer or a test can eyeball a
// rasterize result. It is a software compositor over the *output* mesh,
// entirely independent of internal/raster, and is never imported by it.
package debugimg

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/gpufill/gpufill/internal/vertexbuf"
)

// triangle is one flattened triangle from a strip, carrying its three
// vertices' interpolated coverage.
type triangle struct {
	a, b, c vertexbuf.OutputVertex
}

// trianglesFromStrip expands a triangle strip into independent triangles,
// skipping degenerate ones (any two vertices coincident, the strip's own
// stitching convention between sub-pieces).
func trianglesFromStrip(strip []vertexbuf.OutputVertex) []triangle {
	var tris []triangle
	for i := 0; i+2 < len(strip); i++ {
		a, b, c := strip[i], strip[i+1], strip[i+2]
		if isDegenerate(a, b, c) {
			continue
		}
		tris = append(tris, triangle{a: a, b: b, c: c})
	}
	return tris
}

func isDegenerate(a, b, c vertexbuf.OutputVertex) bool {
	return (a.X == b.X && a.Y == b.Y) ||
		(b.X == c.X && b.Y == c.Y) ||
		(a.X == c.X && a.Y == c.Y)
}

// Render rasterizes strip (and, optionally, a supplementary 2-vertex-per-
// segment line list) into an image.RGBA of the given pixel size. Fill
// color is white at full coverage, alpha-blended against black for partial
// coverage; this is meant for visual inspection, not color-accurate
// compositing.
func Render(strip, lines []vertexbuf.OutputVertex, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for _, tri := range trianglesFromStrip(strip) {
		rasterizeTriangle(img, tri)
	}
	for i := 0; i+1 < len(lines); i += 2 {
		rasterizeLine(img, lines[i], lines[i+1])
	}

	return img
}

// EncodePNG renders strip/lines at width×height and writes the result to w
// as a PNG.
func EncodePNG(w io.Writer, strip, lines []vertexbuf.OutputVertex, width, height int) error {
	img := Render(strip, lines, width, height)
	return png.Encode(w, img)
}

func blend(cvg float32) color.RGBA {
	v := uint8(clamp01(cvg) * 255)
	return color.RGBA{R: v, G: v, B: v, A: v}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// rasterizeTriangle fills tri with a standard barycentric scanline test,
// sampling at pixel centers and interpolating coverage across the three
// vertices.
func rasterizeTriangle(img *image.RGBA, tri triangle) {
	minX := int(math.Floor(float64(minOf3(tri.a.X, tri.b.X, tri.c.X))))
	maxX := int(math.Ceil(float64(maxOf3(tri.a.X, tri.b.X, tri.c.X))))
	minY := int(math.Floor(float64(minOf3(tri.a.Y, tri.b.Y, tri.c.Y))))
	maxY := int(math.Ceil(float64(maxOf3(tri.a.Y, tri.b.Y, tri.c.Y))))

	bounds := img.Bounds()
	if minX < bounds.Min.X {
		minX = bounds.Min.X
	}
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxX > bounds.Max.X {
		maxX = bounds.Max.X
	}
	if maxY > bounds.Max.Y {
		maxY = bounds.Max.Y
	}

	area := edgeFn(tri.a, tri.b, tri.c)
	if area == 0 {
		return
	}

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			p := vertexbuf.OutputVertex{X: float32(x) + 0.5, Y: float32(y) + 0.5}
			w0 := edgeFn(tri.b, tri.c, p)
			w1 := edgeFn(tri.c, tri.a, p)
			w2 := edgeFn(tri.a, tri.b, p)
			if (w0 < 0 || w1 < 0 || w2 < 0) && (w0 > 0 || w1 > 0 || w2 > 0) {
				continue
			}
			u, v, w := w0/area, w1/area, w2/area
			cvg := u*tri.a.Coverage + v*tri.b.Coverage + w*tri.c.Coverage
			img.Set(x, y, blend(cvg))
		}
	}
}

func edgeFn(a, b, p vertexbuf.OutputVertex) float32 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func rasterizeLine(img *image.RGBA, a, b vertexbuf.OutputVertex) {
	y := int(a.Y)
	x0, x1 := int(a.X), int(b.X)
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	bounds := img.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	cvg := (a.Coverage + b.Coverage) / 2
	for x := x0; x < x1; x++ {
		if x < bounds.Min.X || x >= bounds.Max.X {
			continue
		}
		img.Set(x, y, blend(cvg))
	}
}

func minOf3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxOf3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
