// Command raster-demo opens an SDL2 window showing a live rasterize
// result: a path is built once, and on every frame its triangle-strip
// output is rendered back to an RGBA buffer (via internal/debugimg) and
// uploaded into an SDL2 streaming texture.
package main

import (
	"log"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/gpufill/gpufill"
	"github.com/gpufill/gpufill/internal/debugimg"
)

const (
	windowWidth  = 480
	windowHeight = 480
)

func buildDemoPath() *gpufill.Builder {
	b := gpufill.New()
	b.MoveTo(120, 60)
	b.LineTo(360, 60)
	b.CurveTo(420, 150, 420, 330, 360, 420)
	b.LineTo(120, 420)
	b.CurveTo(60, 330, 60, 150, 120, 60)
	b.Close()
	b.SetOutsideBounds(gpufill.Rect{Left: 0, Top: 0, Right: windowWidth, Bottom: windowHeight}, true)
	return b
}

func main() {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Fatalf("raster-demo: sdl init failed: %v", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(
		"gpufill raster-demo",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		windowWidth, windowHeight,
		sdl.WINDOW_SHOWN)
	if err != nil {
		log.Fatalf("raster-demo: failed to create window: %v", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		log.Fatalf("raster-demo: failed to create renderer: %v", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_ABGR8888),
		sdl.TEXTUREACCESS_STREAMING,
		windowWidth, windowHeight)
	if err != nil {
		log.Fatalf("raster-demo: failed to create texture: %v", err)
	}
	defer texture.Destroy()

	builder := buildDemoPath()

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Keysym.Sym == sdl.K_ESCAPE {
					running = false
				}
			}
		}

		verts, err := builder.RasterizeToTriStrip(0, 0, windowWidth, windowHeight)
		if err != nil {
			log.Printf("raster-demo: rasterize failed: %v", err)
			continue
		}

		img := debugimg.Render(verts, builder.LastLineList(), windowWidth, windowHeight)
		if err := texture.Update(nil, unsafe.Pointer(&img.Pix[0]), img.Stride); err != nil {
			log.Printf("raster-demo: texture update failed: %v", err)
			continue
		}

		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()
		sdl.Delay(16)
	}
}
