// Package main is a cgo shared library exposing the rasterizer to C
// callers through a small, handle-based ABI: builders are opaque uintptr
// handles held in a registry, and the only heap allocation handed across
// the boundary is the returned vertex buffer, released explicitly by the
// caller.
package main

/*
#include <stdlib.h>
#include <stdint.h>

typedef struct {
	float *Data;
	size_t Len;
} VertexBuffer;
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/gpufill/gpufill"
)

var (
	registryMu sync.Mutex
	registry   = map[C.uintptr_t]*gpufill.Builder{}
	nextHandle C.uintptr_t = 1
)

func lookup(handle C.uintptr_t) *gpufill.Builder {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[handle]
}

//export wgr_builder_new
func wgr_builder_new() C.uintptr_t {
	registryMu.Lock()
	defer registryMu.Unlock()
	h := nextHandle
	nextHandle++
	registry[h] = gpufill.New()
	return h
}

//export wgr_builder_release
func wgr_builder_release(handle C.uintptr_t) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, handle)
}

//export wgr_move_to
func wgr_move_to(handle C.uintptr_t, x, y C.float) {
	if b := lookup(handle); b != nil {
		b.MoveTo(float32(x), float32(y))
	}
}

//export wgr_line_to
func wgr_line_to(handle C.uintptr_t, x, y C.float) {
	if b := lookup(handle); b != nil {
		b.LineTo(float32(x), float32(y))
	}
}

//export wgr_curve_to
func wgr_curve_to(handle C.uintptr_t, c1x, c1y, c2x, c2y, x, y C.float) {
	if b := lookup(handle); b != nil {
		b.CurveTo(float32(c1x), float32(c1y), float32(c2x), float32(c2y), float32(x), float32(y))
	}
}

//export wgr_close
func wgr_close(handle C.uintptr_t) {
	if b := lookup(handle); b != nil {
		b.Close()
	}
}

//export wgr_reset_path
func wgr_reset_path(handle C.uintptr_t) {
	if b := lookup(handle); b != nil {
		b.ResetPath()
	}
}

// FillEvenOdd/FillNonZero mirror gpufill.FillMode for the C side, which
// has no enum type of its own.
const (
	FillNonZero C.int = 0
	FillEvenOdd C.int = 1
)

//export wgr_set_fill_mode
func wgr_set_fill_mode(handle C.uintptr_t, mode C.int) {
	b := lookup(handle)
	if b == nil {
		return
	}
	if mode == FillEvenOdd {
		b.SetFillMode(gpufill.EvenOdd)
	} else {
		b.SetFillMode(gpufill.NonZero)
	}
}

//export wgr_set_outside_bounds
func wgr_set_outside_bounds(handle C.uintptr_t, left, top, right, bottom C.float, needInside C.int) {
	if b := lookup(handle); b != nil {
		b.SetOutsideBounds(gpufill.Rect{
			Left:   float32(left),
			Top:    float32(top),
			Right:  float32(right),
			Bottom: float32(bottom),
		}, needInside != 0)
	}
}

// VertexBuffer is the C-visible result of a rasterize call: a flat array
// of (x, y, coverage) float triples. Must be released with
// wgr_vertex_buffer_release once the caller has copied it out. Len is the
// number of OutputVertex triples, not raw floats.
type VertexBuffer = C.VertexBuffer

//export wgr_rasterize_to_tri_strip
func wgr_rasterize_to_tri_strip(handle C.uintptr_t, clipX, clipY, clipW, clipH C.int) VertexBuffer {
	b := lookup(handle)
	if b == nil {
		return VertexBuffer{}
	}

	verts, err := b.RasterizeToTriStrip(int32(clipX), int32(clipY), int32(clipW), int32(clipH))
	if err != nil || len(verts) == 0 {
		return VertexBuffer{}
	}

	floats := C.malloc(C.size_t(len(verts)) * 3 * C.size_t(unsafe.Sizeof(C.float(0))))
	out := unsafe.Slice((*C.float)(floats), len(verts)*3)
	for i, v := range verts {
		out[i*3+0] = C.float(v.X)
		out[i*3+1] = C.float(v.Y)
		out[i*3+2] = C.float(v.Coverage)
	}

	return VertexBuffer{Data: (*C.float)(floats), Len: C.size_t(len(verts))}
}

//export wgr_vertex_buffer_release
func wgr_vertex_buffer_release(buf VertexBuffer) {
	if buf.Data != nil {
		C.free(unsafe.Pointer(buf.Data))
	}
}

func main() {}
