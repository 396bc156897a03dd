// Package raster drives the scanline sweep: advancing the active edge list
// one AA-subpixel row at a time, filling each row's coverage buffer under
// either fill rule, and handing completed device rows to a vertex builder.
package raster

import (
	"github.com/gpufill/gpufill/internal/coverage"
	"github.com/gpufill/gpufill/internal/edge"
	"github.com/gpufill/gpufill/internal/fixed"
)

// subpixelX converts an edge's raster-unit X (fixed.Scale*fixed.AASize per
// device pixel) down to the AA-subpixel scale (fixed.AASize per device
// pixel) that the coverage buffer operates at.
func subpixelX(active *edge.ActiveList, idx int32) int32 {
	return active.EdgeAt(idx).X >> fixed.Shift
}

// FillAlternate applies the even-odd fill rule to the current active list,
// adding one coverage interval per non-empty pair of consecutive edges.
func FillAlternate(active *edge.ActiveList, buf *coverage.Buffer) {
	cur := active.First()
	for !active.IsEnd(cur) {
		edgeEnd := active.NextIndex(cur)

		xLeft := subpixelX(active, cur)
		if xLeft != subpixelX(active, edgeEnd) {
			var xRight int32
			for {
				xRight = subpixelX(active, edgeEnd)
				after := active.NextIndex(edgeEnd)
				if active.IsEnd(after) || xRight != subpixelX(active, after) {
					break
				}
				edgeEnd = active.NextIndex(after)
			}
			buf.AddInterval(xLeft, xRight)
		}

		cur = active.NextIndex(edgeEnd)
	}
}

// FillWinding applies the non-zero winding fill rule to the current active
// list: a span starts at an edge and ends where the running sum of
// WindingDirection returns to zero, so it extends across any interior
// edges that don't themselves close the span.
func FillWinding(active *edge.ActiveList, buf *coverage.Buffer) {
	cur := active.First()
	for !active.IsEnd(cur) {
		end := active.NextIndex(cur)

		winding := active.EdgeAt(cur).WindingDirection
		for {
			winding += active.EdgeAt(end).WindingDirection
			if winding == 0 {
				break
			}
			end = active.NextIndex(end)
		}

		xLeft := subpixelX(active, cur)
		if xLeft != subpixelX(active, end) {
			var xRight int32
			for {
				xRight = subpixelX(active, end)
				after := active.NextIndex(end)
				if xRight != subpixelX(active, after) {
					break
				}
				// Empty interior pair: fold it into the same span and
				// keep extending past it.
				cur = after
				end = active.NextIndex(cur)
				winding = active.EdgeAt(cur).WindingDirection
				for {
					winding += active.EdgeAt(end).WindingDirection
					if winding == 0 {
						break
					}
					end = active.NextIndex(end)
				}
			}
			buf.AddInterval(xLeft, xRight)
		}

		cur = active.NextIndex(end)
	}
}
