// Package config provides configuration definitions for the rasterizer.
// A RasterConfig is an immutable snapshot consumed by a single rasterize
// call; it never changes once a rasterize call has started walking a path.
package config

import "github.com/gpufill/gpufill/internal/basics"

// RasterConfig bundles the tunables a rasterize call reads up front.
type RasterConfig struct {
	// FillRule selects alternate (even-odd) vs non-zero winding fill.
	FillRule basics.FillingRule

	// EnableTrapezoidFastPath turns on the vertical-edge-pair fast path
	// (§4.6). Disabling it must not change output, only cost.
	EnableTrapezoidFastPath bool

	// EnableComplement turns on zero-alpha fill of the region inside
	// OutsideBounds but outside the filled shape.
	EnableComplement bool

	// NeedInsideGeometry, when false alongside EnableComplement, omits
	// the solid interior so the caller can composite inside and outside
	// separately.
	NeedInsideGeometry bool

	// CurveTolerance bounds the chord error (device pixels) the Bézier
	// flattener tolerates before subdividing further.
	CurveTolerance float32

	// InactiveArrayStackCapacity is validated and sanitized here, but no
	// rasterizer stage reads it: edge.BuildInactiveArray always builds
	// its array in a heap slice.
	InactiveArrayStackCapacity int

	// Debug is carried in the config, but no rasterizer stage reads it, so
	// setting it enables no invariant checks. Off by default.
	Debug bool
}

const (
	defaultCurveTolerance             = 0.25
	defaultInactiveArrayStackCapacity = 64
)

// DefaultConfig returns the production defaults: non-zero winding is the
// more common host default, trapezoid fast path on, complement off.
func DefaultConfig() RasterConfig {
	return RasterConfig{
		FillRule:                   basics.FillNonZero,
		EnableTrapezoidFastPath:    true,
		EnableComplement:           false,
		NeedInsideGeometry:         true,
		CurveTolerance:             defaultCurveTolerance,
		InactiveArrayStackCapacity: defaultInactiveArrayStackCapacity,
		Debug:                      false,
	}
}

// Validate reports configuration problems a caller is likely to have
// introduced by hand-building a RasterConfig instead of starting from
// DefaultConfig.
func (c RasterConfig) Validate() []string {
	var warnings []string
	if c.CurveTolerance <= 0 {
		warnings = append(warnings, "CurveTolerance must be positive; falling back to default")
	}
	if c.InactiveArrayStackCapacity <= 0 {
		warnings = append(warnings, "InactiveArrayStackCapacity must be positive; falling back to default")
	}
	if !c.NeedInsideGeometry && !c.EnableComplement {
		warnings = append(warnings, "NeedInsideGeometry is only meaningful when EnableComplement is set")
	}
	return warnings
}

// Sanitized returns c with any non-positive tunables replaced by their
// DefaultConfig equivalents, leaving valid fields untouched.
func (c RasterConfig) Sanitized() RasterConfig {
	if c.CurveTolerance <= 0 {
		c.CurveTolerance = defaultCurveTolerance
	}
	if c.InactiveArrayStackCapacity <= 0 {
		c.InactiveArrayStackCapacity = defaultInactiveArrayStackCapacity
	}
	return c
}
