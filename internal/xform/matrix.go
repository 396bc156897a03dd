// Package xform provides the 2D affine transform applied to path points
// before they reach the edge initializer, a minimal stand-in for a general
// transform utility.
package xform

// Matrix is a 2D affine transform:
//
//	x' = x*M11 + y*M21 + Dx
//	y' = x*M12 + y*M22 + Dy
type Matrix struct {
	M11, M12 float32
	M21, M22 float32
	Dx, Dy   float32
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{M11: 1, M22: 1}
}

// Apply transforms a point.
func (m Matrix) Apply(x, y float32) (float32, float32) {
	return x*m.M11 + y*m.M21 + m.Dx, x*m.M12 + y*m.M22 + m.Dy
}

// IsIdentity reports whether m is the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Multiply returns m composed with n, applying m first then n (m.Multiply(n)
// transforms a point by m, then by n).
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		M11: m.M11*n.M11 + m.M12*n.M21,
		M12: m.M11*n.M12 + m.M12*n.M22,
		M21: m.M21*n.M11 + m.M22*n.M21,
		M22: m.M21*n.M12 + m.M22*n.M22,
		Dx:  m.Dx*n.M11 + m.Dy*n.M21 + n.Dx,
		Dy:  m.Dx*n.M12 + m.Dy*n.M22 + n.Dy,
	}
}
