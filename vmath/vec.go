// Package vmath holds the small amount of linear algebra the debug renderer
// needs: mgl32 vectors plus a column-major 3x3 matrix with pure, inlinable
// operations.
package vmath

import (
	"github.com/go-gl/mathgl/mgl32"
)

type (
	Vec3     = mgl32.Vec3
	Vec4     = mgl32.Vec4
	Matrix44 = mgl32.Mat4
)

// Dot returns the dot product of a and b.
func Dot(a, b Vec3) float32 {
	return a.Dot(b)
}

// Cross returns the cross product a × b.
func Cross(a, b Vec3) Vec3 {
	return a.Cross(b)
}

// SafeNormalize returns v scaled to unit length, or fallback if v has no
// usable length.
func SafeNormalize(v, fallback Vec3) Vec3 {
	l := v.Len()
	if l <= 1e-6 {
		return fallback
	}
	return v.Mul(1 / l)
}

// BasisFromVector returns two unit vectors u, v such that (u, v, w) is a
// right-handed orthonormal basis. w must be unit length.
func BasisFromVector(w Vec3) (u, v Vec3) {
	if mgl32.Abs(w[0]) > mgl32.Abs(w[1]) {
		inv := 1 / mgl32.Vec2{w[0], w[2]}.Len()
		u = Vec3{-w[2] * inv, 0, w[0] * inv}
	} else {
		inv := 1 / mgl32.Vec2{w[1], w[2]}.Len()
		u = Vec3{0, w[2] * inv, -w[1] * inv}
	}
	v = Cross(w, u)
	return u, v
}

// HermiteInterpolate evaluates the cubic Hermite curve from p1 to p2 with
// tangents m1, m2 at t in [0, 1].
func HermiteInterpolate(p1, p2, m1, m2 Vec3, t float32) Vec3 {
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return p1.Mul(h00).Add(m1.Mul(h10)).Add(p2.Mul(h01)).Add(m2.Mul(h11))
}

// HermiteTangent is the derivative of HermiteInterpolate with respect to t.
func HermiteTangent(p1, p2, m1, m2 Vec3, t float32) Vec3 {
	t2 := t * t
	d00 := 6*t2 - 6*t
	d10 := 3*t2 - 4*t + 1
	d01 := -6*t2 + 6*t
	d11 := 3*t2 - 2*t
	return p1.Mul(d00).Add(m1.Mul(d10)).Add(p2.Mul(d01)).Add(m2.Mul(d11))
}

// TransformPoint multiplies p (w=1) by m and divides by the resulting w.
func TransformPoint(m Matrix44, p Vec3) Vec3 {
	h := m.Mul4x1(p.Vec4(1))
	if h[3] == 0 {
		return h.Vec3()
	}
	return h.Vec3().Mul(1 / h[3])
}

// ApproxScalar reports whether |a-b| <= eps. mgl32.FloatEqualThreshold is
// relative and squares eps when either side is zero, so results that should
// vanish need this absolute form.
func ApproxScalar(a, b, eps float32) bool {
	return mgl32.Abs(a-b) <= eps
}

// ApproxEqual is ApproxScalar on every component.
func ApproxEqual(a, b Vec3, eps float32) bool {
	return a.ApproxFuncEqual(b, func(x, y float32) bool { return ApproxScalar(x, y, eps) })
}
