package vmath

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBasisFromVector(t *testing.T) {
	dirs := []Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, -1},
		SafeNormalize(Vec3{1, 2, 3}, Vec3{}),
		SafeNormalize(Vec3{-5, 0.1, 0}, Vec3{}),
	}
	for _, w := range dirs {
		u, v := BasisFromVector(w)
		if !ApproxScalar(u.Len(), 1, eps) || !ApproxScalar(v.Len(), 1, eps) {
			t.Errorf("w=%v: |u|=%v |v|=%v, want unit", w, u.Len(), v.Len())
		}
		if !ApproxScalar(Dot(u, w), 0, eps) || !ApproxScalar(Dot(v, w), 0, eps) {
			t.Errorf("w=%v: basis not orthogonal to w", w)
		}
		if d := Determinant(NewMatrix33(u, v, w)); !ApproxScalar(d, 1, eps) {
			t.Errorf("w=%v: det(u,v,w) = %v, want right-handed", w, d)
		}
	}
}

func TestSafeNormalize(t *testing.T) {
	fallback := Vec3{0, 1, 0}
	if got := SafeNormalize(Vec3{}, fallback); got != fallback {
		t.Errorf("SafeNormalize(0) = %v, want fallback", got)
	}
	if got := SafeNormalize(Vec3{3, 0, 4}, fallback); !ApproxEqual(got, Vec3{0.6, 0, 0.8}, eps) {
		t.Errorf("SafeNormalize(3,0,4) = %v", got)
	}
}

func TestHermiteEndpoints(t *testing.T) {
	p1, p2 := Vec3{0, 0, 0}, Vec3{1, 2, 0}
	m1, m2 := Vec3{1, 0, 0}, Vec3{0, 1, 0}
	if got := HermiteInterpolate(p1, p2, m1, m2, 0); got != p1 {
		t.Errorf("H(0) = %v, want %v", got, p1)
	}
	if got := HermiteInterpolate(p1, p2, m1, m2, 1); !ApproxEqual(got, p2, eps) {
		t.Errorf("H(1) = %v, want %v", got, p2)
	}
	if got := HermiteTangent(p1, p2, m1, m2, 0); !ApproxEqual(got, m1, eps) {
		t.Errorf("H'(0) = %v, want %v", got, m1)
	}
	if got := HermiteTangent(p1, p2, m1, m2, 1); !ApproxEqual(got, m2, eps) {
		t.Errorf("H'(1) = %v, want %v", got, m2)
	}
}

func TestTransformPoint(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	if got := TransformPoint(m, Vec3{1, 1, 1}); !ApproxEqual(got, Vec3{2, 3, 4}, eps) {
		t.Errorf("TransformPoint = %v", got)
	}
	div := mgl32.Scale3D(1, 1, 1)
	div[15] = 2
	if got := TransformPoint(div, Vec3{2, 4, 6}); !ApproxEqual(got, Vec3{1, 2, 3}, eps) {
		t.Errorf("TransformPoint with w=2 = %v", got)
	}
}

func TestDotCrossMatchMathgl(t *testing.T) {
	vecs := []Vec3{{1, 0, 0}, {0.5, -2, 3}, {4, 4, -1}, {0, 0, 0}}
	for _, a := range vecs {
		for _, b := range vecs {
			if got, want := Dot(a, b), a.Dot(b); got != want {
				t.Errorf("Dot(%v, %v) = %v, want %v", a, b, got, want)
			}
			if got, want := Cross(a, b), a.Cross(b); got != want {
				t.Errorf("Cross(%v, %v) = %v, want %v", a, b, got, want)
			}
		}
	}
	if got := Cross(Vec3{1, 0, 0}, Vec3{0, 1, 0}); got != (Vec3{0, 0, 1}) {
		t.Errorf("x cross y = %v, want z", got)
	}
}

func TestApproxNearZero(t *testing.T) {
	if !ApproxScalar(1e-6, 0, eps) {
		t.Error("ApproxScalar(1e-6, 0) = false")
	}
	if ApproxScalar(1e-3, 0, eps) {
		t.Error("ApproxScalar(1e-3, 0) = true")
	}
	if !ApproxEqual(Vec3{1e-6, 1, -2}, Vec3{0, 1, -2}, eps) {
		t.Error("ApproxEqual rejects a near-zero residue")
	}
	if ApproxEqual(Vec3{0, 1, -2}, Vec3{0, 1.01, -2}, eps) {
		t.Error("ApproxEqual accepts a 0.01 difference")
	}
}
