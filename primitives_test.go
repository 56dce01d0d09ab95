package debugdraw

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"j4k.co/debugdraw/vmath"
)

func TestBoxLines(t *testing.T) {
	lower := vmath.Vec3{-1, 0, 2}
	upper := vmath.Vec3{3, 1, 5}
	lines := BoxLines(lower, upper)
	if len(lines) != 24 {
		t.Fatalf("len(BoxLines) = %d, want 24", len(lines))
	}
	for i := 0; i < len(lines); i += 2 {
		a, b := lines[i], lines[i+1]
		differ := 0
		for axis := 0; axis < 3; axis++ {
			for _, p := range []vmath.Vec3{a, b} {
				if p[axis] != lower[axis] && p[axis] != upper[axis] {
					t.Fatalf("edge %d endpoint %v not on the box", i/2, p)
				}
			}
			if a[axis] != b[axis] {
				differ++
			}
		}
		if differ != 1 {
			t.Errorf("edge %v-%v is not axis aligned", a, b)
		}
	}
}

func TestFrustumLinesIdentity(t *testing.T) {
	lines := FrustumLines(mgl32.Ident4())
	want := BoxLines(vmath.Vec3{-1, -1, -1}, vmath.Vec3{1, 1, 1})
	if len(lines) != len(want) {
		t.Fatalf("len = %d, want %d", len(lines), len(want))
	}
	for i := range want {
		if !vmath.ApproxEqual(lines[i], want[i], 1e-5) {
			t.Errorf("line %d = %v, want %v", i, lines[i], want[i])
		}
	}
}

func TestFrustumLinesPerspective(t *testing.T) {
	const near, far = 1, 10
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, near, far)
	lines := FrustumLines(proj.Inv())
	// view space looks down -z: every corner lies on the near or far plane
	for _, p := range lines {
		z := -p[2]
		if !vmath.ApproxScalar(z, near, 1e-3) && !vmath.ApproxScalar(z, far, 1e-2) {
			t.Errorf("corner %v not on near or far plane", p)
		}
		// 90 degree fov, aspect 1: |x| == z at the edges
		if !vmath.ApproxScalar(abs32(p[0]), z, 1e-2) {
			t.Errorf("corner %v not on the side planes", p)
		}
	}
}

func TestPlaneQuad(t *testing.T) {
	p := vmath.Vec4{0, 1, 0, -2} // y = 2
	q := PlaneQuad(p)
	var centre vmath.Vec3
	for _, c := range q {
		if !vmath.ApproxScalar(c[1], 2, 1e-4) {
			t.Errorf("corner %v not on plane y=2", c)
		}
		centre = centre.Add(c.Mul(0.25))
	}
	if !vmath.ApproxEqual(centre, vmath.Vec3{0, 2, 0}, 1e-3) {
		t.Errorf("centre = %v, want (0,2,0)", centre)
	}
	side := q[0].Sub(q[1]).Len()
	if !vmath.ApproxScalar(side, 2*PlaneHalfExtent, 1e-2) {
		t.Errorf("side = %v, want %v", side, 2*PlaneHalfExtent)
	}
	tris := PlaneTriangles(p)
	if tris[0] != q[0] || tris[5] != q[0] || tris[2] != q[2] {
		t.Errorf("PlaneTriangles = %v", tris)
	}
}

func TestPlaneColor(t *testing.T) {
	got := PlaneColor(vmath.Vec4{0, 1, 0, 5})
	if got != (vmath.Vec3{0.5, 1, 0.5}) {
		t.Errorf("PlaneColor = %v", got)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
