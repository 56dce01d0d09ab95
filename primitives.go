package debugdraw

import (
	"image"

	"j4k.co/debugdraw/vmath"
)

// PlaneHalfExtent is half the side length of the quad DrawPlane draws.
const PlaneHalfExtent = 200

// boxEdges indexes the corners of a box (bit 0 = x, bit 1 = y, bit 2 = z)
// pairwise, one entry per edge.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along x
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along z
}

func edgeLines(corners *[8]vmath.Vec3) []vmath.Vec3 {
	lines := make([]vmath.Vec3, 0, 2*len(boxEdges))
	for _, e := range boxEdges {
		lines = append(lines, corners[e[0]], corners[e[1]])
	}
	return lines
}

func boxCorners(lower, upper vmath.Vec3) [8]vmath.Vec3 {
	var c [8]vmath.Vec3
	for i := range c {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				c[i][axis] = upper[axis]
			} else {
				c[i][axis] = lower[axis]
			}
		}
	}
	return c
}

// BoxLines returns the 12 edges of the axis aligned box as a line list, two
// endpoints per edge.
func BoxLines(lower, upper vmath.Vec3) []vmath.Vec3 {
	c := boxCorners(lower, upper)
	return edgeLines(&c)
}

// FrustumLines maps the corners of the clip cube [-1, 1]^3 through
// projToWorld, with perspective divide, and returns its 12 edges as a line
// list.
func FrustumLines(projToWorld vmath.Matrix44) []vmath.Vec3 {
	c := boxCorners(vmath.Vec3{-1, -1, -1}, vmath.Vec3{1, 1, 1})
	for i := range c {
		c[i] = vmath.TransformPoint(projToWorld, c[i])
	}
	return edgeLines(&c)
}

// PlaneQuad returns the corners, in winding order, of the square of half
// size PlaneHalfExtent lying on the plane p = (n, w) and centred on the point
// of the plane closest to the origin.
func PlaneQuad(p vmath.Vec4) [4]vmath.Vec3 {
	n := vmath.SafeNormalize(p.Vec3(), vmath.Vec3{0, 1, 0})
	u, v := vmath.BasisFromVector(n)
	c := n.Mul(-p[3])
	u = u.Mul(PlaneHalfExtent)
	v = v.Mul(PlaneHalfExtent)
	return [4]vmath.Vec3{
		c.Add(u).Add(v),
		c.Sub(u).Add(v),
		c.Sub(u).Sub(v),
		c.Add(u).Sub(v),
	}
}

// PlaneTriangles splits PlaneQuad into two triangles.
func PlaneTriangles(p vmath.Vec4) [6]vmath.Vec3 {
	q := PlaneQuad(p)
	return [6]vmath.Vec3{q[0], q[1], q[2], q[2], q[3], q[0]}
}

// PlaneColor derives a tint from the plane normal, mapping each component
// from [-1, 1] to [0, 1].
func PlaneColor(p vmath.Vec4) vmath.Vec3 {
	return p.Vec3().Mul(0.5).Add(vmath.Vec3{0.5, 0.5, 0.5})
}

// StrokeOffsets are the pixel offsets text is drawn at to form an outline.
var StrokeOffsets = [8]image.Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}
