package debugdraw

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"j4k.co/debugdraw/vmath"
)

// Tube is an indexed triangle mesh with per-vertex normals.
type Tube struct {
	Positions []vmath.Vec3
	Normals   []vmath.Vec3
	Indices   []uint32
}

// Rings returns the number of cross sections in t for the given resolution.
func (t *Tube) Rings(resolution int) int {
	if resolution <= 0 {
		return 0
	}
	return len(t.Positions) / resolution
}

// Extrude sweeps a circle of the given radius along the Hermite curve through
// points. resolution is the number of segments around the circle and
// smoothing the number of cross sections between consecutive points.
//
// The curve tangent at each point is the central difference of its
// neighbours. The circle's frame is carried along the curve by the minimal
// rotation that aligns it with the tangent, so the tube does not twist.
//
// Fewer than two points or a resolution below 3 gives an empty tube.
func Extrude(points []vmath.Vec3, radius float32, resolution, smoothing int) Tube {
	var t Tube
	t.Append(points, radius, resolution, smoothing)
	return t
}

// Append extrudes points as in Extrude and appends the result to t. Indices
// of the new section are offset past the existing vertices.
func (t *Tube) Append(points []vmath.Vec3, radius float32, resolution, smoothing int) {
	n := len(points)
	if n < 2 || resolution < 3 {
		return
	}
	if smoothing < 1 {
		smoothing = 1
	}

	w := vmath.SafeNormalize(points[1].Sub(points[0]), vmath.Vec3{0, 1, 0})
	u, v := vmath.BasisFromVector(w)
	frame := vmath.NewMatrix33(u, v, w)

	rings := (n-1)*smoothing + 1
	t.Positions = slices.Grow(t.Positions, rings*resolution)
	t.Normals = slices.Grow(t.Normals, rings*resolution)

	first := len(t.Positions)
	step := 2 * math.Pi / float64(resolution)
	for i := 0; i < n-1; i++ {
		a := max(i-1, 0)
		b := i
		c := min(i+1, n-1)
		d := min(i+2, n-1)

		p1, p2 := points[b], points[c]
		m1 := points[c].Sub(points[a]).Mul(0.5)
		m2 := points[d].Sub(points[b]).Mul(0.5)

		segments := smoothing
		if i == n-2 {
			// close the curve on the final point
			segments++
		}
		for s := 0; s < segments; s++ {
			k := float32(s) / float32(smoothing)
			pos := vmath.HermiteInterpolate(p1, p2, m1, m2, k)
			dir := vmath.SafeNormalize(vmath.HermiteTangent(p1, p2, m1, m2, k), frame.Cols[2])

			cur := frame.Cols[2]
			cos := vmath.Dot(cur, dir)
			angle := float32(math.Acos(float64(mgl32.Clamp(cos, -1, 1))))
			if angle > 0.001 {
				axis := vmath.SafeNormalize(vmath.Cross(cur, dir), frame.Cols[0])
				frame = vmath.Mul33(vmath.Rotation33(angle, axis), frame)
			}

			start := len(t.Positions)
			for r := 0; r < resolution; r++ {
				sn, cs := math.Sincos(step * float64(r))
				nrm := frame.MulVec(vmath.Vec3{float32(cs), float32(sn), 0})
				t.Positions = append(t.Positions, pos.Add(nrm.Mul(radius)))
				t.Normals = append(t.Normals, nrm)
			}

			if start == first {
				continue
			}
			for r := 0; r < resolution; r++ {
				ci := uint32(start + r)
				ni := uint32(start + (r+1)%resolution)
				res := uint32(resolution)
				t.Indices = append(t.Indices,
					ci, ci-res, ni-res,
					ni-res, ni, ci,
				)
			}
		}
	}
}
