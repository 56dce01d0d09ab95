package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"j4k.co/debugdraw"
	"j4k.co/debugdraw/vmath"
)

// demo is the scene shared by every device: a tube along a helix, its
// bounding box, a second camera's frustum and a ground plane.
type demo struct {
	cfg   Config
	tube  debugdraw.Tube
	lower vmath.Vec3
	upper vmath.Vec3
	spot  vmath.Matrix44

	// drawTube overrides how the tube is drawn.
	drawTube func(dev debugdraw.Device, viewProj vmath.Matrix44, t float32)
}

func helix(n int) []vmath.Vec3 {
	pts := make([]vmath.Vec3, n)
	for i := range pts {
		a := float64(i) * 0.8
		pts[i] = vmath.Vec3{3 * float32(math.Cos(a)), 0.5 + 0.4*float32(i), 3 * float32(math.Sin(a))}
	}
	return pts
}

func newDemo(cfg Config) *demo {
	d := &demo{cfg: cfg}
	d.tube = debugdraw.Extrude(helix(10), cfg.Tube.Radius, cfg.Tube.Resolution, cfg.Tube.Smoothing)
	d.lower, d.upper = bounds(d.tube.Positions)

	proj := mgl32.Perspective(mgl32.DegToRad(40), 1.5, 1, 6)
	view := mgl32.LookAtV(vmath.Vec3{0, 3, -8}, vmath.Vec3{0, 2, 0}, vmath.Vec3{0, 1, 0})
	d.spot = proj.Mul4(view).Inv()
	return d
}

func bounds(pts []vmath.Vec3) (lower, upper vmath.Vec3) {
	if len(pts) == 0 {
		return
	}
	lower, upper = pts[0], pts[0]
	for _, p := range pts[1:] {
		for i := 0; i < 3; i++ {
			lower[i] = min(lower[i], p[i])
			upper[i] = max(upper[i], p[i])
		}
	}
	return lower, upper
}

// camera orbits the scene over time t in seconds.
func (d *demo) camera(width, height int, t float32) vmath.Matrix44 {
	a := float64(t) * 0.3
	eye := vmath.Vec3{12 * float32(math.Cos(a)), 7, 12 * float32(math.Sin(a))}
	view := mgl32.LookAtV(eye, vmath.Vec3{0, 2, 0}, vmath.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(45), float32(width)/float32(max(height, 1)), 0.1, 100)
	return proj.Mul4(view)
}

func (d *demo) draw(dev debugdraw.Device, width, height int, t float32) {
	vp := d.camera(width, height, t)
	dev.SetViewProjection(vp)

	dev.DrawPlane(vmath.Vec4{0, 1, 0, 0}, true)
	if d.drawTube != nil {
		d.drawTube(dev, vp, t)
	} else {
		dev.DrawMesh(&d.tube, d.cfg.TubeColor())
	}
	dev.DrawBoundingBox(d.lower, d.upper)
	dev.DrawFrustum(d.spot)

	dev.DrawString(8, 8, "t = %.2fs", t)
	dev.DrawStringStroked(8, 24, d.cfg.TubeColor(), "tube: %d vertices, %d triangles",
		len(d.tube.Positions), len(d.tube.Indices)/3)
}
