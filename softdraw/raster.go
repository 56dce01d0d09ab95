package softdraw

import (
	"image/color"
	"math"

	"j4k.co/debugdraw/vmath"
)

// clipVertex is a vertex in clip space with its barycentric weights relative
// to the triangle it was cut from.
type clipVertex struct {
	pos  vmath.Vec4
	bary vmath.Vec3
}

func lerpVertex(a, b clipVertex, t float32) clipVertex {
	return clipVertex{
		pos:  a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
		bary: a.bary.Add(b.bary.Sub(a.bary).Mul(t)),
	}
}

// clipNear cuts the polygon poly against the plane w = nearW and returns the
// part in front of it.
func clipNear(poly []clipVertex) []clipVertex {
	out := make([]clipVertex, 0, len(poly)+1)
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		curIn := cur.pos[3] >= nearW
		prevIn := prev.pos[3] >= nearW
		if curIn != prevIn {
			t := (nearW - prev.pos[3]) / (cur.pos[3] - prev.pos[3])
			out = append(out, lerpVertex(prev, cur, t))
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}

// screenPoint is a position in pixels with NDC depth.
type screenPoint struct {
	x, y, z float32
}

func (d *Device) toScreen(clip vmath.Vec4) screenPoint {
	b := d.img.Rect
	inv := 1 / clip[3]
	return screenPoint{
		x: float32(b.Min.X) + (clip[0]*inv+1)*0.5*float32(b.Dx()),
		y: float32(b.Min.Y) + (1-clip[1]*inv)*0.5*float32(b.Dy()),
		z: clip[2] * inv,
	}
}

// line draws the world space segment a-b through the view projection.
func (d *Device) line(a, b vmath.Vec3, c color.RGBA) {
	ca := d.viewProj.Mul4x1(a.Vec4(1))
	cb := d.viewProj.Mul4x1(b.Vec4(1))
	if ca[3] < nearW && cb[3] < nearW {
		return
	}
	if ca[3] < nearW {
		ca = ca.Add(cb.Sub(ca).Mul((nearW - ca[3]) / (cb[3] - ca[3])))
	} else if cb[3] < nearW {
		cb = cb.Add(ca.Sub(cb).Mul((nearW - cb[3]) / (ca[3] - cb[3])))
	}
	sa, sb := d.toScreen(ca), d.toScreen(cb)

	r := d.img.Rect
	x0, y0, x1, y1, ok := clipSegment(sa.x, sa.y, sb.x, sb.y,
		float32(r.Min.X), float32(r.Min.Y), float32(r.Max.X-1), float32(r.Max.Y-1))
	if !ok {
		return
	}
	d.bresenham(round(x0), round(y0), round(x1), round(y1), c)
}

// clipSegment clips a segment to a rectangle (Liang-Barsky).
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float32) (float32, float32, float32, float32, bool) {
	dx, dy := x1-x0, y1-y0
	p := [4]float32{-dx, dx, -dy, dy}
	q := [4]float32{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	t0, t1 := float32(0), float32(1)
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func (d *Device) bresenham(x0, y0, x1, y1 int, c color.RGBA) {
	dx := iabs(x1 - x0)
	dy := -iabs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		d.img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// triangle fills the world space triangle a, b, c with depth testing. shade
// is given the barycentric weights of each covered pixel.
func (d *Device) triangle(a, b, c vmath.Vec3, shade func(wa, wb, wc float32) color.RGBA) {
	poly := clipNear([]clipVertex{
		{d.viewProj.Mul4x1(a.Vec4(1)), vmath.Vec3{1, 0, 0}},
		{d.viewProj.Mul4x1(b.Vec4(1)), vmath.Vec3{0, 1, 0}},
		{d.viewProj.Mul4x1(c.Vec4(1)), vmath.Vec3{0, 0, 1}},
	})
	for i := 2; i < len(poly); i++ {
		d.fill(poly[0], poly[i-1], poly[i], shade)
	}
}

func (d *Device) fill(va, vb, vc clipVertex, shade func(wa, wb, wc float32) color.RGBA) {
	a, b, c := d.toScreen(va.pos), d.toScreen(vb.pos), d.toScreen(vc.pos)
	area := edge(a, b, c.x, c.y)
	if area == 0 || math.IsNaN(float64(area)) {
		return
	}

	r := d.img.Rect
	minX := int(max(floor(min(a.x, b.x, c.x)), float32(r.Min.X)))
	maxX := int(min(ceil(max(a.x, b.x, c.x)), float32(r.Max.X-1)))
	minY := int(max(floor(min(a.y, b.y, c.y)), float32(r.Min.Y)))
	maxY := int(min(ceil(max(a.y, b.y, c.y)), float32(r.Max.Y-1)))

	stride := r.Dx()
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(b, c, px, py) / area
			w1 := edge(c, a, px, py) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			if z < -1 || z > 1 {
				continue
			}
			i := (y-r.Min.Y)*stride + (x - r.Min.X)
			if z >= d.depth[i] {
				continue
			}
			d.depth[i] = z
			bary := va.bary.Mul(w0).Add(vb.bary.Mul(w1)).Add(vc.bary.Mul(w2))
			d.img.SetRGBA(x, y, shade(bary[0], bary[1], bary[2]))
		}
	}
}

func edge(a, b screenPoint, x, y float32) float32 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}

func round(f float32) int { return int(math.Floor(float64(f) + 0.5)) }
func floor(f float32) float32 {
	return float32(math.Floor(float64(f)))
}
func ceil(f float32) float32 {
	return float32(math.Ceil(float64(f)))
}

func iabs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
