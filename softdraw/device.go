// Package softdraw implements debugdraw.Device in software, rendering into an
// *image.RGBA. It needs no graphics context, which makes it the device for
// headless builds and tests.
//
// Lines and text are drawn over everything; triangles (planes and meshes)
// are depth tested against each other. Shader programs are not supported.
package softdraw

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"j4k.co/debugdraw"
	"j4k.co/debugdraw/geometry"
	"j4k.co/debugdraw/vmath"
)

// nearW is the smallest clip space w accepted; geometry closer to or behind
// the eye is clipped.
const nearW = 1e-4

// Device is safe for concurrent use.
type Device struct {
	mu       sync.Mutex
	img      *image.RGBA
	depth    []float32
	viewProj vmath.Matrix44

	nextTex  debugdraw.Texture
	textures map[debugdraw.Texture]*debugdraw.CubeImages
}

var _ debugdraw.Device = (*Device)(nil)

// New returns a device drawing into a w by h image cleared to black.
func New(w, h int) *Device {
	d := &Device{
		img:      image.NewRGBA(image.Rect(0, 0, w, h)),
		depth:    make([]float32, w*h),
		viewProj: mgl32.Ident4(),
		textures: make(map[debugdraw.Texture]*debugdraw.CubeImages),
	}
	d.Clear(color.RGBA{A: 0xff})
	return d
}

// Image returns the render target. It is owned by the device; copy it before
// drawing further if it is kept.
func (d *Device) Image() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.img
}

// Clear fills the target with c and resets the depth buffer.
func (d *Device) Clear(c color.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	draw.Draw(d.img, d.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
	for i := range d.depth {
		d.depth[i] = math.MaxFloat32
	}
}

func (d *Device) CompileProgram(srcs ...debugdraw.ShaderSource) (debugdraw.Program, error) {
	if err := debugdraw.CheckStages(srcs...); err != nil {
		return 0, err
	}
	return 0, debugdraw.ErrUnsupported
}

func (d *Device) DeleteProgram(debugdraw.Program) {}

func (d *Device) SetViewProjection(m vmath.Matrix44) {
	d.mu.Lock()
	d.viewProj = m
	d.mu.Unlock()
}

func (d *Device) DrawPlane(p vmath.Vec4, tinted bool) {
	c := vmath.Vec3{1, 1, 1}
	if tinted {
		c = debugdraw.PlaneColor(p)
	}
	q := debugdraw.PlaneTriangles(p)

	d.mu.Lock()
	defer d.mu.Unlock()
	col := rgba(c)
	for i := 0; i < len(q); i += 3 {
		d.triangle(q[i], q[i+1], q[i+2], func(float32, float32, float32) color.RGBA { return col })
	}
}

func (d *Device) DrawFrustum(projToWorld vmath.Matrix44) {
	d.drawLines(debugdraw.FrustumLines(projToWorld), color.RGBA{0xff, 0xff, 0xff, 0xff})
}

func (d *Device) DrawBoundingBox(lower, upper vmath.Vec3) {
	d.drawLines(debugdraw.BoxLines(lower, upper), color.RGBA{0xff, 0xff, 0xff, 0xff})
}

func (d *Device) drawLines(pts []vmath.Vec3, c color.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i+1 < len(pts); i += 2 {
		d.line(pts[i], pts[i+1], c)
	}
}

// light matches the direction the GL mesh program uses.
var light = vmath.SafeNormalize(vmath.Vec3{-0.3, 1, 0.5}, vmath.Vec3{0, 1, 0})

func (d *Device) DrawMesh(t *debugdraw.Tube, c vmath.Vec3) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i+2 < len(t.Indices); i += 3 {
		ia, ib, ic := t.Indices[i], t.Indices[i+1], t.Indices[i+2]
		na, nb, nc := t.Normals[ia], t.Normals[ib], t.Normals[ic]
		d.triangle(t.Positions[ia], t.Positions[ib], t.Positions[ic], func(wa, wb, wc float32) color.RGBA {
			n := vmath.SafeNormalize(na.Mul(wa).Add(nb.Mul(wb)).Add(nc.Mul(wc)), light)
			diffuse := max(vmath.Dot(n, light), 0)
			return rgba(c.Mul(0.25 + 0.75*diffuse))
		})
	}
}

func (d *Device) DrawString(x, y int, format string, args ...any) {
	s := debugdraw.Sprintf(format, args...)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text(x, y, color.White, s)
}

func (d *Device) DrawStringStroked(x, y int, c vmath.Vec3, format string, args ...any) {
	s := debugdraw.Sprintf(format, args...)
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, o := range debugdraw.StrokeOffsets {
		d.text(x+o.X, y+o.Y, color.Black, s)
	}
	d.text(x, y, rgba(c), s)
}

func (d *Device) text(x, y int, c color.Color, s string) {
	mask := debugdraw.RasterizeText(s)
	if mask == nil {
		return
	}
	r := mask.Rect.Add(image.Pt(x, y))
	draw.DrawMask(d.img, r, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

func (d *Device) LoadCubeTexture(baseName string) (debugdraw.Texture, error) {
	cube, err := debugdraw.LoadCubeImages(baseName)
	if err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextTex++
	d.textures[d.nextTex] = cube
	return d.nextTex, nil
}

// CubeImages returns the faces behind a texture from LoadCubeTexture.
func (d *Device) CubeImages(t debugdraw.Texture) (*debugdraw.CubeImages, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.textures[t]
	return c, ok
}

func (d *Device) DeleteTexture(t debugdraw.Texture) {
	d.mu.Lock()
	delete(d.textures, t)
	d.mu.Unlock()
}

func (d *Device) Release() {
	d.mu.Lock()
	clear(d.textures)
	d.mu.Unlock()
}

func rgba(c vmath.Vec3) color.RGBA {
	return color.RGBA{geometry.Unorm8(c[0]), geometry.Unorm8(c[1]), geometry.Unorm8(c[2]), 0xff}
}
