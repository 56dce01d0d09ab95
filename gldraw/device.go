// Package gldraw implements debugdraw.Device on OpenGL 4.1 core.
//
// A Device must be created and used on the goroutine that owns the current
// GL context, with that goroutine locked to its OS thread. Handles may be
// deleted from anywhere; the GL names are freed at the next draw.
//
// Unless built with the release tag every GL call is followed by a
// glGetError check reported through debugdraw.Assert.
package gldraw

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"j4k.co/debugdraw"
	"j4k.co/debugdraw/geometry"
	"j4k.co/debugdraw/vmath"
)

var initOnce = sync.OnceValue(func() error { return gl.Init() })

// Device draws debug primitives with OpenGL.
type Device struct {
	vao uint32

	color *Shader
	text  *Shader
	mesh  *Shader

	lines  *geometry.Builder
	quad   *geometry.Builder
	glyphs *Sampler2D

	lineGeom *Geometry
	quadGeom *Geometry
	meshGeom *Geometry

	viewProj vmath.Matrix44

	programs map[debugdraw.Program]bool
	textures map[debugdraw.Texture]*SamplerCube
}

var _ debugdraw.Device = (*Device)(nil)

type colorUniforms struct {
	ViewProjection vmath.Matrix44 `uniform:"ViewProjection"`
}

type textUniforms struct {
	Glyphs    *Sampler2D `uniform:"Glyphs"`
	TextColor vmath.Vec4 `uniform:"TextColor"`
}

type meshUniforms struct {
	ViewProjection vmath.Matrix44 `uniform:"ViewProjection"`
	MeshColor      vmath.Vec3     `uniform:"MeshColor"`
}

// New loads GL entry points for the current context and builds the
// device's internal programs.
func New() (*Device, error) {
	if err := initOnce(); err != nil {
		return nil, fmt.Errorf("gldraw: init: %w", err)
	}
	debugdraw.Logger().Info("gl device",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)

	d := &Device{
		viewProj: mgl32.Ident4(),
		programs: make(map[debugdraw.Program]bool),
		textures: make(map[debugdraw.Texture]*SamplerCube),
		lines:    geometry.NewBuilder(debugdraw.VertexPosition | debugdraw.VertexColor),
		quad:     geometry.NewBuilder(debugdraw.VertexPosition | debugdraw.VertexTexcoord),
	}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	verify("glGenVertexArrays")

	builtins := []struct {
		dst  **Shader
		srcs []debugdraw.ShaderSource
	}{
		{&d.color, []debugdraw.ShaderSource{colorVS, colorFS}},
		{&d.text, []debugdraw.ShaderSource{textVS, textFS}},
		{&d.mesh, []debugdraw.ShaderSource{meshVS, meshFS}},
	}
	for _, b := range builtins {
		prog, err := buildProgram(b.srcs...)
		if err != nil {
			d.Release()
			return nil, fmt.Errorf("gldraw: builtin program: %w", err)
		}
		*b.dst = NewShader(debugdraw.Program(prog), debugdraw.DefaultVertexAttributes)
	}

	d.lineGeom = allocGeom(debugdraw.StreamDraw, false, d.lines.VertexFormat())
	d.quadGeom = allocGeom(debugdraw.StreamDraw, false, d.quad.VertexFormat())
	d.meshGeom = allocGeom(debugdraw.StreamDraw, true, debugdraw.VertexPosition|debugdraw.VertexNormal)
	d.glyphs = newSampler2D()
	return d, nil
}

func (d *Device) CompileProgram(srcs ...debugdraw.ShaderSource) (debugdraw.Program, error) {
	prog, err := buildProgram(srcs...)
	if err != nil {
		return 0, err
	}
	p := debugdraw.Program(prog)
	d.programs[p] = true
	return p, nil
}

// DeleteProgram queues p for deletion.
func (d *Device) DeleteProgram(p debugdraw.Program) {
	if !d.programs[p] {
		return
	}
	delete(d.programs, p)
	trashbin.addProgram(uint32(p))
}

func (d *Device) SetViewProjection(m vmath.Matrix44) {
	d.viewProj = m
}

// viewport returns the current viewport size in pixels.
func (d *Device) viewport() (x, y, w, h float32) {
	var vp [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	return float32(vp[0]), float32(vp[1]), float32(vp[2]), float32(vp[3])
}

func (d *Device) drawColored(mode uint32, b *geometry.Builder) {
	if b.VertexCount() == 0 {
		return
	}
	gl.BindVertexArray(d.vao)
	if err := d.lineGeom.CopyFrom(b); err != nil {
		debugdraw.Logger().Warn("upload failed", "err", err)
		return
	}
	d.color.Use()
	d.color.SetUniforms(colorUniforms{ViewProjection: d.viewProj})
	d.color.SetGeometry(d.lineGeom)
	d.color.Draw(mode)
}

func (d *Device) drawLines(pts []vmath.Vec3, color vmath.Vec3) {
	d.lines.Clear()
	for _, p := range pts {
		d.lines.Position(p[0], p[1], p[2]).Colorf(color[0], color[1], color[2], 1)
	}
	d.drawColored(gl.LINES, d.lines)
}

func (d *Device) DrawPlane(p vmath.Vec4, color bool) {
	c := vmath.Vec3{1, 1, 1}
	if color {
		c = debugdraw.PlaneColor(p)
	}
	d.lines.Clear()
	for _, v := range debugdraw.PlaneTriangles(p) {
		d.lines.Position(v[0], v[1], v[2]).Colorf(c[0], c[1], c[2], 1)
	}
	d.drawColored(gl.TRIANGLES, d.lines)
}

func (d *Device) DrawFrustum(projToWorld vmath.Matrix44) {
	d.drawLines(debugdraw.FrustumLines(projToWorld), vmath.Vec3{1, 1, 1})
}

func (d *Device) DrawBoundingBox(lower, upper vmath.Vec3) {
	d.drawLines(debugdraw.BoxLines(lower, upper), vmath.Vec3{1, 1, 1})
}

func (d *Device) DrawMesh(t *debugdraw.Tube, color vmath.Vec3) {
	if len(t.Indices) == 0 {
		return
	}
	gl.BindVertexArray(d.vao)
	if err := d.meshGeom.CopyFrom(geometry.FromTube(t)); err != nil {
		debugdraw.Logger().Warn("upload failed", "err", err)
		return
	}
	gl.Enable(gl.DEPTH_TEST)
	d.mesh.Use()
	d.mesh.SetUniforms(meshUniforms{ViewProjection: d.viewProj, MeshColor: color})
	d.mesh.SetGeometry(d.meshGeom)
	d.mesh.Draw(gl.TRIANGLES)
}

// DrawGeometry draws geometry built by the caller with shader s.
func (d *Device) DrawGeometry(s *Shader, g *Geometry, mode uint32, uniforms any) {
	gl.BindVertexArray(d.vao)
	s.Use()
	if uniforms != nil {
		s.SetUniforms(uniforms)
	}
	s.SetGeometry(g)
	s.Draw(mode)
}

func (d *Device) DrawString(x, y int, format string, args ...any) {
	d.drawText(x, y, vmath.Vec4{1, 1, 1, 1}, debugdraw.Sprintf(format, args...))
}

func (d *Device) DrawStringStroked(x, y int, color vmath.Vec3, format string, args ...any) {
	s := debugdraw.Sprintf(format, args...)
	for _, o := range debugdraw.StrokeOffsets {
		d.drawText(x+o.X, y+o.Y, vmath.Vec4{0, 0, 0, 1}, s)
	}
	d.drawText(x, y, color.Vec4(1), s)
}

func (d *Device) drawText(x, y int, color vmath.Vec4, s string) {
	mask := debugdraw.RasterizeText(s)
	if mask == nil {
		return
	}
	if err := d.glyphs.SetImage(mask); err != nil {
		return
	}

	// pixel rectangle, y down, to clip space
	_, _, vw, vh := d.viewport()
	size := mask.Rect.Size()
	x0 := 2*float32(x)/vw - 1
	x1 := 2*float32(x+size.X)/vw - 1
	y0 := 1 - 2*float32(y)/vh
	y1 := 1 - 2*float32(y+size.Y)/vh

	d.quad.Clear()
	d.quad.Position(x0, y0, 0).Texcoord(0, 0)
	d.quad.Position(x1, y0, 0).Texcoord(1, 0)
	d.quad.Position(x1, y1, 0).Texcoord(1, 1)
	d.quad.Position(x1, y1, 0).Texcoord(1, 1)
	d.quad.Position(x0, y1, 0).Texcoord(0, 1)
	d.quad.Position(x0, y0, 0).Texcoord(0, 0)

	gl.BindVertexArray(d.vao)
	if err := d.quadGeom.CopyFrom(d.quad); err != nil {
		debugdraw.Logger().Warn("upload failed", "err", err)
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	d.text.Use()
	d.text.SetUniforms(textUniforms{Glyphs: d.glyphs, TextColor: color})
	d.text.SetGeometry(d.quadGeom)
	d.text.Draw(gl.TRIANGLES)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (d *Device) LoadCubeTexture(baseName string) (debugdraw.Texture, error) {
	cube, err := debugdraw.LoadCubeImages(baseName)
	if err != nil {
		return 0, err
	}
	s := CubeImages(cube)
	t := debugdraw.Texture(s.tex)
	d.textures[t] = s
	return t, nil
}

// CubeSampler returns the sampler behind a texture from LoadCubeTexture, for
// use as a uniform.
func (d *Device) CubeSampler(t debugdraw.Texture) *SamplerCube {
	return d.textures[t]
}

func (d *Device) DeleteTexture(t debugdraw.Texture) {
	s, ok := d.textures[t]
	if !ok {
		return
	}
	delete(d.textures, t)
	s.Delete()
}

func (d *Device) Release() {
	for p := range d.programs {
		d.DeleteProgram(p)
	}
	for t := range d.textures {
		d.DeleteTexture(t)
	}
	for _, s := range []*Shader{d.color, d.text, d.mesh} {
		if s != nil {
			trashbin.addProgram(s.prog)
		}
	}
	for _, g := range []*Geometry{d.lineGeom, d.quadGeom, d.meshGeom} {
		if g != nil {
			g.Release()
		}
	}
	if d.glyphs != nil {
		d.glyphs.Delete()
	}
	releaseGarbage()
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
	verify("release")
}
