package gldraw

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"j4k.co/debugdraw"
	"j4k.co/debugdraw/vmath"
)

func glStage(s debugdraw.ShaderStage) uint32 {
	switch s {
	case debugdraw.StageVertex:
		return gl.VERTEX_SHADER
	case debugdraw.StageFragment:
		return gl.FRAGMENT_SHADER
	case debugdraw.StageGeometry:
		return gl.GEOMETRY_SHADER
	case debugdraw.StageTessControl:
		return gl.TESS_CONTROL_SHADER
	case debugdraw.StageTessEval:
		return gl.TESS_EVALUATION_SHADER
	default:
		return 0
	}
}

func compileShader(src debugdraw.ShaderSource) (uint32, error) {
	s := gl.CreateShader(glStage(src.Stage()))
	text := src.Source()
	if !strings.HasSuffix(text, "\x00") {
		text += "\x00"
	}
	csrc, free := gl.Strs(text)
	gl.ShaderSource(s, 1, csrc, nil)
	free()
	gl.CompileShader(s)
	verify("glCompileShader")

	log := shaderInfoLog(s)
	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		gl.DeleteShader(s)
		return 0, fmt.Errorf("%w: %s stage: %s", debugdraw.ErrCompile, src.Stage(), log)
	}
	if log != "" {
		debugdraw.Logger().Debug("shader compiled", "stage", src.Stage().String(), "log", log)
	}
	return s, nil
}

func shaderInfoLog(s uint32) string {
	var n int32
	gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return ""
	}
	buf := make([]uint8, n)
	gl.GetShaderInfoLog(s, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

func programInfoLog(p uint32) string {
	var n int32
	gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return ""
	}
	buf := make([]uint8, n)
	gl.GetProgramInfoLog(p, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

// buildProgram compiles and links srcs. Shader objects are detached and
// deleted once the program is linked.
func buildProgram(srcs ...debugdraw.ShaderSource) (uint32, error) {
	if err := debugdraw.CheckStages(srcs...); err != nil {
		return 0, err
	}
	prog := gl.CreateProgram()
	ss := make([]uint32, 0, len(srcs))
	cleanup := func() {
		for _, s := range ss {
			gl.DetachShader(prog, s)
			gl.DeleteShader(s)
		}
	}
	for _, src := range srcs {
		if src == nil {
			continue
		}
		s, err := compileShader(src)
		if err != nil {
			cleanup()
			gl.DeleteProgram(prog)
			return 0, err
		}
		gl.AttachShader(prog, s)
		ss = append(ss, s)
	}
	gl.LinkProgram(prog)
	verify("glLinkProgram")

	log := programInfoLog(prog)
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	cleanup()
	if status == gl.FALSE {
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("%w: %s", debugdraw.ErrLink, log)
	}
	if log != "" {
		debugdraw.Logger().Debug("program linked", "program", prog, "log", log)
	}
	return prog, nil
}

// Shader binds a linked program to the vertex attribute names it reads and
// caches its uniform locations.
type Shader struct {
	prog         uint32
	vertexAttrs  debugdraw.VertexAttributes
	vertexFormat debugdraw.VertexFormat
	uniforms     map[string]int32

	geom       *Geometry
	prevArrays []uint32
}

// NewShader wraps a program returned by Device.CompileProgram.
func NewShader(p debugdraw.Program, attrs debugdraw.VertexAttributes) *Shader {
	return &Shader{
		prog:         uint32(p),
		vertexAttrs:  attrs.Clone(),
		vertexFormat: attrs.Format(),
		uniforms:     make(map[string]int32),
	}
}

// Program returns the wrapped program handle.
func (s *Shader) Program() debugdraw.Program {
	return debugdraw.Program(s.prog)
}

func (s *Shader) Use() {
	// checkpoint here for releasing unused GL resources
	releaseGarbage()

	gl.UseProgram(s.prog)
	verify("glUseProgram")
}

func (s *Shader) uniform(name string) int32 {
	if loc, ok := s.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.prog, gl.Str(name+"\x00"))
	s.uniforms[name] = loc
	return loc
}

// SetUniforms takes struct fields with a "uniform" tag and assigns their
// values to the shader's uniform variables. data may be a struct or a pointer
// to one. Samplers are bound to consecutive texture units.
func (s *Shader) SetUniforms(data any) {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()
	unit := int32(0)
	for i := 0; i < val.NumField(); i++ {
		f := typ.Field(i)
		name := f.Tag.Get("uniform")
		if name == "" || !f.IsExported() {
			continue
		}
		loc := s.uniform(name)
		if loc < 0 {
			continue
		}
		switch v := val.Field(i).Interface().(type) {
		case float32:
			gl.Uniform1f(loc, v)
		case int32:
			gl.Uniform1i(loc, v)
		case mgl32.Vec3:
			gl.Uniform3fv(loc, 1, &v[0])
		case mgl32.Vec4:
			gl.Uniform4fv(loc, 1, &v[0])
		case mgl32.Mat4:
			gl.UniformMatrix4fv(loc, 1, false, &v[0])
		case [16]float32:
			gl.UniformMatrix4fv(loc, 1, false, &v[0])
		case vmath.Matrix33:
			gl.UniformMatrix3fv(loc, 1, false, &v.Pointer()[0])
		case debugdraw.Vec3:
			gl.Uniform3fv(loc, 1, &v.Pointer()[0])
		case debugdraw.Mat3:
			gl.UniformMatrix3fv(loc, 1, false, &v.Pointer()[0])
		case debugdraw.Mat4:
			gl.UniformMatrix4fv(loc, 1, false, &v.Pointer()[0])
		case *Sampler2D:
			if v != nil {
				gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
				v.bind()
				gl.Uniform1i(loc, unit)
				unit++
			}
		case *SamplerCube:
			if v != nil {
				gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
				v.bind()
				gl.Uniform1i(loc, unit)
				unit++
			}
		default:
			debugdraw.Logger().Warn("unsupported uniform type", "uniform", name, "type", f.Type.String())
		}
		verify("glUniform " + name)
	}
}

// SetGeometry sets the vertex attributes and binds the index buffer.
func (s *Shader) SetGeometry(geom *Geometry) {
	geom.VertexBuffer.bind()

	for _, a := range s.prevArrays {
		gl.DisableVertexAttribArray(a)
	}
	s.prevArrays = s.prevArrays[:0]

	format := geom.VertexBuffer.Format()
	stride := int32(format.Stride())
	for i := debugdraw.VertexFormat(1); i <= debugdraw.MaxVertexFormat; i <<= 1 {
		if format&i == 0 {
			continue
		}
		name, ok := s.vertexAttrs[i]
		if !ok {
			continue
		}
		attrib := gl.GetAttribLocation(s.prog, gl.Str(name+"\x00"))
		if attrib < 0 {
			continue
		}
		offset, _ := format.Offset(i)
		loc := uint32(attrib)
		gl.EnableVertexAttribArray(loc)
		xtype := uint32(gl.FLOAT)
		if i.AttribIntegral() {
			xtype = gl.UNSIGNED_BYTE
		}
		gl.VertexAttribPointer(loc, int32(i.AttribElems()), xtype, i.AttribNormalized(), stride, gl.PtrOffset(offset))
		s.prevArrays = append(s.prevArrays, loc)
	}
	verify("glVertexAttribPointer")

	if geom.hasIndex {
		geom.IndexBuffer.bind()
	}
	s.geom = geom
}

// Draw draws the geometry last passed to SetGeometry as primitives of mode,
// indexed when the geometry has indices.
func (s *Shader) Draw(mode uint32) {
	if s.geom == nil {
		return
	}
	if s.geom.hasIndex {
		gl.DrawElements(mode, int32(s.geom.IndexBuffer.Count()), gl.UNSIGNED_INT, gl.PtrOffset(0))
		verify("glDrawElements")
		return
	}
	gl.DrawArrays(mode, 0, int32(s.geom.VertexBuffer.Count()))
	verify("glDrawArrays")
}
