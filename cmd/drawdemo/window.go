//go:build !headless

package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"j4k.co/debugdraw"
	"j4k.co/debugdraw/geometry"
	"j4k.co/debugdraw/gldraw"
	"j4k.co/debugdraw/vmath"
)

func init() {
	// GLFW event handling and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func run(cfg Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	dev, err := gldraw.New()
	if err != nil {
		return err
	}
	defer dev.Release()

	d := newDemo(cfg)
	tube, err := newTubeRenderer(dev, cfg, &d.tube)
	if err != nil {
		return err
	}
	defer tube.release()
	d.drawTube = tube.draw

	var sky *skybox
	if cfg.Skybox != "" {
		if sky, err = newSkybox(dev, cfg.Skybox); err != nil {
			return err
		}
		defer sky.release()
	}

	var (
		events <-chan string
		errs   <-chan error
	)
	if cfg.CustomShaders() && cfg.Shaders.Watch {
		w, err := debugdraw.WatchShaders(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
		if err != nil {
			return err
		}
		defer w.Close()
		events, errs = w.Events, w.Errors
	}

	gl.ClearColor(0.19, 0.19, 0.22, 1)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	for !win.ShouldClose() {
		select {
		case path, ok := <-events:
			if !ok {
				events = nil
				break
			}
			tube.reload(path)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				break
			}
			slog.Warn("shader watcher", "err", err)
		default:
		}

		w, h := win.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		t := float32(glfw.GetTime())
		if sky != nil {
			sky.draw(d.camera(w, h, t))
		}
		d.draw(dev, w, h, t)

		win.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

type tubeUniforms struct {
	ViewProjection vmath.Matrix44 `uniform:"ViewProjection"`
	Color          vmath.Vec3     `uniform:"TubeColor"`
	Time           float32        `uniform:"Time"`
}

// tubeRenderer draws the tube from a static buffer with its own program.
type tubeRenderer struct {
	dev    *gldraw.Device
	cfg    Config
	geom   *gldraw.Geometry
	shader *gldraw.Shader
}

func newTubeRenderer(dev *gldraw.Device, cfg Config, t *debugdraw.Tube) (*tubeRenderer, error) {
	geom, err := gldraw.NewGeometry(geometry.FromTube(t), debugdraw.StaticDraw)
	if err != nil {
		return nil, fmt.Errorf("tube geometry: %w", err)
	}
	var prog debugdraw.Program
	if cfg.CustomShaders() {
		prog, err = debugdraw.CompileProgramFromFiles(dev, cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	} else {
		prog, err = dev.CompileProgram(tubeVS, tubeFS)
	}
	if err != nil {
		geom.Release()
		return nil, err
	}
	return &tubeRenderer{
		dev:    dev,
		cfg:    cfg,
		geom:   geom,
		shader: gldraw.NewShader(prog, debugdraw.DefaultVertexAttributes),
	}, nil
}

// reload recompiles the configured shader files. The previous program stays
// in use if they fail to build.
func (r *tubeRenderer) reload(path string) {
	prog, err := debugdraw.CompileProgramFromFiles(r.dev, r.cfg.Shaders.Vertex, r.cfg.Shaders.Fragment)
	if err != nil {
		slog.Warn("shader reload failed", "changed", path, "err", err)
		return
	}
	r.dev.DeleteProgram(r.shader.Program())
	r.shader = gldraw.NewShader(prog, debugdraw.DefaultVertexAttributes)
	slog.Info("shader reloaded", "changed", path)
}

func (r *tubeRenderer) draw(_ debugdraw.Device, viewProj vmath.Matrix44, t float32) {
	gl.Enable(gl.DEPTH_TEST)
	r.dev.DrawGeometry(r.shader, r.geom, gl.TRIANGLES, &tubeUniforms{
		ViewProjection: viewProj,
		Color:          r.cfg.TubeColor(),
		Time:           t,
	})
}

func (r *tubeRenderer) release() {
	r.geom.Release()
	r.dev.DeleteProgram(r.shader.Program())
}

type skyUniforms struct {
	ViewProjection vmath.Matrix44      `uniform:"ViewProjection"`
	Sky            *gldraw.SamplerCube `uniform:"Sky"`
}

type skybox struct {
	dev    *gldraw.Device
	tex    debugdraw.Texture
	shader *gldraw.Shader
	geom   *gldraw.Geometry
}

func newSkybox(dev *gldraw.Device, base string) (*skybox, error) {
	tex, err := dev.LoadCubeTexture(base)
	if err != nil {
		return nil, err
	}
	prog, err := dev.CompileProgram(skyVS, skyFS)
	if err != nil {
		dev.DeleteTexture(tex)
		return nil, err
	}

	b := geometry.NewBuilder(debugdraw.VertexPosition)
	for i := 0; i < 8; i++ {
		b.Position(corner(i, 0), corner(i, 1), corner(i, 2))
	}
	b.Indices(
		1, 3, 7, 7, 5, 1, // +x
		0, 4, 6, 6, 2, 0, // -x
		2, 6, 7, 7, 3, 2, // +y
		0, 1, 5, 5, 4, 0, // -y
		4, 5, 7, 7, 6, 4, // +z
		0, 2, 3, 3, 1, 0, // -z
	)
	geom, err := gldraw.NewGeometry(b, debugdraw.StaticDraw)
	if err != nil {
		dev.DeleteTexture(tex)
		dev.DeleteProgram(prog)
		return nil, err
	}
	return &skybox{
		dev:    dev,
		tex:    tex,
		shader: gldraw.NewShader(prog, debugdraw.DefaultVertexAttributes),
		geom:   geom,
	}, nil
}

// corner returns coordinate axis of unit cube corner i (bit 0 = x, bit 1 = y,
// bit 2 = z).
func corner(i, axis int) float32 {
	if i&(1<<axis) != 0 {
		return 1
	}
	return -1
}

func (s *skybox) draw(viewProj vmath.Matrix44) {
	gl.DepthMask(false)
	s.dev.DrawGeometry(s.shader, s.geom, gl.TRIANGLES, &skyUniforms{
		ViewProjection: viewProj,
		Sky:            s.dev.CubeSampler(s.tex),
	})
	gl.DepthMask(true)
}

func (s *skybox) release() {
	s.geom.Release()
	s.dev.DeleteProgram(s.shader.Program())
	s.dev.DeleteTexture(s.tex)
}
