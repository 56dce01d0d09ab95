package debugdraw

import (
	"errors"

	"j4k.co/debugdraw/vmath"
)

// Program is an opaque handle to a linked shader program.
type Program uint32

// Texture is an opaque handle to a texture owned by a Device.
type Texture uint32

var (
	ErrUnsupported = errors.New("debugdraw: operation not supported by device")
	ErrCompile     = errors.New("debugdraw: shader compile failed")
	ErrLink        = errors.New("debugdraw: program link failed")
	ErrBadStages   = errors.New("debugdraw: invalid shader stage combination")
	ErrCubeFace    = errors.New("debugdraw: bad cube map face")
)

// Device is the set of drawing capabilities a backend provides. Which
// implementation is used is decided when the program is built; see the
// gldraw and softdraw packages.
//
// A Device is not safe for concurrent use unless the implementation says so.
// Backends bound to a graphics context must be used from the thread that
// owns it.
type Device interface {
	// CompileProgram compiles and links srcs. Accepted combinations are
	// vertex+fragment, optionally with a geometry stage or a tessellation
	// control/evaluation pair.
	CompileProgram(srcs ...ShaderSource) (Program, error)
	DeleteProgram(p Program)

	// SetViewProjection sets the world to clip transform used by the world
	// space primitives below.
	SetViewProjection(m vmath.Matrix44)

	// DrawPlane draws a large quad on the plane dot(n, x) + w = 0, where
	// p = (n, w). With color set the quad is tinted from the plane equation.
	DrawPlane(p vmath.Vec4, color bool)
	// DrawString draws formatted text with its top-left corner at pixel
	// (x, y) of the viewport.
	DrawString(x, y int, format string, args ...any)
	// DrawStringStroked draws formatted text in color over a one pixel
	// black outline.
	DrawStringStroked(x, y int, color vmath.Vec3, format string, args ...any)
	// DrawFrustum draws the wireframe of the clip volume mapped through
	// projToWorld.
	DrawFrustum(projToWorld vmath.Matrix44)
	DrawBoundingBox(lower, upper vmath.Vec3)
	DrawMesh(t *Tube, color vmath.Vec3)

	// LoadCubeTexture loads the six faces named from baseName, see
	// LoadCubeImages.
	LoadCubeTexture(baseName string) (Texture, error)
	DeleteTexture(t Texture)

	// Release frees every resource the device still holds.
	Release()
}
