package gldraw

import (
	"errors"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"j4k.co/debugdraw"
)

func glUsage(u debugdraw.Usage) uint32 {
	switch u {
	case debugdraw.StaticDraw:
		return gl.STATIC_DRAW
	case debugdraw.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case debugdraw.StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

var errMapBufferFailed = errors.New("gldraw: mapbuffer failed")

// upload sizes the buffer bound to target and copies src into it through a
// mapping. If unmap returns false, the buffer we wrote to is no longer valid
// and we need to try again, though this is uncommon in modern drivers.
func upload(target uint32, src []byte, usage debugdraw.Usage) error {
	// set size of buffer and invalidate it
	gl.BufferData(target, len(src), nil, glUsage(usage))
	verify("glBufferData")
	if len(src) == 0 {
		return nil
	}
	const maxretries = 5
	for retries := 0; retries < maxretries; retries++ {
		ptr := gl.MapBuffer(target, gl.WRITE_ONLY)
		if ptr == nil {
			verify("glMapBuffer")
			return errMapBufferFailed
		}
		copy(unsafe.Slice((*byte)(ptr), len(src)), src)
		if gl.UnmapBuffer(target) {
			return nil
		}
	}
	return errMapBufferFailed
}

// VertexBuffer represents interleaved vertices for a VertexFormat set.
type VertexBuffer struct {
	buf    uint32
	count  int
	format debugdraw.VertexFormat
}

func (b *VertexBuffer) bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.buf)
}

func (b *VertexBuffer) Count() int {
	return b.count
}

func (b *VertexBuffer) Format() debugdraw.VertexFormat {
	return b.format
}

func (b *VertexBuffer) SetVertices(src debugdraw.VertexData, usage debugdraw.Usage) error {
	if src.VertexFormat() != b.format {
		return debugdraw.ErrBadVertexFormat
	}
	b.bind()
	if err := upload(gl.ARRAY_BUFFER, src.Vertices(), usage); err != nil {
		return err
	}
	b.count = src.VertexCount()
	return nil
}

type IndexBuffer struct {
	buf   uint32
	count int
}

func (b *IndexBuffer) bind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.buf)
}

func (b *IndexBuffer) Count() int {
	return b.count
}

func (b *IndexBuffer) SetIndices(src []uint32, usage debugdraw.Usage) error {
	b.bind()
	var raw []byte
	if len(src) > 0 {
		raw = unsafe.Slice((*byte)(unsafe.Pointer(&src[0])), 4*len(src))
	}
	if err := upload(gl.ELEMENT_ARRAY_BUFFER, raw, usage); err != nil {
		return err
	}
	b.count = len(src)
	return nil
}

// Geometry represents a piece of mesh that can be rendered in a single
// draw call. It may or may not contain an index buffer, but always has
// a vertex buffer.
type Geometry struct {
	usage    debugdraw.Usage
	hasIndex bool
	VertexBuffer
	IndexBuffer
}

// NewGeometry copies vertices from src as well as indices if IndexData
// is implemented and non-empty, into newly allocated buffer objects. Buffers
// of a Geometry that becomes unreachable are freed at the next draw.
func NewGeometry(src debugdraw.VertexData, usage debugdraw.Usage) (*Geometry, error) {
	srcidx, ok := src.(debugdraw.IndexData)
	geom := allocGeom(usage, ok && srcidx.IndexCount() > 0, src.VertexFormat())
	if err := geom.CopyFrom(src); err != nil {
		geom.Release()
		return nil, err
	}
	return geom, nil
}

func allocGeom(usage debugdraw.Usage, hasIndex bool, format debugdraw.VertexFormat) *Geometry {
	geom := &Geometry{
		usage:    usage,
		hasIndex: hasIndex,
	}
	geom.VertexBuffer.format = format
	if hasIndex {
		var bufs [2]uint32
		gl.GenBuffers(2, &bufs[0])
		geom.VertexBuffer.buf = bufs[0]
		geom.IndexBuffer.buf = bufs[1]
	} else {
		gl.GenBuffers(1, &geom.VertexBuffer.buf)
	}
	verify("glGenBuffers")
	runtime.SetFinalizer(geom, (*Geometry).finalize)
	return geom
}

func (g *Geometry) finalize() {
	if g.VertexBuffer.buf != 0 {
		trashbin.addBuffer(g.VertexBuffer.buf)
	}
	if g.IndexBuffer.buf != 0 {
		trashbin.addBuffer(g.IndexBuffer.buf)
	}
}

// Release queues the buffers for deletion. It is safe to call from any
// goroutine.
func (g *Geometry) Release() {
	runtime.SetFinalizer(g, nil)
	g.finalize()
	g.VertexBuffer.buf = 0
	g.IndexBuffer.buf = 0
}

// CopyFrom copies vertices from src as well as indices if IndexData
// is implemented.
func (g *Geometry) CopyFrom(src debugdraw.VertexData) error {
	if err := g.VertexBuffer.SetVertices(src, g.usage); err != nil {
		return err
	}
	if srcidx, ok := src.(debugdraw.IndexData); ok && g.hasIndex {
		return g.IndexBuffer.SetIndices(srcidx.IndexSlice(), g.usage)
	}
	return nil
}
