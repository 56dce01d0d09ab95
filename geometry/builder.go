package geometry

import (
	"encoding/binary"
	"math"

	"j4k.co/debugdraw"
	"j4k.co/debugdraw/vmath"
)

type Builder struct {
	VertexBuilder
	IndexBuilder
}

func NewBuilder(vf debugdraw.VertexFormat) *Builder {
	return &Builder{
		VertexBuilder: *NewVertexBuilder(vf),
	}
}

func (b *Builder) Clear() {
	b.VertexBuilder.Clear()
	b.IndexBuilder.Clear()
}

// FromTube packs t as Position|Normal vertices with its triangle indices.
func FromTube(t *debugdraw.Tube) *Builder {
	b := NewBuilder(debugdraw.VertexPosition | debugdraw.VertexNormal)
	b.Grow(len(t.Positions))
	for i, p := range t.Positions {
		n := t.Normals[i]
		b.Position(p[0], p[1], p[2]).Normal(n[0], n[1], n[2])
	}
	b.SetIndices(t.Indices...)
	return b
}

// Lines packs a line list as Position|Color vertices, every vertex sharing
// color.
func Lines(pts []vmath.Vec3, color vmath.Vec3) *Builder {
	b := NewBuilder(debugdraw.VertexPosition | debugdraw.VertexColor)
	b.Grow(len(pts))
	for _, p := range pts {
		b.Position(p[0], p[1], p[2]).Colorf(color[0], color[1], color[2], 1)
	}
	return b
}

type VertexBuilder struct {
	vf       debugdraw.VertexFormat
	stride   int
	cur      int
	curvf    debugdraw.VertexFormat // data that's been set on the current vertex
	lastdata map[debugdraw.VertexFormat]int
	offsets  map[debugdraw.VertexFormat]int
	verts    []byte
}

func NewVertexBuilder(vf debugdraw.VertexFormat) *VertexBuilder {
	b := &VertexBuilder{
		vf:       vf,
		stride:   vf.Stride(),
		lastdata: make(map[debugdraw.VertexFormat]int, vf.Count()),
		offsets:  make(map[debugdraw.VertexFormat]int, vf.Count()),
	}
	for i := debugdraw.VertexFormat(1); i <= debugdraw.MaxVertexFormat; i <<= 1 {
		if vf&i != 0 {
			b.offsets[i], _ = vf.Offset(i)
		}
	}
	return b
}

// Clear resets buffers to zero length.
func (b *VertexBuilder) Clear() {
	clear(b.lastdata)
	b.cur = 0
	b.curvf = 0
	b.verts = b.verts[:0]
}

// Grow reserves room for n more vertices.
func (b *VertexBuilder) Grow(n int) {
	need := len(b.verts) + n*b.stride
	if need > cap(b.verts) {
		verts := make([]byte, len(b.verts), need)
		copy(verts, b.verts)
		b.verts = verts
	}
}

func (b *VertexBuilder) offset(v debugdraw.VertexFormat) int {
	offs, ok := b.offsets[v]
	if !ok {
		panic(debugdraw.ErrBadVertexFormat)
	}
	return offs
}

func (b *VertexBuilder) next() {
	if len(b.verts) != 0 {
		b.cur += b.stride
	}
	b.curvf = 0
	for i := 0; i < b.stride; i++ {
		b.verts = append(b.verts, 0)
	}
}

// fillVertex fills the rest of the vertex data using the last set data
// from a previous vertex
func (b *VertexBuilder) fillVertex() {
	if len(b.verts) == 0 {
		return
	}
	for i, offs := range b.lastdata {
		if b.curvf&i == 0 {
			b.set(i, b.verts[offs:offs+i.AttribBytes()])
		}
	}
}

func (b *VertexBuilder) set(v debugdraw.VertexFormat, data []uint8) {
	b.curvf |= v
	offs := b.cur + b.offset(v)
	b.lastdata[v] = offs
	copy(b.verts[offs:offs+len(data)], data)
}

func (b *VertexBuilder) setf(v debugdraw.VertexFormat, data ...float32) {
	b.curvf |= v
	offs := b.cur + b.offset(v)
	b.lastdata[v] = offs
	for i, f := range data {
		binary.NativeEndian.PutUint32(b.verts[offs+4*i:], math.Float32bits(f))
	}
}

// Position creates a new vertex and sets the vertex position.
func (b *VertexBuilder) Position(x, y, z float32) *VertexBuilder {
	b.fillVertex()
	b.next()
	b.setf(debugdraw.VertexPosition, x, y, z)
	return b
}

// Color sets the vertex color.
func (b *VertexBuilder) Color(red, green, blue, alpha uint8) *VertexBuilder {
	b.set(debugdraw.VertexColor, []uint8{red, green, blue, alpha})
	return b
}

func (b *VertexBuilder) Colorf(red, green, blue, alpha float32) *VertexBuilder {
	return b.Color(Unorm8(red), Unorm8(green), Unorm8(blue), Unorm8(alpha))
}

// Normal sets the vertex normal.
func (b *VertexBuilder) Normal(x, y, z float32) *VertexBuilder {
	b.setf(debugdraw.VertexNormal, x, y, z)
	return b
}

// Texcoord sets the vertex texture coordinate.
func (b *VertexBuilder) Texcoord(u, v float32) *VertexBuilder {
	b.setf(debugdraw.VertexTexcoord, u, v)
	return b
}

// VertexCount returns the number of vertices available.
func (b *VertexBuilder) VertexCount() int {
	if b.stride == 0 {
		return 0
	}
	return len(b.verts) / b.stride
}

// Vertices returns the interleaved vertex data. The slice is reused by later
// calls on the builder.
func (b *VertexBuilder) Vertices() []byte {
	b.fillVertex()
	return b.verts
}

func (b *VertexBuilder) VertexFormat() debugdraw.VertexFormat {
	return b.vf
}

type IndexBuilder struct {
	idxs    []uint32
	nextidx uint32
}

// Indices appends new indices to the buffer that are relative to the maximum
// index in the buffer.
func (b *IndexBuilder) Indices(idxs ...uint32) *IndexBuilder {
	newnext := b.nextidx
	for _, idx := range idxs {
		idx += b.nextidx
		if idx >= newnext {
			newnext = idx + 1
		}
		b.idxs = append(b.idxs, idx)
	}
	b.nextidx = newnext
	return b
}

// SetIndices copies idxs into a new buffer. Later calls to Indices are
// relative to the largest index given here.
func (b *IndexBuilder) SetIndices(idxs ...uint32) {
	b.nextidx = 0
	b.idxs = make([]uint32, len(idxs))
	copy(b.idxs, idxs)
	for _, idx := range idxs {
		if idx >= b.nextidx {
			b.nextidx = idx + 1
		}
	}
}

// IndexCount returns the number of indices available.
func (b *IndexBuilder) IndexCount() int {
	return len(b.idxs)
}

// IndexSlice returns the accumulated indices.
func (b *IndexBuilder) IndexSlice() []uint32 {
	return b.idxs
}

// Clear resets buffers to zero length.
func (b *IndexBuilder) Clear() {
	b.idxs = b.idxs[:0]
	b.nextidx = 0
}

// Unorm8 converts f in [0, 1] to a normalized byte, clamping out of range
// values.
func Unorm8(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}
