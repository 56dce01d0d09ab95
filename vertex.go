package debugdraw

import (
	"errors"
)

// Usage hints how often a buffer's contents change.
type Usage uint16

const (
	StaticDraw Usage = iota
	DynamicDraw
	StreamDraw
)

type VertexFormat uint32

const (
	VertexPosition VertexFormat = 1 << iota
	VertexColor
	VertexNormal
	VertexTexcoord
	MaxVertexFormat = VertexTexcoord
)

// AttribBytes gives the byte size of a specific piece of vertex data
func (v VertexFormat) AttribBytes() int {
	const fsize = 4
	switch v {
	case VertexColor:
		// RGBA, 8-bit channels
		return 4
	case VertexTexcoord:
		return 2 * fsize
	default:
		return 3 * fsize
	}
}

// AttribElems gives the number of components for a specific piece of vertex
// data.
func (v VertexFormat) AttribElems() int {
	switch v {
	case VertexColor:
		return 4
	case VertexTexcoord:
		return 2
	default:
		return 3
	}
}

// AttribNormalized reports whether integral components map to [0, 1].
func (v VertexFormat) AttribNormalized() bool {
	return v == VertexColor
}

// AttribIntegral reports whether the attribute is stored as unsigned bytes
// rather than float32.
func (v VertexFormat) AttribIntegral() bool {
	return v == VertexColor
}

// Stride gives the stride in bytes for a vertex buffer.
func (v VertexFormat) Stride() int {
	stride := 0
	for i := VertexFormat(1); i <= MaxVertexFormat; i <<= 1 {
		if v&i != 0 {
			stride += i.AttribBytes()
		}
	}
	return stride
}

// Count gives the number of attributes set in v.
func (v VertexFormat) Count() int {
	count := 0
	for i := VertexFormat(1); i <= MaxVertexFormat; i <<= 1 {
		if v&i != 0 {
			count++
		}
	}
	return count
}

// Offset gives the byte offset of attribute a within one vertex of format v.
func (v VertexFormat) Offset(a VertexFormat) (int, error) {
	if v&a == 0 {
		return 0, ErrBadVertexFormat
	}
	offs := 0
	for i := VertexFormat(1); i < a; i <<= 1 {
		if v&i != 0 {
			offs += i.AttribBytes()
		}
	}
	return offs, nil
}

// VertexAttributes maps shader attributes by name to specific vertex data,
// and as a whole a complete VertexFormat for geometry.
type VertexAttributes map[VertexFormat]string

var DefaultVertexAttributes = VertexAttributes{
	VertexPosition: "Position",
	VertexColor:    "Color",
	VertexNormal:   "Normal",
	VertexTexcoord: "UV",
}

// Format returns a VertexFormat bitmask determined by the mapped attributes.
func (v VertexAttributes) Format() VertexFormat {
	var mask VertexFormat
	for k := range v {
		mask |= k
	}
	return mask
}

// Clone returns an independent copy of v.
func (v VertexAttributes) Clone() VertexAttributes {
	v2 := make(VertexAttributes, len(v))
	for k, name := range v {
		v2[k] = name
	}
	return v2
}

var ErrBadVertexFormat = errors.New("debugdraw: bad vertex format")

// VertexData is interleaved vertex memory laid out per VertexFormat.
type VertexData interface {
	VertexCount() int
	VertexFormat() VertexFormat
	Vertices() []byte
}

// IndexData is implemented by VertexData that also carries triangle indices.
type IndexData interface {
	IndexCount() int
	IndexSlice() []uint32
}
