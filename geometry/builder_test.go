package geometry

import (
	"encoding/binary"
	"math"
	"testing"

	"j4k.co/debugdraw"
	"j4k.co/debugdraw/vmath"
)

func readFloats(b []byte, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.NativeEndian.Uint32(b[4*i:]))
	}
	return out
}

func TestBuilderInterleaves(t *testing.T) {
	vf := debugdraw.VertexPosition | debugdraw.VertexColor | debugdraw.VertexTexcoord
	b := NewBuilder(vf)
	b.Position(1, 2, 3).Color(10, 20, 30, 40).Texcoord(0.5, 0.25)
	b.Position(4, 5, 6)

	if got := b.VertexCount(); got != 2 {
		t.Fatalf("VertexCount() = %d, want 2", got)
	}
	verts := b.Vertices()
	stride := vf.Stride()
	if len(verts) != 2*stride {
		t.Fatalf("len(Vertices()) = %d, want %d", len(verts), 2*stride)
	}

	// second vertex inherits color and texcoord from the first
	second := verts[stride:]
	if got := readFloats(second, 3); got[0] != 4 || got[1] != 5 || got[2] != 6 {
		t.Errorf("position = %v, want [4 5 6]", got)
	}
	colorOffs, _ := vf.Offset(debugdraw.VertexColor)
	if got := second[colorOffs : colorOffs+4]; got[0] != 10 || got[3] != 40 {
		t.Errorf("inherited color = %v, want [10 20 30 40]", got)
	}
	uvOffs, _ := vf.Offset(debugdraw.VertexTexcoord)
	if got := readFloats(second[uvOffs:], 2); got[0] != 0.5 || got[1] != 0.25 {
		t.Errorf("inherited texcoord = %v, want [0.5 0.25]", got)
	}
}

func TestBuilderRejectsMissingAttribute(t *testing.T) {
	b := NewBuilder(debugdraw.VertexPosition)
	b.Position(0, 0, 0)
	defer func() {
		if r := recover(); r != debugdraw.ErrBadVertexFormat {
			t.Errorf("recover() = %v, want ErrBadVertexFormat", r)
		}
	}()
	b.Normal(0, 1, 0)
}

func TestIndicesAreRelative(t *testing.T) {
	var b IndexBuilder
	b.Indices(0, 1, 2, 2, 0, 3)
	b.Indices(0, 1, 2)
	want := []uint32{0, 1, 2, 2, 0, 3, 4, 5, 6}
	got := b.IndexSlice()
	if len(got) != len(want) {
		t.Fatalf("IndexSlice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IndexSlice() = %v, want %v", got, want)
		}
	}

	b.SetIndices(5, 0, 1)
	b.Indices(0)
	if got := b.IndexSlice(); got[len(got)-1] != 6 {
		t.Errorf("index after SetIndices = %d, want 6", got[len(got)-1])
	}

	b.Clear()
	if b.IndexCount() != 0 {
		t.Errorf("IndexCount() after Clear = %d", b.IndexCount())
	}
}

func TestFromTube(t *testing.T) {
	tube := debugdraw.Extrude([]vmath.Vec3{{0, 0, 0}, {0, 0, 1}}, 0.5, 6, 2)
	b := FromTube(&tube)

	var _ debugdraw.VertexData = b
	var _ debugdraw.IndexData = b

	if b.VertexFormat() != debugdraw.VertexPosition|debugdraw.VertexNormal {
		t.Errorf("VertexFormat() = %b", b.VertexFormat())
	}
	if b.VertexCount() != len(tube.Positions) {
		t.Errorf("VertexCount() = %d, want %d", b.VertexCount(), len(tube.Positions))
	}
	if b.IndexCount() != len(tube.Indices) {
		t.Errorf("IndexCount() = %d, want %d", b.IndexCount(), len(tube.Indices))
	}
	stride := b.VertexFormat().Stride()
	last := len(tube.Positions) - 1
	got := readFloats(b.Vertices()[last*stride:], 6)
	p, n := tube.Positions[last], tube.Normals[last]
	for i := 0; i < 3; i++ {
		if got[i] != p[i] || got[3+i] != n[i] {
			t.Fatalf("last vertex = %v, want %v %v", got, p, n)
		}
	}
}

func TestLinesColor(t *testing.T) {
	b := Lines([]vmath.Vec3{{0, 0, 0}, {1, 0, 0}}, vmath.Vec3{1, 0, 0.5})
	if b.VertexCount() != 2 {
		t.Fatalf("VertexCount() = %d, want 2", b.VertexCount())
	}
	offs, _ := b.VertexFormat().Offset(debugdraw.VertexColor)
	c := b.Vertices()[offs : offs+4]
	if c[0] != 255 || c[1] != 0 || c[2] != 128 || c[3] != 255 {
		t.Errorf("color = %v, want [255 0 128 255]", c)
	}
}

func TestUnorm8(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{2, 255},
	}
	for _, tt := range tests {
		if got := Unorm8(tt.in); got != tt.want {
			t.Errorf("Unorm8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
