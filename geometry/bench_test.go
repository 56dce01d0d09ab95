package geometry_test

import (
	"testing"

	"j4k.co/debugdraw"
	"j4k.co/debugdraw/geometry"
	"j4k.co/debugdraw/vmath"
)

const builderQuads = 40 * 40

func BenchmarkBuilderTinyVerts(b *testing.B) {
	bdr := geometry.NewBuilder(debugdraw.VertexPosition)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bdr.Clear()
		for q := 0; q < builderQuads; q++ {
			bdr.Position(0, 0, 0)
			bdr.Position(1, 0, 0)
			bdr.Position(1, 1, 0)
			bdr.Position(0, 1, 0)
			bdr.Indices(0, 1, 2, 2, 0, 3)
		}
	}
}

func BenchmarkBuilderFatVerts(b *testing.B) {
	bdr := geometry.NewBuilder(debugdraw.VertexPosition | debugdraw.VertexColor |
		debugdraw.VertexTexcoord)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bdr.Clear()
		for q := 0; q < builderQuads; q++ {
			bdr.Position(0, 0, 0).Color(128, 0, 255, 255).Texcoord(0, 0)
			bdr.Position(1, 0, 0)
			bdr.Position(1, 1, 0)
			bdr.Position(0, 1, 0)
			bdr.Indices(0, 1, 2, 2, 0, 3)
		}
	}
}

func BenchmarkFromTube(b *testing.B) {
	pts := []vmath.Vec3{{0, 0, 0}, {1, 1, 0}, {2, 0, 1}, {3, 1, 1}, {4, 0, 0}}
	tube := debugdraw.Extrude(pts, 0.1, 16, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		geometry.FromTube(&tube)
	}
}
