package vmath

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Matrix33 is a 3x3 matrix stored as three column vectors. The zero value is
// the zero matrix. Nothing is enforced about its contents; it need not be
// orthonormal or invertible.
type Matrix33 struct {
	Cols [3]Vec3
}

// NewMatrix33 builds a matrix from its columns.
func NewMatrix33(c0, c1, c2 Vec3) Matrix33 {
	return Matrix33{Cols: [3]Vec3{c0, c1, c2}}
}

// Identity33 returns the identity matrix.
func Identity33() Matrix33 {
	return Matrix33{Cols: [3]Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// At returns the element at row i, column j. Indices are not validated.
func (m Matrix33) At(i, j int) float32 {
	return m.Cols[j][i]
}

// Set writes the element at row i, column j.
func (m *Matrix33) Set(i, j int, v float32) {
	m.Cols[j][i] = v
}

// Pointer exposes the nine elements in column-major order for uniform upload.
func (m *Matrix33) Pointer() *[9]float32 {
	return (*[9]float32)(unsafe.Pointer(&m.Cols))
}

// Mat3 converts m to the equivalent mgl32 matrix.
func (m Matrix33) Mat3() mgl32.Mat3 {
	return mgl32.Mat3(*m.Pointer())
}

// FromMat3 converts an mgl32 matrix, which shares the column-major layout.
func FromMat3(a mgl32.Mat3) Matrix33 {
	return NewMatrix33(a.Col(0), a.Col(1), a.Col(2))
}

// Scale returns s*m.
func Scale(s float32, m Matrix33) Matrix33 {
	m.Cols[0] = m.Cols[0].Mul(s)
	m.Cols[1] = m.Cols[1].Mul(s)
	m.Cols[2] = m.Cols[2].Mul(s)
	return m
}

// MulVec returns a*x, the combination of a's columns weighted by x.
func MulVec(a Matrix33, x Vec3) Vec3 {
	return a.Cols[0].Mul(x[0]).Add(a.Cols[1].Mul(x[1])).Add(a.Cols[2].Mul(x[2]))
}

// Mul33 returns the product a*b.
func Mul33(a, b Matrix33) Matrix33 {
	return Matrix33{Cols: [3]Vec3{
		MulVec(a, b.Cols[0]),
		MulVec(a, b.Cols[1]),
		MulVec(a, b.Cols[2]),
	}}
}

// Add returns the element-wise sum a+b.
func Add(a, b Matrix33) Matrix33 {
	return NewMatrix33(a.Cols[0].Add(b.Cols[0]), a.Cols[1].Add(b.Cols[1]), a.Cols[2].Add(b.Cols[2]))
}

// Sub returns a + (-1)*b.
func Sub(a, b Matrix33) Matrix33 {
	return Add(a, Scale(-1, b))
}

// Determinant is the scalar triple product of the columns.
func Determinant(m Matrix33) float32 {
	return Dot(m.Cols[0], Cross(m.Cols[1], m.Cols[2]))
}

// Transpose swaps rows and columns.
func Transpose(a Matrix33) Matrix33 {
	var r Matrix33
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Cols[j][i] = a.Cols[i][j]
		}
	}
	return r
}

// Trace is the sum of the diagonal.
func Trace(a Matrix33) float32 {
	return a.Cols[0][0] + a.Cols[1][1] + a.Cols[2][2]
}

// Outer returns the matrix with element (i, j) = a[i]*b[j].
func Outer(a, b Vec3) Matrix33 {
	return NewMatrix33(a.Mul(b[0]), a.Mul(b[1]), a.Mul(b[2]))
}

// Mul is shorthand for Mul33(m, b).
func (m Matrix33) Mul(b Matrix33) Matrix33 { return Mul33(m, b) }

// MulVec is shorthand for MulVec(m, x).
func (m Matrix33) MulVec(x Vec3) Vec3 { return MulVec(m, x) }

// Scale is shorthand for Scale(s, m).
func (m Matrix33) Scale(s float32) Matrix33 { return Scale(s, m) }

// AddAssign sets m to m+b.
func (m *Matrix33) AddAssign(b Matrix33) { *m = Add(*m, b) }

// SubAssign sets m to m-b.
func (m *Matrix33) SubAssign(b Matrix33) { *m = Sub(*m, b) }

// ScaleAssign sets m to s*m.
func (m *Matrix33) ScaleAssign(s float32) { *m = Scale(s, *m) }

// Rotation33 returns the rotation of angle radians about the unit axis k,
// expanded as cos*I + sin*[k]x + (1-cos)*k⊗k.
func Rotation33(angle float32, k Vec3) Matrix33 {
	s, c := math.Sincos(float64(angle))
	cross := NewMatrix33(
		Vec3{0, k[2], -k[1]},
		Vec3{-k[2], 0, k[0]},
		Vec3{k[1], -k[0], 0},
	)
	r := Scale(float32(c), Identity33())
	r.AddAssign(Scale(float32(s), cross))
	r.AddAssign(Scale(1-float32(c), Outer(k, k)))
	return r
}
