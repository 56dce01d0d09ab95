package debugdraw

// Vec3, Mat3 and Mat4 are anything that can hand its elements to a uniform
// upload. *vmath.Matrix33 satisfies Mat3.

type Vec3 interface {
	Pointer() *[3]float32
}

type Mat3 interface {
	Pointer() *[9]float32
}

type Mat4 interface {
	Pointer() *[16]float32
}
