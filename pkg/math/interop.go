package math

import "github.com/go-gl/mathgl/mgl32"

// Conversions to and from mathgl, for callers that feed palettes to a
// renderer built on mgl32.

// ToMgl converts v to an mgl32 vector.
func (v Vec3) ToMgl() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Vec3FromMgl converts an mgl32 vector.
func Vec3FromMgl(v mgl32.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// ToMgl converts q to an mgl32 quaternion. Both use the Hamilton product.
func (q Quat) ToMgl() mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

// QuatFromMgl converts an mgl32 quaternion.
func QuatFromMgl(q mgl32.Quat) Quat {
	return Quat{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// ToMgl converts m to an mgl32 matrix. Both are column-major.
func (m Mat4) ToMgl() mgl32.Mat4 {
	return mgl32.Mat4(m)
}

// Mat4FromMgl converts an mgl32 matrix.
func Mat4FromMgl(m mgl32.Mat4) Mat4 {
	return Mat4(m)
}
