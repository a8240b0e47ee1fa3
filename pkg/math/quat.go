package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
// Mul follows the Hamilton convention: a.Mul(b) applies b first, then a.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// The axis is normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	axis = axis.Normalize()
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(halfAngle))),
	}
}

// QuatFromTo returns the shortest rotation taking direction from onto
// direction to. Degenerate (zero-length) inputs yield the identity.
func QuatFromTo(from, to Vec3) Quat {
	f := from.Normalize()
	t := to.Normalize()
	if f == (Vec3{}) || t == (Vec3{}) {
		return QuatIdentity()
	}
	if f.ApproxEqual(t, Epsilon) {
		return QuatIdentity()
	}

	// Opposite directions: rotate 180 degrees around any orthogonal axis.
	if f.ApproxEqual(t.Neg(), Epsilon) {
		ortho := Vec3{1, 0, 0}
		ax, ay, az := abs32(f.X), abs32(f.Y), abs32(f.Z)
		if ay < ax {
			ortho = Vec3{0, 1, 0}
		}
		if az < ay && az < ax {
			ortho = Vec3{0, 0, 1}
		}
		axis := f.Cross(ortho).Normalize()
		return Quat{X: axis.X, Y: axis.Y, Z: axis.Z, W: 0}
	}

	half := f.Add(t).Normalize()
	axis := f.Cross(half)
	return Quat{X: axis.X, Y: axis.Y, Z: axis.Z, W: f.Dot(half)}
}

// LengthSq returns the squared norm.
func (q Quat) LengthSq() float32 {
	return q.Dot(q)
}

// Normalize returns a normalized quaternion, or the identity if q is degenerate.
func (q Quat) Normalize() Quat {
	lsq := q.LengthSq()
	if lsq < Epsilon {
		return QuatIdentity()
	}
	invLen := 1 / float32(math.Sqrt(float64(lsq)))
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Neg returns -q, which encodes the same rotation.
func (q Quat) Neg() Quat {
	return Quat{-q.X, -q.Y, -q.Z, -q.W}
}

// Add returns the component-wise sum.
func (q Quat) Add(other Quat) Quat {
	return Quat{q.X + other.X, q.Y + other.Y, q.Z + other.Z, q.W + other.W}
}

// Sub returns the component-wise difference.
func (q Quat) Sub(other Quat) Quat {
	return Quat{q.X - other.X, q.Y - other.Y, q.Z - other.Z, q.W - other.W}
}

// Scale multiplies every component by s.
func (q Quat) Scale(s float32) Quat {
	return Quat{q.X * s, q.Y * s, q.Z * s, q.W * s}
}

// Conjugate returns the conjugate (vector part negated).
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Inverse returns the multiplicative inverse, or the identity for a
// degenerate quaternion.
func (q Quat) Inverse() Quat {
	lsq := q.LengthSq()
	if lsq < Epsilon {
		return QuatIdentity()
	}
	inv := 1 / lsq
	return Quat{-q.X * inv, -q.Y * inv, -q.Z * inv, q.W * inv}
}

// Neighbour returns q or -q, whichever lies in the same hemisphere as ref.
func (q Quat) Neighbour(ref Quat) Quat {
	if q.Dot(ref) < 0 {
		return q.Neg()
	}
	return q
}

// Mix returns the raw component-wise interpolation, not normalized.
func (q Quat) Mix(other Quat, t float32) Quat {
	return q.Add(other.Sub(q).Scale(t))
}

// NLerp interpolates component-wise and renormalizes. It does not correct
// the hemisphere; pass other.Neighbour(q) for the shortest path.
func (q Quat) NLerp(other Quat, t float32) Quat {
	return q.Mix(other, t).Normalize()
}

// Slerp performs spherical linear interpolation between two quaternions.
// t should be in range [0, 1].
func (q Quat) Slerp(other Quat, t float32) Quat {
	dot := q.Dot(other)

	// Take the shorter path
	if dot < 0 {
		other = other.Neg()
		dot = -dot
	}

	// Nearly parallel: fall back to nlerp to avoid dividing by sin(0)
	if dot > 0.9995 {
		return q.NLerp(other, t)
	}

	theta0 := float32(math.Acos(float64(dot)))
	theta := theta0 * t
	sinTheta := float32(math.Sin(float64(theta)))
	sinTheta0 := float32(math.Sin(float64(theta0)))

	s0 := float32(math.Cos(float64(theta))) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return Quat{
		X: q.X*s0 + other.X*s1,
		Y: q.Y*s0 + other.Y*s1,
		Z: q.Z*s0 + other.Z*s1,
		W: q.W*s0 + other.W*s1,
	}
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to a vector.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	s := q.W
	return u.Scale(2 * u.Dot(v)).
		Add(v.Scale(s*s - u.Dot(u))).
		Add(u.Cross(v).Scale(2 * s))
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// ApproxEqual reports whether the components differ by at most tol.
// q and -q are considered different; use SameRotation for orientation.
func (q Quat) ApproxEqual(other Quat, tol float32) bool {
	return ApproxEqual(q.X, other.X, tol) &&
		ApproxEqual(q.Y, other.Y, tol) &&
		ApproxEqual(q.Z, other.Z, tol) &&
		ApproxEqual(q.W, other.W, tol)
}

// SameRotation reports whether q and other encode the same orientation.
func (q Quat) SameRotation(other Quat, tol float32) bool {
	return q.ApproxEqual(other, tol) || q.ApproxEqual(other.Neg(), tol)
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
