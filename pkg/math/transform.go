package math

// Transform is a position, rotation and per-axis scale. Applied to a point
// the order is scale, then rotate, then translate.
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// TransformIdentity returns the transform that leaves points unchanged.
func TransformIdentity() Transform {
	return Transform{
		Rotation: QuatIdentity(),
		Scale:    Vec3One(),
	}
}

// Combine returns parent applied after child: the child's local frame
// expressed in the parent's space.
func Combine(parent, child Transform) Transform {
	return Transform{
		Scale:    parent.Scale.Mul(child.Scale),
		Rotation: parent.Rotation.Mul(child.Rotation),
		Position: parent.Position.Add(parent.Rotation.Rotate(parent.Scale.Mul(child.Position))),
	}
}

// Combine is shorthand for Combine(t, child).
func (t Transform) Combine(child Transform) Transform {
	return Combine(t, child)
}

// Inverse returns the transform that undoes t. Scale components near zero
// invert to zero instead of infinity.
func (t Transform) Inverse() Transform {
	var inv Transform
	inv.Rotation = t.Rotation.Inverse()

	if !IsZero(t.Scale.X) {
		inv.Scale.X = 1 / t.Scale.X
	}
	if !IsZero(t.Scale.Y) {
		inv.Scale.Y = 1 / t.Scale.Y
	}
	if !IsZero(t.Scale.Z) {
		inv.Scale.Z = 1 / t.Scale.Z
	}

	inv.Position = inv.Rotation.Rotate(inv.Scale.Mul(t.Position.Neg()))
	return inv
}

// Mix interpolates position and scale linearly and rotation by
// neighbourhood-corrected nlerp.
func (t Transform) Mix(other Transform, alpha float32) Transform {
	return Transform{
		Position: t.Position.Lerp(other.Position, alpha),
		Rotation: t.Rotation.NLerp(other.Rotation.Neighbour(t.Rotation), alpha),
		Scale:    t.Scale.Lerp(other.Scale, alpha),
	}
}

// TransformPoint applies scale, rotation and translation to p.
func (t Transform) TransformPoint(p Vec3) Vec3 {
	return t.Position.Add(t.Rotation.Rotate(t.Scale.Mul(p)))
}

// TransformVector applies scale and rotation to v.
func (t Transform) TransformVector(v Vec3) Vec3 {
	return t.Rotation.Rotate(t.Scale.Mul(v))
}

// ToMat4 converts the transform to a column-major matrix.
func (t Transform) ToMat4() Mat4 {
	x := t.Rotation.Rotate(Vec3{1, 0, 0}).Scale(t.Scale.X)
	y := t.Rotation.Rotate(Vec3{0, 1, 0}).Scale(t.Scale.Y)
	z := t.Rotation.Rotate(Vec3{0, 0, 1}).Scale(t.Scale.Z)
	p := t.Position

	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		p.X, p.Y, p.Z, 1,
	}
}

// TransformFromMat4 decomposes an affine matrix without shear.
func TransformFromMat4(m Mat4) Transform {
	x, y, z := m.Column(0), m.Column(1), m.Column(2)
	s := Vec3{x.Length(), y.Length(), z.Length()}

	if !IsZero(s.X) {
		x = x.Scale(1 / s.X)
	}
	if !IsZero(s.Y) {
		y = y.Scale(1 / s.Y)
	}
	if !IsZero(s.Z) {
		z = z.Scale(1 / s.Z)
	}

	return Transform{
		Position: m.Column(3),
		Rotation: quatFromBasis(x, y, z),
		Scale:    s,
	}
}

// quatFromBasis converts an orthonormal basis (the rotated X, Y and Z axes)
// to a quaternion.
func quatFromBasis(x, y, z Vec3) Quat {
	trace := x.X + y.Y + z.Z
	var q Quat
	switch {
	case trace > 0:
		s := 0.5 / sqrt32(trace+1)
		q = Quat{W: 0.25 / s, X: (y.Z - z.Y) * s, Y: (z.X - x.Z) * s, Z: (x.Y - y.X) * s}
	case x.X > y.Y && x.X > z.Z:
		s := 2 * sqrt32(1+x.X-y.Y-z.Z)
		q = Quat{W: (y.Z - z.Y) / s, X: 0.25 * s, Y: (y.X + x.Y) / s, Z: (z.X + x.Z) / s}
	case y.Y > z.Z:
		s := 2 * sqrt32(1+y.Y-x.X-z.Z)
		q = Quat{W: (z.X - x.Z) / s, X: (y.X + x.Y) / s, Y: 0.25 * s, Z: (z.Y + y.Z) / s}
	default:
		s := 2 * sqrt32(1+z.Z-x.X-y.Y)
		q = Quat{W: (x.Y - y.X) / s, X: (z.X + x.Z) / s, Y: (z.Y + y.Z) / s, Z: 0.25 * s}
	}
	return q.Normalize()
}

// ApproxEqual compares component-wise; rotations equal up to sign match.
func (t Transform) ApproxEqual(other Transform, tol float32) bool {
	return t.Position.ApproxEqual(other.Position, tol) &&
		t.Scale.ApproxEqual(other.Scale, tol) &&
		t.Rotation.SameRotation(other.Rotation, tol)
}
