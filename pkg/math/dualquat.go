package math

// DualQuat is a rigid transform (rotation and translation, no scale) stored
// as a real rotation part and a dual translation part.
type DualQuat struct {
	Real Quat
	Dual Quat
}

// DualQuatFromTransform drops scale and encodes the rotation and position.
func DualQuatFromTransform(t Transform) DualQuat {
	r := t.Rotation.Normalize()
	p := Quat{X: t.Position.X, Y: t.Position.Y, Z: t.Position.Z}
	return DualQuat{
		Real: r,
		Dual: p.Mul(r).Scale(0.5),
	}
}

// Normalize scales both parts by the inverse length of the real part.
func (d DualQuat) Normalize() DualQuat {
	lsq := d.Real.LengthSq()
	if lsq < Epsilon {
		return DualQuat{Real: QuatIdentity()}
	}
	inv := 1 / sqrt32(lsq)
	return DualQuat{Real: d.Real.Scale(inv), Dual: d.Dual.Scale(inv)}
}

// Mul composes two dual quaternions: d applied after other.
func (d DualQuat) Mul(other DualQuat) DualQuat {
	return DualQuat{
		Real: d.Real.Mul(other.Real),
		Dual: d.Real.Mul(other.Dual).Add(d.Dual.Mul(other.Real)),
	}
}

// Translation returns the encoded position.
func (d DualQuat) Translation() Vec3 {
	t := d.Dual.Scale(2).Mul(d.Real.Conjugate())
	return Vec3{t.X, t.Y, t.Z}
}

// TransformPoint rotates then translates p.
func (d DualQuat) TransformPoint(p Vec3) Vec3 {
	return d.Real.Rotate(p).Add(d.Translation())
}

// TransformVector rotates v.
func (d DualQuat) TransformVector(v Vec3) Vec3 {
	return d.Real.Rotate(v)
}

// ToTransform converts back to a unit-scale Transform.
func (d DualQuat) ToTransform() Transform {
	d = d.Normalize()
	return Transform{
		Position: d.Translation(),
		Rotation: d.Real,
		Scale:    Vec3One(),
	}
}
