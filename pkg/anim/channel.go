package anim

import "github.com/Faultbox/midgard-anim/pkg/math"

// Channel is the set of value operations a Track needs. Implementations are
// empty structs; Track instantiates them by type, never by value.
type Channel[T any] interface {
	// Zero is returned for degenerate samples.
	Zero() T
	// Cast is applied to every keyframe value as it is read.
	Cast(v T) T
	// Interpolate blends a toward b by t along the shortest path.
	Interpolate(a, b T, t float32) T
	// Scale multiplies a tangent by s.
	Scale(v T, s float32) T
	// Hermite evaluates the cubic Hermite spline p1, s1, p2, s2 at t.
	Hermite(t float32, p1, s1, p2, s2 T) T
}

// hermiteBasis returns the four standard cubic Hermite weights at t.
func hermiteBasis(t float32) (h1, h2, h3, h4 float32) {
	tt := t * t
	ttt := tt * t
	h1 = 2*ttt - 3*tt + 1
	h2 = -2*ttt + 3*tt
	h3 = ttt - 2*tt + t
	h4 = ttt - tt
	return
}

// ScalarChannel interpolates float32 values.
type ScalarChannel struct{}

func (ScalarChannel) Zero() float32 { return 0 }
func (ScalarChannel) Cast(v float32) float32 { return v }
func (ScalarChannel) Scale(v, s float32) float32 { return v * s }
func (ScalarChannel) Interpolate(a, b, t float32) float32 {
	return math.Lerp(a, b, t)
}

func (ScalarChannel) Hermite(t, p1, s1, p2, s2 float32) float32 {
	h1, h2, h3, h4 := hermiteBasis(t)
	return p1*h1 + p2*h2 + s1*h3 + s2*h4
}

// VectorChannel interpolates math.Vec3 values component-wise.
type VectorChannel struct{}

func (VectorChannel) Zero() math.Vec3 { return math.Vec3{} }
func (VectorChannel) Cast(v math.Vec3) math.Vec3 { return v }
func (VectorChannel) Scale(v math.Vec3, s float32) math.Vec3 { return v.Scale(s) }
func (VectorChannel) Interpolate(a, b math.Vec3, t float32) math.Vec3 {
	return a.Lerp(b, t)
}

func (VectorChannel) Hermite(t float32, p1, s1, p2, s2 math.Vec3) math.Vec3 {
	h1, h2, h3, h4 := hermiteBasis(t)
	return p1.Scale(h1).Add(p2.Scale(h2)).Add(s1.Scale(h3)).Add(s2.Scale(h4))
}

// QuaternionChannel interpolates rotations. Values are normalized on read
// and the second operand is always moved into the first one's hemisphere.
type QuaternionChannel struct{}

func (QuaternionChannel) Zero() math.Quat { return math.QuatIdentity() }
func (QuaternionChannel) Cast(v math.Quat) math.Quat { return v.Normalize() }
func (QuaternionChannel) Scale(v math.Quat, s float32) math.Quat { return v.Scale(s) }
func (QuaternionChannel) Interpolate(a, b math.Quat, t float32) math.Quat {
	return a.NLerp(b.Neighbour(a), t)
}

func (QuaternionChannel) Hermite(t float32, p1, s1, p2, s2 math.Quat) math.Quat {
	h1, h2, h3, h4 := hermiteBasis(t)
	p2 = p2.Neighbour(p1)
	return p1.Scale(h1).Add(p2.Scale(h2)).Add(s1.Scale(h3)).Add(s2.Scale(h4)).Normalize()
}
