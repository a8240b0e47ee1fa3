package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatSlerp(t *testing.T) {
	// Test endpoints
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// At t=0, should equal q1
	result0 := q1.Slerp(q2, 0)
	if math.Abs(float64(result0.W-q1.W)) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1")
	}

	// At t=1, should equal q2
	result1 := q1.Slerp(q2, 1)
	if math.Abs(float64(result1.W-q2.W)) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// At t=0.5, should be halfway
	result5 := q1.Slerp(q2, 0.5)
	// For 90 degree rotation, halfway should be 45 degrees
	expectedW := float32(math.Cos(float64(math.Pi / 8))) // cos(45/2 degrees)
	if math.Abs(float64(result5.W-expectedW)) > 0.01 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, result5.W)
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// Should have Y component and W = cos(45deg)
	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatMulMatchesMgl(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{1, 2, 3}, 0.8)
	b := QuatFromAxisAngle(Vec3{-1, 0, 2}, 2.1)

	got := a.Mul(b)
	want := a.ToMgl().Mul(b.ToMgl())
	if !got.ApproxEqual(QuatFromMgl(want), 1e-5) {
		t.Errorf("Mul: got %v, want %v", got, want)
	}
}

func TestQuatRotateMatchesMgl(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0.3, 1, -0.2}, 1.3)
	v := Vec3{1, -2, 0.5}

	got := q.Rotate(v)
	want := Vec3FromMgl(q.ToMgl().Rotate(v.ToMgl()))
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("Rotate: got %v, want %v", got, want)
	}
}

func TestQuatMulOrder(t *testing.T) {
	// a.Mul(b) applies b first.
	a := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))
	b := QuatFromAxisAngle(Vec3{1, 0, 0}, float32(math.Pi/2))
	v := Vec3{0, 1, 0}

	got := a.Mul(b).Rotate(v)
	want := a.Rotate(b.Rotate(v))
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("a*b rotate: got %v, want %v", got, want)
	}
}

func TestQuatInverse(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 1, 1}, 0.9)
	if got := q.Mul(q.Inverse()); !got.ApproxEqual(QuatIdentity(), 1e-5) {
		t.Errorf("q * q^-1 = %v, want identity", got)
	}
	if got := (Quat{}).Inverse(); got != QuatIdentity() {
		t.Errorf("zero Inverse = %v, want identity", got)
	}
}

func TestQuatFromTo(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec3
	}{
		{"x to y", Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"unnormalized", Vec3{2, 0, 0}, Vec3{0, 0, 5}},
		{"oblique", Vec3{1, 2, 3}, Vec3{-3, 1, 0.5}},
		{"opposite x", Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
		{"opposite y", Vec3{0, 1, 0}, Vec3{0, -1, 0}},
		{"opposite z", Vec3{0, 0, 1}, Vec3{0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromTo(tt.from, tt.to)
			got := q.Rotate(tt.from.Normalize())
			want := tt.to.Normalize()
			if !got.ApproxEqual(want, 1e-4) {
				t.Errorf("QuatFromTo(%v, %v) rotates to %v, want %v", tt.from, tt.to, got, want)
			}
			if l := q.Dot(q); abs(l-1) > 1e-4 {
				t.Errorf("QuatFromTo not unit: |q|^2 = %v", l)
			}
		})
	}

	if got := QuatFromTo(Vec3{0, 1, 0}, Vec3{0, 1, 0}); got != QuatIdentity() {
		t.Errorf("same direction: got %v, want identity", got)
	}
}

func TestQuatNeighbour(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.5)
	if got := q.Neg().Neighbour(q); got != q {
		t.Errorf("Neighbour should flip into q's hemisphere, got %v", got)
	}
	if got := q.Neighbour(q); got != q {
		t.Errorf("Neighbour should keep q, got %v", got)
	}
}

func TestQuatNLerpEndpoints(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{1, 0, 0}, 0.2)
	b := QuatFromAxisAngle(Vec3{0, 0, 1}, 1.2)

	if got := a.NLerp(b, 0); !got.ApproxEqual(a, 1e-5) {
		t.Errorf("NLerp(0) = %v, want %v", got, a)
	}
	if got := a.NLerp(b, 1); !got.ApproxEqual(b, 1e-5) {
		t.Errorf("NLerp(1) = %v, want %v", got, b)
	}
}
