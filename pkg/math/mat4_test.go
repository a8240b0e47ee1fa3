package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	result := Translate(10, 20, 30).TransformPoint(Vec3{1, 2, 3})
	if want := (Vec3{11, 22, 33}); result != want {
		t.Errorf("TransformPoint: got %v, want %v", result, want)
	}

	result = Scale(2, 2, 2).TransformPoint(Vec3{1, 2, 3})
	if want := (Vec3{2, 4, 6}); result != want {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	got := m.TransformDirection(Vec3{1, 0, 0})
	if want := (Vec3{2, 0, 0}); got != want {
		t.Errorf("TransformDirection: got %v, want %v", got, want)
	}
}

func TestMulMatchesMgl(t *testing.T) {
	a := Translate(1, 2, 3).Mul(QuatFromAxisAngle(Vec3{0, 1, 0}, 0.7).ToMat4())
	b := Scale(2, 3, 4)

	got := a.Mul(b)
	want := a.ToMgl().Mul4(b.ToMgl())
	if !got.ToMgl().ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Mul: got %v, want %v", got, want)
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, -2, 3).
		Mul(QuatFromAxisAngle(Vec3{1, 1, 0}, 1.1).ToMat4()).
		Mul(Scale(2, 0.5, 3))

	if !m.Mul(m.Inverse()).ApproxEqual(Identity(), 1e-4) {
		t.Errorf("M * M^-1 should be identity, got %v", m.Mul(m.Inverse()))
	}

	want := mgl32.Mat4(m).Inv()
	if !m.Inverse().ToMgl().ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("Inverse: got %v, want %v", m.Inverse(), want)
	}
}

func TestInverseSingular(t *testing.T) {
	if got := Scale(0, 1, 1).Inverse(); got != Identity() {
		t.Errorf("singular Inverse should be identity, got %v", got)
	}
}

func TestQuatToMat4RotatesLikeQuat(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))
	result := q.ToMat4().TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) becomes (0,0,-1)
	if !result.ApproxEqual(Vec3{0, 0, -1}, 0.001) {
		t.Errorf("rotate Y 90: got %v, want (0, 0, -1)", result)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
