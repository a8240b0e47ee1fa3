package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec3.Length() = %v, want 5", got)
	}
	if got := v.LengthSq(); got != 25 {
		t.Errorf("Vec3.LengthSq() = %v, want 25", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	got := Vec3{0, 0, 0}.Lerp(Vec3{10, 20, 30}, 0.5)
	if want := (Vec3{5, 10, 15}); !got.ApproxEqual(want, 0.001) {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}

func TestVec3Mul(t *testing.T) {
	got := Vec3{1, 2, 3}.Mul(Vec3{2, 3, 4})
	if want := (Vec3{2, 6, 12}); got != want {
		t.Errorf("Vec3.Mul() = %v, want %v", got, want)
	}
}

func TestWrapTime(t *testing.T) {
	tests := []struct {
		name       string
		t          float32
		start, end float32
		want       float32
	}{
		{"inside", 1.5, 1, 3, 1.5},
		{"past end", 3.5, 1, 3, 1.5},
		{"several loops", 7.25, 1, 3, 1.25},
		{"before start", 0.5, 1, 3, 2.5},
		{"negative", -1.5, 0, 2, 0.5},
		{"at end", 3, 1, 3, 1},
		{"empty range", 5, 2, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapTime(tt.t, tt.start, tt.end)
			if !ApproxEqual(got, tt.want, 1e-5) {
				t.Errorf("WrapTime(%v, %v, %v) = %v, want %v", tt.t, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp(5, 0, 1) = %v, want 1", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Clamp(-5, 0, 1) = %v, want 0", got)
	}
	if got := Clamp(0.25, 0, 1); got != 0.25 {
		t.Errorf("Clamp(0.25, 0, 1) = %v, want 0.25", got)
	}
}
