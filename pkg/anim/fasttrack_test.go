package anim

import (
	"math/rand"
	"testing"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

func TestFastTrackMatchesTrack(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, mode := range []Interpolation{Constant, Linear, Cubic} {
		for _, n := range []int{2, 3, 9, 40} {
			vec := randomVectorTrack(rng, mode, n)
			fastVec := OptimizeTrack(vec)
			rot := randomQuaternionTrack(rng, mode, n)
			fastRot := OptimizeTrack(rot)

			lo := vec.StartTime() - 1
			span := vec.Duration() + 2
			for i := 0; i < 500; i++ {
				time := lo + rng.Float32()*span
				for _, looping := range []bool{false, true} {
					if a, b := vec.FrameIndex(time, looping), fastVec.FrameIndex(time, looping); a != b {
						t.Fatalf("%v n=%d: FrameIndex(%v, %v) track %d, fast %d", mode, n, time, looping, a, b)
					}
					if a, b := vec.Sample(time, looping), fastVec.Sample(time, looping); !a.ApproxEqual(b, 1e-6) {
						t.Fatalf("%v n=%d: vector Sample(%v, %v) track %v, fast %v", mode, n, time, looping, a, b)
					}
				}
			}

			lo = rot.StartTime() - 1
			span = rot.Duration() + 2
			for i := 0; i < 500; i++ {
				time := lo + rng.Float32()*span
				looping := i%2 == 0
				if a, b := rot.Sample(time, looping), fastRot.Sample(time, looping); !a.ApproxEqual(b, 1e-6) {
					t.Fatalf("%v n=%d: quaternion Sample(%v, %v) track %v, fast %v", mode, n, time, looping, a, b)
				}
			}
		}
	}
}

func TestFastTrackDenseKeyframes(t *testing.T) {
	// More keyframes than lookup slots: the cached index is only a hint.
	track := NewScalarTrack(Linear)
	for i := 0; i < 300; i++ {
		track.Append(NewKeyframe(float32(i)*0.002, float32(i)))
	}
	fast := OptimizeTrack(track)

	for time := float32(0); time < 0.6; time += 0.0007 {
		if a, b := track.FrameIndex(time, false), fast.FrameIndex(time, false); a != b {
			t.Fatalf("FrameIndex(%v) track %d, fast %d", time, a, b)
		}
	}
}

func TestFastTrackShortTrack(t *testing.T) {
	// Under two lookup slots: the table is empty and the scan is used.
	track := NewScalarTrack(Linear,
		NewKeyframe[float32](0, 0),
		NewKeyframe[float32](0.01, 1),
		NewKeyframe[float32](0.02, 3),
	)
	fast := OptimizeTrack(track)
	if got := fast.Sample(0.015, false); abs(got-2) > 1e-4 {
		t.Errorf("Sample(0.015) = %v, want 2", got)
	}
}

func TestFastTrackStale(t *testing.T) {
	fast := OptimizeTrack(NewScalarTrack(Linear,
		NewKeyframe[float32](0, 0),
		NewKeyframe[float32](1, 1),
	))
	if fast.Stale() {
		t.Fatal("freshly optimized track should not be stale")
	}

	fast.Append(NewKeyframe[float32](3, 5))
	if !fast.Stale() {
		t.Fatal("Append should mark the lookup stale")
	}

	plain := fast.Track()
	for time := float32(-0.5); time < 3.5; time += 0.05 {
		if a, b := plain.Sample(time, false), fast.Sample(time, false); abs(a-b) > 1e-6 {
			t.Fatalf("stale Sample(%v) = %v, want %v", time, b, a)
		}
	}

	fast.RebuildLookup()
	if fast.Stale() {
		t.Error("RebuildLookup should clear staleness")
	}
	if got := fast.Sample(2, false); abs(got-3) > 1e-5 {
		t.Errorf("Sample(2) after rebuild = %v, want 3", got)
	}
}

func TestOptimizeTrackCopies(t *testing.T) {
	track := NewVectorTrack(Cubic,
		NewKeyframe(0, math.Vec3{}),
		NewKeyframe(1, math.Vec3{X: 1}),
	)
	fast := OptimizeTrack(track)
	track.SetFrame(1, NewKeyframe(1, math.Vec3{X: 9}))

	if fast.Interpolation() != Cubic {
		t.Errorf("Interpolation() = %v, want cubic", fast.Interpolation())
	}
	if got := fast.Frame(1).Value; got != (math.Vec3{X: 1}) {
		t.Errorf("fast track should own its frames, got %v", got)
	}
}
