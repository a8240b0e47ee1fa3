package ik

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-anim/pkg/anim"
	"github.com/Faultbox/midgard-anim/pkg/math"
	"github.com/Faultbox/midgard-anim/pkg/pose"
)

// legSkeleton is a pelvis with one straight leg hanging down one unit.
func legSkeleton(t *testing.T) *pose.Skeleton {
	t.Helper()
	parents := []int{-1, 0, 1, 2, 3}
	locals := []math.Transform{
		link(math.Vec3{Y: 1}),
		link(math.Vec3{X: 0.1}),
		link(math.Vec3{Y: -0.5}),
		link(math.Vec3{Y: -0.5}),
		link(math.Vec3{Y: -0.1, Z: 0.15}),
	}
	p, err := pose.FromParents(parents, locals)
	if err != nil {
		t.Fatalf("FromParents: %v", err)
	}
	s, err := pose.NewSkeleton(p, p, []string{"pelvis", "hip", "knee", "ankle", "toe"})
	if err != nil {
		t.Fatalf("NewSkeleton: %v", err)
	}
	return s
}

func TestNewLegUnknownJoint(t *testing.T) {
	s := legSkeleton(t)
	_, err := NewLeg(s, "hip", "shin", "ankle", "toe", LegOptions{})
	if errors.Cause(err) != pose.ErrUnknownJoint {
		t.Errorf("error = %v, want ErrUnknownJoint", err)
	}
	_, err = NewLeg(s, "hip", "knee", "ankle", "toe", LegOptions{Solver: "jacobian"})
	if errors.Cause(err) != ErrUnknownSolver {
		t.Errorf("error = %v, want ErrUnknownSolver", err)
	}
}

func TestLegSolve(t *testing.T) {
	for _, solver := range []string{"fabrik", "ccd"} {
		t.Run(solver, func(t *testing.T) {
			s := legSkeleton(t)
			leg, err := NewLeg(s, "hip", "knee", "ankle", "toe", LegOptions{
				Solver:        solver,
				MaxIterations: 200,
				Threshold:     1e-3,
			})
			if err != nil {
				t.Fatalf("NewLeg: %v", err)
			}
			if leg.Hip() != 1 || leg.Knee() != 2 || leg.Ankle() != 3 || leg.Toe() != 4 {
				t.Fatalf("indices = %d %d %d %d", leg.Hip(), leg.Knee(), leg.Ankle(), leg.Toe())
			}

			model := link(math.Vec3{X: 2})
			in := s.RestPose().Clone()
			target := math.Vec3{X: 2.1, Y: 0.2, Z: 0.15}
			if !leg.Solve(model, in, target) {
				t.Fatalf("Solve = false")
			}

			out := leg.Pose()
			ankle := model.Combine(out.Global(leg.Ankle())).Position
			want := target.Add(math.Vec3{Y: DefaultAnkleOffset})
			if d := ankle.Distance(want); d > 2e-3 {
				t.Errorf("ankle = %v, want %v (distance %f)", ankle, want, d)
			}

			hip := model.Combine(out.Global(leg.Hip())).Position
			if !hip.ApproxEqual(math.Vec3{X: 2.1, Y: 1}, 1e-4) {
				t.Errorf("hip moved to %v", hip)
			}
			if !out.Local(0).ApproxEqual(in.Local(0), 1e-6) {
				t.Error("joint outside the leg changed")
			}
			if !in.Equal(s.RestPose(), 1e-6) {
				t.Error("input pose was modified")
			}

			pos := leg.ChainPositions(nil)
			if len(pos) != 3 || pos[2].Distance(want) > 2e-3 {
				t.Errorf("ChainPositions = %v", pos)
			}
		})
	}
}

func TestLegPinValue(t *testing.T) {
	s := legSkeleton(t)
	leg, err := NewLeg(s, "hip", "knee", "ankle", "toe", LegOptions{})
	if err != nil {
		t.Fatalf("NewLeg: %v", err)
	}
	if v := leg.PinValue(0.5); v != 0 {
		t.Errorf("PinValue without track = %f, want 0", v)
	}
	if leg.AnkleOffset() != DefaultAnkleOffset {
		t.Errorf("AnkleOffset = %f", leg.AnkleOffset())
	}

	leg.SetPinTrack(anim.NewScalarTrack(anim.Linear,
		anim.NewKeyframe[float32](0, 0),
		anim.NewKeyframe[float32](1, 1),
	))
	if v := leg.PinValue(0.25); abs(v-0.25) > 1e-5 {
		t.Errorf("PinValue(0.25) = %f, want 0.25", v)
	}
}
