package demo

import (
	"github.com/Faultbox/midgard-anim/pkg/anim"
	"github.com/Faultbox/midgard-anim/pkg/math"
	"github.com/Faultbox/midgard-anim/pkg/pose"
)

// Clip names.
const (
	Walk = "walk"
	Idle = "idle"
	Lean = "lean"
)

// WalkDuration is the length of one walk cycle in seconds.
const WalkDuration = 1.0

func rotX(angle float32) math.Quat {
	return math.QuatFromAxisAngle(math.Vec3{X: 1}, angle)
}

func rotZ(angle float32) math.Quat {
	return math.QuatFromAxisAngle(math.Vec3{Z: 1}, angle)
}

// swing returns a looping rotation track about X through the given angles,
// evenly spaced over duration. The first angle is repeated at the end.
func swing(duration float32, angles ...float32) *anim.QuaternionTrack {
	t := anim.NewQuaternionTrack(anim.Linear)
	step := duration / float32(len(angles))
	for i, a := range angles {
		t.Append(anim.NewKeyframe(float32(i)*step, rotX(a)))
	}
	t.Append(anim.NewKeyframe(duration, rotX(angles[0])))
	return t
}

// bob returns a cubic position track with flat tangents.
func bob(base math.Vec3, duration float32, offsets ...float32) *anim.VectorTrack {
	t := anim.NewVectorTrack(anim.Cubic)
	step := duration / float32(len(offsets))
	for i, dy := range offsets {
		t.Append(anim.CubicKeyframe(float32(i)*step, base.Add(math.Vec3{Y: dy}), math.Vec3{}, math.Vec3{}))
	}
	t.Append(anim.CubicKeyframe(duration, base.Add(math.Vec3{Y: offsets[0]}), math.Vec3{}, math.Vec3{}))
	return t
}

// NewWalk returns a looping walk cycle for the biped.
func NewWalk(s *pose.Skeleton) *anim.Clip {
	clip := anim.NewClip(Walk)
	rest := s.RestPose()

	pelvis := JointID(s, Pelvis)
	clip.GetOrCreate(pelvis).Position = bob(rest.Local(int(pelvis)).Position, WalkDuration, 0, -0.03, 0, -0.03)

	clip.GetOrCreate(JointID(s, LeftHip)).Rotation = swing(WalkDuration, -0.4, 0, 0.4, 0)
	clip.GetOrCreate(JointID(s, RightHip)).Rotation = swing(WalkDuration, 0.4, 0, -0.4, 0)
	clip.GetOrCreate(JointID(s, LeftKnee)).Rotation = swing(WalkDuration, 0.1, 0.6, 0.1, 0.05)
	clip.GetOrCreate(JointID(s, RightKnee)).Rotation = swing(WalkDuration, 0.1, 0.05, 0.1, 0.6)
	clip.GetOrCreate(JointID(s, Spine)).Rotation = swing(WalkDuration, 0.05, 0.08, 0.05, 0.08)

	clip.RecalculateDuration()
	return clip
}

// NewIdle returns a slow looping breathing clip.
func NewIdle(s *pose.Skeleton) *anim.Clip {
	clip := anim.NewClip(Idle)
	rest := s.RestPose()

	pelvis := JointID(s, Pelvis)
	clip.GetOrCreate(pelvis).Position = bob(rest.Local(int(pelvis)).Position, 2, 0, -0.01)

	spine := anim.NewQuaternionTrack(anim.Linear,
		anim.NewKeyframe(0, math.QuatIdentity()),
		anim.NewKeyframe(1, rotX(0.03)),
		anim.NewKeyframe(2, math.QuatIdentity()),
	)
	clip.GetOrCreate(JointID(s, Spine)).Rotation = spine

	clip.RecalculateDuration()
	return clip
}

// NewLean returns a one second additive clip that bends the spine
// sideways. Pair it with anim.MakeAdditivePose.
func NewLean(s *pose.Skeleton) *anim.Clip {
	clip := anim.NewClip(Lean)
	clip.Looping = false
	clip.GetOrCreate(JointID(s, Spine)).Rotation = anim.NewQuaternionTrack(anim.Linear,
		anim.NewKeyframe(0, math.QuatIdentity()),
		anim.NewKeyframe(1, rotZ(0.5)),
	)
	clip.RecalculateDuration()
	return clip
}

// NewClips returns every demo clip keyed by name.
func NewClips(s *pose.Skeleton) map[string]*anim.Clip {
	return map[string]*anim.Clip{
		Walk: NewWalk(s),
		Idle: NewIdle(s),
		Lean: NewLean(s),
	}
}

// NewLeftPin returns the contact curve of the left foot over one walk
// cycle, sampled with normalized clip time. 1 plants the foot.
func NewLeftPin() *anim.ScalarTrack {
	return pinTrack([4]float32{0, 0.4, 0.6, 1}, [4]float32{0, 1, 1, 0})
}

// NewRightPin is the right foot counterpart of NewLeftPin.
func NewRightPin() *anim.ScalarTrack {
	return pinTrack([4]float32{0, 0.3, 0.7, 1}, [4]float32{1, 0, 0, 1})
}

func pinTrack(times, values [4]float32) *anim.ScalarTrack {
	t := anim.NewScalarTrack(anim.Cubic)
	for i := range times {
		t.Append(anim.CubicKeyframe(times[i], values[i], 0, 0))
	}
	return t
}
