package anim

import "github.com/Faultbox/midgard-anim/pkg/pose"

// MakeAdditivePose samples clip at its start time on top of the
// skeleton's rest pose. The result is the reference that pose.Add
// subtracts, so an additive clip contributes only its change from its
// first frame.
func MakeAdditivePose(s *pose.Skeleton, clip *Clip) *pose.Pose {
	p := s.RestPose().Clone()
	clip.Sample(p, clip.StartTime())
	return p
}
