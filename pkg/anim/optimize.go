package anim

import "github.com/Faultbox/midgard-anim/pkg/math"

// OptimizeJointTrack returns a copy of t whose plain sub-tracks are replaced
// by FastTracks. Sub-tracks that are already fast are copied as well;
// unknown sampler types are shared.
func OptimizeJointTrack(t *JointTrack) *JointTrack {
	return &JointTrack{
		ID:       t.ID,
		Position: optimizeSampler[math.Vec3, VectorChannel](t.Position),
		Rotation: optimizeSampler[math.Quat, QuaternionChannel](t.Rotation),
		Scale:    optimizeSampler[math.Vec3, VectorChannel](t.Scale),
	}
}

func optimizeSampler[T any, C Channel[T]](s Sampler[T]) Sampler[T] {
	switch tr := s.(type) {
	case *Track[T, C]:
		return OptimizeTrack(tr)
	case *FastTrack[T, C]:
		return OptimizeTrack(tr.Track())
	case nil:
		return NewTrack[T, C](Linear)
	default:
		return s
	}
}

// OptimizeClip returns a copy of c with every joint track optimized.
func OptimizeClip(c *Clip) *Clip {
	out := NewClip(c.Name)
	out.Looping = c.Looping
	out.tracks = make([]*JointTrack, 0, len(c.tracks))
	for _, t := range c.tracks {
		out.tracks = append(out.tracks, OptimizeJointTrack(t))
	}
	out.RecalculateDuration()
	return out
}
