package anim

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

// JointTrack animates the local transform of one joint with independent
// position, rotation and scale tracks. A nil or invalid sub-track leaves
// that component of the base transform untouched.
type JointTrack struct {
	ID       uint32
	Position Sampler[math.Vec3]
	Rotation Sampler[math.Quat]
	Scale    Sampler[math.Vec3]
}

// NewJointTrack returns a joint track with empty Linear sub-tracks.
func NewJointTrack(id uint32) *JointTrack {
	return &JointTrack{
		ID:       id,
		Position: NewVectorTrack(Linear),
		Rotation: NewQuaternionTrack(Linear),
		Scale:    NewVectorTrack(Linear),
	}
}

// PositionTrack returns the position track if it is a plain Track.
func (j *JointTrack) PositionTrack() (*VectorTrack, bool) {
	t, ok := j.Position.(*VectorTrack)
	return t, ok
}

// RotationTrack returns the rotation track if it is a plain Track.
func (j *JointTrack) RotationTrack() (*QuaternionTrack, bool) {
	t, ok := j.Rotation.(*QuaternionTrack)
	return t, ok
}

// ScaleTrack returns the scale track if it is a plain Track.
func (j *JointTrack) ScaleTrack() (*VectorTrack, bool) {
	t, ok := j.Scale.(*VectorTrack)
	return t, ok
}

// IsValid reports whether any sub-track can be sampled.
func (j *JointTrack) IsValid() bool {
	return valid(j.Position) || valid(j.Rotation) || valid(j.Scale)
}

// StartTime returns the earliest start among valid sub-tracks, or 0.
func (j *JointTrack) StartTime() float32 {
	var start float32
	set := false
	for _, s := range j.extents() {
		if s.ok && (!set || s.start < start) {
			start, set = s.start, true
		}
	}
	return start
}

// EndTime returns the latest end among valid sub-tracks, or 0.
func (j *JointTrack) EndTime() float32 {
	var end float32
	set := false
	for _, s := range j.extents() {
		if s.ok && (!set || s.end > end) {
			end, set = s.end, true
		}
	}
	return end
}

type extent struct {
	start, end float32
	ok         bool
}

func (j *JointTrack) extents() [3]extent {
	return [3]extent{
		extentOf(j.Position),
		extentOf(j.Rotation),
		extentOf(j.Scale),
	}
}

func extentOf[T any](s Sampler[T]) extent {
	if !valid(s) {
		return extent{}
	}
	return extent{start: s.StartTime(), end: s.EndTime(), ok: true}
}

func valid[T any](s Sampler[T]) bool {
	return s != nil && s.IsValid()
}

// Sample returns base with each valid component replaced by its track
// value at time.
func (j *JointTrack) Sample(base math.Transform, time float32, looping bool) math.Transform {
	result := base
	if valid(j.Position) {
		result.Position = j.Position.Sample(time, looping)
	}
	if valid(j.Rotation) {
		result.Rotation = j.Rotation.Sample(time, looping)
	}
	if valid(j.Scale) {
		result.Scale = j.Scale.Sample(time, looping)
	}
	return result
}

type validator interface {
	Validate() error
}

// Validate checks keyframe order on each sub-track that supports it.
func (j *JointTrack) Validate() error {
	names := [3]string{"position", "rotation", "scale"}
	tracks := [3]any{j.Position, j.Rotation, j.Scale}
	for i, t := range tracks {
		v, ok := t.(validator)
		if !ok {
			continue
		}
		if err := v.Validate(); err != nil {
			return errors.Wrapf(err, "joint %d %s", j.ID, names[i])
		}
	}
	return nil
}
