package anim

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

// Sampler is anything that yields a value for a time. Track and FastTrack
// both implement it, so joint tracks can hold either.
type Sampler[T any] interface {
	Sample(time float32, looping bool) T
	StartTime() float32
	EndTime() float32
	IsValid() bool
}

// Track is an ordered sequence of keyframes for one channel.
// Keyframes must be appended in non-decreasing time order; the track never
// sorts. The zero value is an empty Linear track.
type Track[T any, C Channel[T]] struct {
	frames []Keyframe[T]
	mode   Interpolation
}

// Track aliases for the three supported value types.
type (
	ScalarTrack     = Track[float32, ScalarChannel]
	VectorTrack     = Track[math.Vec3, VectorChannel]
	QuaternionTrack = Track[math.Quat, QuaternionChannel]
)

// NewTrack returns a track holding a copy of frames.
func NewTrack[T any, C Channel[T]](mode Interpolation, frames ...Keyframe[T]) *Track[T, C] {
	t := &Track[T, C]{mode: mode}
	t.frames = append(t.frames, frames...)
	return t
}

// NewScalarTrack returns a float32 track.
func NewScalarTrack(mode Interpolation, frames ...Keyframe[float32]) *ScalarTrack {
	return NewTrack[float32, ScalarChannel](mode, frames...)
}

// NewVectorTrack returns a Vec3 track.
func NewVectorTrack(mode Interpolation, frames ...Keyframe[math.Vec3]) *VectorTrack {
	return NewTrack[math.Vec3, VectorChannel](mode, frames...)
}

// NewQuaternionTrack returns a rotation track.
func NewQuaternionTrack(mode Interpolation, frames ...Keyframe[math.Quat]) *QuaternionTrack {
	return NewTrack[math.Quat, QuaternionChannel](mode, frames...)
}

// Len returns the number of keyframes.
func (t *Track[T, C]) Len() int { return len(t.frames) }

// Frames returns the keyframes. The slice is shared with the track.
func (t *Track[T, C]) Frames() []Keyframe[T] { return t.frames }

// Frame returns keyframe i.
func (t *Track[T, C]) Frame(i int) Keyframe[T] { return t.frames[i] }

// SetFrame replaces keyframe i.
func (t *Track[T, C]) SetFrame(i int, k Keyframe[T]) { t.frames[i] = k }

// Append adds a keyframe at the end.
func (t *Track[T, C]) Append(k Keyframe[T]) { t.frames = append(t.frames, k) }

// Resize grows or shrinks the track to n keyframes. New keyframes are zero.
func (t *Track[T, C]) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= cap(t.frames) {
		old := len(t.frames)
		t.frames = t.frames[:n]
		for i := old; i < n; i++ {
			t.frames[i] = Keyframe[T]{}
		}
		return
	}
	frames := make([]Keyframe[T], n)
	copy(frames, t.frames)
	t.frames = frames
}

// Interpolation returns the sampling mode.
func (t *Track[T, C]) Interpolation() Interpolation { return t.mode }

// SetInterpolation changes the sampling mode.
func (t *Track[T, C]) SetInterpolation(mode Interpolation) { t.mode = mode }

// IsValid reports whether the track has enough keyframes to interpolate.
func (t *Track[T, C]) IsValid() bool { return len(t.frames) > 1 }

// StartTime returns the first keyframe time, or 0 for an empty track.
func (t *Track[T, C]) StartTime() float32 {
	if len(t.frames) == 0 {
		return 0
	}
	return t.frames[0].Time
}

// EndTime returns the last keyframe time, or 0 for an empty track.
func (t *Track[T, C]) EndTime() float32 {
	if len(t.frames) == 0 {
		return 0
	}
	return t.frames[len(t.frames)-1].Time
}

// Duration returns EndTime - StartTime.
func (t *Track[T, C]) Duration() float32 { return t.EndTime() - t.StartTime() }

// Validate checks that keyframe times never decrease.
func (t *Track[T, C]) Validate() error {
	for i := 1; i < len(t.frames); i++ {
		if t.frames[i].Time < t.frames[i-1].Time {
			return errors.Wrapf(ErrUnsortedKeyframes, "frame %d at %v precedes frame %d at %v",
				i, t.frames[i].Time, i-1, t.frames[i-1].Time)
		}
	}
	return nil
}

// Sample returns the track value at time.
func (t *Track[T, C]) Sample(time float32, looping bool) T {
	return t.sampleFrame(t.FrameIndex(time, looping), time, looping)
}

// FrameIndex returns the index of the keyframe at or before time, or -1 if
// the track is not valid. Looping wraps time into range first; otherwise
// times before the first or after the last keyframe clamp to it.
func (t *Track[T, C]) FrameIndex(time float32, looping bool) int {
	time, last, ok := t.boundFrame(time, looping)
	if !ok {
		return last
	}
	return t.scan(time)
}

// boundFrame wraps time and resolves the boundary cases. When ok is false
// the returned index is final.
func (t *Track[T, C]) boundFrame(time float32, looping bool) (float32, int, bool) {
	n := len(t.frames)
	if n <= 1 {
		return time, -1, false
	}

	start := t.frames[0].Time
	end := t.frames[n-1].Time
	if looping && end > start {
		time = math.WrapTime(time, start, end)
	}

	if time <= start {
		return time, 0, false
	}
	if time >= end {
		return time, n - 1, false
	}
	return time, 0, true
}

// scan walks backward from the second-to-last keyframe to find the greatest
// index whose time is <= time.
func (t *Track[T, C]) scan(time float32) int {
	for i := len(t.frames) - 2; i > 0; i-- {
		if time >= t.frames[i].Time {
			return i
		}
	}
	return 0
}

// AdjustTime maps time into the track range: wrapped when looping, clamped
// otherwise. Tracks with no duration return 0.
func (t *Track[T, C]) AdjustTime(time float32, looping bool) float32 {
	if len(t.frames) == 0 {
		return 0
	}
	start, end := t.StartTime(), t.EndTime()
	if end-start <= 0 {
		return 0
	}
	if looping {
		return math.WrapTime(time, start, end)
	}
	return math.Clamp(time, start, end)
}

// sampleFrame evaluates the track given an already resolved frame index.
func (t *Track[T, C]) sampleFrame(frame int, time float32, looping bool) T {
	var c C
	if frame < 0 {
		return c.Zero()
	}

	value := c.Cast(t.frames[frame].Value)
	if t.mode == Constant || frame == len(t.frames)-1 {
		return value
	}

	next := frame + 1
	minTime := t.frames[frame].Time
	delta := t.frames[next].Time - minTime
	if delta <= 0 {
		return c.Zero()
	}

	alpha := (t.AdjustTime(time, looping) - minTime) / delta
	nextValue := c.Cast(t.frames[next].Value)

	if t.mode == Cubic {
		out := c.Scale(t.frames[frame].Out, delta)
		in := c.Scale(t.frames[next].In, delta)
		return c.Hermite(alpha, value, out, nextValue, in)
	}
	return c.Interpolate(value, nextValue, alpha)
}
