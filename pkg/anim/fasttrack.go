package anim

import "github.com/Faultbox/midgard-anim/pkg/math"

// LookupRate is the number of lookup table slots per second of track time.
const LookupRate = 60

// FastTrack is a Track with a uniform-time lookup table that replaces the
// backward keyframe scan. It samples exactly like the Track it was built
// from.
//
// Mutating the keyframes through FastTrack marks the table stale; a stale
// table is never read, and sampling falls back to the scan until
// RebuildLookup is called. Sampling never writes, so a rebuilt FastTrack
// may be sampled from several goroutines.
type FastTrack[T any, C Channel[T]] struct {
	track  Track[T, C]
	lookup []int
	stale  bool
}

// FastTrack aliases for the three supported value types.
type (
	FastScalarTrack     = FastTrack[float32, ScalarChannel]
	FastVectorTrack     = FastTrack[math.Vec3, VectorChannel]
	FastQuaternionTrack = FastTrack[math.Quat, QuaternionChannel]
)

// OptimizeTrack copies track into a FastTrack and builds its lookup table.
func OptimizeTrack[T any, C Channel[T]](track *Track[T, C]) *FastTrack[T, C] {
	f := &FastTrack[T, C]{}
	f.track.mode = track.mode
	f.track.frames = make([]Keyframe[T], len(track.frames))
	copy(f.track.frames, track.frames)
	f.RebuildLookup()
	return f
}

// Track returns a copy of the underlying keyframes as a plain Track.
func (f *FastTrack[T, C]) Track() *Track[T, C] {
	return NewTrack[T, C](f.track.mode, f.track.frames...)
}

// RebuildLookup recomputes the lookup table from the current keyframes.
func (f *FastTrack[T, C]) RebuildLookup() {
	f.stale = false
	f.lookup = f.lookup[:0]

	frames := f.track.frames
	if len(frames) <= 1 {
		return
	}

	start, end := f.track.StartTime(), f.track.EndTime()
	samples := int((end - start) * LookupRate)
	if samples < 2 {
		return
	}

	if cap(f.lookup) < samples {
		f.lookup = make([]int, samples)
	}
	f.lookup = f.lookup[:samples]
	f.lookup[0] = 0
	f.lookup[samples-1] = len(frames) - 1
	for i := 1; i < samples-1; i++ {
		alpha := float32(i) / float32(samples-1)
		f.lookup[i] = f.track.scan(math.Lerp(start, end, alpha))
	}
}

// Stale reports whether keyframes changed since the last RebuildLookup.
func (f *FastTrack[T, C]) Stale() bool { return f.stale }

// FrameIndex returns the same index as Track.FrameIndex using the lookup
// table. The cached slot is a starting guess that is stepped to the exact
// bracketing keyframe, which is at most a few steps away.
func (f *FastTrack[T, C]) FrameIndex(time float32, looping bool) int {
	time, idx, ok := f.track.boundFrame(time, looping)
	if !ok {
		return idx
	}

	samples := len(f.lookup)
	if f.stale || samples < 2 {
		return f.track.scan(time)
	}

	start, end := f.track.StartTime(), f.track.EndTime()
	alpha := (time - start) / (end - start)
	slot := int(alpha*float32(samples)) - 1
	if slot < 0 {
		slot = 0
	} else if slot >= samples {
		slot = samples - 1
	}

	frames := f.track.frames
	last := len(frames) - 2
	idx = f.lookup[slot]
	if idx > last {
		idx = last
	}
	for idx < last && frames[idx+1].Time <= time {
		idx++
	}
	for idx > 0 && frames[idx].Time > time {
		idx--
	}
	return idx
}

// Sample returns the track value at time.
func (f *FastTrack[T, C]) Sample(time float32, looping bool) T {
	return f.track.sampleFrame(f.FrameIndex(time, looping), time, looping)
}

// Len returns the number of keyframes.
func (f *FastTrack[T, C]) Len() int { return f.track.Len() }

// Frames returns the keyframes. Modifying them in place requires a
// RebuildLookup.
func (f *FastTrack[T, C]) Frames() []Keyframe[T] { return f.track.frames }

// Frame returns keyframe i.
func (f *FastTrack[T, C]) Frame(i int) Keyframe[T] { return f.track.frames[i] }

// SetFrame replaces keyframe i and marks the table stale.
func (f *FastTrack[T, C]) SetFrame(i int, k Keyframe[T]) {
	f.track.SetFrame(i, k)
	f.stale = true
}

// Append adds a keyframe and marks the table stale.
func (f *FastTrack[T, C]) Append(k Keyframe[T]) {
	f.track.Append(k)
	f.stale = true
}

// Resize changes the keyframe count and marks the table stale.
func (f *FastTrack[T, C]) Resize(n int) {
	f.track.Resize(n)
	f.stale = true
}

// Interpolation returns the sampling mode.
func (f *FastTrack[T, C]) Interpolation() Interpolation { return f.track.mode }

// SetInterpolation changes the sampling mode. The table is unaffected.
func (f *FastTrack[T, C]) SetInterpolation(mode Interpolation) { f.track.mode = mode }

// IsValid reports whether the track has at least two keyframes.
func (f *FastTrack[T, C]) IsValid() bool { return f.track.IsValid() }

// StartTime returns the first keyframe time.
func (f *FastTrack[T, C]) StartTime() float32 { return f.track.StartTime() }

// EndTime returns the last keyframe time.
func (f *FastTrack[T, C]) EndTime() float32 { return f.track.EndTime() }

// AdjustTime maps time into the track range.
func (f *FastTrack[T, C]) AdjustTime(time float32, looping bool) float32 {
	return f.track.AdjustTime(time, looping)
}

// Validate checks keyframe order.
func (f *FastTrack[T, C]) Validate() error { return f.track.Validate() }
