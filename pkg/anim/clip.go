package anim

import (
	"github.com/Faultbox/midgard-anim/pkg/math"
	"github.com/Faultbox/midgard-anim/pkg/pose"
)

// Clip is a named set of joint tracks played together.
// Start and end times are cached; call RecalculateDuration after editing
// tracks.
type Clip struct {
	Name    string
	Looping bool

	start  float32
	end    float32
	tracks []*JointTrack
}

// NewClip returns an empty looping clip.
func NewClip(name string) *Clip {
	return &Clip{Name: name, Looping: true}
}

// Track returns the track for joint id without modifying the clip.
func (c *Clip) Track(id uint32) (*JointTrack, bool) {
	for _, t := range c.tracks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// GetOrCreate returns the track for joint id, appending an empty one if the
// clip has none.
func (c *Clip) GetOrCreate(id uint32) *JointTrack {
	if t, ok := c.Track(id); ok {
		return t
	}
	t := NewJointTrack(id)
	c.tracks = append(c.tracks, t)
	return t
}

// SetTrack stores t, replacing any existing track with the same id.
func (c *Clip) SetTrack(t *JointTrack) {
	for i, existing := range c.tracks {
		if existing.ID == t.ID {
			c.tracks[i] = t
			return
		}
	}
	c.tracks = append(c.tracks, t)
}

// Tracks returns the joint tracks in insertion order.
func (c *Clip) Tracks() []*JointTrack { return c.tracks }

// Len returns the number of joint tracks.
func (c *Clip) Len() int { return len(c.tracks) }

// StartTime returns the cached start time.
func (c *Clip) StartTime() float32 { return c.start }

// EndTime returns the cached end time.
func (c *Clip) EndTime() float32 { return c.end }

// Duration returns EndTime - StartTime.
func (c *Clip) Duration() float32 { return c.end - c.start }

// RecalculateDuration recomputes start and end from the valid tracks.
// A clip without valid tracks spans [0, 0].
func (c *Clip) RecalculateDuration() {
	c.start, c.end = 0, 0
	startSet, endSet := false, false
	for _, t := range c.tracks {
		if !t.IsValid() {
			continue
		}
		if s := t.StartTime(); !startSet || s < c.start {
			c.start, startSet = s, true
		}
		if e := t.EndTime(); !endSet || e > c.end {
			c.end, endSet = e, true
		}
	}
}

// Sample writes the clip at time into p and returns the time actually
// sampled. A clip with zero duration returns 0 and leaves p untouched.
// Tracks for joints outside p are skipped.
func (c *Clip) Sample(p *pose.Pose, time float32) float32 {
	if c.Duration() == 0 {
		return 0
	}

	time = c.AdjustTime(time)
	n := p.Len()
	for _, t := range c.tracks {
		j := int(t.ID)
		if j >= n {
			continue
		}
		p.SetLocal(j, t.Sample(p.Local(j), time, c.Looping))
	}
	return time
}

// AdjustTime wraps time into the clip when looping and clamps it otherwise.
func (c *Clip) AdjustTime(time float32) float32 {
	if c.Duration() <= 0 {
		return 0
	}
	if c.Looping {
		return math.WrapTime(time, c.start, c.end)
	}
	return math.Clamp(time, c.start, c.end)
}

// NormalizedTime returns where time falls in the clip as a fraction in
// [0, 1].
func (c *Clip) NormalizedTime(time float32) float32 {
	d := c.Duration()
	if d <= 0 {
		return 0
	}
	return math.Clamp((time-c.start)/d, 0, 1)
}

// Remap rewrites joint ids after a skeleton rearrangement. Ids missing from
// m are kept.
func (c *Clip) Remap(m pose.BoneMap) {
	for _, t := range c.tracks {
		if to, ok := m[int(t.ID)]; ok && to >= 0 {
			t.ID = uint32(to)
		}
	}
}

// Validate checks keyframe order on every plain or fast sub-track.
func (c *Clip) Validate() error {
	for _, t := range c.tracks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}
