// Package blend cross-fades between animation clips.
package blend

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-anim/pkg/anim"
	"github.com/Faultbox/midgard-anim/pkg/pose"
)

// State is the controller state.
type State int

const (
	// Idle means no clip is playing.
	Idle State = iota
	// Playing means a current clip is set, with or without fade targets.
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// Target is a clip being faded in. Each target samples into its own pose.
type Target struct {
	Clip     *anim.Clip
	Pose     *pose.Pose
	Time     float32
	Duration float32
	Elapsed  float32
}

// Alpha returns the blend weight of the target.
func (t *Target) Alpha() float32 {
	if t.Duration <= 0 {
		return 1
	}
	return t.Elapsed / t.Duration
}

// Controller plays one clip and fades toward queued targets.
type Controller struct {
	skeleton *pose.Skeleton
	pose     *pose.Pose
	current  *anim.Clip
	time     float32
	speed    float32
	targets  []Target
	log      *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for clip transitions.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithPlaybackSpeed sets the initial playback speed multiplier.
func WithPlaybackSpeed(speed float32) Option {
	return func(c *Controller) {
		c.speed = speed
	}
}

// NewController returns an idle controller. skeleton may be nil and set
// later with SetSkeleton; Update does nothing until it is.
func NewController(skeleton *pose.Skeleton, opts ...Option) *Controller {
	c := &Controller{
		speed: 1,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if skeleton != nil {
		c.SetSkeleton(skeleton)
	}
	return c
}

// SetSkeleton sets the skeleton and resets the output pose and every
// target pose to its rest pose.
func (c *Controller) SetSkeleton(skeleton *pose.Skeleton) {
	c.skeleton = skeleton
	c.pose = skeleton.RestPose().Clone()
	for i := range c.targets {
		c.targets[i].Pose = skeleton.RestPose().Clone()
	}
}

// Play switches to clip immediately, dropping all fade targets.
func (c *Controller) Play(clip *anim.Clip) {
	c.targets = c.targets[:0]
	c.current = clip
	c.resetPose(c.pose)
	c.time = 0
	if clip != nil {
		c.time = clip.StartTime()
		c.log.Debug("play", zap.String("clip", clip.Name))
	}
}

// FadeTo queues clip to fade in over duration seconds. With no current
// clip it behaves like Play. Fading to the current clip or to the most
// recently queued target does nothing.
func (c *Controller) FadeTo(clip *anim.Clip, duration float32) {
	if clip == nil {
		return
	}
	if c.current == nil {
		c.Play(clip)
		return
	}
	if n := len(c.targets); n > 0 && c.targets[n-1].Clip == clip {
		return
	}
	if c.current == clip {
		return
	}

	target := Target{
		Clip:     clip,
		Time:     clip.StartTime(),
		Duration: duration,
	}
	if c.skeleton != nil {
		target.Pose = c.skeleton.RestPose().Clone()
	}
	c.targets = append(c.targets, target)
	c.log.Debug("fade queued",
		zap.String("clip", clip.Name),
		zap.Float32("duration", duration),
		zap.Int("targets", len(c.targets)))
}

// Update advances playback by dt seconds scaled by the playback speed.
// Targets whose fade finished replace the current clip. The current clip
// is then sampled over the rest pose and each remaining target is blended
// on top in queue order.
func (c *Controller) Update(dt float32) {
	if c.current == nil || c.skeleton == nil {
		return
	}
	dt *= c.speed

	kept := c.targets[:0]
	for i := range c.targets {
		target := c.targets[i]
		target.Elapsed += dt
		if target.Elapsed < target.Duration {
			kept = append(kept, target)
			continue
		}
		c.current = target.Clip
		c.time = target.Time
		c.log.Debug("fade finished", zap.String("clip", target.Clip.Name))
	}
	c.targets = kept

	c.resetPose(c.pose)
	c.time = c.current.Sample(c.pose, c.time+dt)

	for i := range c.targets {
		target := &c.targets[i]
		target.Time = target.Clip.Sample(target.Pose, target.Time+dt)
		pose.Blend(c.pose, c.pose, target.Pose, target.Alpha(), -1)
	}
}

func (c *Controller) resetPose(p *pose.Pose) {
	if c.skeleton == nil || p == nil {
		return
	}
	p.CopyFrom(c.skeleton.RestPose())
}

// Pose returns the controller's output pose. It is overwritten by Update.
func (c *Controller) Pose() *pose.Pose { return c.pose }

// Skeleton returns the skeleton, or nil.
func (c *Controller) Skeleton() *pose.Skeleton { return c.skeleton }

// CurrentClip returns the playing clip, or nil when idle.
func (c *Controller) CurrentClip() *anim.Clip { return c.current }

// CurrentTime returns the playback time of the current clip.
func (c *Controller) CurrentTime() float32 { return c.time }

// State reports whether a clip is playing.
func (c *Controller) State() State {
	if c.current == nil {
		return Idle
	}
	return Playing
}

// Targets returns a copy of the pending fade targets in queue order.
func (c *Controller) Targets() []Target {
	return append([]Target(nil), c.targets...)
}

// PlaybackSpeed returns the time multiplier applied by Update.
func (c *Controller) PlaybackSpeed() float32 { return c.speed }

// SetPlaybackSpeed sets the time multiplier applied by Update.
func (c *Controller) SetPlaybackSpeed(speed float32) { c.speed = speed }
