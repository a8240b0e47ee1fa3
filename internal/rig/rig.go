// Package rig drives a skeleton each tick: clip playback through a
// cross-fade controller, an optional additive layer, foot placement on the
// ground with IK legs, and the skinning palette.
package rig

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-anim/pkg/anim"
	"github.com/Faultbox/midgard-anim/pkg/blend"
	"github.com/Faultbox/midgard-anim/pkg/ik"
	"github.com/Faultbox/midgard-anim/pkg/math"
	"github.com/Faultbox/midgard-anim/pkg/pose"
)

// Ground probe distances. The ankle probe starts AnkleProbeHeight above
// the animated ankle and counts as touching within AnkleProbeReach; the toe
// probe likewise with the toe constants.
const (
	AnkleProbeHeight = 2.0
	AnkleProbeReach  = 2.1
	ToeProbeHeight   = 1.0
	ToeProbeReach    = 1.1
)

// Defaults for Options.
const (
	DefaultSink       = 0.15
	DefaultToeLength  = 0.3
	DefaultHeightRate = 10.0
)

// LegJoints names the joints of one leg and its ground contact curve.
type LegJoints struct {
	Name  string
	Hip   string
	Knee  string
	Ankle string
	Toe   string
	Pin   *anim.ScalarTrack
}

// Options configures a Rig.
type Options struct {
	Logger *zap.Logger
	// Speed is the playback speed of the controller.
	Speed float32

	// IK settings shared by every leg.
	Solver        string
	MaxIterations int
	Threshold     float32
	AnkleOffset   float32

	// Sink lowers the body below the lowest foot contact.
	Sink float32
	// ToeLength is how far ahead of the ankle the toe probe is cast.
	ToeLength float32
	// HeightRate is how fast the body height follows the ground, per
	// second.
	HeightRate float32
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Speed == 0 {
		o.Speed = 1
	}
	if o.Sink == 0 {
		o.Sink = DefaultSink
	}
	if o.ToeLength == 0 {
		o.ToeLength = DefaultToeLength
	}
	if o.HeightRate == 0 {
		o.HeightRate = DefaultHeightRate
	}
}

type leg struct {
	name   string
	ik     *ik.Leg
	motion float32
	solved bool
}

// Rig animates one character.
type Rig struct {
	skeleton   *pose.Skeleton
	controller *blend.Controller
	ground     Ground
	legs       []*leg
	model      math.Transform
	opts       Options
	log        *zap.Logger

	additive     *anim.Clip
	additiveBase *pose.Pose
	additivePose *pose.Pose
	additiveTime float32

	palette []math.Mat4
}

// New returns a rig for skeleton with the given legs. ground may be nil,
// in which case the legs are left as animated.
func New(s *pose.Skeleton, ground Ground, legs []LegJoints, opts Options) (*Rig, error) {
	if s == nil {
		return nil, errors.New("rig: nil skeleton")
	}
	opts.setDefaults()
	r := &Rig{
		skeleton: s,
		ground:   ground,
		model:    math.TransformIdentity(),
		opts:     opts,
		log:      opts.Logger,
	}
	r.controller = blend.NewController(s,
		blend.WithLogger(opts.Logger.Named("blend")),
		blend.WithPlaybackSpeed(opts.Speed),
	)

	for _, lj := range legs {
		l, err := ik.NewLeg(s, lj.Hip, lj.Knee, lj.Ankle, lj.Toe, ik.LegOptions{
			Solver:        opts.Solver,
			MaxIterations: opts.MaxIterations,
			Threshold:     opts.Threshold,
			AnkleOffset:   opts.AnkleOffset,
			PinTrack:      lj.Pin,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "leg %q", lj.Name)
		}
		r.legs = append(r.legs, &leg{name: lj.Name, ik: l})
	}
	r.palette = r.controller.Pose().PreSkinnedPalette(s, r.palette)
	return r, nil
}

// Controller returns the cross-fade controller that feeds the rig.
func (r *Rig) Controller() *blend.Controller { return r.controller }

// Play starts clip immediately.
func (r *Rig) Play(clip *anim.Clip) { r.controller.Play(clip) }

// FadeTo cross-fades to clip over duration seconds.
func (r *Rig) FadeTo(clip *anim.Clip, duration float32) { r.controller.FadeTo(clip, duration) }

// SetAdditive layers clip on top of the played animation. The clip is
// applied relative to its first frame; nil removes the layer.
func (r *Rig) SetAdditive(clip *anim.Clip) {
	r.additive = clip
	r.additiveTime = 0
	if clip == nil {
		r.additiveBase, r.additivePose = nil, nil
		return
	}
	r.additiveBase = anim.MakeAdditivePose(r.skeleton, clip)
	r.additivePose = r.skeleton.RestPose().Clone()
}

// SetAdditiveTime sets the time at which the additive clip is sampled.
func (r *Rig) SetAdditiveTime(t float32) { r.additiveTime = t }

// Model returns the character's world transform.
func (r *Rig) Model() math.Transform { return r.model }

// SetModel places the character in the world.
func (r *Rig) SetModel(t math.Transform) { r.model = t }

// Forward returns the direction the character faces, +Z in model space.
func (r *Rig) Forward() math.Vec3 {
	return r.model.Rotation.Rotate(math.Vec3{Z: 1})
}

// Pose returns the final pose of the last Update.
func (r *Rig) Pose() *pose.Pose { return r.controller.Pose() }

// Palette returns the pre-skinned matrices of the last Update.
func (r *Rig) Palette() []math.Mat4 { return r.palette }

// Skeleton returns the rig's skeleton.
func (r *Rig) Skeleton() *pose.Skeleton { return r.skeleton }

// Leg returns the IK leg called name.
func (r *Rig) Leg(name string) (*ik.Leg, bool) {
	for _, l := range r.legs {
		if l.name == name {
			return l.ik, true
		}
	}
	return nil, false
}

// Converged reports whether the named leg reached its target in the last
// Update.
func (r *Rig) Converged(name string) bool {
	for _, l := range r.legs {
		if l.name == name {
			return l.solved
		}
	}
	return false
}

// Update advances the rig by dt seconds.
func (r *Rig) Update(dt float32) {
	r.controller.Update(dt)
	p := r.controller.Pose()

	if r.additive != nil {
		r.additivePose.CopyFrom(r.skeleton.RestPose())
		r.additive.Sample(r.additivePose, r.additiveTime)
		pose.Add(p, p, r.additivePose, r.additiveBase, -1)
	}

	clip := r.controller.CurrentClip()
	if clip != nil && r.ground != nil && len(r.legs) > 0 {
		r.placeFeet(dt*r.controller.PlaybackSpeed(), clip.NormalizedTime(r.controller.CurrentTime()))
	}

	r.palette = p.PreSkinnedPalette(r.skeleton, r.palette)
}

type footTarget struct {
	current    math.Vec3
	predictive math.Vec3
}

func (r *Rig) placeFeet(dt, phase float32) {
	p := r.controller.Pose()
	targets := make([]footTarget, len(r.legs))

	// The body settles Sink below the ground under it, or below the lowest
	// foot contact when that is lower.
	groundReference := r.model.Position.Y
	if h, ok := r.ground.HeightAt(r.model.Position.X, r.model.Position.Z); ok {
		groundReference = h - r.opts.Sink
	}
	for i, l := range r.legs {
		l.motion = l.ik.PinValue(phase)

		ankle := r.model.Combine(p.Global(l.ik.Ankle())).Position
		targets[i] = footTarget{current: ankle, predictive: ankle}

		origin := ankle.Add(math.Vec3{Y: AnkleProbeHeight})
		hit, ok := r.probe(origin)
		if !ok {
			continue
		}
		if origin.Y-hit.Y < AnkleProbeReach {
			targets[i].current = hit
			groundReference = min(groundReference, hit.Y-r.opts.Sink)
		}
		targets[i].predictive = hit
	}

	alpha := min(1, dt*r.opts.HeightRate)
	r.model.Position.Y = math.Lerp(r.model.Position.Y, groundReference, alpha)

	for i, l := range r.legs {
		target := targets[i].current.Lerp(targets[i].predictive, l.motion)
		l.solved = l.ik.Solve(r.model, p, target)
		if !l.solved {
			r.log.Debug("leg IK did not converge",
				zap.String("leg", l.name),
				zap.Float32("phase", phase),
			)
		}
		pose.Blend(p, p, l.ik.Pose(), 1, l.ik.Hip())
	}

	for _, l := range r.legs {
		r.alignToe(p, l)
	}
}

// probe casts a ray straight down from origin.
func (r *Rig) probe(origin math.Vec3) (math.Vec3, bool) {
	h, ok := r.ground.HeightAt(origin.X, origin.Z)
	if !ok || h > origin.Y {
		return math.Vec3{}, false
	}
	return math.Vec3{X: origin.X, Y: h, Z: origin.Z}, true
}

// alignToe turns the ankle so the toe follows the ground ahead of the
// foot.
func (r *Rig) alignToe(p *pose.Pose, l *leg) {
	ankle := r.model.Combine(p.Global(l.ik.Ankle()))
	toe := r.model.Combine(p.Global(l.ik.Toe())).Position

	target, predictive := toe, toe
	ahead := r.Forward().Scale(r.opts.ToeLength).Add(math.Vec3{Y: ToeProbeHeight})
	origin := math.Vec3{X: ankle.Position.X, Y: toe.Y, Z: ankle.Position.Z}.Add(ahead)
	if hit, ok := r.probe(origin); ok {
		if origin.Y-hit.Y < ToeProbeReach {
			target = hit
		}
		predictive = hit
	}
	target = target.Lerp(predictive, l.motion)

	toCurrent := toe.Sub(ankle.Position)
	toTarget := target.Sub(ankle.Position)
	if toCurrent.Dot(toTarget) <= 1e-5 {
		return
	}

	rot := math.QuatFromTo(toCurrent, toTarget)
	local := p.Local(l.ik.Ankle())
	delta := ankle.Rotation.Inverse().Mul(rot).Mul(ankle.Rotation)
	local.Rotation = local.Rotation.Mul(delta).Normalize()
	p.SetLocal(l.ik.Ankle(), local)
}
