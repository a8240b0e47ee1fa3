package ik

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-anim/pkg/anim"
	"github.com/Faultbox/midgard-anim/pkg/math"
	"github.com/Faultbox/midgard-anim/pkg/pose"
)

// DefaultAnkleOffset is the height of the ankle above the sole.
const DefaultAnkleOffset = 0.2

// LegOptions configures a Leg. Zero fields take the package defaults.
type LegOptions struct {
	// Solver is "fabrik" (default) or "ccd".
	Solver        string
	MaxIterations int
	Threshold     float32
	AnkleOffset   float32
	// PinTrack maps normalized clip time to ground contact, 0 free and 1
	// planted.
	PinTrack *anim.ScalarTrack
}

// Leg solves a hip, knee and ankle chain for one leg of a skeleton and
// keeps the solved pose.
type Leg struct {
	hip, knee, ankle, toe int

	solver      Solver
	pose        *pose.Pose
	pin         *anim.ScalarTrack
	ankleOffset float32
}

// NewLeg resolves the four joints by name and builds a three link solver.
func NewLeg(s *pose.Skeleton, hip, knee, ankle, toe string, opts LegOptions) (*Leg, error) {
	l := &Leg{ankleOffset: opts.AnkleOffset, pin: opts.PinTrack}
	if l.ankleOffset == 0 {
		l.ankleOffset = DefaultAnkleOffset
	}

	var err error
	names := []string{hip, knee, ankle, toe}
	idx := []*int{&l.hip, &l.knee, &l.ankle, &l.toe}
	for i, name := range names {
		if *idx[i], err = s.JointIndex(name); err != nil {
			return nil, errors.Wrap(err, "leg")
		}
	}

	if l.solver, err = NewSolver(opts.Solver, 3); err != nil {
		return nil, err
	}
	c := l.solver.Base()
	if opts.MaxIterations > 0 {
		c.MaxIterations = opts.MaxIterations
	}
	if opts.Threshold > 0 {
		c.Threshold = opts.Threshold
	}
	l.pose = s.RestPose().Clone()
	return l, nil
}

// Solve positions the leg so the ankle lands ankleOffset above
// ankleTarget. model places the whole character in the world; the result
// is read back with Pose.
func (l *Leg) Solve(model math.Transform, p *pose.Pose, ankleTarget math.Vec3) bool {
	c := l.solver.Base()
	c.SetLink(0, model.Combine(p.Global(l.hip)))
	c.SetLink(1, p.Local(l.knee))
	c.SetLink(2, p.Local(l.ankle))

	l.pose.CopyFrom(p)
	goal := ankleTarget.Add(math.Vec3{Y: l.ankleOffset})
	ok := l.solver.Solve(goal)

	root := model
	if parent := p.Parent(l.hip); parent >= 0 {
		root = model.Combine(p.Global(parent))
	}
	l.pose.SetLocal(l.hip, root.Inverse().Combine(c.Link(0)))
	l.pose.SetLocal(l.knee, c.Link(1))
	l.pose.SetLocal(l.ankle, c.Link(2))
	return ok
}

// Pose returns the pose written by the last Solve.
func (l *Leg) Pose() *pose.Pose { return l.pose }

// PinValue samples the pin track at normalized time alpha. A leg without a
// pin track is never pinned.
func (l *Leg) PinValue(alpha float32) float32 {
	if l.pin == nil {
		return 0
	}
	return l.pin.Sample(alpha, true)
}

// SetPinTrack replaces the pin track. nil clears it.
func (l *Leg) SetPinTrack(t *anim.ScalarTrack) { l.pin = t }

// AnkleOffset returns the sole to ankle height.
func (l *Leg) AnkleOffset() float32 { return l.ankleOffset }

// Solver returns the chain solver used by the leg.
func (l *Leg) Solver() Solver { return l.solver }

// ChainPositions returns the world positions of hip, knee and ankle from
// the last Solve.
func (l *Leg) ChainPositions(out []math.Vec3) []math.Vec3 {
	return l.solver.Base().WorldPositions(out)
}

func (l *Leg) Hip() int { return l.hip }
func (l *Leg) Knee() int { return l.knee }
func (l *Leg) Ankle() int { return l.ankle }
func (l *Leg) Toe() int { return l.toe }
