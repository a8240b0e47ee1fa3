package ik

import "github.com/Faultbox/midgard-anim/pkg/math"

// FABRIK is a forward and backward reaching solver. It moves joint
// positions in world space while keeping segment lengths fixed, then
// derives local rotations from the moved positions.
type FABRIK struct {
	Chain

	world   []math.Vec3
	lengths []float32
}

// NewFABRIK returns a FABRIK solver over n identity links.
func NewFABRIK(n int) *FABRIK {
	return &FABRIK{Chain: newChain(n)}
}

// Solve moves the chain toward goal. Segment lengths are preserved whether
// or not the goal is reached.
func (s *FABRIK) Solve(goal math.Vec3) bool {
	n := len(s.links)
	if n == 0 {
		return false
	}
	last := n - 1
	if s.reached(s.Effector(), goal) {
		return true
	}

	s.chainToWorld()
	base := s.world[0]
	for iter := 0; iter < s.MaxIterations; iter++ {
		s.backward(goal)
		s.forward(base)
		s.worldToChain()
		s.chainToWorld()
		if s.reached(s.world[last], goal) {
			s.worldToChain()
			return true
		}
	}
	s.worldToChain()
	return false
}

// SegmentLengths returns the lengths cached by the last solve; entry 0 is
// always zero.
func (s *FABRIK) SegmentLengths() []float32 { return s.lengths }

// chainToWorld refreshes world positions and segment lengths from the
// local links.
func (s *FABRIK) chainToWorld() {
	s.world = s.WorldPositions(s.world)
	n := len(s.world)
	if cap(s.lengths) < n {
		s.lengths = make([]float32, n)
	}
	s.lengths = s.lengths[:n]
	s.lengths[0] = 0
	for i := 1; i < n; i++ {
		s.lengths[i] = s.world[i].Distance(s.world[i-1])
	}
}

// backward pins the effector to goal and pulls each joint toward its
// successor.
func (s *FABRIK) backward(goal math.Vec3) {
	last := len(s.world) - 1
	s.world[last] = goal
	for i := last - 1; i >= 0; i-- {
		dir := s.world[i].Sub(s.world[i+1]).Normalize()
		s.world[i] = s.world[i+1].Add(dir.Scale(s.lengths[i+1]))
	}
}

// forward pins the root back to base and pushes each joint away from its
// predecessor.
func (s *FABRIK) forward(base math.Vec3) {
	s.world[0] = base
	for i := 1; i < len(s.world); i++ {
		dir := s.world[i].Sub(s.world[i-1]).Normalize()
		s.world[i] = s.world[i-1].Add(dir.Scale(s.lengths[i]))
	}
}

// worldToChain rotates each joint so that its child lies toward the
// solved world position, working from the root outward.
func (s *FABRIK) worldToChain() {
	for i := 0; i < len(s.links)-1; i++ {
		current := s.Global(i)
		next := s.Global(i + 1)

		inv := current.Rotation.Inverse()
		toNext := inv.Rotate(next.Position.Sub(current.Position))
		toDesired := inv.Rotate(s.world[i+1].Sub(current.Position))
		s.links[i].Rotation = s.links[i].Rotation.Mul(math.QuatFromTo(toNext, toDesired)).Normalize()
	}
}
