package ik

import "github.com/Faultbox/midgard-anim/pkg/math"

// minGoalDistanceSq is the squared joint-to-goal distance below which a
// joint is left unrotated.
const minGoalDistanceSq = 0.00001

// CCD is a cyclic coordinate descent solver. Each pass rotates joints from
// the one before the effector back to the root so the effector points at
// the goal.
type CCD struct {
	Chain
}

// NewCCD returns a CCD solver over n identity links.
func NewCCD(n int) *CCD {
	return &CCD{Chain: newChain(n)}
}

// Solve rotates the chain toward goal. The goal is tested after every
// joint update and the solver returns as soon as it is met.
func (s *CCD) Solve(goal math.Vec3) bool {
	n := len(s.links)
	if n == 0 {
		return false
	}
	last := n - 1
	if s.reached(s.Effector(), goal) {
		return true
	}

	for iter := 0; iter < s.MaxIterations; iter++ {
		for j := n - 2; j >= 0; j-- {
			effector := s.Global(last).Position
			joint := s.Global(j)

			toEffector := effector.Sub(joint.Position)
			toGoal := goal.Sub(joint.Position)
			rot := math.QuatIdentity()
			if toGoal.LengthSq() > minGoalDistanceSq {
				rot = math.QuatFromTo(toEffector, toGoal)
			}

			// World-space rotation moved into the joint's local frame.
			inv := joint.Rotation.Inverse()
			local := inv.Mul(rot).Mul(joint.Rotation)
			s.links[j].Rotation = s.links[j].Rotation.Mul(local).Normalize()

			if s.reached(s.Global(last).Position, goal) {
				return true
			}
		}
	}
	return false
}
