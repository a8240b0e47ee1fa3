// Package ik solves inverse kinematics on joint chains with cyclic
// coordinate descent (CCD) and forward and backward reaching (FABRIK).
package ik

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

// Solver defaults.
const (
	DefaultMaxIterations = 15
	DefaultThreshold     = 0.00001
)

// ErrUnknownSolver is returned by NewSolver for an unrecognised name.
var ErrUnknownSolver = errors.New("unknown IK solver")

// Solver moves the end of a chain toward a goal.
//
// Solve returns true when the effector ends within the threshold of goal.
// On false the chain keeps its last attempted configuration.
type Solver interface {
	Solve(goal math.Vec3) bool
	Base() *Chain
}

// NewSolver returns a "ccd" or "fabrik" solver over n identity links.
func NewSolver(kind string, n int) (Solver, error) {
	switch strings.ToLower(kind) {
	case "ccd":
		return NewCCD(n), nil
	case "fabrik", "":
		return NewFABRIK(n), nil
	default:
		return nil, errors.Wrapf(ErrUnknownSolver, "%q", kind)
	}
}

// Chain is a sequence of transforms where each link is local to the one
// before it. Link 0 is relative to whatever space the caller works in.
type Chain struct {
	links []math.Transform

	// MaxIterations bounds the outer solver loop.
	MaxIterations int
	// Threshold is the distance at which the effector counts as on goal.
	Threshold float32
}

func newChain(n int) Chain {
	c := Chain{
		MaxIterations: DefaultMaxIterations,
		Threshold:     DefaultThreshold,
	}
	c.Resize(n)
	return c
}

// Base returns c itself, so that solvers embedding a Chain satisfy Solver.
func (c *Chain) Base() *Chain { return c }

// Len returns the number of links.
func (c *Chain) Len() int { return len(c.links) }

// Resize sets the number of links. New links are identity transforms.
func (c *Chain) Resize(n int) {
	old := len(c.links)
	if n <= old {
		c.links = c.links[:n]
		return
	}
	for i := old; i < n; i++ {
		c.links = append(c.links, math.TransformIdentity())
	}
}

// Link returns the local transform of link i.
func (c *Chain) Link(i int) math.Transform { return c.links[i] }

// SetLink sets the local transform of link i.
func (c *Chain) SetLink(i int, t math.Transform) { c.links[i] = t }

// Links returns the link slice. It is shared with the chain.
func (c *Chain) Links() []math.Transform { return c.links }

// Global returns link i composed with every link before it.
func (c *Chain) Global(i int) math.Transform {
	result := c.links[i]
	for j := i - 1; j >= 0; j-- {
		result = c.links[j].Combine(result)
	}
	return result
}

// WorldPositions writes the position of every link into out, growing it as
// needed, and returns it.
func (c *Chain) WorldPositions(out []math.Vec3) []math.Vec3 {
	out = out[:0]
	var acc math.Transform
	for i, link := range c.links {
		if i == 0 {
			acc = link
		} else {
			acc = acc.Combine(link)
		}
		out = append(out, acc.Position)
	}
	return out
}

// Effector returns the position of the last link.
func (c *Chain) Effector() math.Vec3 {
	return c.Global(len(c.links) - 1).Position
}

// reached reports whether p lies strictly within Threshold of goal.
func (c *Chain) reached(p, goal math.Vec3) bool {
	return goal.Sub(p).LengthSq() < c.Threshold*c.Threshold
}

// Length returns the sum of the distances between consecutive links.
func (c *Chain) Length() float32 {
	var total float32
	positions := c.WorldPositions(nil)
	for i := 1; i < len(positions); i++ {
		total += positions[i].Distance(positions[i-1])
	}
	return total
}
