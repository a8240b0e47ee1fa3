// Package pose holds skeletal poses: per-joint local transforms arranged in
// a tree by parent index, and the operations that compose, blend and export
// them.
package pose

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

// Errors returned when building poses and skeletons.
var (
	ErrInvalidParent = errors.New("parent index out of range")
	ErrCycle         = errors.New("joint hierarchy contains a cycle")
	ErrSizeMismatch  = errors.New("size mismatch")
	ErrUnknownJoint  = errors.New("unknown joint")
)

// Pose is a set of local joint transforms plus the parent index of each
// joint (-1 for a root). Parents always form a forest.
type Pose struct {
	locals  []math.Transform
	parents []int
}

// New returns a pose of n root joints at the identity transform.
func New(n int) *Pose {
	p := &Pose{
		locals:  make([]math.Transform, n),
		parents: make([]int, n),
	}
	for i := range p.locals {
		p.locals[i] = math.TransformIdentity()
		p.parents[i] = -1
	}
	return p
}

// FromParents builds a pose from parent indices and local transforms. A nil
// locals slice yields identity transforms.
func FromParents(parents []int, locals []math.Transform) (*Pose, error) {
	if locals != nil && len(locals) != len(parents) {
		return nil, errors.Wrapf(ErrSizeMismatch, "%d parents, %d transforms", len(parents), len(locals))
	}

	p := New(len(parents))
	copy(p.parents, parents)
	if locals != nil {
		copy(p.locals, locals)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that every parent is -1 or in range and that no joint is
// its own ancestor.
func (p *Pose) Validate() error {
	n := len(p.parents)
	if len(p.locals) != n {
		return errors.Wrapf(ErrSizeMismatch, "%d parents, %d transforms", n, len(p.locals))
	}
	for i, parent := range p.parents {
		if parent < -1 || parent >= n {
			return errors.Wrapf(ErrInvalidParent, "joint %d has parent %d (pose size %d)", i, parent, n)
		}
	}
	for i := range p.parents {
		if p.hasCycleFrom(i) {
			return errors.Wrapf(ErrCycle, "joint %d", i)
		}
	}
	return nil
}

// hasCycleFrom walks up from joint i; a walk longer than the pose means a
// loop.
func (p *Pose) hasCycleFrom(i int) bool {
	steps := 0
	for j := p.parents[i]; j >= 0; j = p.parents[j] {
		if j == i || steps > len(p.parents) {
			return true
		}
		steps++
	}
	return false
}

// Len returns the number of joints.
func (p *Pose) Len() int { return len(p.locals) }

// Parent returns the parent index of joint i.
func (p *Pose) Parent(i int) int { return p.parents[i] }

// Parents returns the parent index slice. It must not be modified.
func (p *Pose) Parents() []int { return p.parents }

// SetParent re-parents joint i. The pose is left unchanged on error.
func (p *Pose) SetParent(i, parent int) error {
	if parent < -1 || parent >= len(p.parents) {
		return errors.Wrapf(ErrInvalidParent, "joint %d parent %d", i, parent)
	}
	old := p.parents[i]
	p.parents[i] = parent
	if p.hasCycleFrom(i) {
		p.parents[i] = old
		return errors.Wrapf(ErrCycle, "joint %d parent %d", i, parent)
	}
	return nil
}

// Local returns the local transform of joint i.
func (p *Pose) Local(i int) math.Transform { return p.locals[i] }

// SetLocal sets the local transform of joint i.
func (p *Pose) SetLocal(i int, t math.Transform) { p.locals[i] = t }

// Global returns the model-space transform of joint i by folding its
// ancestors' locals from the root down.
func (p *Pose) Global(i int) math.Transform {
	result := p.locals[i]
	for parent := p.parents[i]; parent >= 0; parent = p.parents[parent] {
		result = p.locals[parent].Combine(result)
	}
	return result
}

// Globals writes the global transform of every joint into out, growing it
// as needed, and returns it. Joints are composed in one pass while each
// parent precedes its child; the rest fall back to Global.
func (p *Pose) Globals(out []math.Transform) []math.Transform {
	n := len(p.locals)
	if cap(out) < n {
		out = make([]math.Transform, n)
	}
	out = out[:n]

	i := 0
	for ; i < n; i++ {
		parent := p.parents[i]
		if parent >= i {
			break
		}
		if parent < 0 {
			out[i] = p.locals[i]
		} else {
			out[i] = out[parent].Combine(p.locals[i])
		}
	}
	for ; i < n; i++ {
		out[i] = p.Global(i)
	}
	return out
}

// IsInHierarchy reports whether joint is root or one of its descendants.
func (p *Pose) IsInHierarchy(root, joint int) bool {
	if joint == root {
		return true
	}
	steps := 0
	for parent := p.parents[joint]; parent >= 0 && steps <= len(p.parents); parent = p.parents[parent] {
		if parent == root {
			return true
		}
		steps++
	}
	return false
}

// Clone returns a deep copy.
func (p *Pose) Clone() *Pose {
	c := &Pose{}
	c.CopyFrom(p)
	return c
}

// CopyFrom overwrites p with src, reusing p's storage when possible.
func (p *Pose) CopyFrom(src *Pose) {
	if p == src {
		return
	}
	p.locals = append(p.locals[:0], src.locals...)
	p.parents = append(p.parents[:0], src.parents...)
}

// Equal reports whether both poses share a hierarchy and their locals match
// within tol.
func (p *Pose) Equal(other *Pose, tol float32) bool {
	if len(p.locals) != len(other.locals) {
		return false
	}
	for i := range p.locals {
		if p.parents[i] != other.parents[i] || !p.locals[i].ApproxEqual(other.locals[i], tol) {
			return false
		}
	}
	return true
}
