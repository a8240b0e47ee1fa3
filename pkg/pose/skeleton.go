package pose

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

// BoneMap maps old joint indices to new ones after Skeleton.Rearrange.
type BoneMap map[int]int

// Skeleton groups the rest pose, the bind pose, joint names and the inverse
// bind matrices derived from the bind pose.
type Skeleton struct {
	rest    *Pose
	bind    *Pose
	names   []string
	invBind []math.Mat4
}

// NewSkeleton copies rest and bind and computes the inverse bind matrices.
// All three inputs must describe the same number of joints.
func NewSkeleton(rest, bind *Pose, names []string) (*Skeleton, error) {
	if rest.Len() != bind.Len() || rest.Len() != len(names) {
		return nil, errors.Wrapf(ErrSizeMismatch, "rest %d, bind %d, names %d",
			rest.Len(), bind.Len(), len(names))
	}
	for i := range rest.parents {
		if rest.parents[i] != bind.parents[i] {
			return nil, errors.Wrapf(ErrSizeMismatch, "joint %d: rest parent %d, bind parent %d",
				i, rest.parents[i], bind.parents[i])
		}
	}

	s := &Skeleton{
		rest:  rest.Clone(),
		bind:  bind.Clone(),
		names: append([]string(nil), names...),
	}
	s.updateInverseBindPose()
	return s, nil
}

func (s *Skeleton) updateInverseBindPose() {
	n := s.bind.Len()
	if cap(s.invBind) < n {
		s.invBind = make([]math.Mat4, n)
	}
	s.invBind = s.invBind[:n]
	for i := 0; i < n; i++ {
		s.invBind[i] = s.bind.Global(i).ToMat4().Inverse()
	}
}

// Len returns the joint count.
func (s *Skeleton) Len() int { return len(s.names) }

// RestPose returns the rest pose. Callers must not modify it; clone it or
// CopyFrom it into their own pose.
func (s *Skeleton) RestPose() *Pose { return s.rest }

// BindPose returns the bind pose. Callers must not modify it.
func (s *Skeleton) BindPose() *Pose { return s.bind }

// InverseBindPose returns one inverse bind matrix per joint.
func (s *Skeleton) InverseBindPose() []math.Mat4 { return s.invBind }

// JointNames returns the joint names in index order.
func (s *Skeleton) JointNames() []string { return s.names }

// JointName returns the name of joint i.
func (s *Skeleton) JointName(i int) string { return s.names[i] }

// JointIndex returns the index of the joint called name.
func (s *Skeleton) JointIndex(name string) (int, error) {
	for i, n := range s.names {
		if n == name {
			return i, nil
		}
	}
	return -1, errors.Wrapf(ErrUnknownJoint, "%q", name)
}

// Rearrange reorders joints so that every parent precedes its children,
// which lets Globals and MatrixPalette run in a single pass. Roots keep
// their relative order and children follow breadth-first. The returned map
// takes old indices to new ones; clips recorded against the old order must
// be remapped with it.
func (s *Skeleton) Rearrange() BoneMap {
	n := s.Len()
	children := make([][]int, n)
	order := make([]int, 0, n)
	for i, parent := range s.rest.parents {
		if parent < 0 {
			order = append(order, i)
		} else {
			children[parent] = append(children[parent], i)
		}
	}
	for head := 0; head < len(order); head++ {
		order = append(order, children[order[head]]...)
	}

	m := make(BoneMap, n+1)
	m[-1] = -1
	for newIdx, oldIdx := range order {
		m[oldIdx] = newIdx
	}

	s.rest = s.rest.reorder(order, m)
	s.bind = s.bind.reorder(order, m)
	names := make([]string, n)
	for newIdx, oldIdx := range order {
		names[newIdx] = s.names[oldIdx]
	}
	s.names = names
	s.updateInverseBindPose()
	return m
}

// reorder returns a copy of p with joint order[k] moved to index k.
func (p *Pose) reorder(order []int, m BoneMap) *Pose {
	out := New(len(order))
	for newIdx, oldIdx := range order {
		out.locals[newIdx] = p.locals[oldIdx]
		out.parents[newIdx] = m[p.parents[oldIdx]]
	}
	return out
}
