package pose

import "github.com/Faultbox/midgard-anim/pkg/math"

// MatrixPalette writes the global matrix of every joint into out, growing
// it as needed, and returns it.
func (p *Pose) MatrixPalette(out []math.Mat4) []math.Mat4 {
	n := p.Len()
	if cap(out) < n {
		out = make([]math.Mat4, n)
	}
	out = out[:n]

	i := 0
	for ; i < n; i++ {
		parent := p.parents[i]
		if parent >= i {
			break
		}
		m := p.locals[i].ToMat4()
		if parent >= 0 {
			m = out[parent].Mul(m)
		}
		out[i] = m
	}
	for ; i < n; i++ {
		out[i] = p.Global(i).ToMat4()
	}
	return out
}

// PreSkinnedPalette returns MatrixPalette multiplied by the skeleton's
// inverse bind matrices, ready for linear blend skinning.
func (p *Pose) PreSkinnedPalette(s *Skeleton, out []math.Mat4) []math.Mat4 {
	out = p.MatrixPalette(out)
	inv := s.InverseBindPose()
	for i := range out {
		if i < len(inv) {
			out[i] = out[i].Mul(inv[i])
		}
	}
	return out
}

// DualQuatPalette returns, per joint, the dual quaternion taking a bind
// pose vertex to its posed position. Scale is ignored.
func (p *Pose) DualQuatPalette(s *Skeleton, out []math.DualQuat) []math.DualQuat {
	n := p.Len()
	if cap(out) < n {
		out = make([]math.DualQuat, n)
	}
	out = out[:n]

	bind := s.BindPose()
	for i := 0; i < n; i++ {
		current := math.DualQuatFromTransform(p.Global(i))
		if i >= bind.Len() {
			out[i] = current
			continue
		}
		invBind := math.DualQuatFromTransform(bind.Global(i).Inverse())
		out[i] = current.Mul(invBind).Normalize()
	}
	return out
}
