package pose

import "github.com/Faultbox/midgard-anim/pkg/math"

// Blend writes the mix of start and end at alpha into out. With root >= 0
// only joints in root's subtree (per out's hierarchy) are written; other
// joints keep their current value. out may alias start or end.
func Blend(out, start, end *Pose, alpha float32, root int) {
	n := minLen(out, start, end)
	for i := 0; i < n; i++ {
		if root >= 0 && !out.IsInHierarchy(root, i) {
			continue
		}
		out.locals[i] = start.locals[i].Mix(end.locals[i], alpha)
	}
}

// Add layers the difference between add and base on top of in, writing the
// result into out for joints in root's subtree (all joints if root < 0).
// Position and scale add the component difference; rotation applies
// base^-1 * add after in's rotation.
func Add(out, in, add, base *Pose, root int) {
	n := minLen(out, in, add, base)
	for i := 0; i < n; i++ {
		if root >= 0 && !out.IsInHierarchy(root, i) {
			continue
		}
		out.locals[i] = addTransform(in.locals[i], add.locals[i], base.locals[i])
	}
}

func addTransform(in, add, base math.Transform) math.Transform {
	delta := base.Rotation.Inverse().Mul(add.Rotation)
	return math.Transform{
		Position: in.Position.Add(add.Position.Sub(base.Position)),
		Rotation: in.Rotation.Mul(delta).Normalize(),
		Scale:    in.Scale.Add(add.Scale.Sub(base.Scale)),
	}
}

func minLen(poses ...*Pose) int {
	n := poses[0].Len()
	for _, p := range poses[1:] {
		if p.Len() < n {
			n = p.Len()
		}
	}
	return n
}
