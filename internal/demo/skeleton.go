// Package demo builds a procedural biped and a few clips for it, so the
// tools can run without an asset importer.
package demo

import (
	"github.com/Faultbox/midgard-anim/pkg/math"
	"github.com/Faultbox/midgard-anim/pkg/pose"
)

// Joint names of the biped.
const (
	Root       = "root"
	Pelvis     = "pelvis"
	Spine      = "spine"
	Head       = "head"
	LeftHip    = "left_hip"
	LeftKnee   = "left_knee"
	LeftAnkle  = "left_ankle"
	LeftToe    = "left_toe"
	RightHip   = "right_hip"
	RightKnee  = "right_knee"
	RightAnkle = "right_ankle"
	RightToe   = "right_toe"
)

// Biped proportions, in metres.
const (
	PelvisHeight = 1.05
	HipWidth     = 0.1
	ThighLength  = 0.45
	ShinLength   = 0.42
	AnkleHeight  = 0.13
	FootLength   = 0.15
)

type joint struct {
	name   string
	parent string
	pos    math.Vec3
}

var biped = []joint{
	{Root, "", math.Vec3{}},
	{Pelvis, Root, math.Vec3{Y: PelvisHeight}},
	{Spine, Pelvis, math.Vec3{Y: 0.3}},
	{Head, Spine, math.Vec3{Y: 0.45}},
	{LeftHip, Pelvis, math.Vec3{X: HipWidth, Y: -0.05}},
	// Knees carry a small forward offset so a straight leg is never
	// exactly collinear.
	{LeftKnee, LeftHip, math.Vec3{Y: -ThighLength, Z: 0.02}},
	{LeftAnkle, LeftKnee, math.Vec3{Y: -ShinLength, Z: -0.02}},
	{LeftToe, LeftAnkle, math.Vec3{Y: -AnkleHeight + 0.03, Z: FootLength}},
	{RightHip, Pelvis, math.Vec3{X: -HipWidth, Y: -0.05}},
	{RightKnee, RightHip, math.Vec3{Y: -ThighLength, Z: 0.02}},
	{RightAnkle, RightKnee, math.Vec3{Y: -ShinLength, Z: -0.02}},
	{RightToe, RightAnkle, math.Vec3{Y: -AnkleHeight + 0.03, Z: FootLength}},
}

// NewBiped returns the biped skeleton. Rest and bind pose are the same.
func NewBiped() *pose.Skeleton {
	index := make(map[string]int, len(biped))
	names := make([]string, len(biped))
	parents := make([]int, len(biped))
	locals := make([]math.Transform, len(biped))
	for i, j := range biped {
		index[j.name] = i
		names[i] = j.name
		parents[i] = -1
		if j.parent != "" {
			parents[i] = index[j.parent]
		}
		locals[i] = math.TransformIdentity()
		locals[i].Position = j.pos
	}

	p, err := pose.FromParents(parents, locals)
	if err != nil {
		panic("demo: invalid biped hierarchy: " + err.Error())
	}
	s, err := pose.NewSkeleton(p, p, names)
	if err != nil {
		panic("demo: invalid biped skeleton: " + err.Error())
	}
	return s
}

// JointID returns the index of name as a clip joint id. The biped always
// has every named joint.
func JointID(s *pose.Skeleton, name string) uint32 {
	i, err := s.JointIndex(name)
	if err != nil {
		panic("demo: " + err.Error())
	}
	return uint32(i)
}
