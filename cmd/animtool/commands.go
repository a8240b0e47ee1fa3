package main

import (
	"flag"
	"fmt"
	"sort"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-anim/internal/config"
	"github.com/Faultbox/midgard-anim/internal/demo"
	"github.com/Faultbox/midgard-anim/internal/logger"
	"github.com/Faultbox/midgard-anim/internal/rig"
	"github.com/Faultbox/midgard-anim/pkg/anim"
	"github.com/Faultbox/midgard-anim/pkg/blend"
	"github.com/Faultbox/midgard-anim/pkg/ik"
	"github.com/Faultbox/midgard-anim/pkg/math"
	"github.com/Faultbox/midgard-anim/pkg/pose"
)

var spewConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
}

// loadClip returns the named demo clip, optimized when the config asks
// for fast tracks.
func loadClip(cfg *config.Config, s *pose.Skeleton, name string) (*anim.Clip, error) {
	clips := demo.NewClips(s)
	clip, ok := clips[name]
	if !ok {
		names := make([]string, 0, len(clips))
		for n := range clips {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, errors.Errorf("unknown clip %q (have %v)", name, names)
	}
	if cfg.Playback.UseFastTracks {
		clip = anim.OptimizeClip(clip)
	}
	return clip, nil
}

func cmdSample(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	clipName := fs.String("clip", demo.Walk, "Clip to sample")
	at := fs.Float64("t", 0, "Time in seconds")
	fs.Parse(args)

	s := demo.NewBiped()
	clip, err := loadClip(cfg, s, *clipName)
	if err != nil {
		return err
	}

	p := s.RestPose().Clone()
	t := clip.Sample(p, float32(*at))
	fmt.Printf("Clip:  %s (%.3fs, looping %v)\n", clip.Name, clip.Duration(), clip.Looping)
	fmt.Printf("Time:  %.3f\n\n", t)

	globals := p.Globals(nil)
	for i, g := range globals {
		fmt.Printf("  %-12s pos %s  rot %s\n", s.JointName(i), fmtVec(g.Position), fmtQuat(g.Rotation))
	}
	return nil
}

func cmdIK(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ik", flag.ExitOnError)
	dump := fs.Bool("dump", false, "Dump the solved chain")
	links := fs.Int("links", 4, "Number of links")
	fs.Parse(args)

	if fs.NArg() < 3 {
		return errors.New("usage: animtool ik [-dump] <x> <y> <z>")
	}
	var goal [3]float32
	for i := range goal {
		v, err := strconv.ParseFloat(fs.Arg(i), 32)
		if err != nil {
			return errors.Wrapf(err, "coordinate %d", i)
		}
		goal[i] = float32(v)
	}
	target := math.Vec3{X: goal[0], Y: goal[1], Z: goal[2]}

	solver, err := ik.NewSolver(cfg.IK.Solver, *links)
	if err != nil {
		return err
	}
	chain := solver.Base()
	chain.MaxIterations = cfg.IK.MaxIterations
	chain.Threshold = cfg.IK.Threshold
	for i := 1; i < chain.Len(); i++ {
		l := math.TransformIdentity()
		l.Position = math.Vec3{Y: 1}
		chain.SetLink(i, l)
	}

	ok := solver.Solve(target)
	logger.Debug("ik solved", zap.String("solver", cfg.IK.Solver), zap.Bool("reached", ok))

	fmt.Printf("Solver:   %s (%d links, %d iterations max)\n", cfg.IK.Solver, chain.Len(), chain.MaxIterations)
	fmt.Printf("Target:   %s\n", fmtVec(target))
	fmt.Printf("Reached:  %v (distance %.6f)\n\n", ok, chain.Effector().Distance(target))
	for i, pos := range chain.WorldPositions(nil) {
		fmt.Printf("  link %d  %s\n", i, fmtVec(pos))
	}

	if *dump {
		fmt.Println()
		spewConfig.Dump(chain.Links())
	}
	return nil
}

func cmdFade(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("fade", flag.ExitOnError)
	from := fs.String("from", demo.Walk, "Clip to start with")
	to := fs.String("to", demo.Idle, "Clip to fade to")
	ticks := fs.Int("ticks", 60, "Number of updates")
	fs.Parse(args)

	s := demo.NewBiped()
	a, err := loadClip(cfg, s, *from)
	if err != nil {
		return err
	}
	b, err := loadClip(cfg, s, *to)
	if err != nil {
		return err
	}

	c := blend.NewController(s,
		blend.WithLogger(logger.Named("blend")),
		blend.WithPlaybackSpeed(cfg.Playback.Speed),
	)
	c.Play(a)
	c.FadeTo(b, cfg.Playback.FadeDuration)

	pelvis := int(demo.JointID(s, demo.Pelvis))
	dt := cfg.TickDuration()
	for tick := 0; tick < *ticks; tick++ {
		c.Update(dt)
		weight := float32(0)
		if targets := c.Targets(); len(targets) > 0 {
			weight = targets[0].Alpha()
		}
		fmt.Printf("tick %3d  %-5s t=%.3f  fade %.2f  pelvis %s\n",
			tick, c.CurrentClip().Name, c.CurrentTime(), weight, fmtVec(c.Pose().Local(pelvis).Position))
	}
	return nil
}

func cmdRig(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("rig", flag.ExitOnError)
	ticks := fs.Int("ticks", 120, "Number of updates")
	slope := fs.Float64("slope", 0.2, "Ground rise per unit along Z")
	walkSpeed := fs.Float64("walk", 1.2, "Forward speed in units per second")
	fs.Parse(args)

	s := demo.NewBiped()
	walk, err := loadClip(cfg, s, demo.Walk)
	if err != nil {
		return err
	}

	legs := []rig.LegJoints{
		{Name: "left", Hip: demo.LeftHip, Knee: demo.LeftKnee, Ankle: demo.LeftAnkle, Toe: demo.LeftToe, Pin: demo.NewLeftPin()},
		{Name: "right", Hip: demo.RightHip, Knee: demo.RightKnee, Ankle: demo.RightAnkle, Toe: demo.RightToe, Pin: demo.NewRightPin()},
	}
	r, err := rig.New(s, rig.SlopeGround{SlopeZ: float32(*slope)}, legs, rig.Options{
		Logger:        logger.Named("rig"),
		Speed:         cfg.Playback.Speed,
		Solver:        cfg.IK.Solver,
		MaxIterations: cfg.IK.MaxIterations,
		Threshold:     cfg.IK.Threshold,
		AnkleOffset:   cfg.IK.AnkleOffset,
		Sink:          cfg.IK.Sink,
	})
	if err != nil {
		return err
	}
	r.Play(walk)

	dt := cfg.TickDuration()
	left, _ := r.Leg("left")
	right, _ := r.Leg("right")
	for tick := 0; tick < *ticks; tick++ {
		model := r.Model()
		model.Position = model.Position.Add(r.Forward().Scale(float32(*walkSpeed) * dt))
		r.SetModel(model)
		r.Update(dt)

		la := r.Model().Combine(r.Pose().Global(left.Ankle())).Position
		ra := r.Model().Combine(r.Pose().Global(right.Ankle())).Position
		fmt.Printf("tick %3d  body %s  left %s %-5v  right %s %-5v\n",
			tick, fmtVec(r.Model().Position),
			fmtVec(la), r.Converged("left"),
			fmtVec(ra), r.Converged("right"))
	}
	return nil
}

func cmdPalette(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("palette", flag.ExitOnError)
	clipName := fs.String("clip", demo.Walk, "Clip to sample")
	at := fs.Float64("t", 0, "Time in seconds")
	dq := fs.Bool("dq", false, "Print dual quaternions instead of matrices")
	fs.Parse(args)

	s := demo.NewBiped()
	clip, err := loadClip(cfg, s, *clipName)
	if err != nil {
		return err
	}
	p := s.RestPose().Clone()
	clip.Sample(p, float32(*at))

	if *dq {
		for i, d := range p.DualQuatPalette(s, nil) {
			fmt.Printf("%-12s real %s  dual %s\n", s.JointName(i), fmtQuat(d.Real), fmtQuat(d.Dual))
		}
		return nil
	}
	for i, m := range p.PreSkinnedPalette(s, nil) {
		fmt.Printf("%s\n%s\n", s.JointName(i), m.ToMgl().String())
	}
	return nil
}

func fmtVec(v math.Vec3) string {
	return fmt.Sprintf("(%7.3f %7.3f %7.3f)", v.X, v.Y, v.Z)
}

func fmtQuat(q math.Quat) string {
	return fmt.Sprintf("(%6.3f %6.3f %6.3f %6.3f)", q.X, q.Y, q.Z, q.W)
}
