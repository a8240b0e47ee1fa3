// animtool is a CLI utility for sampling, blending and solving IK on the
// procedural demo character.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-anim/internal/config"
	"github.com/Faultbox/midgard-anim/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	logger.Debug("animtool starting",
		zap.String("command", command),
		zap.String("solver", cfg.IK.Solver),
		zap.Int64("seed", cfg.Random.Seed),
	)

	args = args[1:]
	switch command {
	case "sample":
		err = cmdSample(cfg, args)
	case "bench":
		err = cmdBench(cfg, args)
	case "ik":
		err = cmdIK(cfg, args)
	case "fade":
		err = cmdFade(cfg, args)
	case "rig":
		err = cmdRig(cfg, args)
	case "palette":
		err = cmdPalette(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`animtool - keyframe animation and IK utility

Usage:
  animtool [global options] <command> [options]

Global options:
  -config <file>     Config file (default ./animtool.yaml)
  -debug             Enable debug logging
  -speed <x>         Playback speed multiplier
  -solver <name>     IK solver: ccd or fabrik
  -iterations <n>    IK iteration limit
  -seed <n>          Seed for generated data

Commands:
  sample [-clip walk] [-t 0.25]       Print joint globals of a clip at a time
  bench [-n 100000] [-frames 64]      Compare Track and FastTrack sampling
  ik [-dump] <x> <y> <z>              Solve a 4 link chain toward a point
  fade [-from walk] [-to idle] [-ticks 60]
                                      Cross-fade between two clips
  rig [-ticks 120] [-slope 0.2]       Walk the biped over sloped ground
  palette [-clip walk] [-t 0] [-dq]   Print the skinning palette

Examples:
  animtool sample -clip idle -t 1.5
  animtool -seed 7 bench -n 50000
  animtool -solver ccd ik -dump 1 2 0.5
  animtool -debug rig -slope 0.3`)
}
