package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-anim/internal/config"
	"github.com/Faultbox/midgard-anim/internal/logger"
	"github.com/Faultbox/midgard-anim/pkg/anim"
	"github.com/Faultbox/midgard-anim/pkg/math"
)

func cmdBench(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	samples := fs.Int("n", 100000, "Number of sample times")
	frames := fs.Int("frames", 64, "Keyframes per track")
	fs.Parse(args)

	if *frames < 2 {
		return errors.New("bench needs at least 2 keyframes")
	}
	mode, err := cfg.InterpolationMode()
	if err != nil {
		return err
	}

	r := rand.New(rand.NewSource(cfg.Random.Seed))
	track := randomTrack(r, mode, *frames)
	fast := anim.OptimizeTrack(track)

	times := make([]float32, *samples)
	duration := track.EndTime() - track.StartTime()
	for i := range times {
		// Include times outside the range to exercise looping.
		times[i] = track.StartTime() + (r.Float32()*1.2-0.1)*duration
	}

	var maxDev float32
	for _, t := range times {
		if d := track.Sample(t, true).Distance(fast.Sample(t, true)); d > maxDev {
			maxDev = d
		}
	}

	slow := timeSampler(track, times)
	quick := timeSampler(fast, times)
	logger.Debug("bench finished",
		zap.Stringer("mode", mode),
		zap.Duration("track", slow),
		zap.Duration("fast_track", quick),
	)

	fmt.Printf("Interpolation: %s\n", mode)
	fmt.Printf("Keyframes:     %d over %.2fs\n", track.Len(), duration)
	fmt.Printf("Samples:       %d (seed %d)\n", len(times), cfg.Random.Seed)
	fmt.Printf("Max deviation: %g\n", maxDev)
	fmt.Printf("Track:         %v (%.1f ns/sample)\n", slow, perSample(slow, len(times)))
	fmt.Printf("FastTrack:     %v (%.1f ns/sample)\n", quick, perSample(quick, len(times)))
	return nil
}

// randomTrack returns a vector track with keyframes at sorted random times.
func randomTrack(r *rand.Rand, mode anim.Interpolation, n int) *anim.VectorTrack {
	rnd := func() math.Vec3 {
		return math.Vec3{X: r.Float32()*2 - 1, Y: r.Float32()*2 - 1, Z: r.Float32()*2 - 1}
	}
	track := anim.NewVectorTrack(mode)
	t := float32(0)
	for i := 0; i < n; i++ {
		track.Append(anim.CubicKeyframe(t, rnd(), rnd(), rnd()))
		t += 0.01 + r.Float32()*0.1
	}
	return track
}

func timeSampler(s anim.Sampler[math.Vec3], times []float32) time.Duration {
	var sink math.Vec3
	start := time.Now()
	for _, t := range times {
		sink = sink.Add(s.Sample(t, true))
	}
	elapsed := time.Since(start)
	_ = sink
	return elapsed
}

func perSample(d time.Duration, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(d.Nanoseconds()) / float64(n)
}
