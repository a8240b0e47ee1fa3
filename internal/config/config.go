// Package config handles animtool configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/midgard-anim/pkg/anim"
	"github.com/Faultbox/midgard-anim/pkg/ik"
)

// Config holds all animtool settings.
type Config struct {
	Playback PlaybackConfig `yaml:"playback"`
	IK       IKConfig       `yaml:"ik"`
	Random   RandomConfig   `yaml:"random"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PlaybackConfig holds clip playback settings.
type PlaybackConfig struct {
	Speed         float32 `yaml:"speed"`
	FadeDuration  float32 `yaml:"fade_duration"` // seconds
	UseFastTracks bool    `yaml:"use_fast_tracks"`
	TickRate      int     `yaml:"tick_rate"` // updates per second
	Interpolation string  `yaml:"interpolation"`
}

// IKConfig holds leg solver settings.
type IKConfig struct {
	Solver        string  `yaml:"solver"`
	MaxIterations int     `yaml:"max_iterations"`
	Threshold     float32 `yaml:"threshold"`
	AnkleOffset   float32 `yaml:"ankle_offset"`
	Sink          float32 `yaml:"sink"`
}

// RandomConfig seeds generated test data.
type RandomConfig struct {
	Seed int64 `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			Speed:         1,
			FadeDuration:  0.5,
			UseFastTracks: true,
			TickRate:      60,
			Interpolation: "linear",
		},
		IK: IKConfig{
			Solver:        "fabrik",
			MaxIterations: ik.DefaultMaxIterations,
			Threshold:     ik.DefaultThreshold,
			AnkleOffset:   ik.DefaultAnkleOffset,
			Sink:          0.15,
		},
		Random: RandomConfig{
			Seed: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// TickDuration returns the length of one update in seconds.
func (c *Config) TickDuration() float32 {
	return 1 / float32(c.Playback.TickRate)
}

// InterpolationMode returns the configured interpolation for generated
// tracks.
func (c *Config) InterpolationMode() (anim.Interpolation, error) {
	return anim.ParseInterpolation(c.Playback.Interpolation)
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Playback.Speed < 0 {
		return fmt.Errorf("playback.speed must not be negative, got %v", c.Playback.Speed)
	}
	if c.Playback.FadeDuration < 0 {
		return fmt.Errorf("playback.fade_duration must not be negative, got %v", c.Playback.FadeDuration)
	}
	if c.Playback.TickRate <= 0 {
		return fmt.Errorf("playback.tick_rate must be positive, got %d", c.Playback.TickRate)
	}
	if _, err := c.InterpolationMode(); err != nil {
		return fmt.Errorf("playback.interpolation: %w", err)
	}
	if _, err := ik.NewSolver(c.IK.Solver, 0); err != nil {
		return fmt.Errorf("ik.solver: %w", err)
	}
	if c.IK.MaxIterations <= 0 {
		return fmt.Errorf("ik.max_iterations must be positive, got %d", c.IK.MaxIterations)
	}
	if c.IK.Threshold <= 0 {
		return fmt.Errorf("ik.threshold must be positive, got %v", c.IK.Threshold)
	}
	return nil
}
