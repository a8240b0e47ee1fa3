package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Playback.Speed != 1 {
		t.Errorf("expected speed 1, got %f", cfg.Playback.Speed)
	}
	if cfg.Playback.TickRate != 60 {
		t.Errorf("expected tick rate 60, got %d", cfg.Playback.TickRate)
	}
	if !cfg.Playback.UseFastTracks {
		t.Error("expected fast tracks to be enabled by default")
	}

	if cfg.IK.Solver != "fabrik" {
		t.Errorf("expected solver fabrik, got %s", cfg.IK.Solver)
	}
	if cfg.IK.MaxIterations != 15 {
		t.Errorf("expected 15 iterations, got %d", cfg.IK.MaxIterations)
	}
	if cfg.IK.Threshold != 0.00001 {
		t.Errorf("expected threshold 0.00001, got %f", cfg.IK.Threshold)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "animtool.yaml")

	yamlContent := `
playback:
  speed: 0.5
  fade_duration: 0.25
  use_fast_tracks: false
  tick_rate: 30
  interpolation: cubic

ik:
  solver: ccd
  max_iterations: 40
  threshold: 0.001
  ankle_offset: 0.1

random:
  seed: 42

logging:
  level: "debug"
  log_file: "anim.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Playback.Speed != 0.5 {
		t.Errorf("expected speed 0.5, got %f", cfg.Playback.Speed)
	}
	if cfg.Playback.UseFastTracks {
		t.Error("expected fast tracks to be disabled")
	}
	if cfg.Playback.TickRate != 30 {
		t.Errorf("expected tick rate 30, got %d", cfg.Playback.TickRate)
	}
	if cfg.TickDuration() != float32(1)/30 {
		t.Errorf("expected tick duration 1/30, got %f", cfg.TickDuration())
	}
	if mode, err := cfg.InterpolationMode(); err != nil || mode.String() != "cubic" {
		t.Errorf("expected cubic interpolation, got %v (%v)", mode, err)
	}

	if cfg.IK.Solver != "ccd" {
		t.Errorf("expected solver ccd, got %s", cfg.IK.Solver)
	}
	if cfg.IK.MaxIterations != 40 {
		t.Errorf("expected 40 iterations, got %d", cfg.IK.MaxIterations)
	}
	// Unset keys keep their defaults.
	if cfg.IK.Sink != 0.15 {
		t.Errorf("expected default sink 0.15, got %f", cfg.IK.Sink)
	}

	if cfg.Random.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Random.Seed)
	}
	if cfg.Logging.LogFile != "anim.log" {
		t.Errorf("expected log file 'anim.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
playback:
  speed: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/animtool.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative speed", func(c *Config) { c.Playback.Speed = -1 }},
		{"negative fade", func(c *Config) { c.Playback.FadeDuration = -0.1 }},
		{"zero tick rate", func(c *Config) { c.Playback.TickRate = 0 }},
		{"unknown interpolation", func(c *Config) { c.Playback.Interpolation = "bezier" }},
		{"unknown solver", func(c *Config) { c.IK.Solver = "jacobian" }},
		{"zero iterations", func(c *Config) { c.IK.MaxIterations = 0 }},
		{"zero threshold", func(c *Config) { c.IK.Threshold = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "animtool.yaml")
	if err := os.WriteFile(configPath, []byte("playback:\n  speed: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find animtool.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "speed flag",
			setup: func() { *flagSpeed = 2.5 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Playback.Speed != 2.5 {
					t.Errorf("expected speed 2.5, got %f", cfg.Playback.Speed)
				}
			},
			teardown: func() { *flagSpeed = 0 },
		},
		{
			name: "solver flags",
			setup: func() {
				*flagSolver = "ccd"
				*flagIterations = 64
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.IK.Solver != "ccd" {
					t.Errorf("expected solver ccd, got %s", cfg.IK.Solver)
				}
				if cfg.IK.MaxIterations != 64 {
					t.Errorf("expected 64 iterations, got %d", cfg.IK.MaxIterations)
				}
			},
			teardown: func() {
				*flagSolver = ""
				*flagIterations = 0
			},
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 99 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Random.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Random.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "animtool.yaml")

	yamlContent := `
playback:
  speed: 0.75
ik:
  solver: ccd
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagSolver = "fabrik"
	defer func() {
		*flagConfig = ""
		*flagSolver = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Solver comes from the flag, speed from the file.
	if cfg.IK.Solver != "fabrik" {
		t.Errorf("expected solver fabrik from flag, got %s", cfg.IK.Solver)
	}
	if cfg.Playback.Speed != 0.75 {
		t.Errorf("expected speed 0.75 from file, got %f", cfg.Playback.Speed)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "animtool.yaml")
	if err := os.WriteFile(configPath, []byte("ik:\n  solver: jacobian\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown solver, got nil")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "animtool.yaml")

	cfg := Default()
	cfg.IK.Solver = "ccd"
	cfg.Random.Seed = 7
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.IK.Solver != "ccd" || loaded.Random.Seed != 7 {
		t.Errorf("saved config not restored: %+v", loaded.IK)
	}
}
