package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSpeed      = flag.Float64("speed", 0, "Playback speed multiplier")
	flagSolver     = flag.String("solver", "", "IK solver: ccd or fabrik")
	flagIterations = flag.Int("iterations", 0, "IK iteration limit")
	flagSeed       = flag.Int64("seed", 0, "Seed for generated data")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after the flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSpeed > 0 {
		cfg.Playback.Speed = float32(*flagSpeed)
	}
	if *flagSolver != "" {
		cfg.IK.Solver = *flagSolver
	}
	if *flagIterations > 0 {
		cfg.IK.MaxIterations = *flagIterations
	}
	if *flagSeed != 0 {
		cfg.Random.Seed = *flagSeed
	}
}
