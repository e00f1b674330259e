package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagScenario = flag.String("scenario", "", "Scenario YAML to run")
	flagTrace    = flag.String("trace", "", "Write a per-tick CSV trace to this path")
	flagTicks    = flag.Int("ticks", 0, "Number of physics ticks to run")
	flagWatch    = flag.Bool("watch", false, "Reload character tuning when the config file changes")
	flagRealTime = flag.Bool("realtime", false, "Pace ticks with the wall clock")
	flagSave     = flag.Bool("save-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScenario != "" {
		cfg.Sim.Scenario = *flagScenario
	}
	if *flagTrace != "" {
		cfg.Sim.TracePath = *flagTrace
	}
	if *flagTicks > 0 {
		cfg.Sim.Ticks = *flagTicks
	}
	if *flagWatch {
		cfg.Sim.Watch = true
	}
	if *flagRealTime {
		cfg.Sim.RealTime = true
	}
}
