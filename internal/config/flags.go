package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagAddr   = flag.String("addr", "", "Bridge listen address")
	flagFPS    = flag.Int("fps", 0, "Frame rate")
	flagStage  = flag.String("stage", "", "Initial flow stage (S-IC, S-II, S-IVB)")
	flagFlow   = flag.Bool("flow", false, "Start with flow animation on")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
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
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if *flagFPS > 0 {
		cfg.Server.FrameRate = *flagFPS
	}
	if *flagStage != "" {
		cfg.View.ActiveStage = *flagStage
	}
	if *flagFlow {
		cfg.View.Flow = true
	}
}
