package simconfig

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagMesh       = flag.String("mesh", "", "Path to the collision mesh OBJ file")
	flagResolution = flag.Int("resolution", 0, "SDF grid resolution (must be at least 2)")
	flagSeed       = flag.Uint64("seed", 0, "Seed for deterministic particle initialization")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")

	resolutionSet bool
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "resolution" {
			resolutionSet = true
		}
	})
}

// ConfigPath returns the explicit config path if provided via -config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMesh != "" {
		cfg.Mesh.Path = *flagMesh
	}
	if resolutionSet {
		// Apply unconditionally, even if non-positive: an invalid value
		// must propagate to sdf.Build's validation and exit 1, not fall
		// back silently to the config/default resolution.
		cfg.Mesh.Resolution = *flagResolution
	}
	if *flagSeed > 0 {
		cfg.Particles.Seed = *flagSeed
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
