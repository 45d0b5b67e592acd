// Package simconfig handles simulation configuration loading and management.
package simconfig

// Config holds all simulation settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
	Particles ParticlesConfig `yaml:"particles"`
	Mesh      MeshConfig      `yaml:"mesh"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display/window settings for the demo renderer.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SimulationConfig holds the bounds of the simulated box.
type SimulationConfig struct {
	BoxMin [3]float32 `yaml:"box_min"`
	BoxMax [3]float32 `yaml:"box_max"`
}

// ParticlesConfig holds particle-system initialization settings.
type ParticlesConfig struct {
	Count int     `yaml:"count"`
	Speed float32 `yaml:"speed"`
	Size  float32 `yaml:"size"`
	Seed  uint64  `yaml:"seed"`
}

// MeshConfig holds the collision-mesh dataset path and SDF build settings.
type MeshConfig struct {
	Path       string `yaml:"path"`
	Resolution int    `yaml:"resolution"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Simulation: SimulationConfig{
			BoxMin: [3]float32{-5, -5, -5},
			BoxMax: [3]float32{5, 5, 5},
		},
		Particles: ParticlesConfig{
			Count: 100,
			Speed: 2.0,
			Size:  0.05,
			Seed:  1,
		},
		Mesh: MeshConfig{
			Path:       "data/stanford-bunny.obj",
			Resolution: 64,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
