package simconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Particles.Count != 100 {
		t.Errorf("expected particle count 100, got %d", cfg.Particles.Count)
	}
	if cfg.Particles.Seed != 1 {
		t.Errorf("expected default seed 1, got %d", cfg.Particles.Seed)
	}

	if cfg.Mesh.Resolution != 64 {
		t.Errorf("expected mesh resolution 64, got %d", cfg.Mesh.Resolution)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

particles:
  count: 500
  speed: 3.5
  size: 0.1
  seed: 42

mesh:
  path: "data/torus.obj"
  resolution: 96

logging:
  level: "debug"
  log_file: "sim.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Particles.Count != 500 {
		t.Errorf("expected particle count 500, got %d", cfg.Particles.Count)
	}
	if cfg.Particles.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Particles.Seed)
	}
	if cfg.Mesh.Path != "data/torus.obj" {
		t.Errorf("expected mesh path 'data/torus.obj', got %s", cfg.Mesh.Path)
	}
	if cfg.Mesh.Resolution != 96 {
		t.Errorf("expected resolution 96, got %d", cfg.Mesh.Resolution)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
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

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
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
			name: "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "mesh flag",
			setup: func() { *flagMesh = "data/custom.obj" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Mesh.Path != "data/custom.obj" {
					t.Errorf("expected mesh path override, got %s", cfg.Mesh.Path)
				}
			},
			teardown: func() { *flagMesh = "" },
		},
		{
			name: "resolution flag",
			setup: func() {
				*flagResolution = 128
				resolutionSet = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Mesh.Resolution != 128 {
					t.Errorf("expected resolution 128, got %d", cfg.Mesh.Resolution)
				}
			},
			teardown: func() {
				*flagResolution = 0
				resolutionSet = false
			},
		},
		{
			name: "non-positive resolution flag still overrides",
			setup: func() {
				*flagResolution = -5
				resolutionSet = true
			},
			verify: func(t *testing.T, cfg *Config) {
				// applyFlags must apply an explicitly-set value even when
				// invalid, so it reaches sdf.Build's validation and the
				// documented exit 1 instead of silently falling back.
				if cfg.Mesh.Resolution != -5 {
					t.Errorf("expected invalid resolution -5 to propagate, got %d", cfg.Mesh.Resolution)
				}
			},
			teardown: func() {
				*flagResolution = 0
				resolutionSet = false
			},
		},
		{
			name: "seed flag",
			setup: func() { *flagSeed = 99 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Particles.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Particles.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
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
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
mesh:
  resolution: 48
window:
  width: 1600
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagResolution = 96
	resolutionSet = true
	defer func() {
		*flagConfig = ""
		*flagResolution = 0
		resolutionSet = false
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Mesh.Resolution != 96 {
		t.Errorf("expected resolution 96 from flag, got %d", cfg.Mesh.Resolution)
	}
	if cfg.Window.Width != 1600 {
		t.Errorf("expected width 1600 from file, got %d", cfg.Window.Width)
	}
}
